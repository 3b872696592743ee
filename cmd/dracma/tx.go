package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/dracma/presale/internal/domain"
)

func newBuyCmd() *cobra.Command {
	var currency string
	cmd := &cobra.Command{
		Use:   "buy <amount>",
		Short: "Buy DRACMA in the presale, approving the payment token first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransaction(cmd, domain.OperationBuy, currency, args[0])
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "USDT", "payment token symbol")
	return cmd
}

func newStakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stake <amount>",
		Short: "Stake DRACMA, approving the staking contract first if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransaction(cmd, domain.OperationStake, "", args[0])
		},
	}
}

func newUnstakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unstake <amount>",
		Short: "Withdraw staked DRACMA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransaction(cmd, domain.OperationUnstake, "", args[0])
		},
	}
}

func newClaimRewardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim-rewards",
		Short: "Claim pending staking rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransaction(cmd, domain.OperationClaimRewards, "", "")
		},
	}
}

func newClaimVestingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim-vesting",
		Short: "Claim vested DRACMA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransaction(cmd, domain.OperationClaimVesting, "", "")
		},
	}
}

// runTransaction executes one request inline and prints every step as it happens
func runTransaction(cmd *cobra.Command, op domain.Operation, currency, amount string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	unsubscribe, err := a.bus.OnTransition(func(t domain.Transition) {
		printTransition(out, t)
	})
	if err != nil {
		return err
	}
	defer unsubscribe()

	if op == domain.OperationBuy {
		if q, err := a.presale.Quote(amount, currency); err == nil {
			total, _ := q.TotalTokens.Float64()
			fmt.Fprintf(out, "buying ~%s DRC with %s %s\n", humanize.CommafWithDigits(total, 2), amount, currency)
		}
	}

	state, err := a.presale.Execute(ctx, op, currency, amount)
	if err != nil {
		return err
	}
	if state.Step == domain.StepError {
		return errors.Errorf("%s failed (%s): %s", op, state.ErrorClass, state.ErrorMessage)
	}
	return nil
}

func printTransition(w io.Writer, t domain.Transition) {
	switch t.To {
	case domain.StepSuccess:
		fmt.Fprintf(w, "✅ %s confirmed", t.Operation)
		if t.State.TxHash != nil {
			fmt.Fprintf(w, " tx=%s", t.State.TxHash.Hex())
		}
		if q := t.State.Quote; q != nil {
			total, _ := q.TotalTokens.Float64()
			fmt.Fprintf(w, " tokens=%s", humanize.CommafWithDigits(total, 2))
		}
		fmt.Fprintln(w)
	case domain.StepError:
		fmt.Fprintf(w, "❌ %s: %s\n", t.State.ErrorClass, t.State.ErrorMessage)
	case domain.StepConfirming:
		if t.State.TxHash != nil {
			fmt.Fprintf(w, "⏳ confirming tx=%s\n", t.State.TxHash.Hex())
			return
		}
		fmt.Fprintln(w, "⏳ confirming")
	default:
		fmt.Fprintf(w, "➡️  %s\n", t.To)
	}
}
