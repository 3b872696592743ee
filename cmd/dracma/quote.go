package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dracma/presale/internal/tokenomics"
)

func newQuoteCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "quote <amount>",
		Short: "Project the DRACMA tokens bought with a stable-token amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			terms, err := cfg.Terms()
			if err != nil {
				return err
			}

			now := time.Now()
			if at != "" {
				if now, err = time.Parse(time.RFC3339, at); err != nil {
					return errors.Wrap(err, "--at must be RFC3339")
				}
			}

			q := tokenomics.QuoteString(args[0], terms.Price, terms.Tiers, now)
			base, _ := q.BaseTokens.Float64()
			bonus, _ := q.BonusTokens.Float64()
			total, _ := q.TotalTokens.Float64()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "price:  %s per DRC\n", terms.Price.String())
			if q.TierLabel != "" {
				fmt.Fprintf(out, "tier:   %s (+%s%%)\n", q.TierLabel, q.Rate.Mul(decimal.NewFromInt(100)).String())
			} else {
				fmt.Fprintln(out, "tier:   none")
			}
			fmt.Fprintf(out, "base:   %s DRC\n", humanize.CommafWithDigits(base, 2))
			fmt.Fprintf(out, "bonus:  %s DRC\n", humanize.CommafWithDigits(bonus, 2))
			fmt.Fprintf(out, "total:  %s DRC\n", humanize.CommafWithDigits(total, 2))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "evaluate the bonus tier at this RFC3339 time")
	return cmd
}
