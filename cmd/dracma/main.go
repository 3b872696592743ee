package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dracma",
		Short:         "DRACMA presale, staking and vesting orchestrator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config/config.yaml", "path to the config file")

	root.AddCommand(
		newServeCmd(),
		newQuoteCmd(),
		newBuyCmd(),
		newStakeCmd(),
		newUnstakeCmd(),
		newClaimRewardsCmd(),
		newClaimVestingCmd(),
		newHistoryCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "⛔️ %v\n", err)
		os.Exit(1)
	}
}
