package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/dracma/presale/internal/infrastructure/storage/gormdb"
)

func newHistoryCmd() *cobra.Command {
	var (
		account string
		limit   int
		offset  int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			dialector, err := gormdb.Dialector(cfg.Database.Driver, cfg.Database.DSN)
			if err != nil {
				return err
			}
			db, err := gormdb.NewDB(dialector, nil)
			if err != nil {
				return err
			}
			defer closeDB(db)

			records, err := gormdb.NewTransactionRepository(db).ListRecords(cmd.Context(), account, limit, offset)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WHEN\tOPERATION\tAMOUNT\tSTATUS\tTX")
			for _, r := range records {
				status := string(r.Status)
				if r.ErrorClass != "" {
					status += " (" + string(r.ErrorClass) + ")"
				}
				amount := r.Amount
				if r.Currency != "" {
					amount += " " + r.Currency
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", humanize.Time(r.FinishedAt), r.Operation, amount, status, r.TxHash)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "only show this wallet")
	cmd.Flags().IntVar(&limit, "limit", 20, "rows to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
