package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one full reconciliation run",
		Long: `Reads the newest export of every configured marketplace, delists listings
whose product no longer exists or has sold on the source of truth, prunes
duplicate listings, and fills today's posting budget with relists and new
listings. Completed actions are recorded in the ledger, so re-running after
an interruption resumes where the previous run stopped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.buildLogger()
			if err != nil {
				return err
			}
			exec, err := ctx.buildExecutor(false)
			if err != nil {
				return err
			}
			store, err := ctx.openLedger()
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			run, err := ctx.buildRunner(store, exec, logger)
			if err != nil {
				return err
			}

			stats, err := run.Run(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Delisted", "Pruned", "Relisted", "Created", "Failed", "Skipped"},
				[][]string{{
					fmt.Sprint(stats.Delisted),
					fmt.Sprint(stats.Pruned),
					fmt.Sprint(stats.Relisted),
					fmt.Sprint(stats.Created),
					fmt.Sprint(stats.Failed),
					fmt.Sprint(stats.Skipped),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			for _, breach := range stats.Breaches {
				fmt.Fprintf(out, "warning: %s\n", breach)
			}
			return nil
		},
	}
}
