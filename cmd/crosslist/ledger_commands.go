package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newLedgerCommand(ctx *commandContext) *cobra.Command {
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect and maintain the completed-action ledger",
	}

	ledgerCmd.AddCommand(newLedgerShowCommand(ctx))
	ledgerCmd.AddCommand(newLedgerResetCommand(ctx))

	return ledgerCmd
}

func newLedgerShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List every recorded ledger entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLedger()
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			keys := store.Keys()
			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				fmt.Fprintln(out, "Ledger is empty")
				return nil
			}
			for _, key := range keys {
				fmt.Fprintln(out, key)
			}
			fmt.Fprintf(out, "%d entries\n", len(keys))
			return nil
		},
	}
}

func newLedgerResetCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase the ledger so every past action becomes repeatable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to reset the ledger without --yes; completed actions would be re-sent to marketplaces")
			}
			store, err := ctx.openLedger()
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			if err := store.Reset(); err != nil {
				return fmt.Errorf("reset ledger: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ledger reset")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
