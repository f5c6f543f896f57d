package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show what a run would do without executing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLedger()
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer store.Close()

			exec, err := ctx.buildExecutor(true)
			if err != nil {
				return err
			}
			run, err := ctx.buildRunner(store, exec, nil)
			if err != nil {
				return err
			}

			plan, err := run.Plan()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plan.Actions) == 0 {
				fmt.Fprintln(out, "Nothing to do")
			} else {
				rows := make([][]string, 0, len(plan.Actions))
				for _, action := range plan.Actions {
					rows = append(rows, []string{
						string(action.Kind),
						string(action.Platform),
						action.Subject,
						action.Key,
						action.Reason,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Action", "Platform", "Subject", "Key", "Reason"},
					rows,
					nil,
				))
			}

			fmt.Fprintf(out, "Posting budget: %d active of %d max, %d relist + %d new\n",
				plan.Budget.ActiveCount, plan.Budget.MaxActiveItems,
				plan.Budget.RelistQuota, plan.Budget.NewQuota)
			for _, breach := range plan.Breaches {
				fmt.Fprintf(out, "warning: %s\n", breach)
			}
			return nil
		},
	}
}
