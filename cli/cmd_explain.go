package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ticketbranch"
	"github.com/randalmurphal/ticketbranch/notify"
)

func (a *app) newExplainCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "explain TICKET",
		Short: "Show how a ticket's branch name is derived",
		Long: `Fetch a ticket and show the sprint name, the fiscal year and sprint
number extracted from it, and the branch name create would use.
Nothing in the repository is changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir("")
			if err != nil {
				return err
			}
			flags := createOpts{prefix: prefix}.flags()
			e, err := a.load(cmd, dir, flags)
			if err != nil {
				return err
			}
			client, err := e.jiraClient()
			if err != nil {
				return err
			}

			var n notify.Notifier = notify.NopNotifier{}
			if a.opts.Verbose {
				n = notify.NewLogNotifier(e.logger)
			}
			svc := ticketbranch.NewService(client, e.settings.Naming(),
				ticketbranch.WithLogger(e.logger),
				ticketbranch.WithRunID(e.runID),
				ticketbranch.WithNotifier(n),
			)

			plan, err := svc.Plan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			sprintName := plan.Ticket.SprintName
			if sprintName == "" {
				sprintName = "Not available"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ticket: %s\n", plan.Ticket.Key)
			fmt.Fprintf(out, "Summary: %s\n", plan.Ticket.Summary)
			fmt.Fprintf(out, "Sprint Name: %s\n", sprintName)
			fmt.Fprintf(out, "Extracted Fiscal Year: %s\n", plan.Sprint.FiscalYear)
			fmt.Fprintf(out, "Extracted Sprint Number: %s\n", plan.Sprint.SprintNumber)
			fmt.Fprintf(out, "\nBranch name would be: %s\n", plan.Branch)
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "fallback <fiscal-year>/<sprint> when the sprint has none")

	return cmd
}
