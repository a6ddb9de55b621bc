package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/config"
)

func (a *app) newNameCmd() *cobra.Command {
	var prefix, placeholder string

	cmd := &cobra.Command{
		Use:   "name KEY SUMMARY [SPRINT]",
		Short: "Compose a branch name without contacting Jira",
		Long: `Compose a branch name from a ticket key, summary, and optional sprint
name. Uses branch_prefix and empty_summary from configuration; nothing is
fetched.`,
		Example: `  ticketbranch name WAR-7974 "Fix login bug" "MAV 2025 - Sprint 8"
  fy25/sprint08/WAR-7974/fix-login-bug`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToUpper(strings.TrimSpace(args[0]))
			if err := branchname.ValidateTicketReference(key); err != nil {
				return err
			}

			dir, err := workDir("")
			if err != nil {
				return err
			}
			flags := createOpts{prefix: prefix}.flags()
			if placeholder != "" {
				flags[config.KeyEmptySummary] = placeholder
			}
			e, err := a.load(cmd, dir, flags)
			if err != nil {
				return err
			}

			var sprint string
			if len(args) == 3 {
				sprint = args[2]
			}

			fmt.Fprintln(cmd.OutOrStdout(), branchname.CreateBranchName(key, args[1], sprint, e.settings.Naming()))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "fallback <fiscal-year>/<sprint> when the sprint has none")
	cmd.Flags().StringVar(&placeholder, "placeholder", "", `last segment when the summary slug is empty ("none" for empty)`)

	return cmd
}
