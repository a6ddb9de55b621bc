package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/git"
)

func (a *app) newCurrentCmd() *cobra.Command {
	var repoPath string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the ticket behind the checked-out branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workDir(repoPath)
			if err != nil {
				return err
			}
			a.repoPath = dir

			repo, err := git.NewContext(dir)
			if err != nil {
				return err
			}
			branch, err := repo.CurrentBranch()
			if err != nil {
				return err
			}

			info, key, slug, ok := branchname.ParseBranch(branch)
			if !ok {
				return fmt.Errorf("current branch %s is not a ticket branch (want <fy>/<sprint>/<KEY>/<summary>)", branch)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Branch: %s\n", branch)
			fmt.Fprintf(out, "Ticket: %s\n", key)
			fmt.Fprintf(out, "Fiscal Year: %s\n", info.FiscalYear)
			fmt.Fprintf(out, "Sprint: %s\n", info.SprintNumber)
			fmt.Fprintf(out, "Summary Slug: %s\n", slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "repository to inspect (default: current directory)")

	return cmd
}
