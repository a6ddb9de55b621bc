package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ticketbranch/git"
)

func (a *app) newDoctorCmd() *cobra.Command {
	var repoPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the repository and the Jira connection",
		Long: `Check the repository and the Jira connection.
Verifies that the target directory is a git repository, that Jira settings
are complete, that the server answers, and that the credentials are accepted.
Defaults to the current directory; use --repo to target a different repo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			dir, err := workDir(repoPath)
			if err != nil {
				return err
			}
			a.repoPath = dir

			e, err := a.load(cmd, dir, nil)
			if err != nil {
				return err
			}

			// Each check runs even when an earlier one fails; the first
			// failure is returned.
			var first error
			check := func(name, ok string, err error) {
				report(out, name, ok, err)
				if err != nil && first == nil {
					first = err
				}
			}

			repo, err := git.NewContext(dir)
			if err == nil {
				var top string
				top, err = repo.TopLevel()
				check("git repository", top, err)
			} else {
				check("git repository", "", err)
			}

			client, err := e.jiraClient()
			if err != nil {
				check("jira configuration", "", err)
				return first
			}
			check("jira configuration", fmt.Sprintf("%s (%s auth)", client.BaseURL(), e.settings.AuthType), nil)

			info, err := client.Ping(ctx)
			if err != nil {
				check("jira server", "", err)
				return first
			}
			check("jira server", fmt.Sprintf("%s %s", info.ServerTitle, info.Version), nil)

			user, err := client.Myself(ctx)
			if err != nil {
				check("jira credentials", "", err)
				return first
			}
			check("jira credentials", "authenticated as "+user.DisplayName, nil)

			return first
		},
	}

	cmd.Flags().StringVar(&repoPath, "repo", "", "target a specific repo (default: current directory)")

	return cmd
}

func report(w io.Writer, name, detail string, err error) {
	if err != nil {
		fmt.Fprintf(w, "✗ %s: %v\n", name, err)
		return
	}
	fmt.Fprintf(w, "✓ %s: %s\n", name, detail)
}
