// Package cli provides the cobra command tree for ticketbranch.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	clierrors "github.com/randalmurphal/ticketbranch/errors"
)

// GlobalOpts holds the persistent flags.
type GlobalOpts struct {
	Verbose bool
	NoColor bool
}

// app carries per-invocation state shared by the commands.
type app struct {
	version string
	opts    GlobalOpts

	// interactive overrides terminal detection on stdin when non-nil.
	interactive *bool

	// Recorded while running so errors can name them.
	serverURL string
	repoPath  string
}

// NewRootCmd creates the root command. Without a subcommand it behaves
// like "create".
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&app{version: version})
}

func newRootCmd(a *app) *cobra.Command {
	var opts createOpts

	rootCmd := &cobra.Command{
		Use:   "ticketbranch [TICKET]",
		Short: "Create a git branch named after a Jira ticket",
		Long: `ticketbranch - create a git branch named after a Jira ticket

Fetches the ticket's summary and sprint from Jira and creates, then checks
out, a branch named <fiscal-year>/sprint<NN>/<KEY>/<summary-slug>:

  ticketbranch WAR-7974   ->   fy25/sprint08/WAR-7974/fix-login-bug

Configure Jira once with:

  ticketbranch config set base_url https://yourcompany.atlassian.net
  ticketbranch config set email you@example.com
  ticketbranch config set api_token <token>`,
		Version:       a.version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(cmd, args, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&a.opts.Verbose, "verbose", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&a.opts.NoColor, "no-color", false, "disable colored output")
	addCreateFlags(rootCmd, &opts)

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		a.newCreateCmd(),
		a.newExplainCmd(),
		a.newNameCmd(),
		a.newCurrentCmd(),
		a.newConfigCmd(),
		a.newDoctorCmd(),
		a.newVersionCmd(),
	)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	markArgErrors(rootCmd)

	return rootCmd
}

// usageError tags a flag or argument mistake so it exits with status 2.
func usageError(err error) error {
	return fmt.Errorf("%w: %w", clierrors.ErrInvalidInput, err)
}

// markArgErrors wraps every positional-argument validator in the tree with
// usageError.
func markArgErrors(cmd *cobra.Command) {
	if validate := cmd.Args; validate != nil {
		cmd.Args = func(c *cobra.Command, args []string) error {
			if err := validate(c, args); err != nil {
				return usageError(err)
			}
			return nil
		}
	}
	for _, sub := range cmd.Commands() {
		markArgErrors(sub)
	}
}

// Execute runs the root command with the given output writers. Returned
// errors are *errors.CLIError where a friendlier message exists; pass them
// to errors.ExitCode for the process status.
func Execute(version string, stdout, stderr io.Writer) error {
	a := &app{version: version}
	rootCmd := newRootCmd(a)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return a.wrap(rootCmd.Execute())
}

func (a *app) wrap(err error) error {
	return clierrors.Wrap(err,
		clierrors.WithServerURL(a.serverURL),
		clierrors.WithRepoPath(a.repoPath),
	)
}
