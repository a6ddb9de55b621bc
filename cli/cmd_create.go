package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ticketbranch"
	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/config"
	"github.com/randalmurphal/ticketbranch/git"
	"github.com/randalmurphal/ticketbranch/notify"
	"github.com/randalmurphal/ticketbranch/prompt"
)

type createOpts struct {
	repo     string
	onExists string
	prefix   string
	init     bool
	dryRun   bool
}

func addCreateFlags(cmd *cobra.Command, opts *createOpts) {
	cmd.Flags().StringVar(&opts.repo, "repo", "", "repository to create the branch in (default: current directory)")
	cmd.Flags().StringVar(&opts.onExists, "on-exists", "", "when the branch exists: reuse, abort, or prompt")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "fallback <fiscal-year>/<sprint> when the sprint has none")
	cmd.Flags().BoolVar(&opts.init, "init", false, "initialize a git repository if there is none")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the branch name without touching git")
}

func (o createOpts) flags() map[string]string {
	flags := map[string]string{}
	if o.onExists != "" {
		flags[config.KeyOnExists] = o.onExists
	}
	if o.prefix != "" {
		flags[config.KeyBranchPrefix] = o.prefix
	}
	return flags
}

func (a *app) newCreateCmd() *cobra.Command {
	var opts createOpts

	cmd := &cobra.Command{
		Use:   "create [TICKET]",
		Short: "Create and check out the branch for a ticket",
		Long: `Create and check out the branch for a ticket.
Prompts for the ticket ID when it is omitted and stdin is a terminal.
When the branch already exists, --on-exists decides: reuse checks it out,
abort fails, and prompt (the default) asks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(cmd, args, opts)
		},
	}
	addCreateFlags(cmd, &opts)

	return cmd
}

func (a *app) runCreate(cmd *cobra.Command, args []string, opts createOpts) error {
	ctx := cmd.Context()
	stdout := cmd.OutOrStdout()

	dir, err := workDir(opts.repo)
	if err != nil {
		return err
	}
	a.repoPath = dir

	e, err := a.load(cmd, dir, opts.flags())
	if err != nil {
		return err
	}
	onExists, err := ticketbranch.ParseOnExists(e.settings.OnExists)
	if err != nil {
		return err
	}

	p := a.prompter(cmd)

	repo, err := a.openRepo(cmd, dir, opts, e, p)
	if err != nil {
		return err
	}

	client, err := e.jiraClient()
	if err != nil {
		return err
	}
	svc := a.service(e, client, stdout)

	key, err := ticketArg(args, p)
	if err != nil {
		return err
	}

	result, err := svc.Create(ctx, key, repo, ticketbranch.CreateOptions{
		OnExists: onExists,
		DryRun:   opts.dryRun,
		Confirm: func(branch string) (bool, error) {
			return p.Confirm(fmt.Sprintf("Branch %s already exists. Would you like to check it out?", branch), false)
		},
	})
	if err != nil {
		return err
	}

	if result.DryRun {
		state := "would be created"
		if result.Existed {
			state = "already exists"
		}
		fmt.Fprintf(stdout, "dry run: %s %s\n", result.Branch, state)
	}
	return nil
}

// openRepo opens the repository at dir, initializing one when --init is
// set or the user agrees.
func (a *app) openRepo(cmd *cobra.Command, dir string, opts createOpts, e *env, p *prompt.Prompter) (*git.Context, error) {
	repo, err := git.NewContext(dir)
	if err == nil || !errors.Is(err, git.ErrNotGitRepo) || opts.dryRun {
		return repo, err
	}

	initialize := opts.init
	if !initialize {
		initialize, err = p.Confirm(
			fmt.Sprintf("%s is not a git repository. Initialize Git?", dir), false)
		if err != nil {
			return nil, err
		}
	}
	if !initialize {
		return nil, fmt.Errorf("%w: %s", git.ErrNotGitRepo, dir)
	}

	repo, err = git.Init(dir)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("initialized git repository", "path", repo.RepoPath(), "run_id", e.runID)
	_ = a.notifier(e, cmd.OutOrStdout()).Notify(cmd.Context(), notify.Event{
		Type:     notify.EventRepoInit,
		RunID:    e.runID,
		Message:  "initialized git repository in " + repo.RepoPath(),
		Severity: notify.SeverityInfo,
	})
	return repo, nil
}

// ticketArg returns the ticket from args, or asks for one. A missing
// ticket without a terminal is reported as an invalid reference.
func ticketArg(args []string, p *prompt.Prompter) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !p.Interactive() {
		return "", branchname.ValidateTicketReference("")
	}
	return p.Ticket(branchname.ValidateTicketReference)
}
