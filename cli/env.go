package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/randalmurphal/ticketbranch"
	"github.com/randalmurphal/ticketbranch/config"
	clierrors "github.com/randalmurphal/ticketbranch/errors"
	"github.com/randalmurphal/ticketbranch/git"
	"github.com/randalmurphal/ticketbranch/jira"
	"github.com/randalmurphal/ticketbranch/notify"
	"github.com/randalmurphal/ticketbranch/prompt"
)

const runIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// env is what a command needs after configuration is resolved.
type env struct {
	settings config.Settings
	resolved *config.Resolved
	logger   *slog.Logger
	runID    string
	gitRoot  string
}

// load resolves configuration starting at startDir, with flags taking
// precedence, and sets up logging.
func (a *app) load(cmd *cobra.Command, startDir string, flags map[string]string) (*env, error) {
	if flags == nil {
		flags = map[string]string{}
	}
	if a.opts.NoColor {
		flags[config.KeyNoColor] = "true"
	}

	rc := config.NewResolverConfig(startDir)
	rc.GitRootFinder = gitRoot
	rc.ErrWriter = cmd.ErrOrStderr()
	resolver := config.NewResolver(rc)
	resolved := resolver.ResolveWithFlags(flags)

	settings, err := config.Load(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", clierrors.ErrInvalidInput, err)
	}
	a.serverURL = settings.BaseURL

	runID, err := nanoid.Generate(runIDAlphabet, 10)
	if err != nil {
		return nil, fmt.Errorf("generate run id: %w", err)
	}

	return &env{
		settings: settings,
		resolved: resolved,
		logger:   newLogger(cmd.ErrOrStderr(), a.opts.Verbose),
		runID:    runID,
		gitRoot:  resolver.GitRoot(),
	}, nil
}

// newLogger logs warnings to w, or everything with verbose set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// jiraClient builds the Jira client. Missing settings surface as
// jira.ErrConfigurationMissing.
func (e *env) jiraClient() (*jira.Client, error) {
	return jira.NewClient(e.settings.Jira(),
		jira.WithLogger(e.logger.With("run_id", e.runID)),
	)
}

// notifier prints progress to out, and also to the log when verbose.
func (a *app) notifier(e *env, out io.Writer) notify.Notifier {
	plain := e.settings.NoColor || !isTerminal(out)
	terminal := notify.NewTerminalNotifier(out, plain)
	if !a.opts.Verbose {
		return terminal
	}
	return notify.NewMultiNotifier(terminal, notify.NewLogNotifier(e.logger))
}

func (a *app) service(e *env, tickets ticketbranch.TicketSource, out io.Writer) *ticketbranch.Service {
	return ticketbranch.NewService(tickets, e.settings.Naming(),
		ticketbranch.WithLogger(e.logger),
		ticketbranch.WithRunID(e.runID),
		ticketbranch.WithNotifier(a.notifier(e, out)),
	)
}

func (a *app) prompter(cmd *cobra.Command) *prompt.Prompter {
	in := cmd.InOrStdin()
	if a.interactive != nil {
		return prompt.NewWithMode(in, cmd.ErrOrStderr(), *a.interactive)
	}
	return prompt.New(in, cmd.ErrOrStderr())
}

func gitRoot(dir string) (string, error) {
	g, err := git.NewContext(dir)
	if err != nil {
		return "", err
	}
	return g.TopLevel()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func workDir(repo string) (string, error) {
	if repo != "" {
		return repo, nil
	}
	return os.Getwd()
}
