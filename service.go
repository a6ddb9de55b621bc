package ticketbranch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/git"
	"github.com/randalmurphal/ticketbranch/jira"
	"github.com/randalmurphal/ticketbranch/notify"
)

// TicketSource fetches ticket metadata. *jira.Client implements it.
type TicketSource interface {
	FetchTicket(ctx context.Context, key string) (*jira.Ticket, error)
}

// BranchManager creates and switches branches. *git.Context implements it.
type BranchManager interface {
	// ValidBranchName rejects names git would refuse, wrapping
	// git.ErrInvalidBranchName.
	ValidBranchName(name string) error
	BranchExists(name string) (bool, error)
	Checkout(name string) error
	CreateAndCheckout(name string) error
}

// ConfirmFunc asks whether to check out an existing branch.
type ConfirmFunc func(branch string) (bool, error)

// Plan is the outcome of naming: the fetched ticket and its branch name.
type Plan struct {
	Ticket jira.Ticket
	Sprint branchname.SprintInfo
	Branch string
}

// Result reports what Create did.
type Result struct {
	Plan

	// Existed is true when the branch was present before the run.
	Existed bool

	// Created is true when a new branch was created and checked out.
	Created bool

	// Reused is true when an existing branch was checked out.
	Reused bool

	// DryRun is true when no git changes were made.
	DryRun bool
}

// CreateOptions controls Create.
type CreateOptions struct {
	OnExists OnExists
	Confirm  ConfirmFunc
	DryRun   bool
}

// Service turns a ticket reference into a checked-out branch.
type Service struct {
	tickets  TicketSource
	namer    *branchname.Namer
	notifier notify.Notifier
	logger   *slog.Logger
	runID    string
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier sets the progress notifier. Without one, the notifier in the
// call's context (notify.WithNotifier) is used, if any.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithRunID tags events and log records with an invocation ID.
func WithRunID(id string) Option {
	return func(s *Service) {
		s.runID = id
	}
}

// NewService creates a Service that names branches with naming.
func NewService(tickets TicketSource, naming branchname.Config, opts ...Option) *Service {
	s := &Service{
		tickets: tickets,
		namer:   branchname.NewNamer(naming),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runID != "" {
		s.logger = s.logger.With("run_id", s.runID)
	}
	return s
}

// Namer returns the branch namer.
func (s *Service) Namer() *branchname.Namer {
	return s.namer
}

// Plan validates key, fetches the ticket, and derives the branch name.
// Nothing is fetched for a malformed key.
func (s *Service) Plan(ctx context.Context, key string) (*Plan, error) {
	if err := branchname.ValidateTicketReference(key); err != nil {
		return nil, err
	}

	start := time.Now()
	ticket, err := s.tickets.FetchTicket(ctx, key)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "fetched ticket",
		"key", ticket.Key,
		"sprint", ticket.SprintName,
		"duration", time.Since(start),
	)
	s.notify(ctx, notify.Event{
		Type:    notify.EventTicketFetched,
		Ticket:  ticket.Key,
		Message: "fetched ticket: " + ticket.Summary,
	})

	plan := &Plan{
		Ticket: *ticket,
		Sprint: s.namer.Sprint(ticket.SprintName),
		Branch: s.namer.ForTicket(ticket.Key, ticket.Summary, ticket.SprintName),
	}
	s.notify(ctx, notify.Event{
		Type:    notify.EventBranchNamed,
		Ticket:  ticket.Key,
		Branch:  plan.Branch,
		Message: "branch name",
	})

	return plan, nil
}

// Create plans the branch for key and creates it in repo, or checks it out
// when it already exists and the policy allows.
//
// Errors from validation and ticket retrieval are returned unchanged. An
// existing branch that is not reused yields an error wrapping
// git.ErrBranchExists; any other git failure wraps ErrBranchCreationFailed.
func (s *Service) Create(ctx context.Context, key string, repo BranchManager, opts CreateOptions) (*Result, error) {
	plan, err := s.Plan(ctx, key)
	if err != nil {
		s.fail(ctx, key, "", err)
		return nil, err
	}

	result, err := s.apply(ctx, plan, repo, opts)
	if err != nil {
		s.fail(ctx, plan.Ticket.Key, plan.Branch, err)
		return nil, err
	}
	return result, nil
}

func (s *Service) apply(ctx context.Context, plan *Plan, repo BranchManager, opts CreateOptions) (*Result, error) {
	branch := plan.Branch
	result := &Result{Plan: *plan, DryRun: opts.DryRun}

	if err := repo.ValidBranchName(branch); err != nil {
		return nil, err
	}

	exists, err := repo.BranchExists(branch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBranchCreationFailed, err)
	}
	result.Existed = exists

	if opts.DryRun {
		s.logger.InfoContext(ctx, "dry run", "branch", branch, "exists", exists)
		return result, nil
	}

	if !exists {
		if err := repo.CreateAndCheckout(branch); err != nil {
			if errors.Is(err, git.ErrBranchExists) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", ErrBranchCreationFailed, err)
		}
		result.Created = true
		s.notify(ctx, notify.Event{
			Type:    notify.EventBranchCreated,
			Ticket:  plan.Ticket.Key,
			Branch:  branch,
			Message: "created and checked out",
		})
		return result, nil
	}

	s.notify(ctx, notify.Event{
		Type:     notify.EventBranchExists,
		Ticket:   plan.Ticket.Key,
		Branch:   branch,
		Message:  "branch already exists:",
		Severity: notify.SeverityWarning,
	})

	reuse, err := s.shouldReuse(branch, opts)
	if err != nil {
		return nil, err
	}
	if !reuse {
		return nil, fmt.Errorf("%w: %s", git.ErrBranchExists, branch)
	}

	if err := repo.Checkout(branch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBranchCreationFailed, err)
	}
	result.Reused = true
	s.notify(ctx, notify.Event{
		Type:    notify.EventBranchReused,
		Ticket:  plan.Ticket.Key,
		Branch:  branch,
		Message: "checked out existing",
	})
	return result, nil
}

func (s *Service) shouldReuse(branch string, opts CreateOptions) (bool, error) {
	switch opts.OnExists {
	case OnExistsReuse:
		return true, nil
	case OnExistsAbort:
		return false, nil
	case OnExistsPrompt, "":
		if opts.Confirm == nil {
			return false, nil
		}
		ok, err := opts.Confirm(branch)
		if err != nil {
			return false, fmt.Errorf("confirm checkout of %s: %w", branch, err)
		}
		return ok, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidOnExists, opts.OnExists)
	}
}

func (s *Service) fail(ctx context.Context, key, branch string, err error) {
	s.logger.DebugContext(ctx, "branch run failed", "key", key, "branch", branch, "error", err)
	s.notify(ctx, notify.Event{
		Type:     notify.EventRunFailed,
		Ticket:   key,
		Message:  err.Error(),
		Severity: notify.SeverityError,
	})
}

func (s *Service) notify(ctx context.Context, event notify.Event) {
	n := s.notifier
	if n == nil {
		n = notify.NotifierFromContext(ctx)
	}
	if n == nil {
		return
	}

	if event.Severity == "" {
		event.Severity = notify.SeverityInfo
	}
	event.RunID = s.runID
	event.Timestamp = time.Now()

	if err := n.Notify(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "notify failed", "type", event.Type, "error", err)
	}
}
