package ticketbranch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/ticketbranch/branchname"
	"github.com/randalmurphal/ticketbranch/git"
	"github.com/randalmurphal/ticketbranch/jira"
	"github.com/randalmurphal/ticketbranch/notify"
	"github.com/randalmurphal/ticketbranch/testutil"
)

type fakeTickets struct {
	tickets map[string]jira.Ticket
	err     error
	calls   []string
}

func (f *fakeTickets) FetchTicket(_ context.Context, key string) (*jira.Ticket, error) {
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tickets[key]
	if !ok {
		return nil, jira.ErrIssueNotFound
	}
	return &t, nil
}

type fakeRepo struct {
	branches    map[string]bool
	validErr    error
	existsErr   error
	createErr   error
	checkoutErr error

	created    []string
	checkedOut []string
}

func newFakeRepo(branches ...string) *fakeRepo {
	r := &fakeRepo{branches: map[string]bool{}}
	for _, b := range branches {
		r.branches[b] = true
	}
	return r
}

func (r *fakeRepo) ValidBranchName(name string) error {
	if r.validErr != nil {
		return r.validErr
	}
	if strings.HasSuffix(name, "/") || strings.ContainsAny(name, " ~^:?*[\\") {
		return fmt.Errorf("%w: %q", git.ErrInvalidBranchName, name)
	}
	return nil
}

func (r *fakeRepo) BranchExists(name string) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	return r.branches[name], nil
}

func (r *fakeRepo) Checkout(name string) error {
	if r.checkoutErr != nil {
		return r.checkoutErr
	}
	r.checkedOut = append(r.checkedOut, name)
	return nil
}

func (r *fakeRepo) CreateAndCheckout(name string) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.branches[name] = true
	r.created = append(r.created, name)
	return nil
}

type recordingNotifier struct {
	events []notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e notify.Event) error {
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) types() []notify.EventType {
	out := make([]notify.EventType, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}

const wantBranch = "fy25/sprint07/WAR-7974/fix-login-bug"

func testTickets() *fakeTickets {
	return &fakeTickets{tickets: map[string]jira.Ticket{
		"WAR-7974": {Key: "WAR-7974", Summary: "Fix Login Bug!", SprintName: "MAV 2025 - Sprint 7"},
		"ABC-1":    {Key: "ABC-1", Summary: "", SprintName: ""},
	}}
}

func TestService_Plan(t *testing.T) {
	svc := NewService(testTickets(), branchname.DefaultConfig())

	plan, err := svc.Plan(context.Background(), "WAR-7974")
	require.NoError(t, err)

	assert.Equal(t, wantBranch, plan.Branch)
	assert.Equal(t, "WAR-7974", plan.Ticket.Key)
	assert.Equal(t, "fy25", plan.Sprint.FiscalYear)
	assert.Equal(t, "07", plan.Sprint.SprintNumber)
}

func TestService_Plan_FallbackPrefixAndPlaceholder(t *testing.T) {
	svc := NewService(testTickets(), branchname.DefaultConfig())

	plan, err := svc.Plan(context.Background(), "ABC-1")
	require.NoError(t, err)
	assert.Equal(t, "fy25/great-merge/ABC-1/untitled", plan.Branch)
}

func TestService_Plan_InvalidKeyDoesNotFetch(t *testing.T) {
	for _, key := range []string{"", "war-7974", "WAR7974", "WAR-12a"} {
		t.Run(key, func(t *testing.T) {
			tickets := testTickets()
			svc := NewService(tickets, branchname.DefaultConfig())

			_, err := svc.Plan(context.Background(), key)
			require.ErrorIs(t, err, branchname.ErrInvalidTicketReference)
			assert.Empty(t, tickets.calls)
		})
	}
}

func TestService_Plan_FetchErrorPassesThrough(t *testing.T) {
	svc := NewService(testTickets(), branchname.DefaultConfig())

	_, err := svc.Plan(context.Background(), "NOPE-1")
	require.ErrorIs(t, err, jira.ErrIssueNotFound)

	missing := &fakeTickets{err: jira.ErrConfigurationMissing}
	svc = NewService(missing, branchname.DefaultConfig())
	_, err = svc.Plan(context.Background(), "WAR-1")
	require.ErrorIs(t, err, jira.ErrConfigurationMissing)
}

func TestService_Create_NewBranch(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewService(testTickets(), branchname.DefaultConfig(), WithNotifier(rec), WithRunID("run-1"))
	repo := newFakeRepo()

	res, err := svc.Create(testutil.TestContext(t), "WAR-7974", repo, CreateOptions{})
	require.NoError(t, err)

	assert.True(t, res.Created)
	assert.False(t, res.Existed)
	assert.False(t, res.Reused)
	assert.Equal(t, []string{wantBranch}, repo.created)
	assert.Empty(t, repo.checkedOut)

	assert.Equal(t, []notify.EventType{
		notify.EventTicketFetched,
		notify.EventBranchNamed,
		notify.EventBranchCreated,
	}, rec.types())
	for _, e := range rec.events {
		assert.Equal(t, "run-1", e.RunID)
		assert.Equal(t, "WAR-7974", e.Ticket)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestService_Create_ExistingBranch(t *testing.T) {
	tests := []struct {
		name       string
		opts       CreateOptions
		wantReused bool
		wantErr    error
	}{
		{
			name:       "reuse",
			opts:       CreateOptions{OnExists: OnExistsReuse},
			wantReused: true,
		},
		{
			name:    "abort",
			opts:    CreateOptions{OnExists: OnExistsAbort},
			wantErr: git.ErrBranchExists,
		},
		{
			name:    "prompt without confirm aborts",
			opts:    CreateOptions{OnExists: OnExistsPrompt},
			wantErr: git.ErrBranchExists,
		},
		{
			name: "prompt accepted",
			opts: CreateOptions{
				OnExists: OnExistsPrompt,
				Confirm:  func(string) (bool, error) { return true, nil },
			},
			wantReused: true,
		},
		{
			name: "prompt declined",
			opts: CreateOptions{
				Confirm: func(string) (bool, error) { return false, nil },
			},
			wantErr: git.ErrBranchExists,
		},
		{
			name:    "unknown policy",
			opts:    CreateOptions{OnExists: "merge"},
			wantErr: ErrInvalidOnExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(testTickets(), branchname.DefaultConfig())
			repo := newFakeRepo(wantBranch)

			res, err := svc.Create(context.Background(), "WAR-7974", repo, tt.opts)
			assert.Empty(t, repo.created)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
				assert.Empty(t, repo.checkedOut)
				return
			}

			require.NoError(t, err)
			assert.True(t, res.Existed)
			assert.Equal(t, tt.wantReused, res.Reused)
			assert.False(t, res.Created)
			assert.Equal(t, []string{wantBranch}, repo.checkedOut)
		})
	}
}

func TestService_Create_ConfirmReceivesBranch(t *testing.T) {
	svc := NewService(testTickets(), branchname.DefaultConfig())
	repo := newFakeRepo(wantBranch)

	var asked string
	_, err := svc.Create(context.Background(), "WAR-7974", repo, CreateOptions{
		Confirm: func(b string) (bool, error) {
			asked = b
			return true, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, wantBranch, asked)
}

func TestService_Create_ConfirmError(t *testing.T) {
	svc := NewService(testTickets(), branchname.DefaultConfig())
	repo := newFakeRepo(wantBranch)
	boom := errors.New("no input")

	_, err := svc.Create(context.Background(), "WAR-7974", repo, CreateOptions{
		Confirm: func(string) (bool, error) { return false, boom },
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, repo.checkedOut)
}

func TestService_Create_DryRun(t *testing.T) {
	for _, existing := range []bool{false, true} {
		repo := newFakeRepo()
		if existing {
			repo = newFakeRepo(wantBranch)
		}
		svc := NewService(testTickets(), branchname.DefaultConfig())

		res, err := svc.Create(context.Background(), "WAR-7974", repo, CreateOptions{DryRun: true})
		require.NoError(t, err)

		assert.True(t, res.DryRun)
		assert.Equal(t, existing, res.Existed)
		assert.False(t, res.Created)
		assert.False(t, res.Reused)
		assert.Empty(t, repo.created)
		assert.Empty(t, repo.checkedOut)
	}
}

func TestService_Create_GitFailures(t *testing.T) {
	gitErr := &git.Error{Op: "checkout", Err: errors.New("exit status 128")}

	t.Run("exists check fails", func(t *testing.T) {
		repo := newFakeRepo()
		repo.existsErr = gitErr
		svc := NewService(testTickets(), branchname.DefaultConfig())

		_, err := svc.Create(context.Background(), "WAR-7974", repo, CreateOptions{})
		require.ErrorIs(t, err, ErrBranchCreationFailed)
		assert.Empty(t, repo.created)
	})

	t.Run("create fails", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = gitErr
		svc := NewService(testTickets(), branchname.DefaultConfig())

		_, err := svc.Create(context.Background(), "WAR-7974", repo, CreateOptions{})
		require.ErrorIs(t, err, ErrBranchCreationFailed)
		var ge *git.Error
		assert.ErrorAs(t, err, &ge)
	})

	t.Run("created concurrently", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = git.ErrBranchExists
		svc := NewService(testTickets(), branchname.DefaultConfig())

		_, err := svc.Create(context.Background(), "WAR-7974", repo, CreateOptions{})
		require.ErrorIs(t, err, git.ErrBranchExists)
		assert.NotErrorIs(t, err, ErrBranchCreationFailed)
	})

	t.Run("checkout of existing fails", func(t *testing.T) {
		repo := newFakeRepo(wantBranch)
		repo.checkoutErr = gitErr
		svc := NewService(testTickets(), branchname.DefaultConfig())

		_, err := svc.Create(context.Background(), "WAR-7974", repo, CreateOptions{OnExists: OnExistsReuse})
		require.ErrorIs(t, err, ErrBranchCreationFailed)
	})
}

func TestService_Create_FailureEmitsRunFailed(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewService(testTickets(), branchname.DefaultConfig(), WithNotifier(rec))

	_, err := svc.Create(context.Background(), "bad", newFakeRepo(), CreateOptions{})
	require.Error(t, err)

	require.Len(t, rec.events, 1)
	assert.Equal(t, notify.EventRunFailed, rec.events[0].Type)
	assert.Equal(t, notify.SeverityError, rec.events[0].Severity)
	assert.Contains(t, rec.events[0].Message, "invalid ticket format")
}

func TestService_Create_ExistingEmitsWarning(t *testing.T) {
	rec := &recordingNotifier{}
	svc := NewService(testTickets(), branchname.DefaultConfig(), WithNotifier(rec))

	_, err := svc.Create(context.Background(), "WAR-7974", newFakeRepo(wantBranch), CreateOptions{OnExists: OnExistsReuse})
	require.NoError(t, err)

	assert.Equal(t, []notify.EventType{
		notify.EventTicketFetched,
		notify.EventBranchNamed,
		notify.EventBranchExists,
		notify.EventBranchReused,
	}, rec.types())
	assert.Equal(t, notify.SeverityWarning, rec.events[2].Severity)
	assert.Equal(t, wantBranch, rec.events[2].Branch)
}

func TestService_NotifierFromContext(t *testing.T) {
	rec := &recordingNotifier{}
	ctx := notify.WithNotifier(context.Background(), rec)
	svc := NewService(testTickets(), branchname.DefaultConfig())

	_, err := svc.Plan(ctx, "WAR-7974")
	require.NoError(t, err)
	assert.Len(t, rec.events, 2)
}

func TestService_Create_RejectsInvalidBranchName(t *testing.T) {
	naming := branchname.DefaultConfig()
	naming.Placeholder = ""
	rec := &recordingNotifier{}
	svc := NewService(testTickets(), naming, WithNotifier(rec))
	repo := newFakeRepo()

	_, err := svc.Create(context.Background(), "ABC-1", repo, CreateOptions{OnExists: OnExistsReuse})
	require.ErrorIs(t, err, git.ErrInvalidBranchName)
	assert.NotErrorIs(t, err, ErrBranchCreationFailed)
	assert.Empty(t, repo.created)
	assert.Equal(t, notify.EventRunFailed, rec.events[len(rec.events)-1].Type)
}

func TestService_Create_ValidatesWithRealGit(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	naming := branchname.DefaultConfig()
	naming.Placeholder = ""
	repo, err := git.NewContext(dir)
	require.NoError(t, err)

	_, err = NewService(testTickets(), naming).Create(context.Background(), "ABC-1", repo, CreateOptions{})
	require.ErrorIs(t, err, git.ErrInvalidBranchName)
	assert.False(t, testutil.BranchExists(t, dir, "fy25/great-merge/ABC-1/"))

	res, err := NewService(testTickets(), branchname.DefaultConfig()).
		Create(context.Background(), "ABC-1", repo, CreateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "fy25/great-merge/ABC-1/untitled", testutil.GetCurrentBranch(t, dir))
	assert.True(t, res.Created)
}
