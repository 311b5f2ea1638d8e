package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

// ---- fakes ----

type fakeRequestRepo struct {
	items   []models.DispatchRequest
	listErr error

	listCalls int
}

func (f *fakeRequestRepo) List(ctx context.Context) ([]models.DispatchRequest, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.DispatchRequest, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeRequestRepo) Get(ctx context.Context, id string) (*models.DispatchRequest, error) {
	for _, r := range f.items {
		if r.Identifier == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeRequestRepo) Create(ctx context.Context, name string, sender models.SenderInfo) (*models.DispatchRequest, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRequestRepo) UpdateSender(ctx context.Context, id string, sender models.SenderInfo) (*models.DispatchRequest, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f *fakeRequestRepo) Submit(ctx context.Context, id string) (*models.DispatchRequest, error) {
	return nil, errors.New("not implemented")
}

type fakeLifecycle struct {
	submitErrs map[string]error
	deleteErrs map[string]error

	submitted []string
	deleted   []string
}

func (f *fakeLifecycle) Submit(ctx context.Context, id string) (*models.DispatchRequest, error) {
	if err := f.submitErrs[id]; err != nil {
		return nil, err
	}
	f.submitted = append(f.submitted, id)
	return &models.DispatchRequest{Identifier: id}, nil
}

func (f *fakeLifecycle) Delete(ctx context.Context, id string) error {
	if err := f.deleteErrs[id]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// ---- helpers ----

func reqAt(id string, created time.Time) models.DispatchRequest {
	return models.DispatchRequest{Identifier: id, Name: "r-" + id, DateCreated: created}
}

// ---- tests ----

func TestRefreshList_SortsNewestFirstStable(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRequestRepo{items: []models.DispatchRequest{
		reqAt("a", base),
		reqAt("b", base.Add(time.Hour)),
		// Equal timestamps keep server order.
		reqAt("c", base.Add(2*time.Hour)),
		reqAt("d", base.Add(2*time.Hour)),
	}}
	c := New(repo, &fakeLifecycle{})

	require.NoError(t, c.RefreshList(context.Background()))

	got := c.Requests()
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.Identifier
	}
	require.Equal(t, []string{"c", "d", "b", "a"}, ids)
}

func TestRefreshList_FailureKeepsPreviousList(t *testing.T) {
	repo := &fakeRequestRepo{items: []models.DispatchRequest{reqAt("a", time.Now())}}
	c := New(repo, &fakeLifecycle{})
	require.NoError(t, c.RefreshList(context.Background()))

	repo.listErr = common.ErrUnavailable
	err := c.RefreshList(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
	require.Len(t, c.Requests(), 1)
}

func TestRefreshList_PrunesVanishedSelections(t *testing.T) {
	now := time.Now()
	repo := &fakeRequestRepo{items: []models.DispatchRequest{
		reqAt("a", now), reqAt("b", now.Add(time.Minute)),
	}}
	c := New(repo, &fakeLifecycle{})
	require.NoError(t, c.RefreshList(context.Background()))

	c.Toggle("a")
	c.Toggle("b")
	require.Len(t, c.Selected(), 2)

	// "a" disappears server-side (deleted in another session).
	repo.items = repo.items[1:]
	require.NoError(t, c.RefreshList(context.Background()))

	require.Equal(t, []string{"b"}, c.Selected())
	require.False(t, c.IsSelected("a"))
}

func TestToggle_UnknownIDIgnored(t *testing.T) {
	repo := &fakeRequestRepo{items: []models.DispatchRequest{reqAt("a", time.Now())}}
	c := New(repo, &fakeLifecycle{})
	require.NoError(t, c.RefreshList(context.Background()))

	require.False(t, c.Toggle("ghost"))
	require.Empty(t, c.Selected())
}

func TestSelectAllAndDeselectAll(t *testing.T) {
	now := time.Now()
	repo := &fakeRequestRepo{items: []models.DispatchRequest{
		reqAt("a", now), reqAt("b", now), reqAt("c", now),
	}}
	c := New(repo, &fakeLifecycle{})
	require.NoError(t, c.RefreshList(context.Background()))

	c.SelectAll()
	require.Len(t, c.Selected(), 3)

	c.DeselectAll()
	require.Empty(t, c.Selected())
}

func TestSelected_ReturnsListOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRequestRepo{items: []models.DispatchRequest{
		reqAt("old", base),
		reqAt("new", base.Add(time.Hour)),
	}}
	c := New(repo, &fakeLifecycle{})
	require.NoError(t, c.RefreshList(context.Background()))

	c.Toggle("old")
	c.Toggle("new")
	require.Equal(t, []string{"new", "old"}, c.Selected())
}

func TestBulkSubmit_BestEffort(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRequestRepo{items: []models.DispatchRequest{
		reqAt("a", base.Add(2*time.Hour)),
		reqAt("b", base.Add(time.Hour)),
		reqAt("c", base),
	}}
	lc := &fakeLifecycle{submitErrs: map[string]error{"b": common.ErrAlreadySubmitted}}
	c := New(repo, lc)
	require.NoError(t, c.RefreshList(context.Background()))
	c.SelectAll()

	listCallsBefore := repo.listCalls
	res := c.BulkSubmit(context.Background())

	require.Equal(t, 2, res.Succeeded)
	require.Equal(t, 1, res.Failed)
	require.ErrorIs(t, res.Errors["b"], common.ErrAlreadySubmitted)
	require.Equal(t, []string{"a", "c"}, lc.submitted)
	// One refresh at the end regardless of partial failure.
	require.Equal(t, listCallsBefore+1, repo.listCalls)
}

func TestBulkDelete_RefreshEvenWhenAllFail(t *testing.T) {
	repo := &fakeRequestRepo{items: []models.DispatchRequest{reqAt("a", time.Now())}}
	lc := &fakeLifecycle{deleteErrs: map[string]error{"a": common.ErrDeleteNotAllowed}}
	c := New(repo, lc)
	require.NoError(t, c.RefreshList(context.Background()))
	c.SelectAll()

	listCallsBefore := repo.listCalls
	res := c.BulkDelete(context.Background())

	require.Equal(t, 0, res.Succeeded)
	require.Equal(t, 1, res.Failed)
	require.Equal(t, listCallsBefore+1, repo.listCalls)
}

func TestBulk_TrailingRefreshFailureReportedSeparately(t *testing.T) {
	// An identifier named "refresh" must not be confused with the
	// trailing list reload.
	repo := &fakeRequestRepo{items: []models.DispatchRequest{reqAt("refresh", time.Now())}}
	lc := &fakeLifecycle{}
	c := New(repo, lc)
	require.NoError(t, c.RefreshList(context.Background()))
	c.SelectAll()

	repo.listErr = common.ErrUnavailable
	res := c.BulkSubmit(context.Background())

	require.Equal(t, 1, res.Succeeded)
	require.Equal(t, 0, res.Failed)
	require.Empty(t, res.Errors)
	require.ErrorIs(t, res.RefreshErr, common.ErrUnavailable)
}

func TestSubscribe_Notified(t *testing.T) {
	repo := &fakeRequestRepo{items: []models.DispatchRequest{reqAt("a", time.Now())}}
	c := New(repo, &fakeLifecycle{})

	var events []EventKind
	c.Subscribe(func(e Event) { events = append(events, e.Kind) })

	require.NoError(t, c.RefreshList(context.Background()))
	c.Toggle("a")

	require.Equal(t, []EventKind{EventListRefreshed, EventSelectionChanged}, events)
}
