// Package coordinator owns the locally cached request list and the selection
// used for bulk actions. The presentation layer is a read-only subscriber;
// nothing else mutates this state.
package coordinator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/requests"
)

// EventKind names a state-change notification.
type EventKind string

const (
	EventListRefreshed    EventKind = "list_refreshed"
	EventSelectionChanged EventKind = "selection_changed"
)

// Event is delivered to subscribers after a state change.
type Event struct {
	Kind EventKind
}

// BulkResult reports the outcome of a best-effort bulk action.
type BulkResult struct {
	Succeeded int
	Failed    int
	// Errors maps request identifiers to their individual failures.
	Errors map[string]error
	// RefreshErr holds the failure of the trailing list refresh, if any.
	// It is kept apart from Errors, which is keyed by request identifier.
	RefreshErr error
}

// Lifecycle is the subset of the lifecycle manager the coordinator drives
// during bulk actions.
type Lifecycle interface {
	Submit(ctx context.Context, id string) (*models.DispatchRequest, error)
	Delete(ctx context.Context, id string) error
}

// Coordinator reconciles the cached list against server truth and keeps the
// selection consistent with it.
type Coordinator struct {
	requests  requests.Repository
	lifecycle Lifecycle

	mu          sync.Mutex
	list        []models.DispatchRequest
	selection   map[string]struct{}
	subscribers []func(Event)
}

func New(rq requests.Repository, lc Lifecycle) *Coordinator {
	return &Coordinator{
		requests:  rq,
		lifecycle: lc,
		selection: make(map[string]struct{}),
	}
}

// Subscribe registers a state-change callback. Callbacks run synchronously on
// the goroutine performing the change and must not call back into the
// coordinator.
func (c *Coordinator) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// RefreshList replaces the cached list wholesale with server truth, sorted by
// dateCreated descending (stable, so equal timestamps keep server order).
// Selections referencing requests that no longer exist are dropped silently.
// On failure the previous list stays intact.
func (c *Coordinator) RefreshList(ctx context.Context) error {

	items, err := c.requests.List(ctx)
	if err != nil {
		return fmt.Errorf("error refreshing list: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DateCreated.After(items[j].DateCreated)
	})

	c.mu.Lock()
	c.list = items
	known := make(map[string]struct{}, len(items))
	for _, r := range items {
		known[r.Identifier] = struct{}{}
	}
	for id := range c.selection {
		if _, ok := known[id]; !ok {
			delete(c.selection, id)
		}
	}
	c.mu.Unlock()

	c.notify(Event{Kind: EventListRefreshed})
	return nil
}

// Requests returns a copy of the cached list.
func (c *Coordinator) Requests() []models.DispatchRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.DispatchRequest, len(c.list))
	copy(out, c.list)
	return out
}

// Selected returns the selected identifiers in current list order.
func (c *Coordinator) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.selection))
	for _, r := range c.list {
		if _, ok := c.selection[r.Identifier]; ok {
			out = append(out, r.Identifier)
		}
	}
	return out
}

// IsSelected reports whether id is part of the current selection.
func (c *Coordinator) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.selection[id]
	return ok
}

// SelectAll selects every request currently in the list.
func (c *Coordinator) SelectAll() {
	c.mu.Lock()
	for _, r := range c.list {
		c.selection[r.Identifier] = struct{}{}
	}
	c.mu.Unlock()
	c.notify(Event{Kind: EventSelectionChanged})
}

// DeselectAll clears the selection.
func (c *Coordinator) DeselectAll() {
	c.mu.Lock()
	c.selection = make(map[string]struct{})
	c.mu.Unlock()
	c.notify(Event{Kind: EventSelectionChanged})
}

// Toggle flips the selection state of id. Identifiers not present in the
// cached list are ignored; the selection is always a subset of the list.
func (c *Coordinator) Toggle(id string) bool {
	c.mu.Lock()
	inList := false
	for _, r := range c.list {
		if r.Identifier == id {
			inList = true
			break
		}
	}
	if !inList {
		c.mu.Unlock()
		return false
	}
	var selected bool
	if _, ok := c.selection[id]; ok {
		delete(c.selection, id)
	} else {
		c.selection[id] = struct{}{}
		selected = true
	}
	c.mu.Unlock()
	c.notify(Event{Kind: EventSelectionChanged})
	return selected
}

// BulkSubmit submits every selected request, best effort: one failure does
// not block the others. The list is refreshed once at the end regardless of
// per-item outcomes.
func (c *Coordinator) BulkSubmit(ctx context.Context) BulkResult {
	return c.bulk(ctx, func(id string) error {
		_, err := c.lifecycle.Submit(ctx, id)
		return err
	})
}

// BulkDelete deletes every selected request, best effort.
func (c *Coordinator) BulkDelete(ctx context.Context) BulkResult {
	return c.bulk(ctx, func(id string) error {
		return c.lifecycle.Delete(ctx, id)
	})
}

func (c *Coordinator) bulk(ctx context.Context, op func(string) error) BulkResult {

	result := BulkResult{Errors: make(map[string]error)}

	for _, id := range c.Selected() {
		if err := op(id); err != nil {
			result.Failed++
			result.Errors[id] = err
			continue
		}
		result.Succeeded++
	}

	// Refresh regardless: partial outcomes must be reconciled with server
	// truth, and stale selections pruned.
	result.RefreshErr = c.RefreshList(ctx)

	return result
}

func (c *Coordinator) notify(e Event) {
	c.mu.Lock()
	subs := make([]func(Event), len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
