package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
)

// List prints the cached request list as a table. The leading index is what
// the open/sel commands accept as a shorthand for the identifier.
func (a *App) List(ctx context.Context) error {
	items := a.coordinator.Requests()
	if len(items) == 0 {
		printlnFn("No requests. Use 'create' to start a draft or 'refresh' to reload.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSel\tState\tSubject\tCreated\tFiles\tRecipients\tID")
	for i, r := range items {
		sel := " "
		if a.coordinator.IsSelected(r.Identifier) {
			sel = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			i+1, sel, r.State(), r.Name, r.DateCreated.Format("2006-01-02 15:04"),
			len(r.Files), len(r.Recipients), r.Identifier)
	}
	return w.Flush()
}

// Refresh reloads the list from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.coordinator.RefreshList(ctx); err != nil {
		reportError(err)
		return err
	}
	printlnFn(fmt.Sprintf("List refreshed, %d request(s).", len(a.coordinator.Requests())))
	return nil
}

// Select toggles the selection state of a single request.
func (a *App) Select(ctx context.Context, arg string) error {
	id, err := a.resolveArg(arg)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if a.findInList(id) == nil {
		printlnFn("Request is not in the current list; 'refresh' first.")
		return nil
	}
	if a.coordinator.Toggle(id) {
		printlnFn("Selected", id)
	} else {
		printlnFn("Deselected", id)
	}
	return nil
}

// SelectAll selects every request in the list.
func (a *App) SelectAll(ctx context.Context) error {
	a.coordinator.SelectAll()
	printlnFn(fmt.Sprintf("%d request(s) selected.", len(a.coordinator.Selected())))
	return nil
}

// DeselectAll clears the selection.
func (a *App) DeselectAll(ctx context.Context) error {
	a.coordinator.DeselectAll()
	printlnFn("Selection cleared.")
	return nil
}

// resolveArg turns a list index (1-based, as printed by List) or a raw
// identifier into an identifier.
func (a *App) resolveArg(arg string) (string, error) {
	items := a.coordinator.Requests()
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(items) {
			return "", fmt.Errorf("no request at position %d", n)
		}
		return items[n-1].Identifier, nil
	}
	for _, r := range items {
		if r.Identifier == arg {
			return arg, nil
		}
	}
	// Not in the cached list; let the server decide whether it exists.
	return arg, nil
}

// findInList returns the cached list entry for id, if any.
func (a *App) findInList(id string) *models.DispatchRequest {
	for _, r := range a.coordinator.Requests() {
		if r.Identifier == id {
			cp := r
			return &cp
		}
	}
	return nil
}
