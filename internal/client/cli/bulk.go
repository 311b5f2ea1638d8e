package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/paperdispatch/paperdispatch/internal/client/coordinator"
)

// BulkSubmit submits every selected request, best effort.
func (a *App) BulkSubmit(ctx context.Context) error {
	n := len(a.coordinator.Selected())
	if n == 0 {
		printlnFn("Nothing selected. Use 'sel <n|id>' or 'selall' first.")
		return nil
	}

	ok, err := a.GetYesNo(os.Stdout, fmt.Sprintf("Submit %d selected request(s)?", n))
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	reportBulk("Submitted", a.coordinator.BulkSubmit(ctx))
	return nil
}

// BulkDelete deletes every selected request, best effort.
func (a *App) BulkDelete(ctx context.Context) error {
	n := len(a.coordinator.Selected())
	if n == 0 {
		printlnFn("Nothing selected. Use 'sel <n|id>' or 'selall' first.")
		return nil
	}

	ok, err := a.GetYesNo(os.Stdout, fmt.Sprintf("Delete %d selected request(s)?", n))
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	reportBulk("Deleted", a.coordinator.BulkDelete(ctx))
	return nil
}

func reportBulk(verb string, res coordinator.BulkResult) {
	printlnFn(fmt.Sprintf("%s %d request(s), %d failed.", verb, res.Succeeded, res.Failed))
	for id, err := range res.Errors {
		printlnFn(fmt.Sprintf("  %s: %v", id, err))
	}
	if res.RefreshErr != nil {
		printlnFn("The list could not be reloaded afterwards; 'refresh' to retry.")
	}
}
