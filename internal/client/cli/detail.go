package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

// reportError translates the error taxonomy into user-facing messages.
// Precondition failures are warnings: the operation was never sent.
func reportError(err error) {
	switch {
	case errors.Is(err, common.ErrPreconditionFailed):
		printlnFn("Warning:", err.Error())
	case errors.Is(err, common.ErrPermissionDenied):
		printlnFn("The server rejected the operation (permission denied).")
	case errors.Is(err, common.ErrNotFound):
		printlnFn("Not found. The request may have been removed in another session; 'refresh' to reload.")
	case errors.Is(err, common.ErrUnavailable):
		printlnFn("The server is unreachable. Check the connection and try again.")
	case errors.Is(err, common.ErrParse):
		printlnFn("The server response could not be read.")
	default:
		printlnFn("Error:", err.Error())
	}
}

// Open loads a request by list index or identifier and makes it current.
func (a *App) Open(ctx context.Context, arg string) error {
	id, err := a.resolveArg(arg)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	req, err := a.lifecycle.Open(ctx, id)
	if err != nil {
		reportError(err)
		return err
	}
	a.printRequest(req)
	return nil
}

// Show prints the currently open request.
func (a *App) Show(ctx context.Context) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}
	a.printRequest(req)
	return nil
}

// Create starts a new draft. The subject is prompted for; the sender block is
// prefilled from the configured organization when one is set.
func (a *App) Create(ctx context.Context) error {
	name, err := a.GetSimpleText(os.Stdout, "Subject", "")
	if err != nil {
		return err
	}

	req, err := a.lifecycle.CreateDraft(ctx, name)
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn("Draft created:", req.Identifier)
	a.printRequest(req)
	return a.coordinator.RefreshList(ctx)
}

// EditSender prompts for the sender block of the open draft and saves it.
// Current values are offered as defaults.
func (a *App) EditSender(ctx context.Context) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	sender := req.SenderInfo
	prompts := []struct {
		label string
		field *string
	}{
		{"Organization name", &sender.OrganizationName},
		{"Full name", &sender.FullName},
		{"Country", &sender.AddressCountry},
		{"Postal code", &sender.PostalCode},
		{"Locality", &sender.AddressLocality},
		{"Street", &sender.StreetAddress},
		{"Building number", &sender.BuildingNumber},
	}
	for _, p := range prompts {
		v, err := a.GetSimpleText(os.Stdout, p.label, *p.field)
		if err != nil {
			return err
		}
		*p.field = v
	}

	updated, err := a.lifecycle.EditSender(ctx, req.Identifier, sender)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn("Sender updated.")
	a.printRequest(updated)
	return nil
}

// AddRecipient prompts for a manually entered recipient and attaches it to
// the open draft.
func (a *App) AddRecipient(ctx context.Context) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	var r models.Recipient
	prompts := []struct {
		label string
		field *string
	}{
		{"Given name", &r.GivenName},
		{"Family name", &r.FamilyName},
		{"Country", &r.AddressCountry},
		{"Postal code", &r.PostalCode},
		{"Locality", &r.AddressLocality},
		{"Street", &r.StreetAddress},
		{"Building number", &r.BuildingNumber},
	}
	for _, p := range prompts {
		v, err := a.GetSimpleText(os.Stdout, p.label, "")
		if err != nil {
			return err
		}
		*p.field = v
	}

	updated, err := a.lifecycle.AddRecipient(ctx, req.Identifier, r)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn("Recipient added.")
	a.printRequest(updated)
	return nil
}

// EditRecipient prompts for new values of a manually entered recipient.
// Current values are offered as defaults.
func (a *App) EditRecipient(ctx context.Context, recipientID string) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	var r models.Recipient
	found := false
	for _, cur := range req.Recipients {
		if cur.Identifier == recipientID {
			r = cur
			found = true
			break
		}
	}
	if !found {
		printlnFn("No such recipient on the open request:", recipientID)
		return nil
	}
	if r.PersonLinked() {
		printlnFn("Warning: this recipient is linked to a person record and cannot be edited.")
		return nil
	}

	prompts := []struct {
		label string
		field *string
	}{
		{"Given name", &r.GivenName},
		{"Family name", &r.FamilyName},
		{"Country", &r.AddressCountry},
		{"Postal code", &r.PostalCode},
		{"Locality", &r.AddressLocality},
		{"Street", &r.StreetAddress},
		{"Building number", &r.BuildingNumber},
	}
	for _, p := range prompts {
		v, err := a.GetSimpleText(os.Stdout, p.label, *p.field)
		if err != nil {
			return err
		}
		*p.field = v
	}

	updated, err := a.lifecycle.UpdateRecipient(ctx, req.Identifier, recipientID, r)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn("Recipient updated.")
	a.printRequest(updated)
	return nil
}

// RemoveRecipient detaches a recipient from the open draft.
func (a *App) RemoveRecipient(ctx context.Context, recipientID string) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	updated, err := a.lifecycle.RemoveRecipient(ctx, req.Identifier, recipientID)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn("Recipient removed.")
	a.printRequest(updated)
	return nil
}

// AddFile uploads a local file as an attachment of the open draft.
func (a *App) AddFile(ctx context.Context, path string) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}
	defer f.Close()

	updated, err := a.lifecycle.AddFile(ctx, req.Identifier, filepath.Base(path), f)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn("File attached.")
	a.printRequest(updated)
	return nil
}

// RemoveFile detaches an attachment from the open draft.
func (a *App) RemoveFile(ctx context.Context, fileID string) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	updated, err := a.lifecycle.RemoveFile(ctx, req.Identifier, fileID)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn("File removed.")
	a.printRequest(updated)
	return nil
}

// Submit finalizes the open draft after an explicit confirmation.
func (a *App) Submit(ctx context.Context) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	ok, err := a.GetYesNo(os.Stdout, fmt.Sprintf("Submit %q? Submitted requests cannot be changed", req.Name))
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Submission cancelled.")
		return nil
	}

	submitted, err := a.lifecycle.Submit(ctx, req.Identifier)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn("Request submitted.")
	a.printRequest(submitted)
	return a.coordinator.RefreshList(ctx)
}

// Delete removes the open draft after an explicit confirmation.
func (a *App) Delete(ctx context.Context) error {
	req := a.lifecycle.Current()
	if req == nil {
		printlnFn("No request is open. Use 'open <n|id>' first.")
		return nil
	}

	ok, err := a.GetYesNo(os.Stdout, fmt.Sprintf("Delete %q?", req.Name))
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Deletion cancelled.")
		return nil
	}

	if err := a.lifecycle.Delete(ctx, req.Identifier); err != nil {
		reportError(err)
		return err
	}
	printlnFn("Request deleted.")
	return a.coordinator.RefreshList(ctx)
}

func (a *App) printRequest(req *models.DispatchRequest) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Subject:\t%s\n", req.Name)
	fmt.Fprintf(w, "State:\t%s\n", req.State())
	fmt.Fprintf(w, "Created:\t%s\n", req.DateCreated.Format("2006-01-02 15:04"))
	if req.DateSubmitted != nil {
		fmt.Fprintf(w, "Submitted:\t%s\n", req.DateSubmitted.Format("2006-01-02 15:04"))
	}

	senderName := req.OrganizationName
	if senderName == "" {
		senderName = req.FullName
	}
	fmt.Fprintf(w, "Sender:\t%s, %s %s %s, %s %s\n",
		senderName, req.StreetAddress, req.BuildingNumber, req.AddressLocality,
		req.PostalCode, req.AddressCountry)

	fmt.Fprintf(w, "Recipients:\t%d\n", len(req.Recipients))
	for _, r := range req.Recipients {
		kind := "manual"
		if r.PersonLinked() {
			kind = "person"
		}
		fmt.Fprintf(w, "\t[%s] %s %s, %s %s (%s)\n",
			kind, r.GivenName, r.FamilyName, r.AddressLocality, r.PostalCode, r.Identifier)
	}

	fmt.Fprintf(w, "Files:\t%d\n", len(req.Files))
	for _, f := range req.Files {
		fmt.Fprintf(w, "\t%s (%d bytes, %s)\n", f.Name, f.ContentSize, f.Identifier)
	}

	w.Flush()
}
