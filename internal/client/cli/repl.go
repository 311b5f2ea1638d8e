package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Show(ctx context.Context) error
	Create(ctx context.Context) error
	EditSender(ctx context.Context) error
	AddRecipient(ctx context.Context) error
	EditRecipient(ctx context.Context, id string) error
	RemoveRecipient(ctx context.Context, id string) error
	AddFile(ctx context.Context, path string) error
	RemoveFile(ctx context.Context, id string) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context) error
	Select(ctx context.Context, arg string) error
	SelectAll(ctx context.Context) error
	DeselectAll(ctx context.Context) error
	BulkSubmit(ctx context.Context) error
	BulkDelete(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist, refresh            show / reload the request list
  open <n|id>, show          open a request, print the open request
  create                     create a new draft
  sender                     edit the sender block of the open draft
  addrecip                   add a recipient to the open draft
  editrecip <id>, delrecip <id>  edit or remove a recipient
  addfile <path>, delfile <id>  manage attachments of the open draft
  submit, delete             finalize or remove the open draft
  sel <n|id>, selall, deselall  manage the selection
  bulksubmit, bulkdelete     best-effort bulk actions on the selection
  exit | quit                leave the program`

// runREPL starts a simple read-eval-print loop. It reads a line, parses the
// first token as the command, and dispatches to methods on a. Errors
// returned by command handlers are ignored here; handlers report their own
// outcome. The loop exits on scanner EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dispatch %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <n|id>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "show":
			_ = a.Show(ctx)

		case "create":
			_ = a.Create(ctx)

		case "sender":
			_ = a.EditSender(ctx)

		case "addrecip":
			_ = a.AddRecipient(ctx)

		case "editrecip":
			if len(args) == 0 {
				printlnFn("Usage: editrecip <id>")
				continue
			}
			_ = a.EditRecipient(ctx, args[0])

		case "delrecip":
			if len(args) == 0 {
				printlnFn("Usage: delrecip <id>")
				continue
			}
			_ = a.RemoveRecipient(ctx, args[0])

		case "addfile":
			if len(args) == 0 {
				printlnFn("Usage: addfile <path>")
				continue
			}
			_ = a.AddFile(ctx, args[0])

		case "delfile":
			if len(args) == 0 {
				printlnFn("Usage: delfile <id>")
				continue
			}
			_ = a.RemoveFile(ctx, args[0])

		case "submit":
			_ = a.Submit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "sel":
			if len(args) == 0 {
				printlnFn("Usage: sel <n|id>")
				continue
			}
			_ = a.Select(ctx, args[0])

		case "selall":
			_ = a.SelectAll(ctx)

		case "deselall":
			_ = a.DeselectAll(ctx)

		case "bulksubmit":
			_ = a.BulkSubmit(ctx)

		case "bulkdelete":
			_ = a.BulkDelete(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
