package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// execStub records which commands the REPL dispatched.
type execStub struct {
	calls []string
}

func (e *execStub) record(name string, args ...string) {
	e.calls = append(e.calls, strings.Join(append([]string{name}, args...), " "))
}

func (e *execStub) List(ctx context.Context) error    { e.record("list"); return nil }
func (e *execStub) Refresh(ctx context.Context) error { e.record("refresh"); return nil }
func (e *execStub) Open(ctx context.Context, arg string) error {
	e.record("open", arg)
	return nil
}
func (e *execStub) Show(ctx context.Context) error         { e.record("show"); return nil }
func (e *execStub) Create(ctx context.Context) error       { e.record("create"); return nil }
func (e *execStub) EditSender(ctx context.Context) error   { e.record("sender"); return nil }
func (e *execStub) AddRecipient(ctx context.Context) error { e.record("addrecip"); return nil }
func (e *execStub) EditRecipient(ctx context.Context, id string) error {
	e.record("editrecip", id)
	return nil
}
func (e *execStub) RemoveRecipient(ctx context.Context, id string) error {
	e.record("delrecip", id)
	return nil
}
func (e *execStub) AddFile(ctx context.Context, path string) error {
	e.record("addfile", path)
	return nil
}
func (e *execStub) RemoveFile(ctx context.Context, id string) error {
	e.record("delfile", id)
	return nil
}
func (e *execStub) Submit(ctx context.Context) error { e.record("submit"); return nil }
func (e *execStub) Delete(ctx context.Context) error { e.record("delete"); return nil }
func (e *execStub) Select(ctx context.Context, arg string) error {
	e.record("sel", arg)
	return nil
}
func (e *execStub) SelectAll(ctx context.Context) error   { e.record("selall"); return nil }
func (e *execStub) DeselectAll(ctx context.Context) error { e.record("deselall"); return nil }
func (e *execStub) BulkSubmit(ctx context.Context) error  { e.record("bulksubmit"); return nil }
func (e *execStub) BulkDelete(ctx context.Context) error  { e.record("bulkdelete"); return nil }

func runScript(t *testing.T, script string) (*execStub, []string) {
	t.Helper()

	var printed []string
	origPrintln := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrintln })

	stub := &execStub{}
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "(online)" }, scanner)
	return stub, printed
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub, _ := runScript(t, strings.Join([]string{
		"list",
		"open 2",
		"show",
		"addfile /tmp/doc.pdf",
		"editrecip rec-1",
		"delrecip rec-1",
		"sel 1",
		"selall",
		"bulksubmit",
		"exit",
	}, "\n"))

	require.Equal(t, []string{
		"list",
		"open 2",
		"show",
		"addfile /tmp/doc.pdf",
		"editrecip rec-1",
		"delrecip rec-1",
		"sel 1",
		"selall",
		"bulksubmit",
	}, stub.calls)
}

func TestREPL_ShortAlias(t *testing.T) {
	stub, _ := runScript(t, "l\nquit")
	require.Equal(t, []string{"list"}, stub.calls)
}

func TestREPL_MissingArgumentPrintsUsage(t *testing.T) {
	stub, printed := runScript(t, "open\nexit")
	require.Empty(t, stub.calls)
	require.Contains(t, printed, "Usage: open <n|id>")
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub, printed := runScript(t, "frobnicate\nexit")
	require.Empty(t, stub.calls)

	found := false
	for _, line := range printed {
		if strings.Contains(line, "Unknown command") {
			found = true
		}
	}
	require.True(t, found)
}

func TestREPL_EOFStopsLoop(t *testing.T) {
	stub, _ := runScript(t, "list")
	require.Equal(t, []string{"list"}, stub.calls)
}

func TestREPL_BlankLinesIgnored(t *testing.T) {
	stub, _ := runScript(t, "\n\nlist\n\nexit")
	require.Equal(t, []string{"list"}, stub.calls)
}
