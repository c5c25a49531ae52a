package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	errs  map[string]error
}

func (f *fakeExec) call(name string) error {
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeExec) isLoggedIn() bool                 { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error { return f.call("signup") }
func (f *fakeExec) Login(ctx context.Context) error {
	err := f.call("login")
	if err == nil {
		f.loggedIn = true
	}
	return err
}
func (f *fakeExec) List(ctx context.Context) error   { return f.call("list") }
func (f *fakeExec) Add(ctx context.Context) error    { return f.call("add") }
func (f *fakeExec) Show(ctx context.Context) error   { return f.call("show") }
func (f *fakeExec) Edit(ctx context.Context) error   { return f.call("edit") }
func (f *fakeExec) Delete(ctx context.Context) error { return f.call("delete") }
func (f *fakeExec) Logout(ctx context.Context) error {
	err := f.call("logout")
	if err == nil {
		f.loggedIn = false
	}
	return err
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) { lines = append(lines, fmt.Sprintln(a...)) }
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"list",
		"l",
		"add",
		"show",
		"edit",
		"delete",
		"logout",
		"exit",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	want := []string{"login", "list", "list", "add", "show", "edit", "delete", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls: got %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("call %d: got %q, want %q", i, exec.calls[i], want[i])
		}
	}
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	lines := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("frobnicate\nexit\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	found := false
	for _, l := range *lines {
		if strings.Contains(l, "Unknown command") {
			found = true
		}
	}
	if !found {
		t.Fatal("unknown command not reported")
	}
}

func TestRunREPL_ErrorsAreShownAndLoopContinues(t *testing.T) {
	lines := captureOutput(t)

	exec := &fakeExec{errs: map[string]error{"login": fmt.Errorf("Incorrect email or password")}}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("login\nlogin\nexit\n")))

	if got := len(exec.calls); got != 2 {
		t.Fatalf("loop must survive errors, got %d calls", got)
	}
	found := false
	for _, l := range *lines {
		if strings.Contains(l, "Error: Incorrect email or password") {
			found = true
		}
	}
	if !found {
		t.Fatalf("error not shown verbatim: %v", *lines)
	}
}

func TestRunREPL_QuitAndEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("quit\n")))

	// EOF with no trailing command must also terminate.
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("")))
}
