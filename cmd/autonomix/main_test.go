package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func stubExecute(t *testing.T, err error) {
	t.Helper()
	orig := executeFunc
	executeFunc = func([]string, io.Writer, io.Writer) error { return err }
	t.Cleanup(func() { executeFunc = orig })
}

func TestRunMainSilentExit(t *testing.T) {
	stubExecute(t, &SilentExitError{Code: 3})

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"autonomix"}, io.Discard, &stderr, func(c int) { code = c })

	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
	if stderr.Len() != 0 {
		t.Errorf("silent exit should not write stderr: %q", stderr.String())
	}
}

func TestRunMainError(t *testing.T) {
	stubExecute(t, errors.New("boom"))

	var stderr bytes.Buffer
	code := -1
	runMain([]string{"autonomix"}, io.Discard, &stderr, func(c int) { code = c })

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Errorf("stderr missing error: %q", stderr.String())
	}
}

func TestRunMainSuccess(t *testing.T) {
	stubExecute(t, nil)

	called := false
	runMain([]string{"autonomix"}, io.Discard, io.Discard, func(int) { called = true })
	if called {
		t.Error("exit should not be called on success")
	}
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	Version, Commit = "1.2.3", "unknown"
	if got := versionString(); got != "1.2.3" {
		t.Errorf("versionString() = %q", got)
	}

	Commit = "abc1234"
	if got := versionString(); got != "1.2.3 (abc1234)" {
		t.Errorf("versionString() = %q", got)
	}
}

func TestRootCmdHasSubcommands(t *testing.T) {
	cmd := newRootCmd()
	want := []string{"add", "remove", "list", "check", "install", "uninstall", "launch", "doctor"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
