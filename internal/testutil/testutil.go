// Package testutil provides helpers for tests that exercise subprocess paths.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	WriteStubScript(t, dir, name, fmt.Sprintf("exit %d\n", exitCode))
}

// WriteStubOutput writes an executable shell stub that prints stdout, prints
// stderr to standard error, and exits with the provided code.
func WriteStubOutput(t *testing.T, dir string, name string, stdout string, stderr string, exitCode int) {
	t.Helper()
	script := ""
	if stdout != "" {
		script += fmt.Sprintf("printf '%%s' %s\n", shellQuote(stdout))
	}
	if stderr != "" {
		script += fmt.Sprintf("printf '%%s' %s >&2\n", shellQuote(stderr))
	}
	script += fmt.Sprintf("exit %d\n", exitCode)
	WriteStubScript(t, dir, name, script)
}

// shellQuote wraps s in single quotes so the shell passes its bytes through
// verbatim; Go's %q escapes (e.g. \n) are not understood by sh double quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// WriteStubPassthrough writes an executable shell stub that execs its
// arguments, emulating an elevation helper that runs the wrapped command.
func WriteStubPassthrough(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubScript(t, dir, name, "exec \"$@\"\n")
}

// WriteStubRecorder writes an executable shell stub that appends its argument
// list to logPath and exits successfully.
func WriteStubRecorder(t *testing.T, dir string, name string, logPath string) {
	t.Helper()
	WriteStubScript(t, dir, name, fmt.Sprintf("echo \"$@\" >> %q\nexit 0\n", logPath))
}

// WriteStubScript writes an executable shell stub with the provided body.
func WriteStubScript(t *testing.T, dir string, name string, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body)
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// PrependPath puts dir at the front of PATH for the remainder of the test so
// stubs shadow real system tools.
func PrependPath(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}
