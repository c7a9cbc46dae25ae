package installer

import (
	"fmt"
	"strings"

	"github.com/plebone/autonomix/internal/apps"
)

// UnsupportedError reports an install or uninstall request for a kind/state
// combination the orchestrator does not automate.
type UnsupportedError struct {
	Op   string
	Kind apps.InstallKind
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s not supported for %s packages", e.Op, e.Kind.Label())
}

// NotFoundError reports a launch target that could not be resolved.
type NotFoundError struct {
	Name     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("no launch target found for %s", e.Name)
	}
	return fmt.Sprintf("no launch target found for %s (searched %s)", e.Name, strings.Join(e.Searched, ", "))
}
