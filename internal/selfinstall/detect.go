// Package selfinstall determines how the running Autonomix instance was
// installed and which package mechanisms the host supports.
package selfinstall

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/paths"
	"github.com/plebone/autonomix/internal/sysexec"
)

// PackageName is the name the host package databases know Autonomix by.
const PackageName = "autonomix"

// FlatpakID is the reverse-DNS application id used for Flatpak installs.
const FlatpakID = "io.github.plebone.autonomix"

// appImageEnv is set by the AppImage runtime when running from a mount.
const appImageEnv = "APPIMAGE"

// System abstracts the host operations the detector probes. The interface is
// package-local so tests can fake individual probes without shared globals.
type System interface {
	Probe(ctx context.Context, command string, args ...string) bool
	LookupEnv(key string) (string, bool)
	Executable() (string, error)
	LookPath(file string) (string, error)
}

// RealSystem implements System against the host.
type RealSystem struct {
	Runner sysexec.Runner
}

// Probe reports whether the command runs and exits zero.
func (s RealSystem) Probe(ctx context.Context, command string, args ...string) bool {
	return s.Runner.Probe(ctx, command, args...)
}

// LookupEnv returns the value and presence of an environment variable.
func (RealSystem) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Executable returns the path of the running binary.
func (RealSystem) Executable() (string, error) {
	return os.Executable()
}

// LookPath searches PATH for an executable.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Detect probes the host, in fixed order, for how Autonomix itself was
// installed. Every probe failure (tool absent, non-zero exit, missing env
// var) counts as "not this kind"; when nothing matches the second return is
// false and self-update falls back to manual guidance.
func Detect(ctx context.Context, sys System) (apps.InstallKind, bool) {
	if sys.Probe(ctx, "dpkg", "-s", PackageName) {
		return apps.KindDeb, true
	}
	if sys.Probe(ctx, "rpm", "-q", PackageName) {
		return apps.KindRpm, true
	}
	if sys.Probe(ctx, "flatpak", "info", FlatpakID) {
		return apps.KindFlatpak, true
	}
	if sys.Probe(ctx, "snap", "info", PackageName) {
		return apps.KindSnap, true
	}
	if _, ok := sys.LookupEnv(appImageEnv); ok {
		return apps.KindAppImage, true
	}
	if fromUserBin(sys) {
		return apps.KindBinary, true
	}
	return "", false
}

// fromUserBin reports whether the running executable resolves into the
// per-user binary directory.
func fromUserBin(sys System) bool {
	exe, err := sys.Executable()
	if err != nil {
		return false
	}
	binDir, err := paths.UserBinDir()
	if err != nil {
		return false
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		resolved = exe
	}
	return filepath.Dir(resolved) == binDir
}

// AvailableKinds reports which install kinds this host can handle. AppImage
// and binary installs need no tooling and are always available.
func AvailableKinds(sys System) []apps.InstallKind {
	available := make([]apps.InstallKind, 0, len(apps.Kinds()))
	for _, kind := range apps.Kinds() {
		switch kind {
		case apps.KindAppImage, apps.KindBinary:
			available = append(available, kind)
		case apps.KindSource:
			// Source builds are never automated.
		default:
			if tool, ok := kindTool(kind); ok {
				if _, err := sys.LookPath(tool); err == nil {
					available = append(available, kind)
				}
			}
		}
	}
	return available
}

// kindTool names the host tool whose presence enables a kind.
func kindTool(kind apps.InstallKind) (string, bool) {
	switch kind {
	case apps.KindDeb:
		return "dpkg", true
	case apps.KindRpm:
		return "rpm", true
	case apps.KindFlatpak:
		return "flatpak", true
	case apps.KindSnap:
		return "snap", true
	}
	return "", false
}
