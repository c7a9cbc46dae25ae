// Package installer drives package installation, removal, and launch for
// tracked applications.
package installer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/fsutil"
	"github.com/plebone/autonomix/internal/sysexec"
)

// Runner executes external commands on behalf of the orchestrator.
// sysexec.Runner is the production implementation.
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (sysexec.Result, error)
	RunPrivileged(ctx context.Context, command string, args ...string) (sysexec.Result, error)
}

// Options configures an Installer. Directories are explicit so tests can
// point them at temporary locations.
type Options struct {
	// AppImageDir is the managed directory holding installed AppImages.
	AppImageDir string
	// ApplicationsDir receives .desktop entries for AppImages. Empty
	// disables desktop-entry management.
	ApplicationsDir string
	// Runner executes subprocesses; nil selects sysexec.Runner.
	Runner Runner
}

// Installer orchestrates install, uninstall, and launch per install kind.
// Operations are blocking, single-flight calls; the caller serializes
// operations on the same application.
type Installer struct {
	appImageDir     string
	applicationsDir string
	runner          Runner
	lookPath        func(string) (string, error)
	startCommand    func(name string, args ...string) error
}

// New returns an Installer for the provided options.
func New(opts Options) *Installer {
	runner := opts.Runner
	if runner == nil {
		runner = sysexec.Runner{}
	}
	return &Installer{
		appImageDir:     opts.AppImageDir,
		applicationsDir: opts.ApplicationsDir,
		runner:          runner,
		lookPath:        exec.LookPath,
		startCommand:    startDetached,
	}
}

// startDetached starts the named program without waiting for it to exit.
// Launched applications outlive the CLI invocation.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// Result carries the installation metadata the caller persists onto the
// tracked application alongside the new installed version.
type Result struct {
	LaunchPath  string
	PackageName string
}

// Installable reports whether Install handles the kind. Snap, binary, and
// source records only ever come from self-detection; offering them as install
// choices would fail after the download.
func Installable(kind apps.InstallKind) bool {
	switch kind {
	case apps.KindDeb, apps.KindRpm, apps.KindFlatpak, apps.KindAppImage:
		return true
	}
	return false
}

// Install installs the downloaded file as the given kind and returns the
// metadata to persist. Nothing is persisted here: a failure anywhere leaves
// the caller's record untouched.
func (i *Installer) Install(ctx context.Context, app *apps.App, kind apps.InstallKind, file string) (Result, error) {
	switch kind {
	case apps.KindDeb:
		return i.installDeb(ctx, file)
	case apps.KindRpm:
		return i.installRpm(ctx, file)
	case apps.KindFlatpak:
		return i.installFlatpak(ctx, file)
	case apps.KindAppImage:
		return i.installAppImage(file)
	case apps.KindSnap, apps.KindBinary, apps.KindSource:
		return Result{}, &UnsupportedError{Op: "install", Kind: kind}
	}
	return Result{}, &UnsupportedError{Op: "install", Kind: kind}
}

// installDeb installs a .deb through the privileged system installer. The
// embedded package name is read first so the record can drive a later
// uninstall; a failed name query is tolerated and leaves the name empty.
func (i *Installer) installDeb(ctx context.Context, file string) (Result, error) {
	name := ""
	if res, err := i.runner.Run(ctx, "dpkg-deb", "-f", file, "Package"); err == nil {
		name = strings.TrimSpace(res.Stdout)
	}
	if _, err := i.runner.RunPrivileged(ctx, "dpkg", "-i", file); err != nil {
		return Result{}, err
	}
	return Result{PackageName: name}, nil
}

// installRpm mirrors installDeb for the RPM toolchain, preferring dnf when
// the host has it.
func (i *Installer) installRpm(ctx context.Context, file string) (Result, error) {
	name := ""
	if res, err := i.runner.Run(ctx, "rpm", "-qp", "--queryformat", "%{NAME}", file); err == nil {
		name = strings.TrimSpace(res.Stdout)
	}
	var err error
	if _, dnfErr := i.lookPath("dnf"); dnfErr == nil {
		_, err = i.runner.RunPrivileged(ctx, "dnf", "install", "-y", file)
	} else {
		_, err = i.runner.RunPrivileged(ctx, "rpm", "-i", file)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{PackageName: name}, nil
}

// installFlatpak installs a bundle into the per-user Flatpak installation.
// Flatpak tracks the application by its own id afterwards, so neither a
// launch path nor a package name is recorded.
func (i *Installer) installFlatpak(ctx context.Context, file string) (Result, error) {
	if _, err := i.runner.Run(ctx, "flatpak", "install", "--user", "-y", "--bundle", file); err != nil {
		return Result{}, err
	}
	return Result{}, nil
}

// installAppImage copies the file into the managed AppImage directory, marks
// it executable, and records the final path as the launch reference. A
// desktop entry is written as well; desktop-entry failures do not fail the
// install.
func (i *Installer) installAppImage(file string) (Result, error) {
	if err := os.MkdirAll(i.appImageDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create appimage dir: %w", err)
	}
	dest := filepath.Join(i.appImageDir, filepath.Base(file))
	if err := fsutil.CopyFile(file, dest, 0o755); err != nil {
		return Result{}, fmt.Errorf("install appimage: %w", err)
	}
	_ = i.writeDesktopEntry(dest)
	return Result{LaunchPath: dest}, nil
}

// Uninstall removes the app using its persisted install kind. The caller
// clears the record's installation fields only after this returns nil.
func (i *Installer) Uninstall(ctx context.Context, app *apps.App) error {
	if app.InstallType == nil {
		return &UnsupportedError{Op: "uninstall", Kind: ""}
	}
	kind := *app.InstallType
	switch kind {
	case apps.KindAppImage:
		return i.uninstallAppImage(app)
	case apps.KindDeb:
		if app.PackageName == "" {
			return &UnsupportedError{Op: "uninstall", Kind: kind}
		}
		_, err := i.runner.RunPrivileged(ctx, "dpkg", "-r", app.PackageName)
		return err
	case apps.KindRpm:
		if app.PackageName == "" {
			return &UnsupportedError{Op: "uninstall", Kind: kind}
		}
		if _, dnfErr := i.lookPath("dnf"); dnfErr == nil {
			_, err := i.runner.RunPrivileged(ctx, "dnf", "remove", "-y", app.PackageName)
			return err
		}
		_, err := i.runner.RunPrivileged(ctx, "rpm", "-e", app.PackageName)
		return err
	}
	return &UnsupportedError{Op: "uninstall", Kind: kind}
}

// uninstallAppImage deletes the recorded AppImage file. Without a launch
// reference naming an existing file there is nothing verifiable to remove.
func (i *Installer) uninstallAppImage(app *apps.App) error {
	if app.LaunchCommand == "" {
		return &UnsupportedError{Op: "uninstall", Kind: apps.KindAppImage}
	}
	if _, err := os.Stat(app.LaunchCommand); err != nil {
		return &UnsupportedError{Op: "uninstall", Kind: apps.KindAppImage}
	}
	if err := os.Remove(app.LaunchCommand); err != nil {
		return fmt.Errorf("remove appimage: %w", err)
	}
	_ = i.removeDesktopEntry(app.LaunchCommand)
	return nil
}

// Launch starts the application unprivileged. Records that predate
// launch-reference persistence fall back to searching the AppImage directory
// and then to the repository name on PATH.
func (i *Installer) Launch(ctx context.Context, app *apps.App) error {
	_ = ctx
	if app.LaunchCommand != "" {
		if err := i.startCommand(app.LaunchCommand); err != nil {
			return fmt.Errorf("launch %s: %w", app.LaunchCommand, err)
		}
		return nil
	}

	if app.InstallType != nil && *app.InstallType == apps.KindAppImage {
		return i.launchAppImageByName(app)
	}

	if err := i.startCommand(app.RepoName); err == nil {
		return nil
	}
	lower := strings.ToLower(app.RepoName)
	if err := i.startCommand(lower); err == nil {
		return nil
	}
	return &NotFoundError{Name: app.RepoName, Searched: []string{app.RepoName, lower}}
}

// launchAppImageByName executes the first file in the AppImage directory
// whose name contains the repository name.
func (i *Installer) launchAppImageByName(app *apps.App) error {
	entries, err := os.ReadDir(i.appImageDir)
	if err != nil {
		return &NotFoundError{Name: app.RepoName, Searched: []string{i.appImageDir}}
	}
	needle := strings.ToLower(app.RepoName)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(entry.Name()), needle) {
			path := filepath.Join(i.appImageDir, entry.Name())
			if err := i.startCommand(path); err != nil {
				return fmt.Errorf("launch %s: %w", path, err)
			}
			return nil
		}
	}
	return &NotFoundError{Name: app.RepoName, Searched: []string{i.appImageDir}}
}
