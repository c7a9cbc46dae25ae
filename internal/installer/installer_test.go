package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/sysexec"
	"github.com/plebone/autonomix/internal/testutil"
)

func newTestInstaller(t *testing.T) (*Installer, string) {
	t.Helper()
	base := t.TempDir()
	inst := New(Options{
		AppImageDir:     filepath.Join(base, "appimages"),
		ApplicationsDir: filepath.Join(base, "applications"),
	})
	inst.lookPath = func(string) (string, error) { return "", errors.New("not found") }
	return inst, base
}

func kindPtr(k apps.InstallKind) *apps.InstallKind {
	return &k
}

func TestInstallAppImage(t *testing.T) {
	inst, base := newTestInstaller(t)
	src := filepath.Join(base, "App-1.2.3.AppImage")
	if err := os.WriteFile(src, []byte("elf"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	res, err := inst.Install(context.Background(), &apps.App{RepoName: "app"}, apps.KindAppImage, src)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	want := filepath.Join(base, "appimages", "App-1.2.3.AppImage")
	if res.LaunchPath != want {
		t.Fatalf("launch path = %q, want %q", res.LaunchPath, want)
	}
	info, err := os.Stat(want)
	if err != nil {
		t.Fatalf("stat installed appimage: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("mode = %v, want 0755", info.Mode().Perm())
	}

	desktop := filepath.Join(base, "applications", "App-1.2.3.desktop")
	data, err := os.ReadFile(desktop)
	if err != nil {
		t.Fatalf("read desktop entry: %v", err)
	}
	if !strings.Contains(string(data), "Name=App 1.2.3") {
		t.Fatalf("desktop entry = %q", data)
	}
	if !strings.Contains(string(data), want) {
		t.Fatalf("desktop entry missing exec path: %q", data)
	}
}

func TestInstallDebRecordsPackageName(t *testing.T) {
	inst, base := newTestInstaller(t)
	stubs := t.TempDir()
	log := filepath.Join(base, "calls.log")
	testutil.WriteStubOutput(t, stubs, "dpkg-deb", "some-app\n", "", 0)
	testutil.WriteStubPassthrough(t, stubs, sysexec.PrivilegeHelper)
	testutil.WriteStubRecorder(t, stubs, "dpkg", log)
	testutil.PrependPath(t, stubs)

	res, err := inst.Install(context.Background(), &apps.App{}, apps.KindDeb, "/tmp/pkg.deb")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if res.PackageName != "some-app" {
		t.Fatalf("package name = %q", res.PackageName)
	}
	if res.LaunchPath != "" {
		t.Fatalf("deb install must not set a launch path, got %q", res.LaunchPath)
	}
	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	if strings.TrimSpace(string(data)) != "-i /tmp/pkg.deb" {
		t.Fatalf("dpkg called with %q", data)
	}
}

func TestInstallDebToleratesNameQueryFailure(t *testing.T) {
	inst, _ := newTestInstaller(t)
	stubs := t.TempDir()
	testutil.WriteStubWithExit(t, stubs, "dpkg-deb", 2)
	testutil.WriteStubPassthrough(t, stubs, sysexec.PrivilegeHelper)
	testutil.WriteStub(t, stubs, "dpkg")
	testutil.PrependPath(t, stubs)

	res, err := inst.Install(context.Background(), &apps.App{}, apps.KindDeb, "/tmp/pkg.deb")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if res.PackageName != "" {
		t.Fatalf("package name = %q, want empty", res.PackageName)
	}
}

func TestInstallDebPrivilegedFailureSurfacesStderr(t *testing.T) {
	inst, _ := newTestInstaller(t)
	stubs := t.TempDir()
	testutil.WriteStubOutput(t, stubs, "dpkg-deb", "some-app", "", 0)
	testutil.WriteStubPassthrough(t, stubs, sysexec.PrivilegeHelper)
	testutil.WriteStubOutput(t, stubs, "dpkg", "", "dependency problems prevent configuration", 1)
	testutil.PrependPath(t, stubs)

	_, err := inst.Install(context.Background(), &apps.App{}, apps.KindDeb, "/tmp/pkg.deb")
	var execErr *sysexec.ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *sysexec.ExecError, got %v", err)
	}
	if !strings.Contains(execErr.Stderr, "dependency problems") {
		t.Fatalf("stderr = %q", execErr.Stderr)
	}
}

func TestInstallRpmPrefersDnf(t *testing.T) {
	inst, base := newTestInstaller(t)
	inst.lookPath = func(name string) (string, error) {
		if name == "dnf" {
			return "/usr/bin/dnf", nil
		}
		return "", errors.New("not found")
	}
	stubs := t.TempDir()
	log := filepath.Join(base, "calls.log")
	testutil.WriteStubOutput(t, stubs, "rpm", "cool-tool", "", 0)
	testutil.WriteStubPassthrough(t, stubs, sysexec.PrivilegeHelper)
	testutil.WriteStubRecorder(t, stubs, "dnf", log)
	testutil.PrependPath(t, stubs)

	res, err := inst.Install(context.Background(), &apps.App{}, apps.KindRpm, "/tmp/pkg.rpm")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if res.PackageName != "cool-tool" {
		t.Fatalf("package name = %q", res.PackageName)
	}
	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	if strings.TrimSpace(string(data)) != "install -y /tmp/pkg.rpm" {
		t.Fatalf("dnf called with %q", data)
	}
}

func TestInstallRpmFallsBackToRpm(t *testing.T) {
	inst, base := newTestInstaller(t)
	stubs := t.TempDir()
	log := filepath.Join(base, "calls.log")
	testutil.WriteStubPassthrough(t, stubs, sysexec.PrivilegeHelper)
	testutil.WriteStubRecorder(t, stubs, "rpm", log)
	testutil.PrependPath(t, stubs)

	if _, err := inst.Install(context.Background(), &apps.App{}, apps.KindRpm, "/tmp/pkg.rpm"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[len(lines)-1] != "-i /tmp/pkg.rpm" {
		t.Fatalf("rpm called with %q", lines)
	}
}

func TestInstallFlatpakUsesUserBundleInstall(t *testing.T) {
	inst, base := newTestInstaller(t)
	stubs := t.TempDir()
	log := filepath.Join(base, "calls.log")
	testutil.WriteStubRecorder(t, stubs, "flatpak", log)
	testutil.PrependPath(t, stubs)

	res, err := inst.Install(context.Background(), &apps.App{}, apps.KindFlatpak, "/tmp/app.flatpak")
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if res.LaunchPath != "" || res.PackageName != "" {
		t.Fatalf("flatpak install must record nothing, got %+v", res)
	}
	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	if strings.TrimSpace(string(data)) != "install --user -y --bundle /tmp/app.flatpak" {
		t.Fatalf("flatpak called with %q", data)
	}
}

func TestInstallUnsupportedKinds(t *testing.T) {
	inst, _ := newTestInstaller(t)
	for _, kind := range []apps.InstallKind{apps.KindSnap, apps.KindBinary, apps.KindSource} {
		_, err := inst.Install(context.Background(), &apps.App{}, kind, "/tmp/file")
		var unsupported *UnsupportedError
		if !errors.As(err, &unsupported) {
			t.Fatalf("kind %q: expected *UnsupportedError, got %v", kind, err)
		}
		if unsupported.Kind != kind {
			t.Fatalf("error names kind %q, want %q", unsupported.Kind, kind)
		}
	}
}

func TestInstallableMatchesInstallDispatch(t *testing.T) {
	for _, kind := range []apps.InstallKind{apps.KindDeb, apps.KindRpm, apps.KindFlatpak, apps.KindAppImage} {
		if !Installable(kind) {
			t.Errorf("Installable(%q) = false", kind)
		}
	}
	for _, kind := range []apps.InstallKind{apps.KindSnap, apps.KindBinary, apps.KindSource, ""} {
		if Installable(kind) {
			t.Errorf("Installable(%q) = true", kind)
		}
	}
}

func TestUninstallAppImageRemovesFileAndDesktopEntry(t *testing.T) {
	inst, base := newTestInstaller(t)
	src := filepath.Join(base, "Tool-2.0.AppImage")
	if err := os.WriteFile(src, []byte("elf"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	res, err := inst.Install(context.Background(), &apps.App{}, apps.KindAppImage, src)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}

	app := &apps.App{InstallType: kindPtr(apps.KindAppImage), LaunchCommand: res.LaunchPath}
	if err := inst.Uninstall(context.Background(), app); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	if _, err := os.Stat(res.LaunchPath); !os.IsNotExist(err) {
		t.Fatal("appimage still present")
	}
	desktop := filepath.Join(base, "applications", "Tool-2.0.desktop")
	if _, err := os.Stat(desktop); !os.IsNotExist(err) {
		t.Fatal("desktop entry still present")
	}
}

func TestUninstallAppImageWithoutReference(t *testing.T) {
	inst, _ := newTestInstaller(t)
	app := &apps.App{InstallType: kindPtr(apps.KindAppImage)}
	var unsupported *UnsupportedError
	if err := inst.Uninstall(context.Background(), app); !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError, got %v", err)
	}
}

func TestUninstallDebWithoutPackageName(t *testing.T) {
	inst, _ := newTestInstaller(t)
	app := &apps.App{InstallType: kindPtr(apps.KindDeb)}
	var unsupported *UnsupportedError
	if err := inst.Uninstall(context.Background(), app); !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedError, got %v", err)
	}
	if unsupported.Kind != apps.KindDeb {
		t.Fatalf("error names %q, want deb", unsupported.Kind)
	}
}

func TestUninstallDebRemovesByPackageName(t *testing.T) {
	inst, base := newTestInstaller(t)
	stubs := t.TempDir()
	log := filepath.Join(base, "calls.log")
	testutil.WriteStubPassthrough(t, stubs, sysexec.PrivilegeHelper)
	testutil.WriteStubRecorder(t, stubs, "dpkg", log)
	testutil.PrependPath(t, stubs)

	app := &apps.App{InstallType: kindPtr(apps.KindDeb), PackageName: "some-app"}
	if err := inst.Uninstall(context.Background(), app); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	data, err := os.ReadFile(log)
	if err != nil {
		t.Fatalf("read call log: %v", err)
	}
	if strings.TrimSpace(string(data)) != "-r some-app" {
		t.Fatalf("dpkg called with %q", data)
	}
}

func TestUninstallRefusesUnverifiableKinds(t *testing.T) {
	inst, _ := newTestInstaller(t)
	for _, kind := range []apps.InstallKind{apps.KindFlatpak, apps.KindSnap, apps.KindBinary, apps.KindSource} {
		app := &apps.App{InstallType: kindPtr(kind)}
		var unsupported *UnsupportedError
		if err := inst.Uninstall(context.Background(), app); !errors.As(err, &unsupported) {
			t.Fatalf("kind %q: expected *UnsupportedError, got %v", kind, err)
		}
	}
	var unsupported *UnsupportedError
	if err := inst.Uninstall(context.Background(), &apps.App{}); !errors.As(err, &unsupported) {
		t.Fatal("uninstall of never-installed app must be unsupported")
	}
}

func TestLaunchUsesRecordedReference(t *testing.T) {
	inst, _ := newTestInstaller(t)
	var launched []string
	inst.startCommand = func(name string, args ...string) error {
		launched = append(launched, name)
		return nil
	}

	app := &apps.App{RepoName: "tool", LaunchCommand: "/data/appimages/Tool.AppImage"}
	if err := inst.Launch(context.Background(), app); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if len(launched) != 1 || launched[0] != "/data/appimages/Tool.AppImage" {
		t.Fatalf("launched = %v", launched)
	}
}

func TestLaunchAppImageFallbackFindsMatchingFile(t *testing.T) {
	inst, base := newTestInstaller(t)
	appImageDir := filepath.Join(base, "appimages")
	if err := os.MkdirAll(appImageDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(appImageDir, "CoolTool-1.0.AppImage")
	if err := os.WriteFile(target, []byte("elf"), 0o755); err != nil {
		t.Fatalf("write appimage: %v", err)
	}

	var launched []string
	inst.startCommand = func(name string, args ...string) error {
		launched = append(launched, name)
		return nil
	}

	app := &apps.App{RepoName: "cooltool", InstallType: kindPtr(apps.KindAppImage)}
	if err := inst.Launch(context.Background(), app); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if len(launched) != 1 || launched[0] != target {
		t.Fatalf("launched = %v", launched)
	}
}

func TestLaunchAppImageFallbackNoMatch(t *testing.T) {
	inst, base := newTestInstaller(t)
	if err := os.MkdirAll(filepath.Join(base, "appimages"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	inst.startCommand = func(string, ...string) error {
		t.Fatal("nothing should be launched")
		return nil
	}

	app := &apps.App{RepoName: "ghost", InstallType: kindPtr(apps.KindAppImage)}
	err := inst.Launch(context.Background(), app)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
}

func TestLaunchPathFallbackRetriesLowercase(t *testing.T) {
	inst, _ := newTestInstaller(t)
	var attempts []string
	inst.startCommand = func(name string, args ...string) error {
		attempts = append(attempts, name)
		if name == "cooltool" {
			return nil
		}
		return errors.New("not found")
	}

	app := &apps.App{RepoName: "CoolTool"}
	if err := inst.Launch(context.Background(), app); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if len(attempts) != 2 || attempts[0] != "CoolTool" || attempts[1] != "cooltool" {
		t.Fatalf("attempts = %v", attempts)
	}
}

func TestLaunchPathFallbackExhausted(t *testing.T) {
	inst, _ := newTestInstaller(t)
	inst.startCommand = func(string, ...string) error {
		return errors.New("not found")
	}

	err := inst.Launch(context.Background(), &apps.App{RepoName: "ghost"})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if len(notFound.Searched) != 2 {
		t.Fatalf("searched = %v", notFound.Searched)
	}
}
