package paths

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestDefaultHonorsXDGOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if p.ConfigPath != filepath.Join("/tmp/xdg-config", AppName, "config.toml") {
		t.Fatalf("ConfigPath = %q", p.ConfigPath)
	}
	if p.StatePath != filepath.Join("/tmp/xdg-config", AppName, "apps.json") {
		t.Fatalf("StatePath = %q", p.StatePath)
	}
	if p.DownloadsDir != filepath.Join("/tmp/xdg-data", AppName, "downloads") {
		t.Fatalf("DownloadsDir = %q", p.DownloadsDir)
	}
	if p.AppImageDir != filepath.Join("/tmp/xdg-data", AppName, "appimages") {
		t.Fatalf("AppImageDir = %q", p.AppImageDir)
	}
}

func TestDefaultFallsBackToHome(t *testing.T) {
	t.Setenv("HOME", "/home/probe")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	homedir.Reset()
	t.Cleanup(homedir.Reset)

	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if p.ConfigDir != filepath.Join("/home/probe", ".config", AppName) {
		t.Fatalf("ConfigDir = %q", p.ConfigDir)
	}
	if p.DataDir != filepath.Join("/home/probe", ".local", "share", AppName) {
		t.Fatalf("DataDir = %q", p.DataDir)
	}

	bin, err := UserBinDir()
	if err != nil {
		t.Fatalf("UserBinDir: %v", err)
	}
	if bin != filepath.Join("/home/probe", ".local", "bin") {
		t.Fatalf("UserBinDir = %q", bin)
	}

	applications, err := ApplicationsDir()
	if err != nil {
		t.Fatalf("ApplicationsDir: %v", err)
	}
	if applications != filepath.Join("/home/probe", ".local", "share", "applications") {
		t.Fatalf("ApplicationsDir = %q", applications)
	}
}
