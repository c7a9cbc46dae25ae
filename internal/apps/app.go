// Package apps defines the tracked-application record and install kinds.
package apps

import (
	"fmt"
	"time"
)

// App is a GitHub-hosted application tracked for release monitoring and
// installation. The json tags are the persisted record contract.
//
// InstallType is set if and only if InstalledVersion is set: an app is either
// fully installed with a known kind or fully not installed. Store.MarkInstalled
// and Store.MarkUninstalled in internal/store mutate the whole cluster
// (installed_version, install_type, launch_command, package_name) together.
type App struct {
	ID               int64        `json:"id"`
	RepoOwner        string       `json:"repo_owner"`
	RepoName         string       `json:"repo_name"`
	DisplayName      string       `json:"display_name"`
	InstalledVersion string       `json:"installed_version,omitempty"`
	LatestVersion    string       `json:"latest_version,omitempty"`
	InstallType      *InstallKind `json:"install_type,omitempty"`
	LaunchCommand    string       `json:"launch_command,omitempty"`
	PackageName      string       `json:"package_name,omitempty"`
	LastChecked      *time.Time   `json:"last_checked,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// RepoSlug returns the owner/name pair that uniquely identifies the app.
func (a *App) RepoSlug() string {
	return fmt.Sprintf("%s/%s", a.RepoOwner, a.RepoName)
}

// RepoURL returns the GitHub page for the tracked repository.
func (a *App) RepoURL() string {
	return fmt.Sprintf("https://github.com/%s/%s", a.RepoOwner, a.RepoName)
}

// Installed reports whether the app is currently installed.
func (a *App) Installed() bool {
	return a.InstalledVersion != ""
}

// HasUpdate reports whether the last known release is newer than the
// installed version.
func (a *App) HasUpdate() bool {
	return HasUpdate(a.InstalledVersion, a.LatestVersion)
}
