package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "autonomix"
	// RootShort is the short description for the root command.
	RootShort = "Track and manage apps distributed through GitHub releases"
	RootLong  = "Autonomix tracks GitHub-hosted applications, checks their releases for updates, and installs or removes them using the packaging tools available on this system."

	VersionTemplate = "{{.Version}}\n"
	VersionFullFmt  = "%s (%s)"

	// AddUse is the add command usage.
	AddUse   = "add <owner/repo | github URL>"
	AddShort = "Start tracking an application by its GitHub repository"

	AddFlagName         = "Display name to use instead of the repository name"
	AddInvalidRepoFmt   = "%q is not a GitHub repository; expected owner/repo or a github.com URL"
	AddAlreadyTrackedFmt   = "already tracking %s"
	AddTrackedFmt       = "Tracking %s (%s)\n"
	AddCheckedVerFmt    = "Latest release: %s\n"
	AddCheckFailedFmt   = "Warning: could not check releases for %s: %v\n"
	AddNoReleaseWarnFmt = "Warning: %s has no published releases yet\n"

	// RemoveUse is the remove command usage.
	RemoveUse   = "remove <id>"
	RemoveShort = "Stop tracking an application"

	RemoveInvalidIDFmt      = "%q is not an application id; run 'autonomix list' to see ids"
	RemoveNotFoundFmt       = "no tracked application with id %d"
	RemovedFmt              = "No longer tracking %s\n"
	RemoveStillInstalledFmt = "Note: %s remains installed on this system; it is just no longer tracked\n"

	// ListUse is the list command usage.
	ListUse   = "list"
	ListShort = "Show tracked applications and their status"

	ListEmpty          = "No applications tracked yet. Add one with 'autonomix add owner/repo'."
	ListHeaderFmt      = "%-4s %-24s %-12s %-12s %s\n"
	ListHeaderID       = "ID"
	ListHeaderName     = "NAME"
	ListHeaderInstall  = "INSTALLED"
	ListHeaderLatest   = "LATEST"
	ListHeaderStatus   = "STATUS"
	ListRowFmt         = "%-4d %-24s %-12s %-12s %s\n"
	ListStatusUpdate   = "update available"
	ListStatusCurrent  = "up to date"
	ListStatusTracked  = "not installed"
	ListStatusUnknown  = "not checked"
	ListValueNone      = "-"
	ListSummaryFmt     = "\n%d tracked, %d installed, %d with updates\n"
	ListFlagJSON       = "Emit the tracked applications as JSON"
	ListMarshalFailFmt = "failed to encode applications: %w"

	// CheckUse is the check command usage.
	CheckUse   = "check [id]"
	CheckShort = "Check GitHub for new releases of tracked applications"

	CheckNoApps           = "No applications tracked yet; nothing to check."
	CheckOneFmt           = "%s: %s"
	CheckUpdateSuffixFmt  = " (installed %s, update available)"
	CheckCurrentSuffix    = " (up to date)"
	CheckNoReleaseFmt     = "%s: no published releases"
	CheckFailedFmt        = "%s: check failed: %v"
	CheckRateLimited      = "GitHub API rate limit exceeded; set AUTONOMIX_GITHUB_TOKEN or add github_token to config.toml to raise the limit"
	CheckSomeFailed       = "some release checks failed"
	CheckFlagPrereleases  = "Consider prereleases when looking for the newest version"
	CheckSelfUpdateHeader = "\nA newer autonomix is available:\n"

	// InstallUse is the install command usage.
	InstallUse   = "install <id>"
	InstallShort = "Download and install the latest release of a tracked application"

	InstallFlagKind         = "Package format to install (deb, rpm, appimage, flatpak)"
	InstallUnknownKindFmt   = "unknown package format %q"
	InstallUnusableKindFmt  = "autonomix cannot install %s packages; choose one of deb, rpm, appimage, flatpak"
	InstallNoVersionFmt     = "no known release for %s; run 'autonomix check %d' first"
	InstallNoAssetsFmt      = "the %s release of %s has no installable Linux assets for this machine"
	InstallKindMissingFmt   = "the %s release of %s has no %s asset; available formats: %s"
	InstallPickPromptFmt    = "Install %s %s as:"
	InstallPickRequiresTerm = "multiple package formats are available (%s); pass --kind to choose one"
	InstallDownloadingFmt   = "Downloading %s (%s)...\n"
	InstallInstallingFmt    = "Installing %s %s as a %s...\n"
	InstallDoneFmt          = "Installed %s %s\n"
	InstallAlreadyFmt       = "%s %s is already installed and up to date\n"
	InstallUpgradeFmt       = "Upgrading %s from %s to %s\n"

	// UninstallUse is the uninstall command usage.
	UninstallUse   = "uninstall <id>"
	UninstallShort = "Remove an installed application from the system"

	UninstallNotInstalledFmt = "%s is not installed"
	UninstallDoneFmt         = "Uninstalled %s\n"

	// LaunchUse is the launch command usage.
	LaunchUse   = "launch <id>"
	LaunchShort = "Launch an installed application"

	LaunchedFmt = "Launched %s\n"
)

// Shared size formatting for download progress.
const (
	SizeUnknown = "size unknown"
)
