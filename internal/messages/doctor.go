package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check for missing host tools and common misconfigurations"

	DoctorHeader = "Checking Autonomix health...\n"

	DoctorCheckNameTools  = "Tools"
	DoctorCheckNameDirs   = "Directories"
	DoctorCheckNameState  = "State"
	DoctorCheckNameConfig = "Config"
	DoctorCheckNameSelf   = "Install"
	DoctorCheckNameUpdate = "Update"

	DoctorToolFoundFmt       = "%s available: %s"
	DoctorToolMissingFmt     = "%s not found on PATH"
	DoctorToolMissingRecFmt  = "Install %s to enable %s support, or ignore this if you never install that format."
	DoctorPkexecMissing      = "pkexec not found on PATH"
	DoctorPkexecMissingRec   = "Install polkit; privileged installs and removals will fail without pkexec."
	DoctorNoInstallerTools   = "no package tools found; only AppImage installs will work"
	DoctorNoInstallerToolRec = "Install dpkg, rpm, or flatpak to support more package formats."

	DoctorDirExistsFmt       = "Directory exists: %s"
	DoctorDirMissingFmt      = "Directory missing: %s (created on first use)"
	DoctorDirNotWritableFmt  = "Directory not writable: %s"
	DoctorDirNotWritableRec  = "Fix ownership or permissions so Autonomix can store downloads and AppImages."
	DoctorDirCheckFailedFmt  = "Failed to inspect %s: %v"
	DoctorPathsFailedFmt     = "Failed to resolve data directories: %v"
	DoctorPathsFailedRec     = "Ensure HOME is set and the home directory exists."

	DoctorStateLoadedFmt    = "State file loaded: %d tracked application(s)"
	DoctorStateMissing      = "No state file yet; it is created when you add an application."
	DoctorStateCorruptFmt   = "State file unreadable: %v"
	DoctorStateCorruptRec   = "Inspect or delete the apps.json state file; tracked applications will be lost if deleted."

	DoctorConfigLoaded        = "Configuration loaded successfully"
	DoctorConfigMissing       = "No config file; using defaults."
	DoctorConfigInvalidFmt    = "Configuration invalid: %v"
	DoctorConfigInvalidRec    = "Fix or remove config.toml; see the README for the accepted keys."
	DoctorTokenSet            = "GitHub token configured"
	DoctorTokenUnset          = "No GitHub token; unauthenticated API limit is 60 requests per hour"
	DoctorTokenUnsetRec       = "Set AUTONOMIX_GITHUB_TOKEN or add github_token to config.toml if you hit rate limits."

	DoctorSelfDetectedFmt = "Autonomix installed as: %s"
	DoctorSelfUnknown     = "Could not determine how autonomix was installed"
	DoctorSelfUnknownRec  = "Self-update guidance falls back to the releases page."

	DoctorUpToDateFmt         = "autonomix %s is up to date"
	DoctorUpdateAvailableFmt  = "autonomix %s is available (running %s)"
	DoctorUpdateDevBuildFmt   = "Running a dev build; latest release is %s"
	DoctorUpdateFailedFmt     = "Failed to check for autonomix updates: %v"
	DoctorUpdateFailedRec     = "Check network connectivity; this does not affect managing applications."
	DoctorUpdateRateLimited   = "Skipped update check: GitHub API rate limit exceeded"

	DoctorStatusOKLabel   = "[OK]"
	DoctorStatusWarnLabel = "[WARN]"
	DoctorStatusFailLabel = "[FAIL]"

	DoctorResultLineFmt        = "%s %s: %s\n"
	DoctorRecommendationPrefix = "  -> "

	DoctorFailureSummary = "Some checks failed."
	DoctorFailureError   = "doctor found problems"
	DoctorSuccessSummary = "All checks passed."
)
