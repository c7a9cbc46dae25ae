package messages

// Self-update messages. Autonomix never replaces its own binary; it tells
// the user which mechanism manages the running copy.
const (
	UpdateGuidanceDeb      = "Download the latest autonomix .deb from the releases page and install it with 'pkexec dpkg -i <file>'."
	UpdateGuidanceRpm      = "Download the latest autonomix .rpm from the releases page and install it with 'pkexec dnf install <file>'."
	UpdateGuidanceFlatpak  = "Run 'flatpak update io.github.plebone.autonomix'."
	UpdateGuidanceSnap     = "Run 'snap refresh autonomix'."
	UpdateGuidanceAppImage = "Download the latest autonomix AppImage from the releases page and replace the current file."
	UpdateGuidanceBinary   = "Download the latest autonomix binary from the releases page and replace the copy in ~/.local/bin."
	UpdateGuidanceManual   = "Download the latest release from https://github.com/plebone/autonomix/releases."
)
