package messages

// Configuration messages.
const (
	ConfigReadFailedFmt   = "failed to read config file %s: %w"
	ConfigInvalidFmt      = "invalid config file %s: %w"
	ConfigUnknownKindFmt  = "config: unknown preferred_kind %q; expected one of deb, rpm, appimage, flatpak"
	ConfigUnusableKindFmt = "config: preferred_kind %q is not a package format autonomix can install; expected one of deb, rpm, appimage, flatpak"
)
