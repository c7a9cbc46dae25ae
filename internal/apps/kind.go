package apps

// InstallKind identifies the packaging mechanism used to install a tracked
// application. The canonical lowercase string form is what gets persisted;
// Label is for display only.
type InstallKind string

// Canonical install kinds. Adding a kind requires a matching dispatch case in
// internal/installer.
const (
	KindDeb      InstallKind = "deb"
	KindRpm      InstallKind = "rpm"
	KindAppImage InstallKind = "appimage"
	KindFlatpak  InstallKind = "flatpak"
	KindSnap     InstallKind = "snap"
	KindBinary   InstallKind = "binary"
	KindSource   InstallKind = "source"
)

// Kinds lists every install kind in preference order: native package formats
// first, then sandboxed formats, then raw artifacts.
func Kinds() []InstallKind {
	return []InstallKind{KindDeb, KindRpm, KindAppImage, KindFlatpak, KindSnap, KindBinary, KindSource}
}

// ParseInstallKind returns the kind for a canonical string form.
// The second return is false for unknown or empty input.
func ParseInstallKind(s string) (InstallKind, bool) {
	switch InstallKind(s) {
	case KindDeb, KindRpm, KindAppImage, KindFlatpak, KindSnap, KindBinary, KindSource:
		return InstallKind(s), true
	}
	return "", false
}

// String returns the canonical lowercase form used for persistence.
func (k InstallKind) String() string {
	return string(k)
}

// Label returns the human-readable name for display.
func (k InstallKind) Label() string {
	switch k {
	case KindDeb:
		return "Debian Package"
	case KindRpm:
		return "RPM Package"
	case KindAppImage:
		return "AppImage"
	case KindFlatpak:
		return "Flatpak"
	case KindSnap:
		return "Snap"
	case KindBinary:
		return "Binary"
	case KindSource:
		return "Source"
	}
	return string(k)
}
