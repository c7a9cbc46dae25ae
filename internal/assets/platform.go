package assets

import (
	"runtime"
	"strings"
)

// archAliases maps GOARCH values to the architecture tokens release assets
// commonly carry in their file names.
var archAliases = map[string][]string{
	"amd64": {"x86_64", "amd64", "x64", "linux64"},
	"arm64": {"aarch64", "arm64"},
	"386":   {"i386", "i686", "x86", "linux32"},
}

var archIndicators = []string{"x86", "amd64", "arm", "aarch", "i386", "i686"}

// LinuxAsset reports whether the asset file name plausibly targets Linux.
// Native Linux package suffixes always match; obvious Windows and macOS
// artifacts never do; names with no platform hint are assumed universal.
func LinuxAsset(name string) bool {
	lower := strings.ToLower(name)

	for _, marker := range []string{"windows", ".exe", ".msi", "macos", "darwin", ".dmg"} {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	for _, entry := range kindSuffixes {
		if strings.HasSuffix(lower, entry.suffix) {
			return true
		}
	}
	return !strings.Contains(lower, "bsd")
}

// MatchesArch reports whether the asset file name is compatible with the
// running architecture. Names without any architecture token are treated as
// universal builds.
func MatchesArch(name string) bool {
	return matchesArch(name, runtime.GOARCH)
}

func matchesArch(name, goarch string) bool {
	lower := strings.ToLower(name)

	tagged := false
	for _, indicator := range archIndicators {
		if strings.Contains(lower, indicator) {
			tagged = true
			break
		}
	}
	if !tagged {
		return true
	}

	aliases, ok := archAliases[goarch]
	if !ok {
		aliases = []string{goarch}
	}
	for _, alias := range aliases {
		if strings.Contains(lower, alias) {
			return true
		}
	}
	return false
}
