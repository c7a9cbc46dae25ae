// Package assets classifies GitHub release assets into installable package
// kinds and selects candidates for the running host.
package assets

import (
	"strings"

	"github.com/plebone/autonomix/internal/apps"
)

// Asset is a single downloadable file attached to a release, as reported by
// the release-fetch client.
type Asset struct {
	Name        string
	DownloadURL string
	Size        int64
}

// kindSuffixes maps file-name suffixes to install kinds. Matching is
// case-insensitive.
var kindSuffixes = []struct {
	suffix string
	kind   apps.InstallKind
}{
	{suffix: ".deb", kind: apps.KindDeb},
	{suffix: ".rpm", kind: apps.KindRpm},
	{suffix: ".appimage", kind: apps.KindAppImage},
	{suffix: ".flatpak", kind: apps.KindFlatpak},
	{suffix: ".snap", kind: apps.KindSnap},
}

// Classify maps an asset file name to its install kind. The second return is
// false for assets that are not an installable package (checksums, archives,
// release notes), which callers exclude from the candidate set.
func Classify(fileName string) (apps.InstallKind, bool) {
	lower := strings.ToLower(fileName)
	for _, entry := range kindSuffixes {
		if strings.HasSuffix(lower, entry.suffix) {
			return entry.kind, true
		}
	}
	return "", false
}

// Candidates maps each install kind present in the release to one asset.
// When several assets classify to the same kind, the last one in iteration
// order wins; assets for other operating systems or architectures are
// filtered out first.
func Candidates(list []Asset) map[apps.InstallKind]Asset {
	candidates := make(map[apps.InstallKind]Asset)
	for _, asset := range list {
		kind, ok := Classify(asset.Name)
		if !ok {
			continue
		}
		if !LinuxAsset(asset.Name) || !MatchesArch(asset.Name) {
			continue
		}
		candidates[kind] = asset
	}
	return candidates
}
