package github

import (
	"fmt"
	"regexp"
	"strings"
)

var repoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com/([^/\s]+)/([^/\s]+?)(?:\.git)?(?:/.*)?$`),
	regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`),
}

// ParseRepo extracts the owner and repository name from a GitHub URL or a
// bare "owner/repo" reference.
func ParseRepo(ref string) (owner, repo string, err error) {
	ref = strings.TrimSpace(ref)
	for _, pattern := range repoPatterns {
		if match := pattern.FindStringSubmatch(ref); match != nil {
			return match[1], match[2], nil
		}
	}
	return "", "", fmt.Errorf("could not parse GitHub repository from %q", ref)
}
