// Package github fetches release metadata for tracked repositories.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/plebone/autonomix/internal/assets"
)

// BaseURL is the GitHub API root. It is a variable so tests can point the
// client at an httptest server.
var BaseURL = "https://api.github.com"

const apiVersion = "2022-11-28"

// RateLimitError indicates GitHub's API rate limit was hit.
// Callers should treat this as a best-effort failure and avoid hammering.
type RateLimitError struct {
	StatusCode int
	Remaining  *int
}

func (e *RateLimitError) Error() string {
	remainingText := "unknown"
	if e.Remaining != nil {
		remainingText = strconv.Itoa(*e.Remaining)
	}
	return fmt.Sprintf("github api rate limit exceeded (status %d, remaining=%s)", e.StatusCode, remainingText)
}

// IsRateLimitError reports whether err represents a rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// ErrNoRelease is returned when a repository has no published release.
var ErrNoRelease = errors.New("repository has no published releases")

// Release is the subset of a GitHub release the tracker consumes.
type Release struct {
	TagName     string
	Name        string
	Prerelease  bool
	PublishedAt *time.Time
	Assets      []assets.Asset
}

// Version returns the release tag without a leading v/V or release- prefix.
func (r *Release) Version() string {
	return versionPrefixPattern.ReplaceAllString(r.TagName, "")
}

var versionPrefixPattern = regexp.MustCompile(`^[vV]?(?:release[_-]?)?`)

// Client talks to the GitHub REST API. A token is optional and only raises
// rate limits / grants private repo access.
type Client struct {
	httpClient *http.Client
	token      string
}

// NewClient returns a Client. When httpClient is nil a default with a short
// timeout is used; metadata requests should fail fast, downloads go through
// internal/download.
func NewClient(httpClient *http.Client, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{httpClient: httpClient, token: token}
}

type releaseResponse struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	Prerelease  bool   `json:"prerelease"`
	Draft       bool   `json:"draft"`
	PublishedAt string `json:"published_at"`
	Assets      []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		Size               int64  `json:"size"`
	} `json:"assets"`
}

// LatestRelease returns the latest published release for owner/repo.
// Returns ErrNoRelease when the repository has none.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", BaseURL, owner, repo)
	var rel releaseResponse
	if err := c.getJSON(ctx, url, &rel); err != nil {
		return nil, err
	}
	return decodeRelease(rel), nil
}

// Releases returns published releases for owner/repo, newest first.
// Prereleases are filtered out unless includePrerelease is set; drafts are
// always dropped.
func (c *Client) Releases(ctx context.Context, owner, repo string, includePrerelease bool) ([]*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases", BaseURL, owner, repo)
	var raw []releaseResponse
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}
	releases := make([]*Release, 0, len(raw))
	for _, rel := range raw {
		if rel.Draft {
			continue
		}
		if rel.Prerelease && !includePrerelease {
			continue
		}
		releases = append(releases, decodeRelease(rel))
	}
	return releases, nil
}

func (c *Client) getJSON(ctx context.Context, url string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github api request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNoRelease
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		if remaining, ok := rateLimitRemaining(resp.Header); ok && remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Remaining: &remaining}
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return &RateLimitError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("github api request failed: status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("github api request failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func rateLimitRemaining(header http.Header) (int, bool) {
	raw := strings.TrimSpace(header.Get("X-RateLimit-Remaining"))
	if raw == "" {
		return 0, false
	}
	remaining, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return remaining, true
}

func decodeRelease(rel releaseResponse) *Release {
	out := &Release{
		TagName:    rel.TagName,
		Name:       rel.Name,
		Prerelease: rel.Prerelease,
	}
	if rel.Name == "" {
		out.Name = rel.TagName
	}
	if ts, err := time.Parse(time.RFC3339, rel.PublishedAt); err == nil {
		out.PublishedAt = &ts
	}
	for _, a := range rel.Assets {
		out.Assets = append(out.Assets, assets.Asset{
			Name:        a.Name,
			DownloadURL: a.BrowserDownloadURL,
			Size:        a.Size,
		})
	}
	return out
}
