// Package download fetches release assets into the managed downloads
// directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPStatusError reports a fetch that completed with a non-success status.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("download %s: unexpected status %d", e.URL, e.StatusCode)
}

// Manager downloads assets into a single managed directory. One fetch at a
// time; callers sequence their own calls.
type Manager struct {
	dir    string
	client *http.Client
}

// NewManager returns a Manager writing into dir. The directory is created on
// first use. A nil client selects a default with a generous timeout sized for
// large package downloads.
func NewManager(dir string, client *http.Client) *Manager {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Minute}
	}
	return &Manager{dir: dir, client: client}
}

// Dir returns the managed downloads directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Fetch downloads url into the managed directory under fileName and returns
// the local path. The file name is reduced to its base name so an asset name
// carrying path separators cannot escape the managed directory. The body is
// streamed to a .partial file and renamed into place on success, so a failed
// fetch never leaves a truncated file at the final path. Non-2xx responses
// surface as *HTTPStatusError.
func (m *Manager) Fetch(ctx context.Context, url, fileName string) (string, error) {
	fileName = filepath.Base(fileName)
	if fileName == "." || fileName == ".." || fileName == string(filepath.Separator) {
		return "", fmt.Errorf("invalid asset file name %q", fileName)
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create downloads dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	dest := filepath.Join(m.dir, fileName)
	partial := dest + ".partial"
	out, err := os.Create(partial)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", partial, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		_ = os.Remove(partial)
		return "", fmt.Errorf("write %s: %w", partial, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(partial)
		return "", fmt.Errorf("close %s: %w", partial, err)
	}
	if err := os.Rename(partial, dest); err != nil {
		_ = os.Remove(partial)
		return "", fmt.Errorf("finalize %s: %w", dest, err)
	}
	return dest, nil
}
