// Package store persists tracked-application records as JSON on disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/fsutil"
)

// ErrNotFound is returned when no record matches the requested app.
var ErrNotFound = errors.New("app not found")

// ErrAlreadyTracked is returned when adding a repo that is already tracked.
var ErrAlreadyTracked = errors.New("repository already tracked")

// Store reads and writes the apps.json state file. It is a single-writer
// resource: callers sequence operations per application and per process.
// Every mutation rewrites the whole file atomically.
type Store struct {
	path string
	now  func() time.Time
}

// state is the on-disk shape. NextID grows monotonically and is never reused
// after an app is removed.
type state struct {
	NextID int64       `json:"next_id"`
	Apps   []*apps.App `json:"apps"`
}

// New returns a Store backed by path. The file is created on first mutation.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Add registers a new tracked application and allocates its id. All
// installation fields start empty.
func (s *Store) Add(owner, repo, displayName string) (*apps.App, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, app := range st.Apps {
		if strings.EqualFold(app.RepoOwner, owner) && strings.EqualFold(app.RepoName, repo) {
			return nil, fmt.Errorf("%s/%s: %w", owner, repo, ErrAlreadyTracked)
		}
	}
	if displayName == "" {
		displayName = repo
	}
	if st.NextID == 0 {
		st.NextID = 1
	}
	app := &apps.App{
		ID:          st.NextID,
		RepoOwner:   owner,
		RepoName:    repo,
		DisplayName: displayName,
		CreatedAt:   s.now().UTC(),
	}
	st.NextID++
	st.Apps = append(st.Apps, app)
	if err := s.save(st); err != nil {
		return nil, err
	}
	return app, nil
}

// List returns all tracked applications sorted by display name.
func (s *Store) List() ([]*apps.App, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(st.Apps, func(i, j int) bool {
		return strings.ToLower(st.Apps[i].DisplayName) < strings.ToLower(st.Apps[j].DisplayName)
	})
	return st.Apps, nil
}

// Get returns the app with the given id.
func (s *Store) Get(id int64) (*apps.App, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, app := range st.Apps {
		if app.ID == id {
			return app, nil
		}
	}
	return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// Find returns the app tracked for owner/repo.
func (s *Store) Find(owner, repo string) (*apps.App, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, app := range st.Apps {
		if strings.EqualFold(app.RepoOwner, owner) && strings.EqualFold(app.RepoName, repo) {
			return app, nil
		}
	}
	return nil, fmt.Errorf("%s/%s: %w", owner, repo, ErrNotFound)
}

// Remove deletes the app with the given id.
func (s *Store) Remove(id int64) error {
	st, err := s.load()
	if err != nil {
		return err
	}
	for i, app := range st.Apps {
		if app.ID == id {
			st.Apps = append(st.Apps[:i], st.Apps[i+1:]...)
			return s.save(st)
		}
	}
	return fmt.Errorf("id %d: %w", id, ErrNotFound)
}

// SetLatest records the result of an update check.
func (s *Store) SetLatest(id int64, latestVersion string) (*apps.App, error) {
	return s.update(id, func(app *apps.App) {
		now := s.now().UTC()
		app.LatestVersion = latestVersion
		app.LastChecked = &now
	})
}

// MarkInstalled sets the whole installation-field cluster in one write:
// installed version, install kind, launch command, and package name. Callers
// invoke it only after the underlying install fully succeeded.
func (s *Store) MarkInstalled(id int64, version string, kind apps.InstallKind, launchCommand, packageName string) (*apps.App, error) {
	return s.update(id, func(app *apps.App) {
		app.InstalledVersion = version
		app.InstallType = &kind
		app.LaunchCommand = launchCommand
		app.PackageName = packageName
	})
}

// MarkUninstalled clears the installation-field cluster in one write.
func (s *Store) MarkUninstalled(id int64) (*apps.App, error) {
	return s.update(id, func(app *apps.App) {
		app.InstalledVersion = ""
		app.InstallType = nil
		app.LaunchCommand = ""
		app.PackageName = ""
	})
}

func (s *Store) update(id int64, mutate func(*apps.App)) (*apps.App, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, app := range st.Apps {
		if app.ID == id {
			mutate(app)
			if err := s.save(st); err != nil {
				return nil, err
			}
			return app, nil
		}
	}
	return nil, fmt.Errorf("id %d: %w", id, ErrNotFound)
}

func (s *Store) load() (*state, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &state{NextID: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file %s: %w", s.path, err)
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	if st.NextID == 0 {
		st.NextID = 1
	}
	return &st, nil
}

func (s *Store) save(st *state) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file %s: %w", s.path, err)
	}
	return nil
}
