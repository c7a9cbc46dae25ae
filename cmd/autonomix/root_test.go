package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plebone/autonomix/internal/config"
	"github.com/plebone/autonomix/internal/github"
	"github.com/plebone/autonomix/internal/paths"
	"github.com/plebone/autonomix/internal/store"
)

// withTestEnv routes commands at a throwaway store, config, and data tree.
func withTestEnv(t *testing.T) *cliEnv {
	t.Helper()
	root := t.TempDir()
	p := paths.Paths{
		ConfigDir:    root,
		ConfigPath:   filepath.Join(root, "config.toml"),
		StatePath:    filepath.Join(root, "apps.json"),
		DataDir:      filepath.Join(root, "data"),
		DownloadsDir: filepath.Join(root, "data", "downloads"),
		AppImageDir:  filepath.Join(root, "data", "appimages"),
	}
	env := &cliEnv{
		paths: p,
		store: store.New(p.StatePath),
		cfg:   &config.Config{},
	}

	orig := loadEnvFunc
	loadEnvFunc = func() (*cliEnv, error) { return env, nil }
	t.Cleanup(func() { loadEnvFunc = orig })
	return env
}

// withRelease serves releaseJSON as the one release of every repository.
// An empty releaseJSON answers 404 so clients see no published releases.
func withRelease(t *testing.T, releaseJSON string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if releaseJSON == "" {
			http.NotFound(w, r)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/releases/latest") {
			fmt.Fprint(w, releaseJSON)
			return
		}
		fmt.Fprintf(w, "[%s]", releaseJSON)
	}))
	t.Cleanup(server.Close)

	orig := github.BaseURL
	github.BaseURL = server.URL
	t.Cleanup(func() { github.BaseURL = orig })
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
