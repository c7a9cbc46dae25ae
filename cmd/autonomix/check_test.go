package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/github"
)

func TestCheckReportsUpdate(t *testing.T) {
	env := withTestEnv(t)
	withRelease(t, `{"tag_name": "v1.1.0", "assets": []}`)

	app, _ := env.store.Add("octo", "app", "")
	if _, err := env.store.MarkInstalled(app.ID, "1.0.0", apps.KindDeb, "", "app"); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stdout, "app: 1.1.0") || !strings.Contains(stdout, "update available") {
		t.Errorf("missing update line: %q", stdout)
	}

	refreshed, err := env.store.Get(app.ID)
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.LatestVersion != "1.1.0" {
		t.Errorf("LatestVersion = %q, want 1.1.0", refreshed.LatestVersion)
	}
	if refreshed.LastChecked == nil {
		t.Error("LastChecked should be set")
	}
}

func TestCheckSingleApp(t *testing.T) {
	env := withTestEnv(t)
	withRelease(t, `{"tag_name": "v2.0.0", "assets": []}`)

	if _, err := env.store.Add("octo", "app", ""); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "check", "1")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stdout, "app: 2.0.0") {
		t.Errorf("missing check line: %q", stdout)
	}
}

func TestCheckNothingTracked(t *testing.T) {
	withTestEnv(t)

	stdout, _, err := runCLI(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stdout, "nothing to check") {
		t.Errorf("missing empty message: %q", stdout)
	}
}

func TestCheckNoReleases(t *testing.T) {
	env := withTestEnv(t)
	withRelease(t, "")

	if _, err := env.store.Add("octo", "quiet", ""); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stdout, "quiet: no published releases") {
		t.Errorf("missing no-release line: %q", stdout)
	}
}

func TestCheckRateLimited(t *testing.T) {
	env := withTestEnv(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	}))
	t.Cleanup(server.Close)
	orig := github.BaseURL
	github.BaseURL = server.URL
	t.Cleanup(func() { github.BaseURL = orig })

	if _, err := env.store.Add("octo", "app", ""); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "check")
	if err == nil || !strings.Contains(err.Error(), "rate limit") {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}
