// Package config loads the Autonomix user configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/installer"
	"github.com/plebone/autonomix/internal/messages"
)

// EnvGitHubToken overrides the configured GitHub token when set.
const EnvGitHubToken = "AUTONOMIX_GITHUB_TOKEN"

// Config is the user configuration read from config.toml. A missing file is
// not an error; every field has a usable zero value.
type Config struct {
	// GitHubToken raises API rate limits and grants private repo access.
	GitHubToken string `toml:"github_token"`
	// IncludePrereleases makes update checks consider prerelease tags.
	IncludePrereleases bool `toml:"include_prereleases"`
	// PreferredKind names the install kind picked first when a release
	// offers several. Empty means ask (interactive) or native-first.
	PreferredKind string `toml:"preferred_kind"`
}

// Load reads the config file at path, applies environment overrides, and
// validates. A missing file yields the default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults apply.
	case err != nil:
		return nil, fmt.Errorf(messages.ConfigReadFailedFmt, path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf(messages.ConfigInvalidFmt, path, err)
		}
	}

	if token := os.Getenv(EnvGitHubToken); token != "" {
		cfg.GitHubToken = token
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.PreferredKind != "" {
		kind, ok := apps.ParseInstallKind(c.PreferredKind)
		if !ok {
			return fmt.Errorf(messages.ConfigUnknownKindFmt, c.PreferredKind)
		}
		if !installer.Installable(kind) {
			return fmt.Errorf(messages.ConfigUnusableKindFmt, c.PreferredKind)
		}
	}
	return nil
}

// Preferred returns the configured preferred install kind, if any.
func (c *Config) Preferred() (apps.InstallKind, bool) {
	if c.PreferredKind == "" {
		return "", false
	}
	return apps.ParseInstallKind(c.PreferredKind)
}
