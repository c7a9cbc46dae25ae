package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/config"
	"github.com/plebone/autonomix/internal/github"
	"github.com/plebone/autonomix/internal/installer"
	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/paths"
	"github.com/plebone/autonomix/internal/store"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newAddCmd(),
		newRemoveCmd(),
		newListCmd(),
		newCheckCmd(),
		newInstallCmd(),
		newUninstallCmd(),
		newLaunchCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// cliEnv bundles the resolved paths, store, and config a command needs.
type cliEnv struct {
	paths paths.Paths
	store *store.Store
	cfg   *config.Config
}

var loadEnvFunc = loadEnv

func loadEnv() (*cliEnv, error) {
	p, err := paths.Default()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	return &cliEnv{
		paths: p,
		store: store.New(p.StatePath),
		cfg:   cfg,
	}, nil
}

func (e *cliEnv) githubClient() *github.Client {
	return github.NewClient(nil, e.cfg.GitHubToken)
}

func (e *cliEnv) installer() *installer.Installer {
	applicationsDir, err := paths.ApplicationsDir()
	if err != nil {
		applicationsDir = ""
	}
	return installer.New(installer.Options{
		AppImageDir:     e.paths.AppImageDir,
		ApplicationsDir: applicationsDir,
	})
}

// parseAppID converts a positional argument into an application id.
func parseAppID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf(messages.RemoveInvalidIDFmt, arg)
	}
	return id, nil
}

// latestRelease fetches the newest release for an app, honoring the
// prerelease preference.
func latestRelease(ctx context.Context, client *github.Client, owner, repo string, includePrerelease bool) (*github.Release, error) {
	if !includePrerelease {
		return client.LatestRelease(ctx, owner, repo)
	}
	releases, err := client.Releases(ctx, owner, repo, true)
	if err != nil {
		return nil, err
	}
	if len(releases) == 0 {
		return nil, github.ErrNoRelease
	}
	return releases[0], nil
}
