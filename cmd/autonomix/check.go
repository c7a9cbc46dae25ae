package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/github"
	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/store"
	"github.com/plebone/autonomix/internal/update"
)

func newCheckCmd() *cobra.Command {
	var includePrereleases bool

	cmd := &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvFunc()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("prereleases") {
				includePrereleases = env.cfg.IncludePrereleases
			}

			var targets []*apps.App
			if len(args) == 1 {
				id, err := parseAppID(args[0])
				if err != nil {
					return err
				}
				app, err := env.store.Get(id)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return fmt.Errorf(messages.RemoveNotFoundFmt, id)
					}
					return err
				}
				targets = []*apps.App{app}
			} else {
				targets, err = env.store.List()
				if err != nil {
					return err
				}
				if len(targets) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), messages.CheckNoApps)
					return nil
				}
			}

			client := env.githubClient()
			out := cmd.OutOrStdout()
			failed := false
			for _, app := range targets {
				release, err := latestRelease(cmd.Context(), client, app.RepoOwner, app.RepoName, includePrereleases)
				if err != nil {
					if github.IsRateLimitError(err) {
						return errors.New(messages.CheckRateLimited)
					}
					if errors.Is(err, github.ErrNoRelease) {
						fmt.Fprintln(out, fmt.Sprintf(messages.CheckNoReleaseFmt, app.DisplayName))
						continue
					}
					failed = true
					fmt.Fprintln(cmd.ErrOrStderr(), fmt.Sprintf(messages.CheckFailedFmt, app.DisplayName, err))
					continue
				}

				refreshed, err := env.store.SetLatest(app.ID, release.Version())
				if err != nil {
					return err
				}
				line := fmt.Sprintf(messages.CheckOneFmt, refreshed.DisplayName, refreshed.LatestVersion)
				switch {
				case refreshed.HasUpdate():
					line += color.YellowString(messages.CheckUpdateSuffixFmt, refreshed.InstalledVersion)
				case refreshed.Installed():
					line += color.GreenString(messages.CheckCurrentSuffix)
				}
				fmt.Fprintln(out, line)
			}

			warnIfSelfOutdated(cmd, client)

			if failed {
				return errors.New(messages.CheckSomeFailed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includePrereleases, "prereleases", false, messages.CheckFlagPrereleases)

	return cmd
}

// warnIfSelfOutdated appends self-update guidance after release checks.
// Failures are silent; an update hint must never break a check run.
func warnIfSelfOutdated(cmd *cobra.Command, client *github.Client) {
	result, err := update.Check(cmd.Context(), client, Version)
	if err != nil || result.CurrentIsDev || !result.Outdated {
		return
	}
	kind, detected := update.SelfKind(cmd.Context())
	fmt.Fprint(cmd.ErrOrStderr(), messages.CheckSelfUpdateHeader)
	fmt.Fprintf(cmd.ErrOrStderr(), "  %s -> %s\n  %s\n", result.Current, result.Latest, update.Guidance(kind, detected))
}
