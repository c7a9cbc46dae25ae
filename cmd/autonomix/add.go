package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/github"
	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/store"
)

func newAddCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   messages.AddUse,
		Short: messages.AddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := github.ParseRepo(args[0])
			if err != nil {
				return fmt.Errorf(messages.AddInvalidRepoFmt, args[0])
			}

			env, err := loadEnvFunc()
			if err != nil {
				return err
			}

			app, err := env.store.Add(owner, repo, displayName)
			if err != nil {
				if errors.Is(err, store.ErrAlreadyTracked) {
					return fmt.Errorf(messages.AddAlreadyTrackedFmt, owner+"/"+repo)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), messages.AddTrackedFmt, app.DisplayName, app.RepoSlug())

			// Release lookup is best effort; tracking succeeds without it.
			release, err := latestRelease(cmd.Context(), env.githubClient(), owner, repo, env.cfg.IncludePrereleases)
			if err != nil {
				if errors.Is(err, github.ErrNoRelease) {
					fmt.Fprintf(cmd.ErrOrStderr(), messages.AddNoReleaseWarnFmt, app.RepoSlug())
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), messages.AddCheckFailedFmt, app.RepoSlug(), err)
				}
				return nil
			}
			if _, err := env.store.SetLatest(app.ID, release.Version()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), messages.AddCheckedVerFmt, release.Version())
			return nil
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", messages.AddFlagName)

	return cmd
}
