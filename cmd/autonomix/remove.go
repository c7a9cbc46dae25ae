package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/store"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.RemoveUse,
		Short: messages.RemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseAppID(args[0])
			if err != nil {
				return err
			}

			env, err := loadEnvFunc()
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

			if app.Installed() {
				fmt.Fprintf(cmd.ErrOrStderr(), messages.RemoveStillInstalledFmt, app.DisplayName)
			}
			if err := env.store.Remove(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), messages.RemovedFmt, app.DisplayName)
			return nil
		},
	}
}
