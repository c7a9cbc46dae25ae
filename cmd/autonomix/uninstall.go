package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/store"
)

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
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
			if !app.Installed() {
				return fmt.Errorf(messages.UninstallNotInstalledFmt, app.DisplayName)
			}

			if err := env.installer().Uninstall(cmd.Context(), app); err != nil {
				return err
			}
			if _, err := env.store.MarkUninstalled(app.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), messages.UninstallDoneFmt, app.DisplayName)
			return nil
		},
	}
}
