package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/messages"
)

func newListCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvFunc()
			if err != nil {
				return err
			}
			tracked, err := env.store.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(tracked, "", "  ")
				if err != nil {
					return fmt.Errorf(messages.ListMarshalFailFmt, err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if len(tracked) == 0 {
				fmt.Fprintln(out, messages.ListEmpty)
				return nil
			}

			fmt.Fprintf(out, messages.ListHeaderFmt,
				messages.ListHeaderID, messages.ListHeaderName,
				messages.ListHeaderInstall, messages.ListHeaderLatest,
				messages.ListHeaderStatus)

			installed, updates := 0, 0
			for _, app := range tracked {
				if app.Installed() {
					installed++
				}
				if app.HasUpdate() {
					updates++
				}
				fmt.Fprintf(out, messages.ListRowFmt,
					app.ID, app.DisplayName,
					orDash(app.InstalledVersion), orDash(app.LatestVersion),
					statusFor(app))
			}
			fmt.Fprintf(out, messages.ListSummaryFmt, len(tracked), installed, updates)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, messages.ListFlagJSON)

	return cmd
}

func orDash(s string) string {
	if s == "" {
		return messages.ListValueNone
	}
	return s
}

func statusFor(app *apps.App) string {
	switch {
	case app.HasUpdate():
		return color.YellowString(messages.ListStatusUpdate)
	case app.Installed():
		return color.GreenString(messages.ListStatusCurrent)
	case app.LatestVersion == "":
		return messages.ListStatusUnknown
	default:
		return messages.ListStatusTracked
	}
}
