package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/assets"
	"github.com/plebone/autonomix/internal/download"
	"github.com/plebone/autonomix/internal/github"
	"github.com/plebone/autonomix/internal/installer"
	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/selfinstall"
	"github.com/plebone/autonomix/internal/store"
	"github.com/plebone/autonomix/internal/terminal"
)

// Seams for tests: kind prompts need a TTY, installer detection probes PATH.
var (
	isInteractiveFunc = terminal.IsInteractive
	promptKindFunc    = promptKind
	availableKinds    = func() []apps.InstallKind {
		return selfinstall.AvailableKinds(selfinstall.RealSystem{})
	}
)

func newInstallCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
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

			release, err := latestRelease(cmd.Context(), env.githubClient(), app.RepoOwner, app.RepoName, env.cfg.IncludePrereleases)
			if err != nil {
				if errors.Is(err, github.ErrNoRelease) {
					return fmt.Errorf(messages.InstallNoVersionFmt, app.DisplayName, app.ID)
				}
				if github.IsRateLimitError(err) {
					return errors.New(messages.CheckRateLimited)
				}
				return err
			}
			version := release.Version()
			if _, err := env.store.SetLatest(app.ID, version); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if app.Installed() && apps.NormalizeVersion(app.InstalledVersion) == apps.NormalizeVersion(version) {
				fmt.Fprintf(out, messages.InstallAlreadyFmt, app.DisplayName, app.InstalledVersion)
				return nil
			}

			candidates := assets.Candidates(release.Assets)
			if len(candidates) == 0 {
				return fmt.Errorf(messages.InstallNoAssetsFmt, version, app.DisplayName)
			}

			kind, err := chooseKind(env, app, version, kindFlag, candidates)
			if err != nil {
				return err
			}
			asset := candidates[kind]

			if app.Installed() {
				fmt.Fprintf(out, messages.InstallUpgradeFmt, app.DisplayName, app.InstalledVersion, version)
			}

			fmt.Fprintf(out, messages.InstallDownloadingFmt, asset.Name, humanSize(asset.Size))
			dl := download.NewManager(env.paths.DownloadsDir, nil)
			file, err := dl.Fetch(cmd.Context(), asset.DownloadURL, asset.Name)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, messages.InstallInstallingFmt, app.DisplayName, version, kind.Label())
			result, err := env.installer().Install(cmd.Context(), app, kind, file)
			if err != nil {
				return err
			}
			if _, err := env.store.MarkInstalled(app.ID, version, kind, result.LaunchPath, result.PackageName); err != nil {
				return err
			}
			fmt.Fprintf(out, messages.InstallDoneFmt, app.DisplayName, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", messages.InstallFlagKind)

	return cmd
}

// chooseKind resolves which package format to install: an explicit --kind
// wins, then the configured preference, then the only candidate, then an
// interactive prompt.
func chooseKind(env *cliEnv, app *apps.App, version, kindFlag string, candidates map[apps.InstallKind]assets.Asset) (apps.InstallKind, error) {
	if kindFlag != "" {
		kind, ok := apps.ParseInstallKind(kindFlag)
		if !ok {
			return "", fmt.Errorf(messages.InstallUnknownKindFmt, kindFlag)
		}
		if !installer.Installable(kind) {
			return "", fmt.Errorf(messages.InstallUnusableKindFmt, kind)
		}
		if _, ok := candidates[kind]; !ok {
			return "", fmt.Errorf(messages.InstallKindMissingFmt, version, app.DisplayName, kind, kindList(candidates))
		}
		return kind, nil
	}

	usable := filterInstallable(candidates)
	if len(usable) == 0 {
		return "", fmt.Errorf(messages.InstallNoAssetsFmt, version, app.DisplayName)
	}

	if preferred, ok := env.cfg.Preferred(); ok {
		for _, kind := range usable {
			if kind == preferred {
				return kind, nil
			}
		}
	}
	if len(usable) == 1 {
		return usable[0], nil
	}
	if !isInteractiveFunc() {
		return "", fmt.Errorf(messages.InstallPickRequiresTerm, kindNames(usable))
	}
	return promptKindFunc(app, version, usable)
}

// filterInstallable keeps candidate kinds the host has tools for and the
// orchestrator can actually install, in preference order.
func filterInstallable(candidates map[apps.InstallKind]assets.Asset) []apps.InstallKind {
	available := availableKinds()
	var usable []apps.InstallKind
	for _, kind := range apps.Kinds() {
		if !installer.Installable(kind) {
			continue
		}
		if _, ok := candidates[kind]; !ok {
			continue
		}
		for _, a := range available {
			if a == kind {
				usable = append(usable, kind)
				break
			}
		}
	}
	return usable
}

func promptKind(app *apps.App, version string, usable []apps.InstallKind) (apps.InstallKind, error) {
	options := make([]huh.Option[apps.InstallKind], len(usable))
	for i, kind := range usable {
		options[i] = huh.NewOption(kind.Label(), kind)
	}
	var chosen apps.InstallKind
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[apps.InstallKind]().
			Title(fmt.Sprintf(messages.InstallPickPromptFmt, app.DisplayName, version)).
			Options(options...).
			Value(&chosen),
	))
	if err := form.Run(); err != nil {
		return "", err
	}
	return chosen, nil
}

func kindList(candidates map[apps.InstallKind]assets.Asset) string {
	var names []string
	for _, kind := range apps.Kinds() {
		if _, ok := candidates[kind]; ok {
			names = append(names, kind.String())
		}
	}
	return strings.Join(names, ", ")
}

func kindNames(kinds []apps.InstallKind) string {
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = kind.String()
	}
	return strings.Join(names, ", ")
}

// humanSize renders an asset byte count for download output.
func humanSize(n int64) string {
	if n <= 0 {
		return messages.SizeUnknown
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
