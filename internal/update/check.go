// Package update checks whether Autonomix itself is outdated and renders
// per-install-kind upgrade guidance.
package update

import (
	"context"
	"strings"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/github"
	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/selfinstall"
)

// Repo identifies the GitHub repository used for self-update checks.
const Repo = "plebone/autonomix"

// CheckResult captures the latest self-release check outcome.
type CheckResult struct {
	Current      string
	Latest       string
	Outdated     bool
	CurrentIsDev bool
}

// Check fetches the latest Autonomix release and compares it to
// currentVersion. Dev builds are flagged rather than compared.
func Check(ctx context.Context, client *github.Client, currentVersion string) (CheckResult, error) {
	owner, repo, err := github.ParseRepo(Repo)
	if err != nil {
		return CheckResult{}, err
	}
	rel, err := client.LatestRelease(ctx, owner, repo)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{
		Current: apps.NormalizeVersion(currentVersion),
		Latest:  apps.NormalizeVersion(rel.Version()),
	}
	if strings.TrimSpace(currentVersion) == "" || currentVersion == "dev" {
		result.CurrentIsDev = true
		return result, nil
	}
	result.Outdated = apps.HasUpdate(currentVersion, rel.Version())
	return result, nil
}

// Guidance returns the upgrade instructions matching how the running
// Autonomix instance was installed. detected is false when self-install
// detection found nothing, in which case only manual guidance applies.
func Guidance(kind apps.InstallKind, detected bool) string {
	if !detected {
		return messages.UpdateGuidanceManual
	}
	switch kind {
	case apps.KindDeb:
		return messages.UpdateGuidanceDeb
	case apps.KindRpm:
		return messages.UpdateGuidanceRpm
	case apps.KindFlatpak:
		return messages.UpdateGuidanceFlatpak
	case apps.KindSnap:
		return messages.UpdateGuidanceSnap
	case apps.KindAppImage:
		return messages.UpdateGuidanceAppImage
	case apps.KindBinary:
		return messages.UpdateGuidanceBinary
	}
	return messages.UpdateGuidanceManual
}

// SelfKind reports how the running instance was installed.
// It is a seam for tests.
var SelfKind = func(ctx context.Context) (apps.InstallKind, bool) {
	return selfinstall.Detect(ctx, selfinstall.RealSystem{})
}
