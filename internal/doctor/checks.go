package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/plebone/autonomix/internal/apps"
	"github.com/plebone/autonomix/internal/config"
	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/paths"
	"github.com/plebone/autonomix/internal/selfinstall"
	"github.com/plebone/autonomix/internal/store"
	"github.com/plebone/autonomix/internal/sysexec"
)

var lookPathFunc = exec.LookPath

// hostTools maps each install mechanism to the command doctor looks for.
var hostTools = []struct {
	tool string
	kind apps.InstallKind
}{
	{"dpkg", apps.KindDeb},
	{"rpm", apps.KindRpm},
	{"flatpak", apps.KindFlatpak},
	{"snap", apps.KindSnap},
}

// CheckTools reports which packaging tools are present on PATH.
func CheckTools() []Result {
	var results []Result
	found := 0
	for _, ht := range hostTools {
		path, err := lookPathFunc(ht.tool)
		if err != nil {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameTools,
				Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, ht.tool),
				Recommendation: fmt.Sprintf(messages.DoctorToolMissingRecFmt, ht.tool, ht.kind.Label()),
			})
			continue
		}
		found++
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameTools,
			Message:   fmt.Sprintf(messages.DoctorToolFoundFmt, ht.tool, path),
		})
	}
	if found == 0 {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameTools,
			Message:        messages.DoctorNoInstallerTools,
			Recommendation: messages.DoctorNoInstallerToolRec,
		})
	}
	if path, err := lookPathFunc(sysexec.PrivilegeHelper); err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameTools,
			Message:        messages.DoctorPkexecMissing,
			Recommendation: messages.DoctorPkexecMissingRec,
		})
	} else {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameTools,
			Message:   fmt.Sprintf(messages.DoctorToolFoundFmt, sysexec.PrivilegeHelper, path),
		})
	}
	return results
}

// CheckDirectories verifies that the managed data directories are usable.
// Missing directories are fine; they are created on first use.
func CheckDirectories(p paths.Paths) []Result {
	var results []Result
	for _, dir := range []string{p.DataDir, p.DownloadsDir, p.AppImageDir} {
		info, err := os.Stat(dir)
		if errors.Is(err, os.ErrNotExist) {
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNameDirs,
				Message:   fmt.Sprintf(messages.DoctorDirMissingFmt, dir),
			})
			continue
		}
		if err != nil {
			results = append(results, Result{
				Status:    StatusFail,
				CheckName: messages.DoctorCheckNameDirs,
				Message:   fmt.Sprintf(messages.DoctorDirCheckFailedFmt, dir, err),
			})
			continue
		}
		if !info.IsDir() || !writable(dir) {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNameDirs,
				Message:        fmt.Sprintf(messages.DoctorDirNotWritableFmt, dir),
				Recommendation: messages.DoctorDirNotWritableRec,
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameDirs,
			Message:   fmt.Sprintf(messages.DoctorDirExistsFmt, dir),
		})
	}
	return results
}

// writable probes the directory by creating and removing a scratch file.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// CheckState verifies the tracked-application state file loads cleanly.
func CheckState(statePath string) []Result {
	if _, err := os.Stat(statePath); errors.Is(err, os.ErrNotExist) {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameState,
			Message:   messages.DoctorStateMissing,
		}}
	}
	tracked, err := store.New(statePath).List()
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameState,
			Message:        fmt.Sprintf(messages.DoctorStateCorruptFmt, err),
			Recommendation: messages.DoctorStateCorruptRec,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameState,
		Message:   fmt.Sprintf(messages.DoctorStateLoadedFmt, len(tracked)),
	}}
}

// CheckConfig validates the config file and reports whether a GitHub token
// is available. A missing config file is not an error.
func CheckConfig(configPath string) ([]Result, *config.Config) {
	var results []Result
	cfg, err := config.Load(configPath)
	if err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigInvalidFmt, err),
			Recommendation: messages.DoctorConfigInvalidRec,
		})
		return results, nil
	}
	if _, statErr := os.Stat(configPath); errors.Is(statErr, os.ErrNotExist) {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   messages.DoctorConfigMissing,
		})
	} else {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   messages.DoctorConfigLoaded,
		})
	}
	if cfg.GitHubToken != "" {
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameConfig,
			Message:   messages.DoctorTokenSet,
		})
	} else {
		results = append(results, Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        messages.DoctorTokenUnset,
			Recommendation: messages.DoctorTokenUnsetRec,
		})
	}
	return results, cfg
}

// CheckSelfInstall reports which mechanism manages the running binary.
func CheckSelfInstall(ctx context.Context, sys selfinstall.System) []Result {
	kind, ok := selfinstall.Detect(ctx, sys)
	if !ok {
		return []Result{{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameSelf,
			Message:        messages.DoctorSelfUnknown,
			Recommendation: messages.DoctorSelfUnknownRec,
		}}
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameSelf,
		Message:   fmt.Sprintf(messages.DoctorSelfDetectedFmt, kind.Label()),
	}}
}
