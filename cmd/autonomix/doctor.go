package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/plebone/autonomix/internal/doctor"
	"github.com/plebone/autonomix/internal/github"
	"github.com/plebone/autonomix/internal/messages"
	"github.com/plebone/autonomix/internal/paths"
	"github.com/plebone/autonomix/internal/selfinstall"
	"github.com/plebone/autonomix/internal/update"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, messages.DoctorHeader)

			var results []doctor.Result
			results = append(results, doctor.CheckTools()...)

			p, err := paths.Default()
			if err != nil {
				results = append(results, doctor.Result{
					Status:         doctor.StatusFail,
					CheckName:      messages.DoctorCheckNameDirs,
					Message:        fmt.Sprintf(messages.DoctorPathsFailedFmt, err),
					Recommendation: messages.DoctorPathsFailedRec,
				})
			} else {
				results = append(results, doctor.CheckDirectories(p)...)
				results = append(results, doctor.CheckState(p.StatePath)...)
			}

			var token string
			if err == nil {
				cfgResults, cfg := doctor.CheckConfig(p.ConfigPath)
				results = append(results, cfgResults...)
				if cfg != nil {
					token = cfg.GitHubToken
				}
			}

			results = append(results, doctor.CheckSelfInstall(cmd.Context(), selfinstall.RealSystem{})...)
			results = append(results, checkSelfUpdate(cmd, token)...)

			hasFail := false
			for _, r := range results {
				printResult(out, r)
				if r.Status == doctor.StatusFail {
					hasFail = true
				}
			}

			if hasFail {
				fmt.Fprintln(out, color.RedString(messages.DoctorFailureSummary))
				return errors.New(messages.DoctorFailureError)
			}
			fmt.Fprintln(out, color.GreenString(messages.DoctorSuccessSummary))
			return nil
		},
	}
}

// checkSelfUpdate reports whether the running binary is current.
func checkSelfUpdate(cmd *cobra.Command, token string) []doctor.Result {
	client := github.NewClient(nil, token)
	result, err := update.Check(cmd.Context(), client, Version)
	if err != nil {
		if github.IsRateLimitError(err) {
			return []doctor.Result{{
				Status:    doctor.StatusWarn,
				CheckName: messages.DoctorCheckNameUpdate,
				Message:   messages.DoctorUpdateRateLimited,
			}}
		}
		return []doctor.Result{{
			Status:         doctor.StatusWarn,
			CheckName:      messages.DoctorCheckNameUpdate,
			Message:        fmt.Sprintf(messages.DoctorUpdateFailedFmt, err),
			Recommendation: messages.DoctorUpdateFailedRec,
		}}
	}
	if result.CurrentIsDev {
		return []doctor.Result{{
			Status:    doctor.StatusOK,
			CheckName: messages.DoctorCheckNameUpdate,
			Message:   fmt.Sprintf(messages.DoctorUpdateDevBuildFmt, result.Latest),
		}}
	}
	if result.Outdated {
		kind, detected := update.SelfKind(cmd.Context())
		return []doctor.Result{{
			Status:         doctor.StatusWarn,
			CheckName:      messages.DoctorCheckNameUpdate,
			Message:        fmt.Sprintf(messages.DoctorUpdateAvailableFmt, result.Latest, result.Current),
			Recommendation: update.Guidance(kind, detected),
		}}
	}
	return []doctor.Result{{
		Status:    doctor.StatusOK,
		CheckName: messages.DoctorCheckNameUpdate,
		Message:   fmt.Sprintf(messages.DoctorUpToDateFmt, result.Current),
	}}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	fmt.Fprintf(out, messages.DoctorResultLineFmt, status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		fmt.Fprintln(out, messages.DoctorRecommendationPrefix+r.Recommendation)
	}
}
