package main

import (
	"context"
	"fmt"

	"account-automator/internal/application/port/input"
	"account-automator/internal/application/port/output"
	"account-automator/internal/domain/entity"
	"account-automator/internal/infrastructure/manifest"
	"account-automator/internal/usecase/manager"

	"github.com/spf13/cobra"
)

type batchReport struct {
	Register *input.BatchResult `json:"register,omitempty"`
	Login    *input.BatchResult `json:"login,omitempty"`
}

func newBatchCmd(a *app) *cobra.Command {
	var resume bool
	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Run the registrations and logins listed in a manifest",
		Long: "Runs every register entry, then every login entry, one at a time. A batch stops at the\n" +
			"first result that needs a human (CAPTCHA, email or phone verification). With --resume the\n" +
			"console asks whether to continue with the remaining entries.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			regs, err := m.RegistrationRequests()
			if err != nil {
				return err
			}
			logins, err := m.LoginRequests()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			mgr := a.container.Manager
			opts := a.container.Options
			ui := a.container.Console

			var report batchReport
			show := func(label string, r entity.AutomationResult) {
				if !a.jsonOut {
					ui.ShowResult(ctx, label, r)
				}
			}

			if len(regs) > 0 {
				types := make([]entity.AccountType, len(regs))
				for i, r := range regs {
					types[i] = r.Type
				}
				report.Register = runResumable(ctx, ui, resume, types, show, func(ctx context.Context, offset int) *input.BatchResult {
					return mgr.RegisterBatch(ctx, regs[offset:], opts)
				})
			}
			if len(logins) > 0 && ctx.Err() == nil && !stopped(report.Register, resume) {
				types := make([]entity.AccountType, len(logins))
				for i, r := range logins {
					types[i] = r.Type
				}
				report.Login = runResumable(ctx, ui, resume, types, show, func(ctx context.Context, offset int) *input.BatchResult {
					return mgr.LoginBatch(ctx, logins[offset:], opts)
				})
			}

			if a.jsonOut {
				return a.printJSON(report)
			}
			for _, b := range []*input.BatchResult{report.Register, report.Login} {
				if b != nil && b.Remaining > 0 {
					fmt.Fprintf(a.out, "%d item(s) not attempted\n", b.Remaining)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&resume, "resume", false, "after a halt, ask and continue with the remaining items")
	return cmd
}

// stopped reports whether a halted batch should also skip the batches after it.
func stopped(b *input.BatchResult, resume bool) bool {
	return b != nil && b.Halted && b.Remaining > 0 && !resume
}

// runResumable runs a batch and, when resume is set, offers to continue after
// every halt. Labels stay relative to the full request list.
func runResumable(
	ctx context.Context,
	ui output.UserInteractionPort,
	resume bool,
	types []entity.AccountType,
	show func(label string, r entity.AutomationResult),
	run func(ctx context.Context, offset int) *input.BatchResult,
) *input.BatchResult {
	merged := input.NewBatchResult()
	offset := 0

	for offset < len(types) {
		res := run(ctx, offset)
		var last string
		for j, label := range res.Labels {
			last = manager.BatchLabel(types[offset+j], offset+j)
			merged.Add(last, res.Results[label])
			show(last, res.Results[label])
		}
		offset += res.Processed()
		merged.Halted = res.Halted
		merged.Remaining = res.Remaining

		if !res.Halted || res.Remaining == 0 || !resume || ctx.Err() != nil {
			break
		}
		result := merged.Results[last]
		question := fmt.Sprintf("%s needs manual action (%s). Continue with the remaining %d item(s)?",
			last, result.Status.Label(), res.Remaining)
		ok, err := ui.Confirm(ctx, question)
		if err != nil || !ok {
			break
		}
	}
	return merged
}
