package cli

import (
	"alcyxob/win-tracker/internal/tracker"
	"errors"
	"fmt"
)

type ValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"Snapshot JSON file."`
}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	state, err := readState(cmd.File)
	if err != nil {
		return err
	}
	if err := tracker.Check(state); err != nil {
		if errors.Is(err, tracker.ErrLedgerOutOfSync) {
			fmt.Fprintf(ctx.Out, "⚠ %s: %v (run reconcile to repair)\n", cmd.File, err)
		}
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ %s: OK\n", cmd.File)
	return nil
}

type ReconcileCmd struct {
	File   string `arg:"" type:"existingfile" help:"Snapshot JSON file."`
	Output string `short:"o" help:"Write the result here instead of stdout."`
}

func (cmd *ReconcileCmd) Run(ctx *Context) error {
	state, err := readState(cmd.File)
	if err != nil {
		return err
	}
	if err := tracker.Check(state); err != nil && !errors.Is(err, tracker.ErrLedgerOutOfSync) {
		return fmt.Errorf("cannot reconcile: %w", err)
	}
	if tracker.Reconcile(state) && cmd.Output != "" {
		fmt.Fprintln(ctx.Out, "ledger re-derived from the day sequence")
	}
	return writeState(ctx.Out, cmd.Output, state)
}

type MergeCmd struct {
	Local  string `arg:"" type:"existingfile" help:"Local snapshot JSON file."`
	Remote string `arg:"" type:"existingfile" help:"Remote snapshot JSON file; its plan wins."`
	Output string `short:"o" help:"Write the result here instead of stdout."`
}

func (cmd *MergeCmd) Run(ctx *Context) error {
	local, err := readState(cmd.Local)
	if err != nil {
		return err
	}
	remote, err := readState(cmd.Remote)
	if err != nil {
		return err
	}
	merged := tracker.Merge(local, remote)
	if err := tracker.Check(merged); err != nil {
		return fmt.Errorf("merged state is inconsistent: %w", err)
	}
	return writeState(ctx.Out, cmd.Output, merged)
}

type StatusCmd struct {
	File string `arg:"" type:"existingfile" help:"Snapshot JSON file."`
}

func (cmd *StatusCmd) Run(ctx *Context) error {
	state, err := readState(cmd.File)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Goal: %d words\n", tracker.CountWords(state.GoalText))
	if state.Plan == nil {
		if tracker.CanStartChallenge(state) {
			fmt.Fprintln(ctx.Out, "Challenge: not started (ready to start)")
		} else {
			fmt.Fprintf(ctx.Out, "Challenge: not started (goal needs %d words)\n", tracker.MinGoalWords)
		}
		return nil
	}

	l := state.Ledger
	fmt.Fprintf(ctx.Out, "Started: %s\n", state.Plan.StartDate.Format("2006-01-02"))
	if tracker.IsComplete(state) {
		fmt.Fprintln(ctx.Out, "Challenge: complete")
	} else {
		fmt.Fprintf(ctx.Out, "Active day: %d of %d\n", tracker.ActiveDayIndex(state)+1, len(state.Plan.Days))
	}
	fmt.Fprintf(ctx.Out, "Calendar day: %d\n", tracker.CurrentDayIndex(state, ctx.Now())+1)
	fmt.Fprintf(ctx.Out, "Won: %d  Lost: %d\n", l.DaysWon, l.DaysLost)
	fmt.Fprintf(ctx.Out, "Win streak: %d (longest %d)\n", l.CurrentWinStreak, l.LongestWinStreak)
	if l.LossWarningActive() {
		fmt.Fprintf(ctx.Out, "⚠ Loss streak: %d\n", l.CurrentLossStreak)
	}
	return nil
}
