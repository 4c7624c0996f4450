package main

import (
	"alcyxob/win-tracker/internal/cli"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Version kong.VersionFlag

	Validate  cli.ValidateCmd  `cmd:"" help:"Check a snapshot's day sequence and ledger."`
	Reconcile cli.ReconcileCmd `cmd:"" help:"Re-derive the ledger from the day sequence."`
	Merge     cli.MergeCmd     `cmd:"" help:"Merge a local and a remote snapshot."`
	Status    cli.StatusCmd    `cmd:"" help:"Summarize a snapshot." default:"withargs"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("wintrackctl"),
		kong.Description("Inspect and repair 90 day win tracker snapshots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": "v0.1.0"},
	)

	err := ctx.Run(&cli.Context{Out: os.Stdout, Now: time.Now})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
