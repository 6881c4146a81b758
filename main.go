package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

var gitCommitSHA = ""

func main() {
	// set up a context that is canceled when a command is interrupted
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// set up a signal handler to cancel the context
	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)

		select {
		case <-interrupt:
			fmt.Println()
			klog.Info("received interrupt signal")
			cancel()
		case <-ctx.Done():
		}

		// Allow any further SIGTERM or SIGINT to kill process
		signal.Stop(interrupt)
	}()

	correctCmd := newCmd_Correct()

	app := &cli.App{
		Name:        "kcorrect",
		Version:     gitCommitSHA,
		Description: "Correct sequencing errors in FASTA reads using k-mer abundance counting.",
		Before: func(c *cli.Context) error {
			return nil
		},
		// Running the binary with no subcommand name (just <input.fasta>
		// and flags) is equivalent to `kcorrect correct`.
		Flags:  append(correctCmd.Flags, NewKlogFlagSet()...),
		Action: cmd_Correct,
		Commands: []*cli.Command{
			correctCmd,
			newCmd_Version(),
		},
	}

	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.RunContext(ctx, os.Args); err != nil {
		klog.Fatal(err)
	}
}
