package main

import (
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/rpcpool/kcorrect/internal/driver"
	"github.com/rpcpool/kcorrect/internal/kmer"
)

func newCmd_Correct() *cli.Command {
	return &cli.Command{
		Name:        "correct",
		Usage:       "Correct sequencing errors in a FASTA file of reads.",
		Description: "Index the k-mer content of a FASTA file, then rewrite it with low-abundance k-mer stretches repaired where a unique bridge is found and otherwise left unchanged.",
		ArgsUsage:   "<input.fasta>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "path to the corrected FASTA file (default: <input>.cor.<ext>)",
			},
			&cli.IntFlag{
				Name:  "threads",
				Usage: "number of worker goroutines (default: number of CPUs)",
			},
			&cli.Int64Flag{
				Name:  "memory",
				Usage: "memory budget in MiB for the counting sketches (default: half the input size, capped at half of available RAM)",
			},
			&cli.IntFlag{
				Name:  "abundance",
				Usage: "solidity threshold A",
				Value: 5,
			},
			&cli.IntFlag{
				Name:  "hashes",
				Usage: "number of hash functions per sketch",
				Value: 3,
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed for the minimizer and sketch hash functions",
				Value: 101010,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "dump the resolved configuration before running",
			},
		},
		Action: cmd_Correct,
	}
}

func cmd_Correct(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if cfg.Verbose {
		spew.Dump(cfg)
	}

	klog.Infof("Correcting %s -> %s (K=%d, M=%d, A=%d, threads=%d)",
		cfg.Input, cfg.Output, kmer.DefaultK, kmer.DefaultM, cfg.Abundance, cfg.Threads)

	startedAt := time.Now()
	stats, err := driver.Run(c.Context, cfg.toDriverParams())
	if err != nil {
		return cli.Exit(fmt.Errorf("correct: %w", err), 1)
	}

	klog.Infof("Finished in %s", time.Since(startedAt))
	fmt.Printf("weak k-mer stretches seen: %d, repaired: %d\n", stats.Errors, stats.Corrections)
	return nil
}
