package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/rpcpool/kcorrect/internal/driver"
)

// Config mirrors the CLI flags of the correct command, validated once
// before the driver runs. Adapted from yellowstone-faithful's
// per-command flag-to-struct convention (each cmd-*.go read its flags
// into a small local struct before doing any work).
type Config struct {
	Input     string
	Output    string
	Threads   int
	MemoryMB  int64
	Abundance uint8
	Hashes    int
	Seed      uint64
	Verbose   bool
}

// configFromContext builds and validates a Config from a cli.Context.
func configFromContext(c *cli.Context) (Config, error) {
	input := c.Args().First()
	if input == "" {
		return Config{}, fmt.Errorf("config: missing required positional argument <input>")
	}

	threads := c.Int("threads")
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	abundance := c.Int("abundance")
	if abundance < 0 || abundance > 255 {
		return Config{}, fmt.Errorf("config: --abundance must be in [0,255], got %d", abundance)
	}

	hashes := c.Int("hashes")
	if hashes < 1 || hashes > 8 {
		return Config{}, fmt.Errorf("config: --hashes must be in [1,8], got %d", hashes)
	}

	output := c.String("output")
	if output == "" {
		output = defaultOutputPath(input)
	}

	return Config{
		Input:     input,
		Output:    output,
		Threads:   threads,
		MemoryMB:  c.Int64("memory"),
		Abundance: uint8(abundance),
		Hashes:    hashes,
		Seed:      c.Uint64("seed"),
		Verbose:   c.Bool("verbose"),
	}, nil
}

// defaultOutputPath replaces the input's last extension with
// ".cor.<ext>", or appends ".cor" if there is no extension.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		return input + ".cor"
	}
	return strings.TrimSuffix(input, ext) + ".cor" + ext
}

// toDriverParams adapts the validated Config to driver.Params.
func (cfg Config) toDriverParams() driver.Params {
	return driver.Params{
		Input:     cfg.Input,
		Output:    cfg.Output,
		Threads:   cfg.Threads,
		MemoryMB:  cfg.MemoryMB,
		Abundance: cfg.Abundance,
		Hashes:    cfg.Hashes,
		Seed:      cfg.Seed,
	}
}
