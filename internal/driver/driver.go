// Package driver implements the fixed-structure orchestration gluing
// the indexing and correction passes together, plus the surrounding
// file I/O and progress reporting.
package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"k8s.io/klog/v2"

	"github.com/rpcpool/kcorrect/internal/correct"
	"github.com/rpcpool/kcorrect/internal/fasta"
	"github.com/rpcpool/kcorrect/internal/index"
	"github.com/rpcpool/kcorrect/internal/kmer"
	"github.com/rpcpool/kcorrect/internal/memsize"
)

// Params is the resolved, validated set of run parameters (see
// config.go for CLI-to-Params translation).
type Params struct {
	Input     string
	Output    string
	Threads   int
	MemoryMB  int64
	Abundance uint8
	Hashes    int
	Seed      uint64
}

// Run executes both phases against Params and returns the final Stats.
func Run(ctx context.Context, p Params) (correct.Stats, error) {
	info, err := os.Stat(p.Input)
	if err != nil {
		return correct.Stats{}, fmt.Errorf("driver: stat input: %w", err)
	}

	sketchBytes := memsize.Default(info.Size(), p.MemoryMB)
	klog.Infof("Sizing counters to %s (input is %s)", humanize.Bytes(uint64(sketchBytes)), humanize.Bytes(uint64(info.Size())))

	oracle := index.NewOracle(index.Config{
		K:          kmer.DefaultK,
		M:          kmer.DefaultM,
		Abundance:  p.Abundance,
		Hashes:     p.Hashes,
		Seed:       p.Seed,
		ShardCount: 4 * p.Threads,
		// Two counters share the memory budget evenly.
		SketchSize: int(sketchBytes / 2),
	})

	progress := mpb.New(mpb.WithWidth(40))

	startIndex := time.Now()
	if err := runIndexing(ctx, p, oracle, progress); err != nil {
		return correct.Stats{}, err
	}
	klog.Infof("Indexing pass finished in %s", time.Since(startIndex))

	startCorrect := time.Now()
	stats, err := runCorrecting(ctx, p, oracle, progress)
	if err != nil {
		return correct.Stats{}, err
	}
	klog.Infof("Correction pass finished in %s", time.Since(startCorrect))

	return stats, nil
}

func runIndexing(ctx context.Context, p Params, oracle *index.Oracle, progress *mpb.Progress) error {
	f, err := os.Open(p.Input)
	if err != nil {
		return fmt.Errorf("driver: open input for indexing: %w", err)
	}
	defer f.Close()

	bar := progress.New(0,
		mpb.BarStyle().Rbound("|"),
		mpb.PrependDecorators(decor.Name("indexing")),
		mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
	)
	defer bar.Abort(true)

	r := fasta.NewReader(f)
	return index.Run(ctx, r, oracle, p.Threads, p.Seed)
}

func runCorrecting(ctx context.Context, p Params, oracle *index.Oracle, progress *mpb.Progress) (correct.Stats, error) {
	in, err := os.Open(p.Input)
	if err != nil {
		return correct.Stats{}, fmt.Errorf("driver: open input for correction: %w", err)
	}
	defer in.Close()

	out, err := os.Create(p.Output)
	if err != nil {
		return correct.Stats{}, fmt.Errorf("driver: create output: %w", err)
	}
	defer out.Close()

	bar := progress.New(0,
		mpb.BarStyle().Rbound("|"),
		mpb.PrependDecorators(decor.Name("correcting")),
		mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
	)
	defer bar.Abort(true)

	r := fasta.NewReader(in)
	w := fasta.NewWriter(out)
	return correct.Run(ctx, r, w, oracle, p.Threads)
}
