package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpcpool/kcorrect/internal/fasta"
)

const sample = ">r1\nAAAA\n>r2\nCCCC\n>r3\nGGGG\n>r4\nTTTT\n"

func TestRunSequentialInOrder(t *testing.T) {
	r := fasta.NewReader(strings.NewReader(sample))
	var headers []string
	err := Run(r, func(rec Record) {
		headers = append(headers, string(rec.Header))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, headers)
}

func TestRunPoolProcessesAllRecords(t *testing.T) {
	r := fasta.NewReader(strings.NewReader(sample))
	var mu sync.Mutex
	seen := map[string]bool{}

	err := RunPool(context.Background(), r, 2, func(rec Record) {
		mu.Lock()
		seen[string(rec.Header)] = true
		mu.Unlock()
	})
	require.NoError(t, err)
	assert.Len(t, seen, 4)
}

func TestRunOrderedSinkMatchesInputOrder(t *testing.T) {
	r := fasta.NewReader(strings.NewReader(sample))

	var mu sync.Mutex
	var order []string

	err := RunOrdered(
		context.Background(),
		r,
		3,
		func() Scratch { return new(int) },
		func(rec Record, s Scratch) {
			count := s.(*int)
			*count = len(rec.Seq)
		},
		func(rec Record, s Scratch) error {
			mu.Lock()
			order = append(order, string(rec.Header))
			mu.Unlock()
			return nil
		},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, order)
}
