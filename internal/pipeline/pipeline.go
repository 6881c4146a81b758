// Package pipeline drives user callbacks over a stream of FASTA records
// in one of three modes: sequential, bounded parallel with no
// per-record output, and bounded parallel with per-worker scratch and
// an in-order sink. Grounded on the two concurrency idioms used
// throughout yellowstone-faithful: golang.org/x/sync/errgroup with
// SetLimit for unordered bounded fan-out (see first.go's FirstResponse),
// and github.com/tejzpr/ordered-concurrently/v3 for ordered-sink
// fan-out (see cmd-x-index-sig-to-epoch.go).
package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/rpcpool/kcorrect/internal/fasta"
)

// Record is one FASTA record plus its 0-based input order, preserved so
// ordered sinks can report it even though workers run unordered.
type Record struct {
	Index  int
	Header []byte
	Seq    []byte
}

// nextRecord reads the next FASTA record and wraps it with its order.
func nextRecord(r *fasta.Reader, index int) (Record, bool, error) {
	rec, err := r.Next()
	if err != nil {
		return Record{}, false, err
	}
	return Record{Index: index, Header: rec.Header, Seq: rec.Seq}, true, nil
}

// Run drives fn sequentially over every record, in input order, with no
// concurrency at all. This is the simplest mode; the two correction
// phases do not use it in production, but small inputs and
// deterministic-interleaving tests do.
func Run(r *fasta.Reader, fn func(Record)) error {
	i := 0
	for {
		rec, ok, err := nextRecord(r, i)
		if !ok {
			return eofOrNil(err)
		}
		fn(rec)
		i++
	}
}

// eofOrNil turns io.EOF (the Reader's "no more records" signal) into a
// nil error; any other error is a real read failure.
func eofOrNil(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("pipeline: reading record: %w", err)
}
