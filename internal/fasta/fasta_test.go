package fasta

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderParsesMultipleRecords(t *testing.T) {
	input := ">r1\nACGT\nACGT\n>r2\nTTTT\n"
	r := NewReader(bytes.NewReader([]byte(input)))

	rec1, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "r1", string(rec1.Header))
	assert.Equal(t, "ACGTACGT", string(rec1.Seq))

	rec2, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "r2", string(rec2.Header))
	assert.Equal(t, "TTTT", string(rec2.Seq))

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write([]byte("r1"), []byte("ACGT")))

	r := NewReader(&buf)
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "r1", string(rec.Header))
	assert.Equal(t, "ACGT", string(rec.Seq))
}
