package kmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertionLengthAndContent(t *testing.T) {
	src := []Base{A, C, G, T}
	got := Collect(Insertion(All(src), 2, G))
	assert.Equal(t, []Base{A, C, G, G, T}, got)
}

func TestDeletionLengthAndContent(t *testing.T) {
	src := []Base{A, C, G, T}
	got := Collect(Deletion(All(src), 1))
	assert.Equal(t, []Base{A, G, T}, got)
}

func TestSubstitutionLengthAndContent(t *testing.T) {
	src := []Base{A, C, G, T}
	got := Collect(Substitution(All(src), 1, T))
	assert.Equal(t, []Base{A, T, G, T}, got)
}

func TestInsertionAtEnd(t *testing.T) {
	src := []Base{A, C, G}
	got := Collect(Insertion(All(src), 3, T))
	assert.Equal(t, []Base{A, C, G, T}, got)
}
