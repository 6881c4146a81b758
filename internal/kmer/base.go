// Package kmer implements packed, fixed-length DNA substrings and the
// sliding-window minimizer queue used to gate which k-mers get counted.
package kmer

import "fmt"

// Base is a single 2-bit-encoded nucleotide.
type Base uint8

const (
	A Base = 0
	C Base = 1
	G Base = 2
	T Base = 3
)

// Complement returns the Watson-Crick complement of b. Complementing is
// XOR with 0b11: A<->T (00<->11), C<->G (01<->10).
func (b Base) Complement() Base {
	return b ^ 0b11
}

func (b Base) String() string {
	switch b {
	case A:
		return "A"
	case C:
		return "C"
	case G:
		return "G"
	case T:
		return "T"
	default:
		return "?"
	}
}

// FromNuc maps an ASCII nucleotide byte (either case) to a Base. ok is
// false for anything outside {A,C,G,T,a,c,g,t}, including 'N'.
func FromNuc(c byte) (b Base, ok bool) {
	switch c {
	case 'A', 'a':
		return A, true
	case 'C', 'c':
		return C, true
	case 'G', 'g':
		return G, true
	case 'T', 't':
		return T, true
	default:
		return 0, false
	}
}

// Nuc returns the uppercase ASCII nucleotide for b.
func (b Base) Nuc() byte {
	switch b {
	case A:
		return 'A'
	case C:
		return 'C'
	case G:
		return 'G'
	case T:
		return 'T'
	default:
		panic(fmt.Sprintf("kmer: invalid base %d", b))
	}
}
