package kmer

// Mutation iterators: lazy, single-pass adapters over a base sequence
// producing the sequence with exactly one edit applied. Grounded on the
// insertion/deletion/substitution iterators of the indexing tool this
// was distilled from; expressed here as Go 1.23 range-over-func
// sequences rather than a custom Iterator trait, since that is the
// idiomatic single-pass-producer shape in Go.

// Seq is a single-pass sequence of bases, compatible with range-over-func
// (`for b := range seq`).
type Seq func(yield func(Base) bool)

// All returns a Seq over an in-memory slice.
func All(bases []Base) Seq {
	return func(yield func(Base) bool) {
		for _, b := range bases {
			if !yield(b) {
				return
			}
		}
	}
}

// Insertion yields the first index items of src, then element, then the
// remaining items of src unchanged. Length = len(src)+1.
func Insertion(src Seq, index int, element Base) Seq {
	return func(yield func(Base) bool) {
		i := 0
		inserted := false
		src(func(b Base) bool {
			if i == index && !inserted {
				inserted = true
				if !yield(element) {
					return false
				}
			}
			i++
			return yield(b)
		})
		if !inserted {
			yield(element)
		}
	}
}

// Deletion yields the first index items of src, skips one item, then
// yields the rest. Length = len(src)-1.
func Deletion(src Seq, index int) Seq {
	return func(yield func(Base) bool) {
		i := 0
		skipped := false
		src(func(b Base) bool {
			if i == index && !skipped {
				skipped = true
				i++
				return true
			}
			i++
			return yield(b)
		})
	}
}

// Substitution yields the first index items of src, then element in
// place of item index, then the rest unchanged. Length = len(src).
func Substitution(src Seq, index int, element Base) Seq {
	return func(yield func(Base) bool) {
		i := 0
		src(func(b Base) bool {
			out := b
			if i == index {
				out = element
			}
			i++
			return yield(out)
		})
	}
}

// Collect materializes a Seq into a slice.
func Collect(s Seq) []Base {
	var out []Base
	s(func(b Base) bool {
		out = append(out, b)
		return true
	})
	return out
}
