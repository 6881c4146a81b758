package kmer

// Iterator rolls a packed register of the given length across a stream
// of bases, yielding one value per base once the register has seen
// length bases. A non-ACGT byte resets the register: no k-mer spans a
// gap, matching "non-ACGT characters break the stream; the pass does
// not currently attempt to resume."
type Iterator struct {
	length int
	reg    Packed
	seen   int
}

// NewIterator returns an Iterator that produces packed values of the
// given length.
func NewIterator(length int) *Iterator {
	return &Iterator{length: length, reg: Zero(length)}
}

// PushNuc feeds one raw ASCII byte. ok reports whether the byte decoded
// to a base at all (false for 'N' and friends, which also resets the
// running register). ready reports whether the register now holds a
// full, meaningful window.
func (it *Iterator) PushNuc(c byte) (value Packed, ready bool, ok bool) {
	b, valid := FromNuc(c)
	if !valid {
		it.reset()
		return Packed{}, false, false
	}
	return it.PushBase(b), it.seen >= it.length, true
}

// PushBase feeds one already-decoded base and returns the updated
// register (only meaningful once ready, as reported by the caller
// tracking it.seen, or via PushNuc's ready flag).
func (it *Iterator) PushBase(b Base) Packed {
	if it.seen < it.length {
		it.reg = it.reg.Extend(b)
		it.seen++
	} else {
		it.reg = it.reg.Append(b)
	}
	return it.reg
}

// reset clears the register after a non-ACGT byte breaks the stream.
func (it *Iterator) reset() {
	it.reg = Zero(it.length)
	it.seen = 0
}

// Ready reports whether the register currently holds a full window.
func (it *Iterator) Ready() bool {
	return it.seen >= it.length
}

// IterFromNucs decodes raw ASCII bases in s, calling yield once per
// position starting at index length-1 with the packed value rolled up
// to that position. Non-ACGT bytes reset the register and are skipped;
// no k-mer spans such a byte. Returns early if yield returns false.
func IterFromNucs(s []byte, length int, yield func(Packed) bool) {
	it := NewIterator(length)
	for _, c := range s {
		v, ready, _ := it.PushNuc(c)
		if ready {
			if !yield(v) {
				return
			}
		}
	}
}

// IterFromBases is the same as IterFromNucs but over pre-decoded bases
// (used by the mutation iterators, whose output is already a []Base).
func IterFromBases(bases []Base, length int, yield func(Packed) bool) {
	it := NewIterator(length)
	for _, b := range bases {
		it.PushBase(b)
		if it.Ready() {
			if !yield(it.reg) {
				return
			}
		}
	}
}
