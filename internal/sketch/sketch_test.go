package sketch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSketchNoFalseNegatives(t *testing.T) {
	s := New(1<<16, 3, 8, 101010)
	for x := uint64(0); x < 200; x++ {
		s.Add(x)
	}
	for x := uint64(0); x < 200; x++ {
		assert.GreaterOrEqual(t, s.Count(x), uint8(1))
	}
}

func TestSketchSaturatesPermanently(t *testing.T) {
	s := New(1<<12, 2, 2, 7)
	const key = uint64(42)
	for i := 0; i < 1000; i++ {
		s.Add(key)
	}
	require.Equal(t, uint8(255), s.Count(key))
	s.Add(key)
	assert.Equal(t, uint8(255), s.Count(key))
}

func TestSketchConcurrentAddsAreConsistent(t *testing.T) {
	s := New(1<<16, 3, 16, 9)
	const key = uint64(7)
	const n = 500

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(key)
		}()
	}
	wg.Wait()

	// 500 adds exceed the 8-bit cell range, so every cell saturates.
	assert.Equal(t, uint8(255), s.Count(key))
}

func TestBitSketchInsertIfMissing(t *testing.T) {
	s := NewBitSketch(1<<16, 3, 8, 5)
	assert.True(t, s.InsertIfMissing(1))
	assert.False(t, s.InsertIfMissing(1))
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(999999))
}

func TestCascadeContainsRequiresAllLevels(t *testing.T) {
	c := NewCascade([]int{1 << 16, 1 << 15, 1 << 14}, []int{4, 2, 1}, 4, 101010)
	for i := 0; i < 3; i++ {
		for x := uint64(0); x < 30; x++ {
			c.Insert(x)
		}
	}
	for x := uint64(0); x < 30; x++ {
		assert.True(t, c.Contains(x))
	}
}
