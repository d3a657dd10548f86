package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elementsOfLen(n int) []Element {
	els := make([]Element, n)
	for i := range els {
		els[i] = rectAt(fmt.Sprintf("el-%d", i), float64(i)*20, 0)
	}
	return els
}

func TestHistorySeededWithEmptyDocument(t *testing.T) {
	h := NewHistory()

	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 1, h.Len())

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistoryLinearity(t *testing.T) {
	h := NewHistory()
	for i := 1; i <= 5; i++ {
		h.Checkpoint(elementsOfLen(i), testTime.Add(time.Duration(i)*time.Second))
	}
	top := elementsOfLen(5)

	for i := 0; i < 3; i++ {
		_, ok := h.Undo()
		require.True(t, ok)
	}
	assert.True(t, h.CanRedo())

	var els []Element
	for i := 0; i < 3; i++ {
		var ok bool
		els, ok = h.Redo()
		require.True(t, ok)
	}
	assert.Equal(t, top, els)
	assert.False(t, h.CanRedo())
}

func TestHistoryUndoReturnsPriorSnapshot(t *testing.T) {
	h := NewHistory()
	h.Checkpoint(elementsOfLen(1), testTime)
	h.Checkpoint(elementsOfLen(2), testTime)

	els, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, elementsOfLen(1), els)

	els, ok = h.Undo()
	require.True(t, ok)
	assert.Empty(t, els)
	assert.False(t, h.CanUndo())
}

func TestHistoryCheckpointTruncatesRedoTail(t *testing.T) {
	h := NewHistory()
	h.Checkpoint(elementsOfLen(1), testTime)
	h.Checkpoint(elementsOfLen(2), testTime)
	h.Checkpoint(elementsOfLen(3), testTime)

	h.Undo()
	h.Undo()
	require.True(t, h.CanRedo())

	h.Checkpoint(elementsOfLen(9), testTime)

	assert.False(t, h.CanRedo())
	// Seed, first checkpoint, and the new branch.
	assert.Equal(t, 3, h.Len())

	els, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, elementsOfLen(1), els)
}

func TestHistoryBounded(t *testing.T) {
	h := NewHistory()
	for i := 1; i <= 60; i++ {
		h.Checkpoint(elementsOfLen(i), testTime.Add(time.Duration(i)*time.Second))
	}

	assert.Equal(t, HistoryLimit, h.Len())
	assert.False(t, h.CanRedo())

	var els []Element
	undos := 0
	for h.CanUndo() {
		var ok bool
		els, ok = h.Undo()
		require.True(t, ok)
		undos++
	}

	// The seed and the oldest checkpoints were evicted: the floor is now
	// checkpoint 11, one undo step per surviving entry above it.
	assert.Equal(t, HistoryLimit-1, undos)
	assert.Len(t, els, 11)
}

func TestHistoryEntriesAreIsolated(t *testing.T) {
	h := NewHistory()
	els := elementsOfLen(1)
	h.Checkpoint(els, testTime)

	// Mutating the caller's slice after the fact must not reach the entry.
	els[0].X = 999

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Empty(t, got)

	got, ok = h.Redo()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].X)

	// Mutating a returned snapshot must not corrupt the stored entry.
	got[0].X = -1
	h.Undo()
	again, ok := h.Redo()
	require.True(t, ok)
	assert.Equal(t, 0.0, again[0].X)
}
