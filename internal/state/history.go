package state

import "time"

// HistoryLimit caps the undo depth; beyond it the oldest entry is dropped.
const HistoryLimit = 50

type HistoryEntry struct {
	Elements []Element
	At       time.Time
}

// History is a linear, branch-truncating undo log over the element
// collection. Selection, camera, tool and the in-progress element are never
// versioned. Entries hold deep copies and are never mutated.
type History struct {
	entries []HistoryEntry
	index   int
}

// NewHistory seeds the log with the empty document so the first undo has
// somewhere to land.
func NewHistory() *History {
	return &History{entries: []HistoryEntry{{}}}
}

// Checkpoint drops everything past the current index, appends a copy of
// elements and moves the index onto it. Exceeding HistoryLimit evicts the
// oldest entry; the index shifts with it so the same checkpoint stays
// current.
func (h *History) Checkpoint(elements []Element, at time.Time) {
	h.entries = append(h.entries[:h.index+1], HistoryEntry{Elements: cloneElements(elements), At: at})
	h.index = len(h.entries) - 1
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[1:]
		h.index--
	}
}

// Undo steps back one entry and returns a copy of its elements. At the oldest
// entry it reports false and changes nothing.
func (h *History) Undo() ([]Element, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return cloneElements(h.entries[h.index].Elements), true
}

// Redo steps forward one entry and returns a copy of its elements. At the
// newest entry it reports false and changes nothing.
func (h *History) Redo() ([]Element, bool) {
	if h.index == len(h.entries)-1 {
		return nil, false
	}
	h.index++
	return cloneElements(h.entries[h.index].Elements), true
}

func (h *History) CanUndo() bool { return h.index > 0 }

func (h *History) CanRedo() bool { return h.index < len(h.entries)-1 }

// Len reports how many checkpoints are currently reachable.
func (h *History) Len() int { return len(h.entries) }
