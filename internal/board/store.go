// Package board holds the in-memory kanban board state and the optimistic
// move orchestration around it.
package board

import (
	"errors"
	"sync"

	"github.com/crewboardhq/crewboard/internal/domain"
)

// ErrStaleMove is returned when a move references a position that no
// longer holds the expected item, typically because a fetch or another
// move landed between the gesture and its application.
var ErrStaleMove = errors.New("board: stale move")

// Snapshot is a deep copy of all five stage sequences, in stage order.
type Snapshot [domain.NumStages][]domain.WorkItem

// Store holds the five ordered stage sequences for one workspace's board.
// Sequence order is on-screen top-to-bottom position; it is rebuilt from
// classification on every Load and never persisted server-side.
//
// A mutex guards the columns: the push-channel handler and gesture-driven
// callers run on different goroutines and their completions interleave in
// arbitrary order.
type Store struct {
	mu   sync.Mutex
	cols [domain.NumStages][]domain.WorkItem
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Load classifies every item by its status string and replaces all five
// sequences. Items keep the relative order they arrive in.
func (s *Store) Load(items []domain.WorkItem) {
	var cols [domain.NumStages][]domain.WorkItem
	for _, it := range items {
		st := it.Stage()
		cols[st] = append(cols[st], it)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cols = cols
}

// View returns a deep copy of all five sequences.
func (s *Store) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// FilteredView returns, per stage, the subsequence of items whose title or
// description contains query case-insensitively. The empty query returns
// everything. Stored state is never mutated.
func (s *Store) FilteredView(query string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out Snapshot
	for st, col := range s.cols {
		for _, it := range col {
			if it.Matches(query) {
				out[st] = append(out[st], it)
			}
		}
	}
	return out
}

// ItemAt returns the item at the given position, if one exists.
func (s *Store) ItemAt(stage domain.Stage, index int) (domain.WorkItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !stage.Valid() || index < 0 || index >= len(s.cols[stage]) {
		return domain.WorkItem{}, false
	}
	return s.cols[stage][index], true
}

// MoveItem removes the item at fromIndex in fromStage and inserts it at
// toIndex in toStage, clamping the insertion index to the valid range.
// It fails with ErrStaleMove, without mutating, unless fromStage/fromIndex
// currently holds the item with itemID.
func (s *Store) MoveItem(itemID int64, fromStage domain.Stage, fromIndex int, toStage domain.Stage, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fromStage.Valid() || !toStage.Valid() {
		return ErrStaleMove
	}

	src := s.cols[fromStage]
	if fromIndex < 0 || fromIndex >= len(src) || src[fromIndex].ID != itemID {
		return ErrStaleMove
	}

	item := src[fromIndex]
	s.cols[fromStage] = append(src[:fromIndex], src[fromIndex+1:]...)

	dst := s.cols[toStage]
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(dst) {
		toIndex = len(dst)
	}
	dst = append(dst, domain.WorkItem{})
	copy(dst[toIndex+1:], dst[toIndex:])
	dst[toIndex] = item
	s.cols[toStage] = dst

	return nil
}

// Snapshot deep-copies the current sequences for later Restore.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Restore replaces all five sequences with the snapshot's contents.
func (s *Store) Restore(snap Snapshot) {
	var cols [domain.NumStages][]domain.WorkItem
	for st, col := range snap {
		if len(col) == 0 {
			continue
		}
		cols[st] = append([]domain.WorkItem(nil), col...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cols = cols
}

func (s *Store) copyLocked() Snapshot {
	var out Snapshot
	for st, col := range s.cols {
		if len(col) == 0 {
			continue
		}
		out[st] = append([]domain.WorkItem(nil), col...)
	}
	return out
}
