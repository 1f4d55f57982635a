package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewboardhq/crewboard/internal/board"
	"github.com/crewboardhq/crewboard/internal/domain"
)

func item(id int64, title, status string) domain.WorkItem {
	return domain.WorkItem{ID: id, Title: title, Status: status}
}

func TestStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("classifies into stages preserving arrival order", func(t *testing.T) {
		t.Parallel()

		s := board.NewStore()
		s.Load([]domain.WorkItem{
			item(1, "first", "backlog"),
			item(2, "second", "in progress"),
			item(3, "third", ""),
			item(4, "fourth", "In Progress - blocked"),
			item(5, "fifth", "completed"),
		})

		view := s.View()
		require.Len(t, view[domain.StageBacklog], 2)
		assert.Equal(t, int64(1), view[domain.StageBacklog][0].ID)
		assert.Equal(t, int64(3), view[domain.StageBacklog][1].ID)

		require.Len(t, view[domain.StageInProgress], 2)
		assert.Equal(t, int64(2), view[domain.StageInProgress][0].ID)
		assert.Equal(t, int64(4), view[domain.StageInProgress][1].ID)

		require.Len(t, view[domain.StageCompleted], 1)
		assert.Empty(t, view[domain.StageToDo])
		assert.Empty(t, view[domain.StageReview])
	})

	t.Run("replaces previous contents", func(t *testing.T) {
		t.Parallel()

		s := board.NewStore()
		s.Load([]domain.WorkItem{item(1, "old", "review")})
		s.Load([]domain.WorkItem{item(2, "new", "backlog")})

		view := s.View()
		assert.Empty(t, view[domain.StageReview])
		require.Len(t, view[domain.StageBacklog], 1)
		assert.Equal(t, int64(2), view[domain.StageBacklog][0].ID)
	})
}

func TestStore_FilteredView(t *testing.T) {
	t.Parallel()

	s := board.NewStore()
	s.Load([]domain.WorkItem{
		{ID: 1, Title: "Payroll export", Status: "backlog"},
		{ID: 2, Title: "Badge printer", Description: "payroll building", Status: "backlog"},
		{ID: 3, Title: "Quarterly review", Status: "review"},
	})

	t.Run("empty query returns everything unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, s.View(), s.FilteredView(""))
	})

	t.Run("matches title or description case-insensitively", func(t *testing.T) {
		t.Parallel()

		view := s.FilteredView("PAYROLL")
		require.Len(t, view[domain.StageBacklog], 2)
		assert.Empty(t, view[domain.StageReview])
	})

	t.Run("excludes items matching neither field", func(t *testing.T) {
		t.Parallel()

		view := s.FilteredView("quarterly")
		assert.Empty(t, view[domain.StageBacklog])
		require.Len(t, view[domain.StageReview], 1)
	})

	t.Run("does not mutate stored state", func(t *testing.T) {
		t.Parallel()

		before := s.View()
		_ = s.FilteredView("payroll")
		assert.Equal(t, before, s.View())
	})
}

func TestStore_MoveItem(t *testing.T) {
	t.Parallel()

	load := func() *board.Store {
		s := board.NewStore()
		s.Load([]domain.WorkItem{
			item(1, "x", "backlog"),
			item(2, "y", "backlog"),
			item(3, "z", "backlog"),
			item(4, "w", "review"),
		})
		return s
	}

	t.Run("moves across stages at requested index", func(t *testing.T) {
		t.Parallel()

		s := load()
		require.NoError(t, s.MoveItem(2, domain.StageBacklog, 1, domain.StageReview, 0))

		view := s.View()
		assert.Equal(t, []int64{1, 3}, ids(view[domain.StageBacklog]))
		assert.Equal(t, []int64{2, 4}, ids(view[domain.StageReview]))
	})

	t.Run("reorders within a stage", func(t *testing.T) {
		t.Parallel()

		s := load()
		require.NoError(t, s.MoveItem(1, domain.StageBacklog, 0, domain.StageBacklog, 2))

		assert.Equal(t, []int64{2, 3, 1}, ids(s.View()[domain.StageBacklog]))
	})

	t.Run("clamps insertion index", func(t *testing.T) {
		t.Parallel()

		s := load()
		require.NoError(t, s.MoveItem(1, domain.StageBacklog, 0, domain.StageReview, 99))
		assert.Equal(t, []int64{4, 1}, ids(s.View()[domain.StageReview]))

		require.NoError(t, s.MoveItem(2, domain.StageBacklog, 0, domain.StageReview, -5))
		assert.Equal(t, []int64{2, 4, 1}, ids(s.View()[domain.StageReview]))
	})

	t.Run("stale gesture leaves state untouched", func(t *testing.T) {
		t.Parallel()

		s := load()
		before := s.View()

		// Wrong id at the position.
		err := s.MoveItem(3, domain.StageBacklog, 0, domain.StageReview, 0)
		assert.ErrorIs(t, err, board.ErrStaleMove)

		// Index out of range.
		err = s.MoveItem(1, domain.StageBacklog, 9, domain.StageReview, 0)
		assert.ErrorIs(t, err, board.ErrStaleMove)

		// Empty source stage.
		err = s.MoveItem(1, domain.StageCompleted, 0, domain.StageReview, 0)
		assert.ErrorIs(t, err, board.ErrStaleMove)

		assert.Equal(t, before, s.View())
	})
}

func TestStore_SnapshotRestore(t *testing.T) {
	t.Parallel()

	s := board.NewStore()
	s.Load([]domain.WorkItem{
		item(1, "x", "backlog"),
		item(2, "y", "backlog"),
		item(3, "z", "completed"),
	})

	snap := s.Snapshot()
	require.NoError(t, s.MoveItem(1, domain.StageBacklog, 0, domain.StageCompleted, 0))
	require.NoError(t, s.MoveItem(2, domain.StageBacklog, 0, domain.StageReview, 0))

	s.Restore(snap)

	view := s.View()
	assert.Equal(t, []int64{1, 2}, ids(view[domain.StageBacklog]))
	assert.Equal(t, []int64{3}, ids(view[domain.StageCompleted]))
	assert.Empty(t, view[domain.StageReview])
}

// Snapshot must be insulated from later store mutations.
func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	t.Parallel()

	s := board.NewStore()
	s.Load([]domain.WorkItem{item(1, "x", "backlog"), item(2, "y", "backlog")})

	snap := s.Snapshot()
	require.NoError(t, s.MoveItem(1, domain.StageBacklog, 0, domain.StageBacklog, 1))

	assert.Equal(t, []int64{1, 2}, ids(snap[domain.StageBacklog]))
}

func ids(items []domain.WorkItem) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
