package board_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewboardhq/crewboard/internal/board"
	"github.com/crewboardhq/crewboard/internal/domain"
	"github.com/crewboardhq/crewboard/internal/notify"
)

type persistCall struct {
	taskID    int64
	completed bool
	status    string
}

type fakePersister struct {
	calls []persistCall
	err   error
}

func (p *fakePersister) UpdateTaskStatus(_ context.Context, taskID int64, completed bool, status string) error {
	p.calls = append(p.calls, persistCall{taskID: taskID, completed: completed, status: status})
	return p.err
}

type fakeNotifier struct {
	messages []string
	levels   []notify.Level
}

func (n *fakeNotifier) Notify(_ context.Context, level notify.Level, message string) {
	n.levels = append(n.levels, level)
	n.messages = append(n.messages, message)
}

func newFixture(persistErr error, items ...domain.WorkItem) (*board.Store, *board.Controller, *fakePersister, *fakeNotifier) {
	store := board.NewStore()
	store.Load(items)
	persister := &fakePersister{err: persistErr}
	notifier := &fakeNotifier{}
	ctrl := board.NewController(store, persister, notifier, zerolog.Nop())
	return store, ctrl, persister, notifier
}

func TestController_HandleDrop_NoOps(t *testing.T) {
	t.Parallel()

	t.Run("nil destination", func(t *testing.T) {
		t.Parallel()

		store, ctrl, persister, _ := newFixture(nil, item(1, "x", "backlog"))
		before := store.View()

		err := ctrl.HandleDrop(context.Background(), board.Position{Stage: domain.StageBacklog, Index: 0}, nil)

		require.NoError(t, err)
		assert.Equal(t, before, store.View())
		assert.Empty(t, persister.calls)
	})

	t.Run("destination equals source", func(t *testing.T) {
		t.Parallel()

		store, ctrl, persister, _ := newFixture(nil, item(1, "x", "backlog"))
		before := store.View()
		pos := board.Position{Stage: domain.StageBacklog, Index: 0}

		err := ctrl.HandleDrop(context.Background(), pos, &pos)

		require.NoError(t, err)
		assert.Equal(t, before, store.View())
		assert.Empty(t, persister.calls)
	})
}

func TestController_HandleDrop_OptimisticCommit(t *testing.T) {
	t.Parallel()

	store, ctrl, persister, notifier := newFixture(nil,
		item(1, "x", "backlog"),
		item(2, "y", "backlog"),
	)

	err := ctrl.HandleDrop(context.Background(),
		board.Position{Stage: domain.StageBacklog, Index: 1},
		&board.Position{Stage: domain.StageInProgress, Index: 0},
	)

	require.NoError(t, err)

	view := store.View()
	assert.Equal(t, []int64{1}, ids(view[domain.StageBacklog]))
	assert.Equal(t, []int64{2}, ids(view[domain.StageInProgress]))

	require.Len(t, persister.calls, 1)
	assert.Equal(t, persistCall{taskID: 2, completed: false, status: "in progress"}, persister.calls[0])
	assert.Empty(t, notifier.messages)
}

// Every destination stage maps to its status label; only Completed sets
// the completed flag.
func TestController_HandleDrop_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stage         domain.Stage
		wantStatus    string
		wantCompleted bool
	}{
		{domain.StageBacklog, "backlog", false},
		{domain.StageToDo, "to do", false},
		{domain.StageInProgress, "in progress", false},
		{domain.StageReview, "review", false},
		{domain.StageCompleted, "completed", true},
	}

	for _, tt := range tests {
		t.Run(tt.wantStatus, func(t *testing.T) {
			t.Parallel()

			// Start the item outside the destination stage.
			from := domain.StageReview
			if tt.stage == domain.StageReview {
				from = domain.StageBacklog
			}
			it := item(7, "task", from.StatusLabel())

			_, ctrl, persister, _ := newFixture(nil, it)

			err := ctrl.HandleDrop(context.Background(),
				board.Position{Stage: from, Index: 0},
				&board.Position{Stage: tt.stage, Index: 0},
			)

			require.NoError(t, err)
			require.Len(t, persister.calls, 1)
			assert.Equal(t, tt.wantStatus, persister.calls[0].status)
			assert.Equal(t, tt.wantCompleted, persister.calls[0].completed)
		})
	}
}

// Rollback must restore exact pre-move order in both sequences: removing
// from the destination but leaving the source misordered is a defect.
func TestController_HandleDrop_RollbackExactness(t *testing.T) {
	t.Parallel()

	store, ctrl, _, notifier := newFixture(errors.New("boom"),
		item(1, "x", "backlog"),
		item(2, "y", "backlog"),
		item(3, "z", "backlog"),
		item(4, "w", "review"),
	)

	err := ctrl.HandleDrop(context.Background(),
		board.Position{Stage: domain.StageBacklog, Index: 1},
		&board.Position{Stage: domain.StageReview, Index: 0},
	)

	require.Error(t, err)

	view := store.View()
	assert.Equal(t, []int64{1, 2, 3}, ids(view[domain.StageBacklog]))
	assert.Equal(t, []int64{4}, ids(view[domain.StageReview]))

	require.Len(t, notifier.messages, 1)
	assert.Equal(t, notify.LevelError, notifier.levels[0])
}

func TestController_HandleDrop_StaleSource(t *testing.T) {
	t.Parallel()

	store, ctrl, persister, _ := newFixture(nil, item(1, "x", "backlog"))
	before := store.View()

	err := ctrl.HandleDrop(context.Background(),
		board.Position{Stage: domain.StageReview, Index: 0},
		&board.Position{Stage: domain.StageBacklog, Index: 0},
	)

	assert.ErrorIs(t, err, board.ErrStaleMove)
	assert.Equal(t, before, store.View())
	assert.Empty(t, persister.calls)
}

// Drag T1 from Backlog to Completed, then fail persistence: the board
// reverts in full and exactly one failure notification goes out.
func TestController_HandleDrop_EndToEnd(t *testing.T) {
	t.Parallel()

	t1 := item(42, "T1", "backlog")

	t.Run("success path", func(t *testing.T) {
		t.Parallel()

		store, ctrl, persister, notifier := newFixture(nil, t1)

		err := ctrl.HandleDrop(context.Background(),
			board.Position{Stage: domain.StageBacklog, Index: 0},
			&board.Position{Stage: domain.StageCompleted, Index: 0},
		)

		require.NoError(t, err)
		view := store.View()
		assert.Empty(t, view[domain.StageBacklog])
		assert.Equal(t, []int64{42}, ids(view[domain.StageCompleted]))

		require.Len(t, persister.calls, 1)
		assert.Equal(t, persistCall{taskID: 42, completed: true, status: "completed"}, persister.calls[0])
		assert.Empty(t, notifier.messages)
	})

	t.Run("server error path", func(t *testing.T) {
		t.Parallel()

		store, ctrl, _, notifier := newFixture(errors.New("500"), t1)

		err := ctrl.HandleDrop(context.Background(),
			board.Position{Stage: domain.StageBacklog, Index: 0},
			&board.Position{Stage: domain.StageCompleted, Index: 0},
		)

		require.Error(t, err)
		view := store.View()
		assert.Equal(t, []int64{42}, ids(view[domain.StageBacklog]))
		assert.Empty(t, view[domain.StageCompleted])
		assert.Len(t, notifier.messages, 1)
	})
}
