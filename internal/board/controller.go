package board

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/crewboardhq/crewboard/internal/domain"
	"github.com/crewboardhq/crewboard/internal/notify"
)

// Position names one slot on the board: a stage and an index within its
// sequence.
type Position struct {
	Stage domain.Stage
	Index int
}

// Persister pushes one stage change to the server.
type Persister interface {
	UpdateTaskStatus(ctx context.Context, taskID int64, completed bool, status string) error
}

// Controller turns a completed drag gesture into an all-or-nothing
// optimistic transaction against the Store: apply locally first, persist,
// and restore the pre-move state in full if persistence fails.
//
// Overlapping gestures are not serialized; their persistence requests race
// and the next full fetch settles the board. Auth-class persistence
// failures reach the session owner through the Sync Client's expiry hook,
// not through the controller.
type Controller struct {
	store    *Store
	persist  Persister
	notifier notify.Notifier
	log      zerolog.Logger
}

// NewController wires a Controller to its store, persister and
// notification sink.
func NewController(store *Store, persist Persister, notifier notify.Notifier, logger zerolog.Logger) *Controller {
	return &Controller{
		store:    store,
		persist:  persist,
		notifier: notifier,
		log:      logger,
	}
}

// HandleDrop applies one drag gesture. A nil destination (dropped outside
// any target) or a destination equal to the source is a no-op: no
// mutation, no request. The local move is visible before the persistence
// round-trip starts; on failure the pre-move order of both sequences is
// restored exactly and a failure notification is emitted. No automatic
// retry.
func (c *Controller) HandleDrop(ctx context.Context, source Position, destination *Position) error {
	if destination == nil || *destination == source {
		return nil
	}

	item, ok := c.store.ItemAt(source.Stage, source.Index)
	if !ok {
		return ErrStaleMove
	}

	snap := c.store.Snapshot()

	if err := c.store.MoveItem(item.ID, source.Stage, source.Index, destination.Stage, destination.Index); err != nil {
		return err
	}

	status := destination.Stage.StatusLabel()
	completed := destination.Stage.Completed()

	c.log.Debug().
		Int64("task_id", item.ID).
		Str("from", source.Stage.String()).
		Str("to", destination.Stage.String()).
		Msg("optimistic move applied")

	if err := c.persist.UpdateTaskStatus(ctx, item.ID, completed, status); err != nil {
		c.store.Restore(snap)
		c.log.Warn().Err(err).Int64("task_id", item.ID).Msg("move rolled back")
		c.notifier.Notify(ctx, notify.LevelError, fmt.Sprintf("Failed to move %q, change undone", item.Title))
		return fmt.Errorf("board.Controller.HandleDrop: %w", err)
	}

	return nil
}
