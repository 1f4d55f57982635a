package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Level grades a notification for display purposes.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notifier delivers a transient, user-visible notification. Delivery is
// best-effort: failures surface to the user or nobody, never back to the
// operation that emitted them.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

// LogNotifier writes notifications to a structured logger. Used as the
// fallback sink when no interactive surface is attached.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a LogNotifier backed by the given logger.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger}
}

func (n *LogNotifier) Notify(_ context.Context, level Level, message string) {
	switch level {
	case LevelError:
		n.log.Error().Msg(message)
	default:
		n.log.Info().Msg(message)
	}
}

// WriterNotifier prints notifications to a writer, one per line. This is
// the terminal-facing sink.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier creates a WriterNotifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(_ context.Context, level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", level, message)
}
