package client

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Event is one push-channel announcement. The server promises nothing
// beyond "something changed, refetch".
type Event struct {
	Type string `json:"type"`
}

// Push event types.
const (
	EventTaskUpdated = "taskUpdated"
	EventTaskDeleted = "taskDeleted"
)

// EventHandler receives push events. The expected reaction is a full board
// refetch and Load, unconditionally overwriting any local optimistic state
// not yet confirmed.
type EventHandler func(ctx context.Context, ev Event)

// Subscriber owns the push-channel websocket connection. Its lifecycle is
// bound to the context passed to Run, so a board view that goes away takes
// its connection with it. Lost connections are re-dialed with capped
// exponential backoff, and event delivery is rate-limited so an update
// storm coalesces into a bounded number of refetches.
type Subscriber struct {
	url        string
	handler    EventHandler
	limiter    *rate.Limiter
	minBackoff time.Duration
	maxBackoff time.Duration
	log        zerolog.Logger
}

// SubscriberOption customizes a Subscriber.
type SubscriberOption func(*Subscriber)

// WithRefetchRate bounds how often events reach the handler.
func WithRefetchRate(perSecond float64, burst int) SubscriberOption {
	return func(s *Subscriber) { s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithReconnectBackoff sets the reconnect backoff bounds.
func WithReconnectBackoff(min, max time.Duration) SubscriberOption {
	return func(s *Subscriber) {
		s.minBackoff = min
		s.maxBackoff = max
	}
}

// WithSubscriberLogger sets the subscriber's logger.
func WithSubscriberLogger(logger zerolog.Logger) SubscriberOption {
	return func(s *Subscriber) { s.log = logger }
}

// NewSubscriber creates a Subscriber for the push channel at url,
// delivering events to handler.
func NewSubscriber(url string, handler EventHandler, opts ...SubscriberOption) *Subscriber {
	s := &Subscriber{
		url:        url,
		handler:    handler,
		limiter:    rate.NewLimiter(rate.Limit(1), 2),
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run connects and listens until ctx is done, reconnecting on failure.
// The returned error is ctx.Err().
func (s *Subscriber) Run(ctx context.Context) error {
	backoff := s.minBackoff
	for {
		err := s.listen(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn().Err(err).Dur("retry_in", backoff).Msg("push channel lost, reconnecting")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

// listen holds one connection open and relays its events. Returns when
// the connection drops or ctx is done.
func (s *Subscriber) listen(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("client.Subscriber.listen: dial: %w", err)
	}
	defer conn.CloseNow()

	s.log.Debug().Str("url", s.url).Msg("push channel connected")

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("client.Subscriber.listen: read: %w", err)
		}
		if typ != websocket.MessageText {
			continue
		}

		var ev Event
		if err := sonic.ConfigStd.Unmarshal(data, &ev); err != nil {
			s.log.Debug().Err(err).Msg("unparsable push event, refetching anyway")
			ev = Event{Type: EventTaskUpdated}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		s.handler(ctx, ev)
	}
}
