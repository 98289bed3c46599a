package feed

import (
	"context"
	"slices"
	"sync"

	"github.com/hedisam/pipeline/chans"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/txchain/internal/ledger"
	"github.com/hedisam/txchain/internal/ringbuffer"
)

const (
	// DefaultBacklog is the number of recent records replayed to a new subscriber.
	DefaultBacklog = 32
	// DefaultSubscriberBuffer is the number of records queued per subscriber before new ones are dropped.
	DefaultSubscriberBuffer = 64
)

type config struct {
	backlog   uint
	subBuffer int
}

type Option func(*config)

// WithBacklog sets how many of the most recent records a new subscriber receives first.
func WithBacklog(n uint) Option {
	return func(c *config) {
		c.backlog = n
	}
}

// WithSubscriberBuffer sets the per subscriber queue length.
func WithSubscriberBuffer(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.subBuffer = n
		}
	}
}

// Feed fans accepted records out to live subscribers. Publishing never blocks: a subscriber that falls behind misses
// records instead of holding up the ledger.
type Feed struct {
	logger *logrus.Logger

	mu      sync.Mutex
	backlog *ringbuffer.RingBuffer[ledger.Record]
	subs    map[uint64]chan ledger.Record
	nextID  uint64
	cfg     *config
}

func New(logger *logrus.Logger, opts ...Option) *Feed {
	cfg := &config{
		backlog:   DefaultBacklog,
		subBuffer: DefaultSubscriberBuffer,
	}
	for opt := range slices.Values(opts) {
		opt(cfg)
	}

	return &Feed{
		logger:  logger,
		backlog: ringbuffer.New[ledger.Record](cfg.backlog),
		subs:    make(map[uint64]chan ledger.Record),
		cfg:     cfg,
	}
}

// Publish hands records to every subscriber and keeps them in the backlog.
func (f *Feed) Publish(records ...ledger.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for r := range slices.Values(records) {
		if f.cfg.backlog > 0 {
			f.backlog.Overwrite(r)
		}
		for id, sub := range f.subs {
			select {
			case sub <- r:
			default:
				f.logger.WithFields(logrus.Fields{
					"subscriber_id": id,
					"record_id":     r.ID,
				}).Warn("Subscriber is too slow, dropping record")
				droppedRecords.Inc()
			}
		}
		publishedRecords.Inc()
	}
}

// Subscribe returns a channel that first yields the backlog, oldest first, followed by every record published after
// the call. The channel is closed once ctx is done.
func (f *Feed) Subscribe(ctx context.Context) <-chan ledger.Record {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	var backlog []ledger.Record
	if f.cfg.backlog > 0 {
		backlog = f.backlog.Items()
	}
	sub := make(chan ledger.Record, f.cfg.subBuffer)
	f.subs[id] = sub
	f.mu.Unlock()

	subscribers.Inc()
	logger := f.logger.WithField("subscriber_id", id)
	logger.WithField("backlog", len(backlog)).Debug("New feed subscriber")

	out := make(chan ledger.Record)
	go func() {
		defer close(out)
		defer f.unsubscribe(id)

		for r := range slices.Values(backlog) {
			if !chans.SendOrDone(ctx, out, r) {
				return
			}
		}

		for r := range chans.ReceiveOrDoneSeq(ctx, sub) {
			if !chans.SendOrDone(ctx, out, r) {
				return
			}
		}
		logger.Debug("Feed subscriber gone")
	}()

	return out
}

// Subscribers returns the number of live subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.subs)
}

func (f *Feed) unsubscribe(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subs, id)
	subscribers.Dec()
}
