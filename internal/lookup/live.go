package lookup

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Result is one delivered search answer. Seq grows with every query sent.
type Result[T any] struct {
	Seq   uint64 `json:"seq"`
	Query string `json:"query"`
	Value T      `json:"options"`
	Err   error  `json:"-"`
}

type pending struct {
	query    string
	selected []string
}

// LiveSearch runs typed queries for one mounted picker. Queries are
// debounced; a newer query cancels the fetch in flight and answers that
// arrive for an older query are dropped.
type LiveSearch[T any] struct {
	fetch   func(ctx context.Context, query string, selected []string) (T, error)
	deliver func(Result[T])
	parent  context.Context

	debouncer *Debouncer[pending]

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// NewLiveSearch creates a live search bound to ctx. Results reach deliver
// from a background goroutine; deliver must not block.
func NewLiveSearch[T any](ctx context.Context, wait time.Duration,
	fetch func(ctx context.Context, query string, selected []string) (T, error),
	deliver func(Result[T]),
) *LiveSearch[T] {
	l := &LiveSearch[T]{fetch: fetch, deliver: deliver, parent: ctx}
	l.debouncer = NewDebouncer(wait, func(p pending) { l.run(p.query, p.selected) })
	return l
}

// Query schedules a search for the text typed so far.
func (l *LiveSearch[T]) Query(query string, selected []string) {
	l.debouncer.Trigger(pending{query: query, selected: append([]string(nil), selected...)})
}

// Now skips the debounce, e.g. for the initial load when a picker opens.
func (l *LiveSearch[T]) Now(query string, selected []string) {
	go l.run(query, selected)
}

func (l *LiveSearch[T]) run(query string, selected []string) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq
	ctx, cancel := context.WithCancel(l.parent)
	l.cancel = cancel
	l.mu.Unlock()

	value, err := l.fetch(ctx, query, selected)

	defer cancel()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || seq != l.seq || errors.Is(err, context.Canceled) {
		return
	}
	l.cancel = nil
	l.deliver(Result[T]{Seq: seq, Query: query, Value: value, Err: err})
}

// Close cancels pending and in-flight work. Nothing is delivered afterwards.
func (l *LiveSearch[T]) Close() {
	l.debouncer.Stop()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
