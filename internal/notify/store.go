package notify

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/examiz/internal/schedule"
)

// IDGenerator returns a fresh notification id.
type IDGenerator func() string

// UUIDs generates random UUID ids.
func UUIDs() IDGenerator {
	return uuid.NewString
}

// Sequential generates ids "<prefix>1", "<prefix>2", ...
func Sequential(prefix string) IDGenerator {
	var n atomic.Int64
	return func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	}
}

// Store owns the ordered list of visible notifications. Insertion order is
// display order. Each notification with a display duration gets its own
// expiry task; dismissal cancels that task before returning.
type Store struct {
	mu     sync.Mutex
	sched  schedule.Scheduler
	ids    IDGenerator
	log    zerolog.Logger
	items  []Notification
	expiry map[string]schedule.Task
	closed bool

	listeners []func([]Notification)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator sets the id generator. Defaults to UUIDs.
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *Store) { s.ids = g }
}

// WithStoreLogger sets the store logger.
func WithStoreLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// WithListener registers a callback invoked with the new list after every
// change. It runs outside the store lock.
func WithListener(fn func([]Notification)) StoreOption {
	return func(s *Store) { s.listeners = append(s.listeners, fn) }
}

// NewStore creates an empty Store whose expiry timers run on sched.
func NewStore(sched schedule.Scheduler, opts ...StoreOption) *Store {
	s := &Store{
		sched:  sched,
		ids:    UUIDs(),
		log:    zerolog.Nop(),
		expiry: make(map[string]schedule.Task),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("component", "notify").Logger()
	return s
}

// Push appends n, assigning its ID and CreatedAt, and starts its expiry
// timer when it has a display duration. The stored copy is returned.
// After Close, Push returns n unchanged without storing it.
func (s *Store) Push(n Notification) Notification {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return n
	}
	n.ID = s.ids()
	n.CreatedAt = s.sched.Now()
	s.items = append(s.items, n)

	if n.DisplayDuration > 0 {
		id := n.ID
		task := s.sched.After(n.DisplayDuration, func() { s.expire(id) })
		s.expiry[id] = task
		task.Start()
	}
	s.log.Debug().
		Str("id", n.ID).
		Str("category", string(n.Category)).
		Dur("display", n.DisplayDuration).
		Msg("Notification pushed")
	items := s.copyItems()
	s.mu.Unlock()

	s.emit(items)
	return n
}

// Dismiss removes the notification with the given id and cancels its
// expiry timer. It reports whether the id was present.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	if !s.removeLocked(id) {
		s.mu.Unlock()
		return false
	}
	if task, ok := s.expiry[id]; ok {
		task.Cancel()
		delete(s.expiry, id)
	}
	s.log.Debug().Str("id", id).Msg("Notification dismissed")
	items := s.copyItems()
	s.mu.Unlock()

	s.emit(items)
	return true
}

// List returns a copy of the visible notifications in display order.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Len returns the number of visible notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Close cancels every expiry timer and clears the list.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, task := range s.expiry {
		task.Cancel()
		delete(s.expiry, id)
	}
	s.items = nil
}

func (s *Store) expire(id string) {
	s.mu.Lock()
	delete(s.expiry, id)
	if !s.removeLocked(id) {
		s.mu.Unlock()
		return
	}
	s.log.Debug().Str("id", id).Msg("Notification expired")
	items := s.copyItems()
	s.mu.Unlock()

	s.emit(items)
}

// removeLocked deletes id from the list. Caller holds s.mu.
func (s *Store) removeLocked(id string) bool {
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) copyItems() []Notification {
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) emit(items []Notification) {
	for _, fn := range s.listeners {
		fn(items)
	}
}
