package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a deterministic scheduler for tests. Time only moves when
// Advance is called, and due task functions run synchronously on the
// caller's goroutine in due-time order (creation order breaks ties).
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	seq   int
	tasks map[*manualTask]struct{}
}

// NewManual returns a Manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start, tasks: make(map[*manualTask]struct{})}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Every(interval time.Duration, fn func()) Task {
	return m.newTask(interval, true, fn)
}

func (m *Manual) After(delay time.Duration, fn func()) Task {
	return m.newTask(delay, false, fn)
}

func (m *Manual) newTask(d time.Duration, repeat bool, fn func()) *manualTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return &manualTask{m: m, period: d, repeat: repeat, fn: fn, seq: m.seq}
}

// Pending returns the number of started, uncancelled tasks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Advance moves the clock forward by d, running every task that falls due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		if next.repeat {
			next.due = next.due.Add(next.period)
		} else {
			delete(m.tasks, next)
			next.state = taskDone
		}
		fn := next.fn
		m.mu.Unlock()

		fn()
	}
}

func (m *Manual) nextDue(target time.Time) *manualTask {
	var due []*manualTask
	for t := range m.tasks {
		if !t.due.After(target) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	return due[0]
}

type taskState int

const (
	taskIdle taskState = iota
	taskRunning
	taskDone
)

type manualTask struct {
	m      *Manual
	period time.Duration
	repeat bool
	fn     func()
	seq    int

	// guarded by m.mu
	state taskState
	due   time.Time
}

func (t *manualTask) Start() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.state != taskIdle {
		return
	}
	t.state = taskRunning
	t.due = t.m.now.Add(t.period)
	t.m.tasks[t] = struct{}{}
}

func (t *manualTask) Cancel() {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	t.state = taskDone
	delete(t.m.tasks, t)
}

func (t *manualTask) Running() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.state == taskRunning
}
