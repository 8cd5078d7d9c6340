package schedule

import (
	"sync"
	"time"
)

// Real schedules tasks on the wall clock. Task functions run on their own
// goroutines, so callers guard shared state with their own locks. A function
// already in flight when Cancel is called may still finish; owners re-check
// their task handle under lock before mutating.
type Real struct{}

// NewReal returns a wall-clock scheduler.
func NewReal() *Real {
	return &Real{}
}

func (*Real) Now() time.Time { return time.Now() }

func (*Real) Every(interval time.Duration, fn func()) Task {
	return &tickerTask{interval: interval, fn: fn, done: make(chan struct{})}
}

func (*Real) After(delay time.Duration, fn func()) Task {
	return &timerTask{delay: delay, fn: fn}
}

// tickerTask runs fn on a time.Ticker until cancelled.
type tickerTask struct {
	interval time.Duration
	fn       func()

	mu        sync.Mutex
	started   bool
	cancelled bool
	done      chan struct{}
}

func (t *tickerTask) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.cancelled {
		return
	}
	t.started = true
	go t.loop()
}

func (t *tickerTask) loop() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			select {
			case <-t.done:
				return
			default:
			}
			t.fn()
		}
	}
}

func (t *tickerTask) Cancel() {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.cancelled = true
	close(t.done)
	t.mu.Unlock()
}

func (t *tickerTask) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started && !t.cancelled
}

// timerTask runs fn once via time.AfterFunc.
type timerTask struct {
	delay time.Duration
	fn    func()

	mu        sync.Mutex
	timer     *time.Timer
	started   bool
	fired     bool
	cancelled bool
}

func (t *timerTask) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started || t.cancelled {
		return
	}
	t.started = true
	t.timer = time.AfterFunc(t.delay, t.fire)
}

func (t *timerTask) fire() {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.fired = true
	t.mu.Unlock()
	t.fn()
}

func (t *timerTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.cancelled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *timerTask) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started && !t.cancelled && !t.fired
}
