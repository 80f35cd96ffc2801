package scheduler

import (
	"sync"
	"time"

	"github.com/julianstephens/daymood/internal/logger"
)

// Scheduler runs deferred tasks by key. Scheduling a key that is already
// pending cancels the earlier task, so at most one task per key is live.
type Scheduler struct {
	mu    sync.Mutex
	clock Clock
	tasks map[string]*task
	gen   uint64
}

type task struct {
	gen   uint64
	timer Timer
	fn    func()
}

func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock: clock,
		tasks: make(map[string]*task),
	}
}

// Schedule runs fn after delay unless the key is cancelled or superseded first.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.tasks[key]; ok {
		prev.timer.Stop()
		logger.Debug("Superseded deferred task", "key", key)
	}

	s.gen++
	gen := s.gen
	t := &task{gen: gen, fn: fn}
	s.tasks[key] = t
	t.timer = s.clock.AfterFunc(delay, func() {
		if s.take(key, gen) != nil {
			fn()
		}
	})
}

// Cancel drops the pending task for key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key]
	if !ok {
		return false
	}
	t.timer.Stop()
	delete(s.tasks, key)
	return true
}

// Pending reports whether a task is waiting under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.tasks[key]
	return ok
}

// Flush runs the pending task for key immediately. It reports whether a task ran.
func (s *Scheduler) Flush(key string) bool {
	s.mu.Lock()
	t, ok := s.tasks[key]
	if ok {
		t.timer.Stop()
		delete(s.tasks, key)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	t.fn()
	return true
}

// Stop cancels every pending task without running it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, key)
	}
}

// take removes the task for key if it is still generation gen.
func (s *Scheduler) take(key string, gen uint64) *task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key]
	if !ok || t.gen != gen {
		return nil
	}
	delete(s.tasks, key)
	return t
}
