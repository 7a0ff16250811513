// Package loop provides a minimal, single-threaded implementation of
// collab.Loop: a cooperative idle-task and one-shot-timer scheduler
// modeled on the display server's event loop primitive described in
// the handler's design — idle tasks coalesce same-turn work, and
// timers back ping timeouts. There is no internal parallelism; all
// scheduling and firing happens on whichever goroutine calls Run,
// Tick or Advance.
package loop

import (
	"sort"
	"sync"

	"github.com/elliotmr/xdgshell/collab"
)

type idleTask struct {
	handle collab.IdleHandle
	fn     func()
	live   bool
}

type timer struct {
	handle  collab.TimerHandle
	fireAt  int64 // milliseconds, on the loop's own virtual clock
	fn      func()
	live    bool
}

// Loop is a cooperative scheduler: Idle tasks queue until the next
// Tick (or Run) drains them in FIFO order; timers fire during the
// Advance call that moves the virtual clock to or past their deadline
// (Tick and Run never fire timers).
type Loop struct {
	mu sync.Mutex

	nextHandle uint64
	idles      []*idleTask
	timers     []*timer

	now int64 // virtual milliseconds, advanced by Advance
}

// New creates an empty Loop whose virtual clock starts at 0.
func New() *Loop {
	return &Loop{}
}

func (l *Loop) alloc() uint64 {
	l.nextHandle++
	return l.nextHandle
}

// Idle schedules fn to run on the next Tick.
func (l *Loop) Idle(fn func()) collab.IdleHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := collab.IdleHandle(l.alloc())
	l.idles = append(l.idles, &idleTask{handle: h, fn: fn, live: true})
	return h
}

// CancelIdle cancels a previously scheduled idle task. A no-op if it
// already ran or the handle is zero.
func (l *Loop) CancelIdle(h collab.IdleHandle) {
	if h == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.idles {
		if t.handle == h {
			t.live = false
			return
		}
	}
}

// AfterFunc arms a one-shot timer that fires after millis virtual
// milliseconds have elapsed, as observed by Advance.
func (l *Loop) AfterFunc(millis int, fn func()) collab.TimerHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	h := collab.TimerHandle(l.alloc())
	l.timers = append(l.timers, &timer{handle: h, fireAt: l.now + int64(millis), fn: fn, live: true})
	return h
}

// StopTimer disarms a previously armed timer. A no-op if it already
// fired or the handle is zero.
func (l *Loop) StopTimer(h collab.TimerHandle) {
	if h == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.timers {
		if t.handle == h {
			t.live = false
			return
		}
	}
}

// Tick drains every idle task currently queued, running a snapshot
// taken at entry — idle tasks scheduled by a task running during this
// Tick wait for the next Tick, matching "deferred to a later turn".
func (l *Loop) Tick() {
	l.mu.Lock()
	batch := l.idles
	l.idles = nil
	l.mu.Unlock()

	for _, t := range batch {
		if t.live {
			t.fn()
		}
	}
}

// Advance moves the virtual clock forward by millis milliseconds,
// firing (and removing) every timer whose deadline has now passed,
// then draining idle tasks exactly as Tick does.
func (l *Loop) Advance(millis int) {
	l.mu.Lock()
	l.now += int64(millis)
	due := l.now

	sort.Slice(l.timers, func(i, j int) bool { return l.timers[i].fireAt < l.timers[j].fireAt })

	var fire []*timer
	var remain []*timer
	for _, t := range l.timers {
		if t.live && t.fireAt <= due {
			fire = append(fire, t)
		} else {
			remain = append(remain, t)
		}
	}
	l.timers = remain
	l.mu.Unlock()

	for _, t := range fire {
		if t.live {
			t.fn()
		}
	}
	l.Tick()
}

// Run drains idle tasks until none remain, including ones scheduled
// by tasks that ran during this call. Intended for tests and the demo
// binary's synchronous driving of the shell; a real event loop would
// instead integrate Idle/AfterFunc with epoll/kqueue wakeups.
func (l *Loop) Run() {
	for {
		l.mu.Lock()
		pending := len(l.idles)
		l.mu.Unlock()
		if pending == 0 {
			return
		}
		l.Tick()
	}
}
