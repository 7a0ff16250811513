package xdgshell

import (
	"sort"

	"github.com/elliotmr/xdgshell/collab"
	"github.com/elliotmr/xdgshell/wire"
)

// testLoop is a deterministic, manually-driven collab.Loop: idle
// tasks queue in Idle and only run when the test calls drain,
// modeling "coalesce same-turn work" without any real concurrency.
type testLoop struct {
	nextHandle collab.IdleHandle
	idles      map[collab.IdleHandle]func()

	nextTimer collab.TimerHandle
	timers    map[collab.TimerHandle]func()
}

func newTestLoop() *testLoop {
	return &testLoop{idles: map[collab.IdleHandle]func(){}, timers: map[collab.TimerHandle]func(){}}
}

func (l *testLoop) Idle(fn func()) collab.IdleHandle {
	l.nextHandle++
	l.idles[l.nextHandle] = fn
	return l.nextHandle
}

func (l *testLoop) CancelIdle(h collab.IdleHandle) {
	delete(l.idles, h)
}

func (l *testLoop) AfterFunc(millis int, fn func()) collab.TimerHandle {
	l.nextTimer++
	l.timers[l.nextTimer] = fn
	return l.nextTimer
}

func (l *testLoop) StopTimer(h collab.TimerHandle) {
	delete(l.timers, h)
}

// drain runs every idle task queued right now, in insertion order by
// handle. Tasks scheduled by a task running during drain are not run
// until the next drain call, matching the real loop's "later turn"
// semantics.
func (l *testLoop) drain() {
	var keys []collab.IdleHandle
	for h := range l.idles {
		keys = append(keys, h)
	}
	// insertion order: handles are monotonically increasing
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		fn, ok := l.idles[k]
		if !ok {
			continue // canceled by a task that ran earlier in this drain
		}
		delete(l.idles, k)
		fn()
	}
}

// fireTimer runs and removes the timer with the given handle, used by
// tests to simulate a ping timing out.
func (l *testLoop) fireTimer(h collab.TimerHandle) {
	fn, ok := l.timers[h]
	if !ok {
		return
	}
	delete(l.timers, h)
	fn()
}

func (l *testLoop) pendingIdleCount() int { return len(l.idles) }

// testSink records every outgoing event this handler produces, in
// call order, so assertions can check exact sequences rather than
// just final state.
type testSink struct {
	events []string

	surfaceConfigures  []struct{ surfaceID, serial uint32 }
	toplevelConfigures []struct {
		toplevelID   uint32
		width, height int32
		states       []uint32
	}
	toplevelCloses  []uint32
	popupConfigures []struct {
		popupID          uint32
		x, y, width, height int32
	}
	popupRepositioned []struct{ popupID, token uint32 }
	popupDones        []uint32
	pings             []struct{ wmBaseID, serial uint32 }
}

func newTestSink() *testSink { return &testSink{} }

func (s *testSink) WmBasePing(wmBaseID uint32, serial uint32) {
	s.events = append(s.events, "ping")
	s.pings = append(s.pings, struct{ wmBaseID, serial uint32 }{wmBaseID, serial})
}

func (s *testSink) XdgSurfaceConfigure(surfaceID uint32, serial uint32) {
	s.events = append(s.events, "xdg_surface.configure")
	s.surfaceConfigures = append(s.surfaceConfigures, struct{ surfaceID, serial uint32 }{surfaceID, serial})
}

func (s *testSink) ToplevelConfigure(toplevelID uint32, width, height int32, states []uint32) {
	s.events = append(s.events, "xdg_toplevel.configure")
	s.toplevelConfigures = append(s.toplevelConfigures, struct {
		toplevelID    uint32
		width, height int32
		states        []uint32
	}{toplevelID, width, height, states})
}

func (s *testSink) ToplevelClose(toplevelID uint32) {
	s.events = append(s.events, "xdg_toplevel.close")
	s.toplevelCloses = append(s.toplevelCloses, toplevelID)
}

func (s *testSink) PopupConfigure(popupID uint32, x, y, width, height int32) {
	s.events = append(s.events, "xdg_popup.configure")
	s.popupConfigures = append(s.popupConfigures, struct {
		popupID             uint32
		x, y, width, height int32
	}{popupID, x, y, width, height})
}

func (s *testSink) PopupRepositioned(popupID uint32, token uint32) {
	s.events = append(s.events, "xdg_popup.repositioned")
	s.popupRepositioned = append(s.popupRepositioned, struct{ popupID, token uint32 }{popupID, token})
}

func (s *testSink) PopupDone(popupID uint32) {
	s.events = append(s.events, "xdg_popup.popup_done")
	s.popupDones = append(s.popupDones, popupID)
}

// testErrorPoster records posted protocol errors instead of tearing
// down a connection, so a test can assert on the exact (resource,
// code) pair without the dispatcher this handler doesn't have.
type testErrorPoster struct {
	errors []struct {
		resourceID, code uint32
		message          string
	}
}

func (e *testErrorPoster) PostError(resourceID uint32, code uint32, message string) {
	e.errors = append(e.errors, struct {
		resourceID, code uint32
		message          string
	}{resourceID, code, message})
}

// testSurface is a bare collab.Surface double: no buffer double
// buffering, just enough to drive Surface.onCommit/Destroy directly
// from a test without going through basesurface's attach/detach
// staging.
type testSurface struct {
	id        uint32
	hasBuffer bool

	commitFns  []func(bool)
	destroyFns []func()
}

func newTestSurface(id uint32) *testSurface { return &testSurface{id: id} }

func (s *testSurface) ID() uint32                        { return s.id }
func (s *testSurface) HasBuffer() bool                   { return s.hasBuffer }
func (s *testSurface) OnCommit(fn func(hasBuffer bool))  { s.commitFns = append(s.commitFns, fn) }
func (s *testSurface) OnDestroy(fn func())               { s.destroyFns = append(s.destroyFns, fn) }

func (s *testSurface) commit(hasBuffer bool) {
	s.hasBuffer = hasBuffer
	for _, fn := range s.commitFns {
		fn(hasBuffer)
	}
}

func (s *testSurface) destroy() {
	for _, fn := range s.destroyFns {
		fn()
	}
}

// testSeat is a minimal collab.Seat double with a settable current
// serial and a single pointer/keyboard grab slot, enough to exercise
// PopupGrabChain without pulling in memseat's focus-tracking.
type testSeat struct {
	current uint32

	pointer  *collab.PointerGrabHandlers
	keyboard *collab.KeyboardGrabHandlers

	clientOf map[uint32]collab.ClientID

	defaultButtonSerial uint32
}

func newTestSeat() *testSeat { return &testSeat{clientOf: map[uint32]collab.ClientID{}} }

func (s *testSeat) ValidateSerial(serial uint32) bool { return serial == s.current }

func (s *testSeat) ClientOf(surfaceID uint32) collab.ClientID { return s.clientOf[surfaceID] }

func (s *testSeat) PointerGrabStart(h collab.PointerGrabHandlers) error {
	s.pointer = &h
	return nil
}

func (s *testSeat) PointerGrabEnd() { s.pointer = nil }

func (s *testSeat) KeyboardGrabStart(h collab.KeyboardGrabHandlers) error {
	s.keyboard = &h
	return nil
}

func (s *testSeat) KeyboardGrabEnd() { s.keyboard = nil }

func (s *testSeat) DefaultPointerButton(button uint32, pressed bool) uint32 {
	return s.defaultButtonSerial
}

// harness bundles everything a test needs to build surfaces against:
// a Shell wired to deterministic test doubles, and the shared serial
// counter tests can read to predict expected values.
type harness struct {
	shell  *Shell
	loop   *testLoop
	sink   *testSink
	errp   *testErrorPoster
	serial *wire.Serial
}

func newHarness() *harness {
	l := newTestLoop()
	sink := newTestSink()
	errp := &testErrorPoster{}
	serial := &wire.Serial{}
	shell := NewShell(Config{
		Loop:        l,
		Sink:        sink,
		ErrorPoster: errp,
		Serial:      serial,
	})
	return &harness{shell: shell, loop: l, sink: sink, errp: errp, serial: serial}
}

// newClientSurface is a convenience for tests: register a client and
// wrap a fresh testSurface in an xdg_surface in one call.
func (h *harness) newClientSurface(clientID collab.ClientID, wmBaseID, surfaceID, xdgSurfaceID uint32) (*Client, *testSurface, *Surface) {
	client := h.shell.NewClient(clientID, wmBaseID)
	base := newTestSurface(surfaceID)
	xdgSurface, err := client.NewXdgSurface(xdgSurfaceID, base)
	if err != nil {
		panic(err)
	}
	return client, base, xdgSurface
}
