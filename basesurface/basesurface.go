// Package basesurface is a minimal in-memory collab.Surface: the
// generic surface primitive this handler expects to sit underneath
// it, reduced to exactly the two things the handler watches —
// whether a buffer is attached, and commit/destroy notification.
package basesurface

// Surface is a bare-bones collab.Surface. Real damage tracking,
// opaque regions and pixel storage live in the embedding compositor;
// this only tracks what xdgshell needs to observe.
type Surface struct {
	id uint32

	hasBuffer        bool
	pendingBuffer    bool
	pendingBufferSet bool

	destroyed bool

	onCommit  []func(hasBuffer bool)
	onDestroy []func()
}

// New builds a Surface with the given resource id.
func New(id uint32) *Surface {
	return &Surface{id: id}
}

// ID implements collab.Surface.
func (s *Surface) ID() uint32 { return s.id }

// HasBuffer implements collab.Surface.
func (s *Surface) HasBuffer() bool { return s.hasBuffer }

// OnCommit implements collab.Surface.
func (s *Surface) OnCommit(fn func(hasBuffer bool)) { s.onCommit = append(s.onCommit, fn) }

// OnDestroy implements collab.Surface.
func (s *Surface) OnDestroy(fn func()) { s.onDestroy = append(s.onDestroy, fn) }

// AttachBuffer records that a buffer is now attached, to take effect
// on the next Commit — mirroring the real wl_surface's double
// buffering of the pending buffer state.
func (s *Surface) AttachBuffer() { s.pendingBuffer, s.pendingBufferSet = true, true }

// DetachBuffer records that the attached buffer is being removed
// (wl_surface.attach(null)), to take effect on the next Commit.
func (s *Surface) DetachBuffer() { s.pendingBuffer, s.pendingBufferSet = false, true }

// Commit applies whatever AttachBuffer/DetachBuffer queued since the
// last Commit and fires every registered commit listener, mirroring
// wl_surface.commit. A Commit with no intervening attach/detach
// leaves hasBuffer unchanged, same as the real protocol.
func (s *Surface) Commit() {
	if s.pendingBufferSet {
		s.hasBuffer = s.pendingBuffer
		s.pendingBufferSet = false
	}
	for _, fn := range s.onCommit {
		fn(s.hasBuffer)
	}
}

// Destroy fires every registered destroy listener, mirroring
// wl_surface's destructor. Idempotent.
func (s *Surface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, fn := range s.onDestroy {
		fn()
	}
}
