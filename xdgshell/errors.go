package xdgshell

import "fmt"

// ProtocolError is a client-visible, connection-fatal protocol
// violation. Resource names the wire object the error is posted
// against — for most codes that is the offending object itself, but
// a few (INVALID_SURFACE_STATE among them) are defined on xdg_wm_base
// per the wire protocol even though they are raised from an
// xdg_surface request; Resource carries whichever object the code is
// namespaced under. The one exception is get_xdg_surface's
// UNCONFIGURED_BUFFER, posted against xdg_wm_base because the
// xdg_surface being created does not exist yet.
type ProtocolError struct {
	Resource uint32
	Code     uint32
	Message  string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %d on resource %d: %s", e.Code, e.Resource, e.Message)
}

// post delivers the error to the dispatcher's ErrorPoster, if one was
// configured. A nil ErrorPoster is tolerated so the core stays usable
// in tests that don't care about error delivery, matching the "never
// call os.Exit/panic on client misbehavior" rule — the caller is
// still responsible for returning the error up so callers can stop
// processing the offending request.
func (s *Shell) post(err *ProtocolError) *ProtocolError {
	if s.errp != nil {
		s.errp.PostError(err.Resource, err.Code, err.Message)
	}
	if s.log != nil {
		s.log.WithFields(map[string]interface{}{
			"resource": err.Resource,
			"code":     err.Code,
		}).Warn(err.Message)
	}
	return err
}
