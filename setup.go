package capturekit

import "context"

// SetupResult is the combined authorization and configuration outcome of one
// setup attempt.
type SetupResult int

const (
	// SetupIdle means no setup attempt has concluded yet.
	SetupIdle SetupResult = iota
	// SetupSuccess means the session is authorized and configured.
	SetupSuccess
	// SetupNotAuthorized means camera permission was denied or restricted.
	SetupNotAuthorized
	// SetupConfigurationFailed means a configuration step was rejected.
	SetupConfigurationFailed
)

// String implements fmt.Stringer.
func (r SetupResult) String() string {
	switch r {
	case SetupIdle:
		return "idle"
	case SetupSuccess:
		return "success"
	case SetupNotAuthorized:
		return "notAuthorized"
	case SetupConfigurationFailed:
		return "configurationFailed"
	default:
		return "unknown"
	}
}

// SetupSession runs authorization and configuration, then starts the
// session. It returns immediately; progress is reported on the setup result
// and configuration event streams. Calling it while the session is already
// running is a no-op, so speculative re-invocations are safe. Each
// non-running invocation re-evaluates from idle.
func (s *Session) SetupSession() {
	s.queue.do(func() {
		if s.runtime.Running() {
			return
		}

		s.setupState.Set(SetupIdle)
		result := s.resolveAuthorization(context.Background())
		s.setupState.Set(result)
		if result != SetupSuccess {
			return
		}

		s.configureSession()
		if s.setupState.Get() != SetupSuccess {
			return
		}

		if err := s.runtime.Start(); err != nil {
			s.log.Errorf("start session: %v", err)
			s.setupState.Set(SetupConfigurationFailed)
		}
	})
}
