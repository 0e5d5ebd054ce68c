package capturekit

import "context"

// AuthorizationStatus mirrors the platform's camera permission states.
type AuthorizationStatus int

const (
	// AuthorizationNotDetermined means the user was never asked.
	AuthorizationNotDetermined AuthorizationStatus = iota
	// AuthorizationAuthorized means camera access is granted.
	AuthorizationAuthorized
	// AuthorizationDenied means the user declined access.
	AuthorizationDenied
	// AuthorizationRestricted means policy forbids access regardless of the
	// user's choice.
	AuthorizationRestricted
)

// Authorizer resolves camera access permission for the process.
type Authorizer interface {
	Status() AuthorizationStatus
	// RequestAccess prompts the user and blocks until the decision is made.
	// It is only called when Status returns AuthorizationNotDetermined.
	RequestAccess(ctx context.Context) bool
}

// AccessObserver is notified once per authorization prompt with the grant
// outcome.
type AccessObserver interface {
	AccessResolved(granted bool)
}

// systemAuthorizer is the default. Desktop Go processes have no interactive
// camera permission model; device nodes are guarded by file permissions, so
// access counts as granted.
type systemAuthorizer struct{}

func (systemAuthorizer) Status() AuthorizationStatus        { return AuthorizationAuthorized }
func (systemAuthorizer) RequestAccess(context.Context) bool { return true }

// resolveAuthorization drives the authorization state machine. It runs on
// the serial queue; a pending prompt blocks the queue so no configuration
// work can race ahead of the permission decision.
func (s *Session) resolveAuthorization(ctx context.Context) SetupResult {
	switch s.authorizer.Status() {
	case AuthorizationAuthorized:
		return SetupSuccess
	case AuthorizationNotDetermined:
		granted := s.authorizer.RequestAccess(ctx)
		s.granted.Publish(granted)
		if s.access != nil {
			s.access.AccessResolved(granted)
		}
		if granted {
			return SetupSuccess
		}
		return SetupNotAuthorized
	default:
		// Denied, restricted, and any status added in the future resolve to
		// not authorized without prompting.
		return SetupNotAuthorized
	}
}
