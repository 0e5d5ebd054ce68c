package driver

import "fmt"

// State represents a device's lifecycle state.
type State string

const (
	// StateClosed means the device has not been opened. Hardware details are
	// unknown in this state.
	StateClosed State = "closed"
	// StateOpened means the device is opened and ready to stream or capture.
	StateOpened State = "opened"
	// StateRunning means the device is streaming frames.
	StateRunning State = "running"
)

// Update transitions s to next by running f. If the transition is illegal or
// f fails, s stays unchanged.
func (s *State) Update(next State, f func() error) error {
	if err := s.check(next); err != nil {
		return err
	}
	if err := f(); err != nil {
		return err
	}
	*s = next
	return nil
}

func (s *State) check(next State) error {
	switch next {
	case StateOpened:
		if *s == StateOpened {
			return fmt.Errorf("driver: invalid state: device is already opened")
		}
	case StateRunning:
		if *s == StateClosed {
			return fmt.Errorf("driver: invalid state: device is closed")
		}
		if *s == StateRunning {
			return fmt.Errorf("driver: invalid state: device is already running")
		}
	case StateClosed:
	default:
		return fmt.Errorf("driver: unknown state %q", next)
	}
	return nil
}
