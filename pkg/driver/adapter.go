package driver

import "github.com/koma-inc/capturekit/pkg/frame"

// Adapter is the minimal surface a capture backend implements. The registry
// wraps adapters into Devices; backends never implement Device directly.
type Adapter interface {
	Open() error
	Close() error
	VideoRecord() (frame.Reader, error)
	VideoStop() error
}

// PhotoAdapter is implemented by backends that can produce one-shot stills.
type PhotoAdapter interface {
	TakePhoto(PhotoSettings) ([]byte, error)
}

// ZoomAdapter is implemented by backends with a hardware zoom control. The
// configuration lock must be held across SetZoom; backends may use it to
// serialize control writes with other configuration.
type ZoomAdapter interface {
	LockForConfiguration() error
	UnlockForConfiguration()
	SetZoom(factor float64) error
}

// Device is a registered adapter with identity and a lifecycle state machine.
// Photo and zoom operations return ErrNotSupported when the underlying
// adapter lacks the capability.
type Device interface {
	ID() string
	Info() Info
	Status() State

	Open() error
	Close() error
	VideoRecord() (frame.Reader, error)
	VideoStop() error

	TakePhoto(PhotoSettings) ([]byte, error)
	LockForConfiguration() error
	UnlockForConfiguration()
	SetZoom(factor float64) error
}
