// Package driver defines the capture device abstraction and the registry the
// session selects devices from. Concrete backends implement Adapter and
// register themselves with a Manager, which wraps them with identity and a
// lifecycle state machine.
package driver

import "errors"

// ErrNotSupported is returned for operations the underlying device cannot
// perform, such as photo capture on a screen device.
var ErrNotSupported = errors.New("driver: operation not supported by this device")

// DeviceType is a coarse category used to filter the registry.
type DeviceType string

const (
	// Camera represents physical camera devices.
	Camera DeviceType = "camera"
	// Screen represents display capture devices.
	Screen DeviceType = "screen"
)

// Position tells which side of the device a camera faces.
type Position string

const (
	PositionBack  Position = "back"
	PositionFront Position = "front"
	// PositionUnspecified is used by devices without a facing, e.g. screens.
	PositionUnspecified Position = ""
)

// Class describes the lens arrangement of a camera. The session derives its
// zoom baseline from this.
type Class string

const (
	// TripleCamera fuses ultra wide, wide and telephoto lenses.
	TripleCamera Class = "tripleCamera"
	// DualWideCamera fuses ultra wide and wide lenses.
	DualWideCamera Class = "dualWideCamera"
	// DualCamera fuses wide and telephoto lenses.
	DualCamera Class = "dualCamera"
	// WideAngle is a single wide angle lens.
	WideAngle Class = "wideAngle"
)

// FlashMode is a flash setting a device may support for still capture.
type FlashMode string

const (
	FlashOff  FlashMode = "off"
	FlashOn   FlashMode = "on"
	FlashAuto FlashMode = "auto"
)

// Info describes a registered device.
type Info struct {
	Label      string
	DeviceType DeviceType
	Position   Position
	Class      Class
	// FlashModes lists the flash modes the device supports, in the device's
	// preference order. Empty when the device has no flash.
	FlashModes []FlashMode
}

// SupportsFlash reports whether m is in the device's supported set.
func (i Info) SupportsFlash(m FlashMode) bool {
	for _, supported := range i.FlashModes {
		if supported == m {
			return true
		}
	}
	return false
}

// PhotoSettings carries per-request still capture options.
type PhotoSettings struct {
	FlashMode      FlashMode
	HighResolution bool
}
