// Package frame defines the video frame unit exchanged between capture
// devices and the session, plus the image conversion helpers used by the
// photo and gallery paths.
package frame

// Format identifies the pixel or container format of a frame's payload.
type Format string

const (
	// FormatRGBA is raw 8-bit RGBA, 4 bytes per pixel, row major.
	FormatRGBA Format = "rgba"
	// FormatYUYV is packed YUV 4:2:2 as delivered by most UVC cameras.
	FormatYUYV Format = "yuyv"
	// FormatMJPEG is a self-contained JPEG image per frame.
	FormatMJPEG Format = "mjpeg"
)

// Frame is a single video frame as delivered by a capture device. Data is
// only valid until the release function handed out alongside the frame is
// called.
type Frame struct {
	Data   []byte
	Width  int
	Height int
	Format Format
}

// Reader delivers a stream of frames. release must be called once the frame
// is no longer used so the device can reuse its buffers.
type Reader interface {
	Read() (f *Frame, release func(), err error)
}

// ReaderFunc is a function adapter for Reader.
type ReaderFunc func() (*Frame, func(), error)

// Read implements Reader.
func (rf ReaderFunc) Read() (*Frame, func(), error) {
	return rf()
}
