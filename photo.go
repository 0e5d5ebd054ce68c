package capturekit

import (
	"errors"
	"fmt"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
	"github.com/koma-inc/capturekit/pkg/pubsub"
)

// ImageSource tells where a captured image came from.
type ImageSource string

const (
	// SourceCamera marks stills captured by the session's camera.
	SourceCamera ImageSource = "camera"
	// SourceGallery marks images chosen through the library picker.
	SourceGallery ImageSource = "gallery"
)

// ImageOutput is the unit of successful photo capture regardless of origin.
type ImageOutput struct {
	Data   []byte
	Source ImageSource
}

// ImageResult carries exactly one of a successful output or a failure.
type ImageResult struct {
	Output *ImageOutput
	Err    error
}

// ErrCantConvertImage means a capture or library pick could not be turned
// into a displayable image.
var ErrCantConvertImage = errors.New("capturekit: cannot convert capture to a displayable image")

// CaptureError wraps a hardware failure reported during capture.
type CaptureError struct {
	Cause error
}

// Error implements error.
func (e *CaptureError) Error() string {
	return fmt.Sprintf("capturekit: capture failed: %v", e.Cause)
}

// Unwrap exposes the hardware cause.
func (e *CaptureError) Unwrap() error {
	return e.Cause
}

// CaptureImage issues a one-shot photo capture. When the photo output has no
// active connection (the session is not configured or not running) the call
// is silently dropped; callers may invoke capture speculatively during setup
// races. Exactly one ImageResult is delivered per accepted request.
func (s *Session) CaptureImage() {
	s.queue.do(func() {
		if !s.runtime.PhotoActive() {
			return
		}
		settings := driver.PhotoSettings{
			FlashMode:      s.resolveFlashMode(),
			HighResolution: true,
		}
		s.runtime.CapturePhoto(settings, s.photo.complete)
	})
}

// photoSink maps one-shot capture completions into the shared image stream.
// It performs no retries; one completion yields one terminal result.
type photoSink struct {
	images *pubsub.Broadcaster[ImageResult]
}

// complete is the capture completion target. Called by the runtime, possibly
// off the serial queue; the broadcaster is safe for that.
func (p *photoSink) complete(data []byte, err error) {
	if err != nil {
		p.images.Publish(ImageResult{Err: &CaptureError{Cause: err}})
		return
	}
	if _, derr := frame.Decode(data); derr != nil {
		p.images.Publish(ImageResult{Err: ErrCantConvertImage})
		return
	}
	p.images.Publish(ImageResult{Output: &ImageOutput{Data: data, Source: SourceCamera}})
}
