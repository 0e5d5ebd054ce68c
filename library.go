package capturekit

import (
	"context"
	"errors"
	"os"

	"github.com/koma-inc/capturekit/pkg/frame"
	"github.com/koma-inc/capturekit/pkg/picker"
)

// galleryMaxSide caps the longest side of library picks so arbitrarily large
// originals do not flood the result stream.
const galleryMaxSide = 4096

// SelectImageFromLibrary presents the OS image picker and feeds the chosen
// image into the shared image stream with gallery source. The picker UI is
// always dismissed, whatever the outcome. A dismissal without a choice emits
// nothing; a chosen file that cannot be converted emits ErrCantConvertImage.
func (s *Session) SelectImageFromLibrary(ctx context.Context) {
	// The picker runs off the serial queue: a modal dialog must not block
	// session configuration.
	go func() {
		path, err := s.picker.PickImage(ctx)
		if errors.Is(err, picker.ErrCanceled) || errors.Is(err, context.Canceled) {
			return
		}
		if err != nil {
			s.log.Warnf("library picker: %v", err)
			return
		}
		s.images.Publish(importImage(path))
	}()
}

// importImage converts the file at path into a gallery ImageOutput,
// normalized to a bounded JPEG.
func importImage(path string) ImageResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageResult{Err: ErrCantConvertImage}
	}
	img, err := frame.Decode(data)
	if err != nil {
		return ImageResult{Err: ErrCantConvertImage}
	}
	img = frame.Downscale(img, galleryMaxSide)
	out, err := frame.EncodeJPEG(img, frame.DefaultJPEGQuality)
	if err != nil {
		return ImageResult{Err: ErrCantConvertImage}
	}
	return ImageResult{Output: &ImageOutput{Data: out, Source: SourceGallery}}
}
