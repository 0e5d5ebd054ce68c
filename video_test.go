package capturekit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koma-inc/capturekit/pkg/frame"
)

func TestFrameStreamKeepsOnlyLatest(t *testing.T) {
	s, _ := newTestSession(t, &fakeRuntime{})

	frames, cancel := s.Frames()
	defer cancel()

	for i := 1; i <= 5; i++ {
		s.video.relay(&frame.Frame{Width: i, Height: 1, Format: frame.FormatRGBA, Data: []byte{0, 0, 0, 255}})
	}

	f := recv(t, frames)
	assert.Equal(t, 5, f.Width, "a subscriber that falls behind gets the newest frame")
	expectNone(t, frames)
}

func TestFrameRelayClonesPayload(t *testing.T) {
	s, _ := newTestSession(t, &fakeRuntime{})

	frames, cancel := s.Frames()
	defer cancel()

	data := []byte{1, 2, 3, 4}
	s.video.relay(&frame.Frame{Width: 1, Height: 1, Format: frame.FormatRGBA, Data: data})
	data[0] = 99

	f := recv(t, frames)
	assert.Equal(t, byte(1), f.Data[0], "the device may reuse its buffer after the relay returns")
}
