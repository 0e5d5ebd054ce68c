// Package screen registers display capture devices. They participate in the
// registry under driver.Screen and are excluded from the camera selection
// cascade; hosts can still query and stream them directly.
package screen

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
)

const frameRate = 10

func init() {
	Register(driver.GetManager())
}

// Register adds one device per active display to m.
func Register(m *driver.Manager) error {
	n := screenshot.NumActiveDisplays()
	for i := 0; i < n; i++ {
		s := &capturer{display: i}
		info := driver.Info{
			Label:      fmt.Sprintf("Display %d", i),
			DeviceType: driver.Screen,
		}
		if err := m.Register(s, info); err != nil {
			return err
		}
	}
	return nil
}

type capturer struct {
	display int

	mu     sync.Mutex
	closed chan struct{}
	tick   *time.Ticker
}

func (s *capturer) Open() error {
	s.mu.Lock()
	s.closed = make(chan struct{})
	s.mu.Unlock()
	return nil
}

func (s *capturer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed != nil {
		close(s.closed)
		s.closed = nil
	}
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
	return nil
}

func (s *capturer) VideoRecord() (frame.Reader, error) {
	bounds := screenshot.GetDisplayBounds(s.display)

	s.mu.Lock()
	closed := s.closed
	tick := time.NewTicker(time.Second / frameRate)
	s.tick = tick
	s.mu.Unlock()

	r := frame.ReaderFunc(func() (*frame.Frame, func(), error) {
		select {
		case <-closed:
			return nil, func() {}, io.EOF
		case <-tick.C:
		}

		img, err := screenshot.CaptureRect(bounds)
		if err != nil {
			return nil, func() {}, fmt.Errorf("screen: capture display %d: %w", s.display, err)
		}
		f := &frame.Frame{
			Data:   img.Pix,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: frame.FormatRGBA,
		}
		return f, func() {}, nil
	})
	return r, nil
}

func (s *capturer) VideoStop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}
	return nil
}
