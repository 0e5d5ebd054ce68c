// Package cameratest provides an in-memory camera adapter for tests and
// examples. It produces a color bar pattern and supports the full adapter
// surface, with hooks to inject failures and observe applied settings.
package cameratest

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
)

var barColors = []color.RGBA{
	{R: 235, G: 235, B: 235, A: 255},
	{R: 235, G: 235, B: 16, A: 255},
	{R: 16, G: 235, B: 235, A: 255},
	{R: 16, G: 235, B: 16, A: 255},
	{R: 235, G: 16, B: 235, A: 255},
	{R: 235, G: 16, B: 16, A: 255},
	{R: 16, G: 16, B: 235, A: 255},
}

// Camera is a fake capture device.
type Camera struct {
	info      driver.Info
	width     int
	height    int
	frameRate float64

	openErr error
	zoomErr error
	lockErr error

	mu            sync.Mutex
	cancel        func()
	closed        <-chan struct{}
	tick          *time.Ticker
	zoom          float64
	locked        bool
	lastPhoto     *driver.PhotoSettings
	photoRequests int
}

// Option configures the fake camera.
type Option func(*Camera)

// WithInfo overrides the full device description.
func WithInfo(info driver.Info) Option {
	return func(c *Camera) { c.info = info }
}

// WithClass sets the lens arrangement.
func WithClass(class driver.Class) Option {
	return func(c *Camera) { c.info.Class = class }
}

// WithPosition sets the camera facing.
func WithPosition(p driver.Position) Option {
	return func(c *Camera) { c.info.Position = p }
}

// WithFlashModes sets the supported flash modes, in preference order.
func WithFlashModes(modes ...driver.FlashMode) Option {
	return func(c *Camera) { c.info.FlashModes = modes }
}

// WithSize sets the frame dimensions.
func WithSize(width, height int) Option {
	return func(c *Camera) {
		c.width = width
		c.height = height
	}
}

// WithOpenError makes Open fail with err.
func WithOpenError(err error) Option {
	return func(c *Camera) { c.openErr = err }
}

// WithZoomError makes SetZoom fail with err.
func WithZoomError(err error) Option {
	return func(c *Camera) { c.zoomErr = err }
}

// WithLockError makes LockForConfiguration fail with err.
func WithLockError(err error) Option {
	return func(c *Camera) { c.lockErr = err }
}

// New creates a fake back wide-angle camera with flash off/on/auto support.
func New(opts ...Option) *Camera {
	c := &Camera{
		info: driver.Info{
			Label:      "CameraTest",
			DeviceType: driver.Camera,
			Position:   driver.PositionBack,
			Class:      driver.WideAngle,
			FlashModes: []driver.FlashMode{driver.FlashOff, driver.FlashOn, driver.FlashAuto},
		},
		width:     320,
		height:    240,
		frameRate: 30,
		zoom:      1.0,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Register creates a fake camera and adds it to m.
func Register(m *driver.Manager, opts ...Option) (*Camera, error) {
	c := New(opts...)
	if err := m.Register(c, c.info); err != nil {
		return nil, err
	}
	return c, nil
}

// Info returns the device description.
func (c *Camera) Info() driver.Info {
	return c.info
}

// Open implements driver.Adapter.
func (c *Camera) Open() error {
	if c.openErr != nil {
		return c.openErr
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.closed = ctx.Done()
	c.cancel = cancel
	c.mu.Unlock()
	return nil
}

// Close implements driver.Adapter.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
	return nil
}

// VideoRecord implements driver.Adapter. Frames are paced at the configured
// frame rate.
func (c *Camera) VideoRecord() (frame.Reader, error) {
	c.mu.Lock()
	closed := c.closed
	tick := time.NewTicker(time.Duration(float64(time.Second) / c.frameRate))
	c.tick = tick
	c.mu.Unlock()

	var seq int
	r := frame.ReaderFunc(func() (*frame.Frame, func(), error) {
		select {
		case <-closed:
			return nil, func() {}, io.EOF
		case <-tick.C:
		}

		img := c.pattern(seq)
		seq++
		f := &frame.Frame{
			Data:   img.Pix,
			Width:  c.width,
			Height: c.height,
			Format: frame.FormatRGBA,
		}
		return f, func() {}, nil
	})
	return r, nil
}

// VideoStop implements driver.Adapter.
func (c *Camera) VideoStop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tick != nil {
		c.tick.Stop()
		c.tick = nil
	}
	return nil
}

// TakePhoto implements driver.PhotoAdapter by encoding the current pattern
// as JPEG.
func (c *Camera) TakePhoto(s driver.PhotoSettings) ([]byte, error) {
	c.mu.Lock()
	settings := s
	c.lastPhoto = &settings
	c.photoRequests++
	seq := c.photoRequests
	c.mu.Unlock()

	return frame.EncodeJPEG(c.pattern(seq), frame.DefaultJPEGQuality)
}

// LockForConfiguration implements driver.ZoomAdapter.
func (c *Camera) LockForConfiguration() error {
	if c.lockErr != nil {
		return c.lockErr
	}
	c.mu.Lock()
	c.locked = true
	c.mu.Unlock()
	return nil
}

// UnlockForConfiguration implements driver.ZoomAdapter.
func (c *Camera) UnlockForConfiguration() {
	c.mu.Lock()
	c.locked = false
	c.mu.Unlock()
}

// SetZoom implements driver.ZoomAdapter. It fails unless the configuration
// lock is held, mirroring real hardware.
func (c *Camera) SetZoom(factor float64) error {
	if c.zoomErr != nil {
		return c.zoomErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.locked {
		return fmt.Errorf("cameratest: zoom write without configuration lock")
	}
	c.zoom = factor
	return nil
}

// Zoom returns the last zoom factor applied to the hardware.
func (c *Camera) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// LastPhotoSettings returns the settings of the most recent TakePhoto call,
// or nil when none happened.
func (c *Camera) LastPhotoSettings() *driver.PhotoSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPhoto
}

// pattern renders vertical color bars with a moving band keyed on seq so
// consecutive frames differ.
func (c *Camera) pattern(seq int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	barWidth := c.width/len(barColors) + 1
	for x := 0; x < c.width; x++ {
		col := barColors[x/barWidth]
		for y := 0; y < c.height; y++ {
			img.SetRGBA(x, y, col)
		}
	}
	band := seq % c.height
	for x := 0; x < c.width; x++ {
		img.SetRGBA(x, band, color.RGBA{A: 255})
	}
	return img
}
