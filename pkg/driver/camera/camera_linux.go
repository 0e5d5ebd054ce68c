// Package camera registers the platform's physical cameras with the driver
// registry. On Linux it talks V4L2 through github.com/blackjack/webcam.
package camera

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/blackjack/webcam"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
)

const (
	searchPath = "/dev/v4l/by-path/"

	// V4L2 fourcc codes, little endian.
	pixFmtYUYV  = webcam.PixelFormat(0x56595559) // 'YUYV'
	pixFmtMJPEG = webcam.PixelFormat(0x47504A4D) // 'MJPG'

	// V4L2_CID_ZOOM_ABSOLUTE
	ctrlZoomAbsolute = webcam.ControlID(0x009a090d)

	maxEmptyFrameCount = 5
	waitTimeoutSec     = 5
)

var (
	errReadTimeout = errors.New("camera: read timeout")
	errEmptyFrame  = errors.New("camera: empty frame")
)

func init() {
	Register(driver.GetManager())
}

// Register enumerates V4L2 devices and adds them to m. Device nodes that
// cannot be described are skipped. UVC exposes no facing or lens topology,
// so every device is registered as a back wide-angle camera without flash.
func Register(m *driver.Manager) error {
	entries, err := os.ReadDir(searchPath)
	if err != nil {
		// No V4L subsystem on this host.
		return nil
	}

	for _, entry := range entries {
		c := newCamera(searchPath + entry.Name())
		info := driver.Info{
			Label:      entry.Name(),
			DeviceType: driver.Camera,
			Position:   driver.PositionBack,
			Class:      driver.WideAngle,
		}
		if err := m.Register(c, info); err != nil {
			return err
		}
	}
	return nil
}

type camera struct {
	path string

	mu        sync.Mutex
	cam       *webcam.Webcam
	streaming bool
	format    webcam.PixelFormat
	width     int
	height    int
}

func newCamera(path string) *camera {
	return &camera{path: path}
}

func (c *camera) Open() error {
	cam, err := webcam.Open(c.path)
	if err != nil {
		return fmt.Errorf("camera: open %s: %w", c.path, err)
	}
	c.mu.Lock()
	c.cam = cam
	c.mu.Unlock()
	return nil
}

func (c *camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cam == nil {
		return nil
	}
	if c.streaming {
		c.cam.StopStreaming()
		c.streaming = false
	}
	err := c.cam.Close()
	c.cam = nil
	return err
}

// pickFormat prefers MJPEG over YUYV among the camera's supported formats
// and returns the largest advertised frame size.
func (c *camera) pickFormat() (webcam.PixelFormat, int, int, error) {
	supported := c.cam.GetSupportedFormats()
	for _, pf := range []webcam.PixelFormat{pixFmtMJPEG, pixFmtYUYV} {
		if _, ok := supported[pf]; !ok {
			continue
		}
		var w, h uint32
		for _, size := range c.cam.GetSupportedFrameSizes(pf) {
			if size.MaxWidth*size.MaxHeight > w*h {
				w, h = size.MaxWidth, size.MaxHeight
			}
		}
		if w > 0 {
			return pf, int(w), int(h), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("camera: %s advertises no supported pixel format", c.path)
}

func (c *camera) startStreaming() error {
	pf, w, h, err := c.pickFormat()
	if err != nil {
		return err
	}
	actualPf, actualW, actualH, err := c.cam.SetImageFormat(pf, uint32(w), uint32(h))
	if err != nil {
		return fmt.Errorf("camera: set image format: %w", err)
	}
	if err := c.cam.StartStreaming(); err != nil {
		return fmt.Errorf("camera: start streaming: %w", err)
	}
	c.format = actualPf
	c.width = int(actualW)
	c.height = int(actualH)
	c.streaming = true
	return nil
}

func (c *camera) VideoRecord() (frame.Reader, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cam == nil {
		return nil, fmt.Errorf("camera: %s is not open", c.path)
	}
	if !c.streaming {
		if err := c.startStreaming(); err != nil {
			return nil, err
		}
	}

	var buf []byte
	r := frame.ReaderFunc(func() (*frame.Frame, func(), error) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.cam == nil || !c.streaming {
			return nil, func() {}, io.EOF
		}

		data, err := c.readFrame(&buf)
		if err != nil {
			return nil, func() {}, err
		}
		f := &frame.Frame{
			Data:   data,
			Width:  c.width,
			Height: c.height,
			Format: c.frameFormat(),
		}
		return f, func() {}, nil
	})
	return r, nil
}

func (c *camera) VideoStop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cam == nil || !c.streaming {
		return nil
	}
	c.streaming = false
	return c.cam.StopStreaming()
}

// readFrame waits for the next non-empty frame and copies it out of the
// mmapped kernel buffer. Callers hold c.mu.
func (c *camera) readFrame(buf *[]byte) ([]byte, error) {
	for i := 0; i < maxEmptyFrameCount; i++ {
		err := c.cam.WaitForFrame(waitTimeoutSec)
		switch err.(type) {
		case nil:
		case *webcam.Timeout:
			return nil, errReadTimeout
		default:
			return nil, err
		}

		b, err := c.cam.ReadFrame()
		if err != nil {
			return nil, err
		}
		if len(b) == 0 {
			continue
		}

		// Copy out of the mmap region so the bytes stay valid after the
		// kernel reuses the buffer.
		if len(b) > len(*buf) {
			*buf = make([]byte, len(b))
		}
		n := copy(*buf, b)
		return (*buf)[:n], nil
	}
	return nil, errEmptyFrame
}

func (c *camera) frameFormat() frame.Format {
	if c.format == pixFmtMJPEG {
		return frame.FormatMJPEG
	}
	return frame.FormatYUYV
}

// TakePhoto grabs the next frame and converts it into a JPEG still. The
// flash settings are accepted but UVC exposes no flash control.
func (c *camera) TakePhoto(_ driver.PhotoSettings) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cam == nil {
		return nil, fmt.Errorf("camera: %s is not open", c.path)
	}
	stopAfter := false
	if !c.streaming {
		if err := c.startStreaming(); err != nil {
			return nil, err
		}
		stopAfter = true
	}

	var buf []byte
	data, err := c.readFrame(&buf)
	if stopAfter {
		c.cam.StopStreaming()
		c.streaming = false
	}
	if err != nil {
		return nil, err
	}

	if c.frameFormat() == frame.FormatMJPEG {
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
	img, err := frame.YUYVToImage(data, c.width, c.height)
	if err != nil {
		return nil, err
	}
	return frame.EncodeJPEG(img, frame.DefaultJPEGQuality)
}

// LockForConfiguration implements driver.ZoomAdapter. V4L2 control writes
// are already serialized by the kernel, so the lock is the device mutex.
func (c *camera) LockForConfiguration() error {
	c.mu.Lock()
	if c.cam == nil {
		c.mu.Unlock()
		return fmt.Errorf("camera: %s is not open", c.path)
	}
	return nil
}

// UnlockForConfiguration implements driver.ZoomAdapter.
func (c *camera) UnlockForConfiguration() {
	c.mu.Unlock()
}

// SetZoom implements driver.ZoomAdapter by mapping factor onto the device's
// V4L2_CID_ZOOM_ABSOLUTE range. The configuration lock must be held.
func (c *camera) SetZoom(factor float64) error {
	ctrl, ok := c.cam.GetControls()[ctrlZoomAbsolute]
	if !ok {
		return driver.ErrNotSupported
	}

	// Map factor 1x..6x linearly onto the control's range.
	const maxFactor = 6.0
	span := float64(ctrl.Max - ctrl.Min)
	value := float64(ctrl.Min) + span*(factor-1)/(maxFactor-1)
	if value < float64(ctrl.Min) {
		value = float64(ctrl.Min)
	}
	if value > float64(ctrl.Max) {
		value = float64(ctrl.Max)
	}
	return c.cam.SetControl(ctrlZoomAbsolute, int32(value))
}
