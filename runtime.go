package capturekit

import (
	"errors"
	"io"
	"sync"

	"github.com/pion/logging"

	intlog "github.com/koma-inc/capturekit/internal/logging"
	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
)

// PhotoOutputSettings configures the photo output attachment.
type PhotoOutputSettings struct {
	HighResolution bool
	LiveCapture    bool
}

// Runtime abstracts the platform capture pipeline the session drives: one
// device input, an optional photo output and an optional video output.
// Except for CapturePhoto completions and frame delivery, implementations
// are only called from the session's serial queue. Begin and Commit bracket
// one configuration transaction; the attachment methods are only called
// inside a transaction.
type Runtime interface {
	Begin()
	Commit()

	// OpenInput constructs the device input by opening the hardware.
	OpenInput(d driver.Device) error
	// CanAddInput reports whether the pipeline accepts the opened input.
	CanAddInput(d driver.Device) bool
	// AddInput attaches the opened input as the single device input.
	AddInput(d driver.Device)
	// RemoveAll detaches the input and all outputs and releases the device.
	RemoveAll()

	CanAddPhotoOutput() bool
	AddPhotoOutput(PhotoOutputSettings)
	CanAddVideoOutput() bool
	// AddVideoOutput attaches the video output; handler receives every frame
	// on the runtime's background goroutine.
	AddVideoOutput(handler func(*frame.Frame))

	// PhotoActive reports whether the photo output has an active connection.
	PhotoActive() bool
	// CapturePhoto issues a one-shot capture; done is invoked exactly once
	// with the encoded still or an error.
	CapturePhoto(settings driver.PhotoSettings, done func([]byte, error))

	Running() bool
	Start() error
	Stop() error
}

// deviceRuntime is the default Runtime. It drives a driver.Device directly:
// the device's frame reader feeds the video handler from a pump goroutine,
// and photo captures snapshot the device.
type deviceRuntime struct {
	log logging.LeveledLogger

	mu sync.Mutex // held for the duration of a configuration transaction

	device        driver.Device
	photo         bool
	photoSettings PhotoOutputSettings
	video         bool
	frameHandler  func(*frame.Frame)

	running  bool
	stopPump chan struct{}
	pumpDone chan struct{}
}

// NewDeviceRuntime creates the default device backed runtime.
func NewDeviceRuntime() Runtime {
	return &deviceRuntime{log: intlog.NewLogger("runtime")}
}

// Begin locks the runtime for one configuration transaction, making the
// pass atomic with respect to capture and lifecycle calls.
func (r *deviceRuntime) Begin() {
	r.mu.Lock()
}

// Commit ends the transaction.
func (r *deviceRuntime) Commit() {
	r.mu.Unlock()
}

func (r *deviceRuntime) OpenInput(d driver.Device) error {
	return d.Open()
}

func (r *deviceRuntime) CanAddInput(d driver.Device) bool {
	return r.device == nil && d.Status() == driver.StateOpened
}

func (r *deviceRuntime) AddInput(d driver.Device) {
	r.device = d
}

func (r *deviceRuntime) RemoveAll() {
	r.stopPumpLocked()
	if r.device != nil {
		if err := r.device.Close(); err != nil {
			r.log.Warnf("close device: %v", err)
		}
		r.device = nil
	}
	r.photo = false
	r.video = false
	r.frameHandler = nil
	r.running = false
}

func (r *deviceRuntime) CanAddPhotoOutput() bool {
	return r.device != nil && !r.photo
}

func (r *deviceRuntime) AddPhotoOutput(s PhotoOutputSettings) {
	r.photo = true
	r.photoSettings = s
}

func (r *deviceRuntime) CanAddVideoOutput() bool {
	return r.device != nil && !r.video
}

func (r *deviceRuntime) AddVideoOutput(handler func(*frame.Frame)) {
	r.video = true
	r.frameHandler = handler
}

func (r *deviceRuntime) PhotoActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running && r.photo && r.device != nil
}

// CapturePhoto snapshots the device off the serial queue so a slow sensor
// read does not stall session commands. done runs on that goroutine. The
// output attachment caps the per capture settings: high resolution stills
// need a high resolution photo output.
func (r *deviceRuntime) CapturePhoto(settings driver.PhotoSettings, done func([]byte, error)) {
	r.mu.Lock()
	device := r.device
	if !r.photoSettings.HighResolution {
		settings.HighResolution = false
	}
	r.mu.Unlock()
	if device == nil {
		done(nil, errors.New("capturekit: no device attached"))
		return
	}
	go func() {
		done(device.TakePhoto(settings))
	}()
}

func (r *deviceRuntime) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Start begins the session run loop. With a video output attached it starts
// the device stream and the frame pump.
func (r *deviceRuntime) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil
	}
	if r.device == nil {
		return errors.New("capturekit: no device attached")
	}

	if r.video && r.frameHandler != nil {
		reader, err := r.device.VideoRecord()
		if err != nil {
			return err
		}
		r.stopPump = make(chan struct{})
		r.pumpDone = make(chan struct{})
		go r.pump(reader, r.frameHandler, r.stopPump, r.pumpDone)
	}
	r.running = true
	return nil
}

func (r *deviceRuntime) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return nil
	}
	r.stopPumpLocked()
	r.running = false
	if r.device != nil {
		return r.device.VideoStop()
	}
	return nil
}

// stopPumpLocked signals the pump and waits for it to drain. Callers hold
// r.mu for configuration; the pump itself never takes the lock.
func (r *deviceRuntime) stopPumpLocked() {
	if r.stopPump == nil {
		return
	}
	close(r.stopPump)
	<-r.pumpDone
	r.stopPump = nil
	r.pumpDone = nil
}

// pump is the concurrent background path: it reads frames as fast as the
// device delivers them and hands each to the video handler. It never touches
// runtime state under r.mu.
func (r *deviceRuntime) pump(reader frame.Reader, handler func(*frame.Frame), stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		default:
		}

		f, release, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			r.log.Debugf("frame read: %v", err)
			continue
		}
		handler(f)
		release()
	}
}
