package driver

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/koma-inc/capturekit/pkg/frame"
)

// wrapAdapter gives an adapter identity and a guarded lifecycle.
func wrapAdapter(a Adapter, info Info) Device {
	return &wrappedDevice{
		a:     a,
		id:    uuid.NewString(),
		info:  info,
		state: StateClosed,
	}
}

type wrappedDevice struct {
	a    Adapter
	id   string
	info Info

	mu    sync.Mutex
	state State
}

func (w *wrappedDevice) ID() string {
	return w.id
}

func (w *wrappedDevice) Info() Info {
	return w.info
}

func (w *wrappedDevice) Status() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *wrappedDevice) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateRunning {
		return fmt.Errorf("driver: invalid state: device is running")
	}
	return w.state.Update(StateOpened, w.a.Open)
}

func (w *wrappedDevice) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Update(StateClosed, w.a.Close)
}

func (w *wrappedDevice) VideoRecord() (frame.Reader, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var r frame.Reader
	err := w.state.Update(StateRunning, func() error {
		var err error
		r, err = w.a.VideoRecord()
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (w *wrappedDevice) VideoStop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateRunning {
		return nil
	}
	return w.state.Update(StateOpened, w.a.VideoStop)
}

func (w *wrappedDevice) TakePhoto(s PhotoSettings) ([]byte, error) {
	pa, ok := w.a.(PhotoAdapter)
	if !ok {
		return nil, ErrNotSupported
	}
	if w.Status() == StateClosed {
		return nil, ErrNotSupported
	}
	return pa.TakePhoto(s)
}

func (w *wrappedDevice) LockForConfiguration() error {
	if za, ok := w.a.(ZoomAdapter); ok {
		return za.LockForConfiguration()
	}
	return nil
}

func (w *wrappedDevice) UnlockForConfiguration() {
	if za, ok := w.a.(ZoomAdapter); ok {
		za.UnlockForConfiguration()
	}
}

func (w *wrappedDevice) SetZoom(factor float64) error {
	za, ok := w.a.(ZoomAdapter)
	if !ok {
		return ErrNotSupported
	}
	return za.SetZoom(factor)
}
