package capturekit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
)

// flush waits until every job submitted to the serial queue so far has run.
func (s *Session) flush() {
	s.queue.doWait(func() {})
}

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		panic("unreachable")
	}
}

func expectNone[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected event: %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

type fakeAuthorizer struct {
	status  AuthorizationStatus
	grant   bool
	prompts int
}

func (a *fakeAuthorizer) Status() AuthorizationStatus { return a.status }

func (a *fakeAuthorizer) RequestAccess(context.Context) bool {
	a.prompts++
	return a.grant
}

type fakeAccessObserver struct {
	mu      sync.Mutex
	results []bool
}

func (o *fakeAccessObserver) AccessResolved(granted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, granted)
}

func (o *fakeAccessObserver) observed() []bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]bool(nil), o.results...)
}

// fakeRuntime scripts the pipeline's accept/reject answers and records what
// the session attached.
type fakeRuntime struct {
	mu sync.Mutex

	openErr     error
	rejectInput bool
	rejectPhoto bool
	rejectVideo bool
	startErr    error

	photoData []byte
	photoErr  error

	input    driver.Device
	photo    bool
	video    bool
	handler  func(*frame.Frame)
	running  bool
	captured []driver.PhotoSettings

	begun     int
	committed int
	removed   int
}

func (r *fakeRuntime) Begin()  { r.begun++ }
func (r *fakeRuntime) Commit() { r.committed++ }

func (r *fakeRuntime) OpenInput(driver.Device) error { return r.openErr }

func (r *fakeRuntime) CanAddInput(driver.Device) bool { return !r.rejectInput }

func (r *fakeRuntime) AddInput(d driver.Device) { r.input = d }

func (r *fakeRuntime) RemoveAll() {
	r.removed++
	r.input = nil
	r.photo = false
	r.video = false
	r.handler = nil
	r.running = false
}

func (r *fakeRuntime) CanAddPhotoOutput() bool { return !r.rejectPhoto }

func (r *fakeRuntime) AddPhotoOutput(PhotoOutputSettings) { r.photo = true }

func (r *fakeRuntime) CanAddVideoOutput() bool { return !r.rejectVideo }

func (r *fakeRuntime) AddVideoOutput(handler func(*frame.Frame)) {
	r.video = true
	r.handler = handler
}

func (r *fakeRuntime) PhotoActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running && r.photo
}

func (r *fakeRuntime) CapturePhoto(settings driver.PhotoSettings, done func([]byte, error)) {
	r.mu.Lock()
	r.captured = append(r.captured, settings)
	data, err := r.photoData, r.photoErr
	r.mu.Unlock()
	done(data, err)
}

func (r *fakeRuntime) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *fakeRuntime) Start() error {
	if r.startErr != nil {
		return r.startErr
	}
	r.mu.Lock()
	r.running = true
	r.mu.Unlock()
	return nil
}

func (r *fakeRuntime) Stop() error {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
	return nil
}

func (r *fakeRuntime) capturedSettings() []driver.PhotoSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]driver.PhotoSettings(nil), r.captured...)
}
