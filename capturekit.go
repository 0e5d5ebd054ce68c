// Package capturekit orchestrates a live camera capture session: hardware
// authorization, device selection, session configuration, one-shot photo
// capture, continuous video frame relay, and runtime zoom and flash
// controls. Configuration outcomes and capture results are published as
// event streams the host subscribes to.
package capturekit

import (
	"github.com/pion/logging"

	intlog "github.com/koma-inc/capturekit/internal/logging"
	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
	"github.com/koma-inc/capturekit/pkg/picker"
	"github.com/koma-inc/capturekit/pkg/prefs"
	"github.com/koma-inc/capturekit/pkg/pubsub"
)

// OutputConfig tells the session which outputs to attach during the next
// configuration pass.
type OutputConfig struct {
	Photo bool
	Video bool
}

// Session owns one capture session for its whole lifetime. All session
// mutation runs on a private serial queue; the only concurrent path is video
// frame delivery, which stays on the runtime's background goroutine.
type Session struct {
	queue *serialQueue
	log   logging.LeveledLogger

	manager    *driver.Manager
	runtime    Runtime
	authorizer Authorizer
	access     AccessObserver
	picker     picker.Picker
	flashStore prefs.Store

	// The fields below are written only from the serial queue.
	output     OutputConfig
	device     driver.Device
	zoomOffset float64
	flashMode  driver.FlashMode

	setupState   *pubsub.Cell[SetupResult]
	zoomState    *pubsub.Cell[float64]
	configEvents *pubsub.Broadcaster[ConfigEvent]
	images       *pubsub.Broadcaster[ImageResult]
	granted      *pubsub.Broadcaster[bool]

	photo *photoSink
	video *videoSink
}

// Option is a functional option for NewSession.
type Option func(*Session)

// WithManager selects the device registry the session picks cameras from.
// The default is driver.GetManager().
func WithManager(m *driver.Manager) Option {
	return func(s *Session) { s.manager = m }
}

// WithRuntime replaces the capture pipeline implementation.
func WithRuntime(r Runtime) Option {
	return func(s *Session) { s.runtime = r }
}

// WithAuthorizer replaces the camera permission resolver.
func WithAuthorizer(a Authorizer) Option {
	return func(s *Session) { s.authorizer = a }
}

// WithAccessObserver registers a collaborator notified once per
// authorization prompt with the grant outcome. The session does not own the
// observer and works without one.
func WithAccessObserver(o AccessObserver) Option {
	return func(s *Session) { s.access = o }
}

// WithPicker replaces the OS image picker used by SelectImageFromLibrary.
func WithPicker(p picker.Picker) Option {
	return func(s *Session) { s.picker = p }
}

// WithFlashStore sets the preference store the flash mode is persisted in.
func WithFlashStore(st prefs.Store) Option {
	return func(s *Session) { s.flashStore = st }
}

// WithLoggerFactory routes the session's logs through f.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(s *Session) { s.log = f.NewLogger("capturekit") }
}

// NewSession creates a session and its sinks. The session performs no
// hardware work until SetupSession is called.
func NewSession(opts ...Option) *Session {
	s := &Session{
		queue:        newSerialQueue(),
		log:          intlog.NewLogger("capturekit"),
		manager:      driver.GetManager(),
		authorizer:   systemAuthorizer{},
		picker:       picker.Zenity{},
		flashMode:    driver.FlashOff,
		setupState:   pubsub.NewCell(SetupIdle),
		zoomState:    pubsub.NewCell(MinZoomFactor),
		configEvents: pubsub.NewBroadcaster[ConfigEvent](),
		images:       pubsub.NewBroadcaster[ImageResult](),
		granted:      pubsub.NewBroadcaster[bool](),
	}
	for _, o := range opts {
		o(s)
	}

	s.photo = &photoSink{images: s.images}
	// Frame subscribers only ever want the current frame; stale video is
	// worthless.
	s.video = &videoSink{frames: pubsub.NewBroadcasterSize[*frame.Frame](1)}
	if s.runtime == nil {
		s.runtime = NewDeviceRuntime()
	}
	s.restoreFlashMode()
	return s
}

// ConfigureOutput chooses the outputs for the next configuration pass. Call
// it before SetupSession; changing it later only affects a re-run of setup.
func (s *Session) ConfigureOutput(cfg OutputConfig) {
	s.queue.do(func() {
		s.output = cfg
	})
}

// Close stops the runtime, releases the attached device and terminates all
// event streams. The session must not be used afterwards.
func (s *Session) Close() {
	s.queue.doWait(func() {
		if s.runtime.Running() {
			if err := s.runtime.Stop(); err != nil {
				s.log.Warnf("stop runtime: %v", err)
			}
		}
		s.runtime.Begin()
		s.runtime.RemoveAll()
		s.runtime.Commit()
		s.device = nil
	})
	s.queue.close()

	s.setupState.Close()
	s.zoomState.Close()
	s.configEvents.Close()
	s.images.Close()
	s.video.frames.Close()
	s.granted.Close()
}

// SetupResult returns the latest setup outcome.
func (s *Session) SetupResult() SetupResult {
	return s.setupState.Get()
}

// SetupResults subscribes to setup outcomes. The latest value is replayed
// immediately.
func (s *Session) SetupResults() (<-chan SetupResult, pubsub.CancelFunc) {
	return s.setupState.Subscribe()
}

// ConfigEvents subscribes to per-step configuration diagnostics. There is no
// replay; subscribe before calling SetupSession.
func (s *Session) ConfigEvents() (<-chan ConfigEvent, pubsub.CancelFunc) {
	return s.configEvents.Subscribe()
}

// Images subscribes to the shared photo result stream fed by both camera
// captures and library picks.
func (s *Session) Images() (<-chan ImageResult, pubsub.CancelFunc) {
	return s.images.Subscribe()
}

// Frames subscribes to the raw video frame stream. Frames are delivered on
// the runtime's background goroutine pace; slow subscribers miss frames.
func (s *Session) Frames() (<-chan *frame.Frame, pubsub.CancelFunc) {
	return s.video.frames.Subscribe()
}

// AccessGranted subscribes to authorization prompt outcomes.
func (s *Session) AccessGranted() (<-chan bool, pubsub.CancelFunc) {
	return s.granted.Subscribe()
}

// ZoomFactor returns the current reported zoom factor.
func (s *Session) ZoomFactor() float64 {
	return s.zoomState.Get()
}

// ZoomFactors subscribes to reported zoom factor changes, replaying the
// current value.
func (s *Session) ZoomFactors() (<-chan float64, pubsub.CancelFunc) {
	return s.zoomState.Subscribe()
}

// DeviceInfo describes a camera known to a registry.
type DeviceInfo struct {
	ID       string
	Label    string
	Position driver.Position
	Class    driver.Class
}

// EnumerateDevices lists the cameras registered with m, for host UIs that
// present a device list.
func EnumerateDevices(m *driver.Manager) []DeviceInfo {
	devices := m.Query(driver.FilterDeviceType(driver.Camera))
	infos := make([]DeviceInfo, 0, len(devices))
	for _, d := range devices {
		info := d.Info()
		infos = append(infos, DeviceInfo{
			ID:       d.ID(),
			Label:    info.Label,
			Position: info.Position,
			Class:    info.Class,
		})
	}
	return infos
}
