package capturekit

// ConfigEventKind identifies one configuration step outcome.
type ConfigEventKind int

const (
	// EventDefaultVideoDeviceUnavailable means no camera matched the
	// selection cascade.
	EventDefaultVideoDeviceUnavailable ConfigEventKind = iota
	// EventCantCreateVideoDeviceInput means opening the selected device
	// failed; the event carries the hardware cause.
	EventCantCreateVideoDeviceInput
	// EventCantAddVideoDeviceToSession means the session rejected the input.
	EventCantAddVideoDeviceToSession
	// EventCantAddPhotoOutput means the session rejected the photo output.
	EventCantAddPhotoOutput
	// EventCantAddVideoOutput means the session rejected the video output.
	EventCantAddVideoOutput
	// EventInputConfigured means the device input is attached.
	EventInputConfigured
	// EventPhotoOutputConfigured means the photo output is attached.
	EventPhotoOutputConfigured
	// EventVideoOutputConfigured means the video output is attached.
	EventVideoOutputConfigured
)

// String implements fmt.Stringer.
func (k ConfigEventKind) String() string {
	switch k {
	case EventDefaultVideoDeviceUnavailable:
		return "defaultVideoDeviceUnavailable"
	case EventCantCreateVideoDeviceInput:
		return "cantCreateVideoDeviceInput"
	case EventCantAddVideoDeviceToSession:
		return "cantAddVideoDeviceToSession"
	case EventCantAddPhotoOutput:
		return "cantAddPhotoOutput"
	case EventCantAddVideoOutput:
		return "cantAddVideoOutput"
	case EventInputConfigured:
		return "inputConfigured"
	case EventPhotoOutputConfigured:
		return "photoOutputConfigured"
	case EventVideoOutputConfigured:
		return "videoOutputConfigured"
	default:
		return "unknown"
	}
}

// ConfigEvent is a per-step configuration diagnostic. Failure events are
// informational; the host reacts to them, the session does not retry.
type ConfigEvent struct {
	Kind ConfigEventKind
	// Err carries the hardware cause for cantCreateVideoDeviceInput.
	Err error
}

func (s *Session) emitConfig(kind ConfigEventKind, err error) {
	if err != nil {
		s.log.Errorf("configure: %s: %v", kind, err)
	}
	s.configEvents.Publish(ConfigEvent{Kind: kind, Err: err})
}

func (s *Session) failConfiguration() {
	s.setupState.Set(SetupConfigurationFailed)
}

// configureSession runs one transactional configuration pass: device input
// first, then photo output, then video output, short-circuiting on the first
// rejection. It must run on the serial queue and only does work when the
// setup state is success.
func (s *Session) configureSession() {
	if s.setupState.Get() != SetupSuccess {
		return
	}

	s.runtime.Begin()
	defer s.runtime.Commit()

	// Fresh pass: detach whatever a previous pass left attached.
	s.runtime.RemoveAll()
	s.device = nil

	dev := SelectDevice(s.manager)
	if dev == nil {
		s.emitConfig(EventDefaultVideoDeviceUnavailable, nil)
		s.failConfiguration()
		return
	}

	if err := s.runtime.OpenInput(dev); err != nil {
		s.emitConfig(EventCantCreateVideoDeviceInput, err)
		s.failConfiguration()
		return
	}
	if !s.runtime.CanAddInput(dev) {
		s.emitConfig(EventCantAddVideoDeviceToSession, nil)
		s.failConfiguration()
		return
	}
	s.runtime.AddInput(dev)
	s.device = dev
	s.zoomOffset = zoomOffset(dev.Info().Class)
	s.applyZoom(MinZoomFactor)
	s.emitConfig(EventInputConfigured, nil)

	if s.output.Photo {
		if !s.runtime.CanAddPhotoOutput() {
			s.emitConfig(EventCantAddPhotoOutput, nil)
			s.failConfiguration()
			return
		}
		s.runtime.AddPhotoOutput(PhotoOutputSettings{HighResolution: true, LiveCapture: false})
		s.emitConfig(EventPhotoOutputConfigured, nil)
	}

	if s.output.Video {
		if !s.runtime.CanAddVideoOutput() {
			s.emitConfig(EventCantAddVideoOutput, nil)
			s.failConfiguration()
			return
		}
		s.runtime.AddVideoOutput(s.video.relay)
		s.emitConfig(EventVideoOutputConfigured, nil)
	}
}
