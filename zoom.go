package capturekit

const (
	// MinZoomFactor is the lowest reported zoom factor.
	MinZoomFactor = 1.0
	// MaxZoomFactor is the highest reported zoom factor.
	MaxZoomFactor = 5.0
)

func clampZoom(v float64) float64 {
	if v < MinZoomFactor {
		return MinZoomFactor
	}
	if v > MaxZoomFactor {
		return MaxZoomFactor
	}
	return v
}

// ApplyZoomFactor sets the zoom to clamp(v, 1, 5). Without an attached
// device the call is a no-op: zoom has no meaning without hardware. Failures
// to apply are logged and swallowed; zoom is a best-effort control.
func (s *Session) ApplyZoomFactor(v float64) {
	s.queue.do(func() {
		s.applyZoom(v)
	})
}

// ResetZoomFactor returns the zoom to 1x.
func (s *Session) ResetZoomFactor() {
	s.queue.do(func() {
		s.applyZoom(MinZoomFactor)
	})
}

// applyZoom runs on the serial queue. The hardware receives the clamped
// value plus the device class offset; the reported value excludes the
// offset and is published only after the hardware accepted the write.
func (s *Session) applyZoom(requested float64) {
	if s.device == nil {
		return
	}

	factor := clampZoom(requested)
	if err := s.device.LockForConfiguration(); err != nil {
		s.log.Debugf("zoom: lock for configuration: %v", err)
		return
	}
	err := s.device.SetZoom(factor + s.zoomOffset)
	s.device.UnlockForConfiguration()
	if err != nil {
		s.log.Debugf("zoom: apply %.2f: %v", factor, err)
		return
	}
	s.zoomState.Set(factor)
}
