package capturekit

import "github.com/koma-inc/capturekit/pkg/driver"

// flashPrefKey is the preference store key holding the flash mode.
const flashPrefKey = "camera.flash_mode"

// FlashMode returns the currently selected flash mode.
func (s *Session) FlashMode() driver.FlashMode {
	var m driver.FlashMode
	s.queue.doWait(func() {
		m = s.flashMode
	})
	return m
}

// SetFlashMode selects the flash mode used for subsequent captures and
// persists it. Capture falls back to a supported mode when the device does
// not offer this one.
func (s *Session) SetFlashMode(m driver.FlashMode) {
	s.queue.do(func() {
		s.setFlashMode(m)
	})
}

// ToggleFlash switches between flash off and on.
func (s *Session) ToggleFlash() {
	s.queue.do(func() {
		if s.flashMode == driver.FlashOff {
			s.setFlashMode(driver.FlashOn)
		} else {
			s.setFlashMode(driver.FlashOff)
		}
	})
}

// setFlashMode runs on the serial queue. Persistence is best effort.
func (s *Session) setFlashMode(m driver.FlashMode) {
	s.flashMode = m
	if s.flashStore == nil {
		return
	}
	if err := s.flashStore.Set(flashPrefKey, string(m)); err != nil {
		s.log.Warnf("persist flash mode: %v", err)
	}
}

// restoreFlashMode loads the persisted flash mode at construction.
func (s *Session) restoreFlashMode() {
	if s.flashStore == nil {
		return
	}
	v, ok := s.flashStore.Get(flashPrefKey)
	if !ok {
		return
	}
	switch m := driver.FlashMode(v); m {
	case driver.FlashOff, driver.FlashOn, driver.FlashAuto:
		s.flashMode = m
	default:
		s.log.Warnf("ignoring unknown persisted flash mode %q", v)
	}
}

// resolveFlashMode picks the flash mode for a capture request: the selected
// mode when the device supports it, otherwise the device's first supported
// mode. Runs on the serial queue with an attached device.
func (s *Session) resolveFlashMode() driver.FlashMode {
	info := s.device.Info()
	if info.SupportsFlash(s.flashMode) {
		return s.flashMode
	}
	if len(info.FlashModes) > 0 {
		return info.FlashModes[0]
	}
	return driver.FlashOff
}
