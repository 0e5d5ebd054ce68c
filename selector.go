package capturekit

import "github.com/koma-inc/capturekit/pkg/driver"

// deviceCascade is the fixed quality cascade for camera selection: best
// multi-camera fusion first, front camera as the last resort. The order is
// deliberate and must not change.
var deviceCascade = []driver.FilterFn{
	driver.FilterAnd(driver.FilterClass(driver.TripleCamera), driver.FilterPosition(driver.PositionBack)),
	driver.FilterAnd(driver.FilterClass(driver.DualWideCamera), driver.FilterPosition(driver.PositionBack)),
	driver.FilterAnd(driver.FilterClass(driver.DualCamera), driver.FilterPosition(driver.PositionBack)),
	driver.FilterAnd(driver.FilterClass(driver.WideAngle), driver.FilterPosition(driver.PositionBack)),
	driver.FilterAnd(driver.FilterClass(driver.WideAngle), driver.FilterPosition(driver.PositionFront)),
}

// SelectDevice returns the best available camera in m according to the
// cascade, or nil when no camera is available. Screen devices never match.
func SelectDevice(m *driver.Manager) driver.Device {
	isCamera := driver.FilterDeviceType(driver.Camera)
	for _, f := range deviceCascade {
		if devices := m.Query(driver.FilterAnd(isCamera, f)); len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

// zoomOffset is the device class dependent baseline added to the reported
// zoom factor before it reaches the hardware. Multi-lens wide devices report
// 1x at the fusion baseline.
func zoomOffset(c driver.Class) float64 {
	switch c {
	case driver.TripleCamera, driver.DualWideCamera:
		return 1.0
	default:
		return 0.0
	}
}
