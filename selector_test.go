package capturekit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/driver/cameratest"
)

// cascadeSlots describes the preference order: index 0 is the best device.
var cascadeSlots = []struct {
	label    string
	class    driver.Class
	position driver.Position
}{
	{"triple", driver.TripleCamera, driver.PositionBack},
	{"dualWide", driver.DualWideCamera, driver.PositionBack},
	{"dual", driver.DualCamera, driver.PositionBack},
	{"backWide", driver.WideAngle, driver.PositionBack},
	{"frontWide", driver.WideAngle, driver.PositionFront},
}

func TestSelectDeviceCascade(t *testing.T) {
	// Try every availability combination of the five cascade slots and
	// check that the highest-priority available device always wins.
	for mask := 0; mask < 1<<len(cascadeSlots); mask++ {
		t.Run(fmt.Sprintf("mask=%05b", mask), func(t *testing.T) {
			m := driver.NewManager()
			for i, slot := range cascadeSlots {
				if mask&(1<<i) == 0 {
					continue
				}
				_, err := cameratest.Register(m,
					cameratest.WithInfo(driver.Info{
						Label:      slot.label,
						DeviceType: driver.Camera,
						Position:   slot.position,
						Class:      slot.class,
					}),
				)
				require.NoError(t, err)
			}

			got := SelectDevice(m)
			if mask == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			var want string
			for i, slot := range cascadeSlots {
				if mask&(1<<i) != 0 {
					want = slot.label
					break
				}
			}
			assert.Equal(t, want, got.Info().Label)
		})
	}
}

func TestSelectDeviceIgnoresScreens(t *testing.T) {
	m := driver.NewManager()
	// A screen registered with camera-like metadata must never win.
	err := m.Register(cameratest.New(), driver.Info{
		Label:      "display",
		DeviceType: driver.Screen,
		Position:   driver.PositionBack,
		Class:      driver.WideAngle,
	})
	require.NoError(t, err)

	assert.Nil(t, SelectDevice(m))

	_, err = cameratest.Register(m, cameratest.WithPosition(driver.PositionFront))
	require.NoError(t, err)
	got := SelectDevice(m)
	require.NotNil(t, got)
	assert.Equal(t, driver.Camera, got.Info().DeviceType)
}

func TestZoomOffset(t *testing.T) {
	tests := []struct {
		class driver.Class
		want  float64
	}{
		{driver.TripleCamera, 1.0},
		{driver.DualWideCamera, 1.0},
		{driver.DualCamera, 0.0},
		{driver.WideAngle, 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, zoomOffset(tt.class), "class %s", tt.class)
	}
}
