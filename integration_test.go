package capturekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/driver/cameratest"
	"github.com/koma-inc/capturekit/pkg/frame"
)

// TestSessionEndToEnd drives the real device runtime against the fake
// camera: configure photo and video, start, stream frames, capture a still.
func TestSessionEndToEnd(t *testing.T) {
	m := driver.NewManager()
	cam, err := cameratest.Register(m, cameratest.WithClass(driver.DualWideCamera))
	require.NoError(t, err)

	s := NewSession(
		WithManager(m),
		WithAuthorizer(&fakeAuthorizer{status: AuthorizationAuthorized}),
	)
	defer s.Close()

	frames, cancelFrames := s.Frames()
	defer cancelFrames()
	images, cancelImages := s.Images()
	defer cancelImages()

	s.ConfigureOutput(OutputConfig{Photo: true, Video: true})
	s.SetupSession()
	s.flush()
	require.Equal(t, SetupSuccess, s.SetupResult())

	f := recv(t, frames)
	assert.Equal(t, frame.FormatRGBA, f.Format)
	assert.Equal(t, 320, f.Width)
	assert.Equal(t, 240, f.Height)

	s.CaptureImage()
	result := recv(t, images)
	require.NoError(t, result.Err)
	require.NotNil(t, result.Output)
	assert.Equal(t, SourceCamera, result.Output.Source)
	decoded, err := frame.Decode(result.Output.Data)
	require.NoError(t, err)
	assert.Equal(t, 320, decoded.Bounds().Dx())

	require.NotNil(t, cam.LastPhotoSettings())
	assert.True(t, cam.LastPhotoSettings().HighResolution)

	// Configuration reset the zoom during setup; the dual wide class means
	// the hardware sits at the fusion baseline.
	assert.Equal(t, 1.0, s.ZoomFactor())
	assert.Equal(t, 2.0, cam.Zoom())
}

func TestEnumerateDevices(t *testing.T) {
	m := driver.NewManager()
	_, err := cameratest.Register(m, cameratest.WithClass(driver.TripleCamera))
	require.NoError(t, err)
	require.NoError(t, m.Register(cameratest.New(), driver.Info{
		Label:      "display",
		DeviceType: driver.Screen,
	}))

	infos := EnumerateDevices(m)
	require.Len(t, infos, 1, "screens are not cameras")
	assert.Equal(t, driver.TripleCamera, infos[0].Class)
	assert.NotEmpty(t, infos[0].ID)
}
