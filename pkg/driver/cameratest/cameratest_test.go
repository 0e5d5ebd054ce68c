package cameratest

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koma-inc/capturekit/pkg/driver"
	"github.com/koma-inc/capturekit/pkg/frame"
)

func TestCameraStreamsFrames(t *testing.T) {
	c := New(WithSize(64, 48))
	require.NoError(t, c.Open())

	r, err := c.VideoRecord()
	require.NoError(t, err)

	f, release, err := r.Read()
	require.NoError(t, err)
	release()
	assert.Equal(t, 64, f.Width)
	assert.Equal(t, 48, f.Height)
	assert.Equal(t, frame.FormatRGBA, f.Format)
	assert.Len(t, f.Data, 64*48*4)

	require.NoError(t, c.Close())
	_, _, err = r.Read()
	assert.ErrorIs(t, err, io.EOF, "closing ends the stream")
}

func TestCameraTakePhoto(t *testing.T) {
	c := New()
	require.NoError(t, c.Open())
	defer c.Close()

	data, err := c.TakePhoto(driver.PhotoSettings{FlashMode: driver.FlashAuto, HighResolution: true})
	require.NoError(t, err)

	img, err := frame.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())

	settings := c.LastPhotoSettings()
	require.NotNil(t, settings)
	assert.Equal(t, driver.FlashAuto, settings.FlashMode)
}

func TestCameraZoomRequiresLock(t *testing.T) {
	c := New()
	require.NoError(t, c.Open())
	defer c.Close()

	assert.Error(t, c.SetZoom(2.0), "zoom without the lock must fail")

	require.NoError(t, c.LockForConfiguration())
	require.NoError(t, c.SetZoom(2.0))
	c.UnlockForConfiguration()
	assert.Equal(t, 2.0, c.Zoom())
}
