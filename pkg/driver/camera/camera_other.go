//go:build !linux

package camera

import "github.com/koma-inc/capturekit/pkg/driver"

// Register is a no-op on platforms without a V4L2 backend.
func Register(*driver.Manager) error {
	return nil
}
