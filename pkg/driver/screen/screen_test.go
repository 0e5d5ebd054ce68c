package screen

import (
	"testing"

	"github.com/kbinani/screenshot"

	"github.com/koma-inc/capturekit/pkg/driver"
)

func TestRegisterAddsOneDevicePerDisplay(t *testing.T) {
	m := driver.NewManager()
	if err := Register(m); err != nil {
		t.Fatal(err)
	}

	devices := m.Query(driver.FilterDeviceType(driver.Screen))
	if want := screenshot.NumActiveDisplays(); len(devices) != want {
		t.Fatalf("registered %d screen devices for %d displays", len(devices), want)
	}
	for _, d := range devices {
		if d.Info().Position != driver.PositionUnspecified {
			t.Errorf("screens have no facing, got %s", d.Info().Position)
		}
	}
}

// The package registers into the default manager when imported, which is
// what the blank import in host programs depends on.
func TestImportRegistersIntoDefaultManager(t *testing.T) {
	devices := driver.GetManager().Query(driver.FilterDeviceType(driver.Screen))
	if want := screenshot.NumActiveDisplays(); len(devices) < want {
		t.Fatalf("default manager has %d screen devices, expected at least %d", len(devices), want)
	}
}
