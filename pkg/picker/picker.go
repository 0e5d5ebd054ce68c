// Package picker bridges a native OS image chooser dialog into capturekit.
package picker

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// ErrCanceled is returned when the user dismisses the dialog without
// choosing a file.
var ErrCanceled = errors.New("picker: selection canceled")

// Picker presents a modal UI that yields the path of a user chosen image.
// Implementations must dismiss their UI before returning, whatever the
// outcome.
type Picker interface {
	PickImage(ctx context.Context) (string, error)
}

// Zenity shows the platform's native file chooser.
type Zenity struct {
	// Title overrides the dialog title. Empty uses a default.
	Title string
}

var _ Picker = Zenity{}

// PickImage opens the chooser restricted to image files.
func (z Zenity) PickImage(ctx context.Context) (string, error) {
	title := z.Title
	if title == "" {
		title = "Choose a photo"
	}

	path, err := zenity.SelectFile(
		zenity.Context(ctx),
		zenity.Title(title),
		zenity.FileFilters{
			{Name: "Images", Patterns: []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp", "*.tif", "*.tiff", "*.webp"}, CaseFold: true},
		},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", ErrCanceled
	}
	if err != nil {
		return "", fmt.Errorf("picker: select file: %w", err)
	}
	return path, nil
}
