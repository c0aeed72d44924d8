// Package assets loads the decorative header images shown by the web UI.
package assets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrImageNotFound is returned when an image path does not resolve.
var ErrImageNotFound = errors.New("image not found")

// LoadBase64 reads the image at path and returns it Base64 encoded, ready for a
// data URI.
func LoadBase64(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrImageNotFound)
		}
		return "", fmt.Errorf("read image: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
