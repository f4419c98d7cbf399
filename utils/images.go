package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// SaveImageWithThumb decodes an uploaded image, writes the original and a
// 300px-wide thumbnail under dir, and returns the stored filename.
// Only jpeg/png make it past the MIME switch at the call sites.
func SaveImageWithThumb(file multipart.File, dir, id, ext string) (string, error) {
	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := id + ext
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	thumbName := id + ".thumb" + ext
	if err := imaging.Save(thumb, filepath.Join(dir, thumbName)); err != nil {
		return "", fmt.Errorf("save thumbnail: %w", err)
	}

	return name, nil
}

// ExtensionForMime maps the accepted upload MIME types to file extensions.
func ExtensionForMime(mimeType string) (string, bool) {
	switch mimeType {
	case "image/jpeg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	}
	return "", false
}
