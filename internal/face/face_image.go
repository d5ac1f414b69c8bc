package face

import (
	"strings"

	faceerrors "github.com/RNiyam/attendance-system/internal/face/errors"
)

const dataURLPrefix = "data:image/"

// ValidateImage checks that the payload is tagged as an image. Bytes are not
// decoded here.
func ValidateImage(image string) error {
	if !strings.HasPrefix(image, dataURLPrefix) {
		return faceerrors.ErrInvalidImage
	}
	if _, payload, ok := strings.Cut(image, ","); !ok || strings.TrimSpace(payload) == "" {
		return faceerrors.ErrInvalidImage
	}
	return nil
}

// stripDataURL returns the base64 payload of a data URL.
func stripDataURL(image string) string {
	if _, payload, ok := strings.Cut(image, ","); ok && strings.HasPrefix(image, dataURLPrefix) {
		return payload
	}
	return image
}
