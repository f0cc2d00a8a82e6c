package session

import (
	"fmt"
	"strings"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
	"github.com/gabriel-vasile/mimetype"
)

const (
	DefaultMaxUploadSize = 20 * 1024 * 1024 // 20 MB

	downloadBaseName = "resized-image"
)

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// MimeTypeToExtension returns the usual extension for an image type, dot included.
func MimeTypeToExtension(mimeType string) (string, error) {
	switch mimeType {
	case "image/jpeg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/webp":
		return ".webp", nil
	}
	if mt := mimetype.Lookup(mimeType); mt != nil && mt.Extension() != "" {
		return mt.Extension(), nil
	}
	return "", fmt.Errorf("unsupported mime type %q", mimeType)
}

// DownloadFilename names the downloaded output after its real content type.
func DownloadFilename(mimeType string) string {
	ext, err := MimeTypeToExtension(mimeType)
	if err != nil {
		ext = ".bin"
	}
	return downloadBaseName + ext
}

func sourceKey(id uuid.UUID, ext string) string {
	return fmt.Sprintf("sessions/%s/source%s", id, ext)
}

func replacementKey(id, rev uuid.UUID, ext string) string {
	return fmt.Sprintf("sessions/%s/source-%s%s", id, rev, ext)
}

func outputKey(id uuid.UUID, ext string) string {
	return fmt.Sprintf("sessions/%s/output%s", id, ext)
}
