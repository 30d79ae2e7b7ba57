package workflows

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectContentType guesses a MIME type from the file extension, without
// parameters such as charset. Unknown extensions yield "", which the
// encryption core stores as application/octet-stream.
func DetectContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}

	mediaType := mime.TypeByExtension(ext)
	if mediaType == "" {
		return ""
	}

	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		return parsed
	}
	base, _, _ := strings.Cut(mediaType, ";")
	return strings.TrimSpace(base)
}
