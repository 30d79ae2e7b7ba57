package utils

import (
	"strings"

	"github.com/PolarWolf314/fortress/internal/ui"
)

// FormatPaths formats paths as an indented list, one per line.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// TrimLineEnding removes one trailing "\n" or "\r\n", as left by echo or a
// file ending in a newline.
func TrimLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
