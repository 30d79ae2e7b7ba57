package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI content. Without color it falls back to
// a plain-text decoration.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f Formatter) Sprint(a ...any) string {
	return f.render(fmt.Sprint(a...))
}

func (f Formatter) Sprintf(format string, a ...any) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline appends a newline unless s already ends with one.
func EnsureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// noColor honours NO_COLOR (https://no-color.org/) on top of fatih/color's
// own terminal detection.
func noColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code: commands to run. `backticks` without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path: files and directories.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag: CLI flags such as --force.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info: hints and arrows.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight: user values like file names and content types.
	// 'single quotes' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Secret: generated keys printed once for the user to store.
	// <angle brackets> without color.
	Secret = Formatter{color.New(color.FgMagenta, color.Bold), "<", ">"}

	// Muted: secondary text. (parentheses) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Mask hides all but the first and last four characters of a secret, for
// confirmation messages. Secrets of eight characters or fewer are fully masked.
func Mask(secret string) string {
	const visible = 4
	if len(secret) <= visible*2 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:visible] + strings.Repeat("*", len(secret)-visible*2) + secret[len(secret)-visible:]
}

// Bytes renders a byte count in binary units, e.g. 1.5 KiB.
func Bytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
