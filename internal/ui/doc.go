// Package ui provides semantic text formatting for fortress CLI output.
//
// Formatters colorize content when the terminal supports it. When NO_COLOR
// is set or the terminal can't show colors, plain-text decorations are used:
//
//	ui.Code.Sprint("fortress keygen")    // `fortress keygen`
//	ui.Path.Sprint("notes.txt.fortress") // notes.txt.fortress
//	ui.Highlight.Sprint("text/plain")    // 'text/plain'
//	ui.Secret.Sprint(key)                // <key>
//	ui.Muted.Sprint("optional")          // (optional)
//
// Mask and Bytes are small helpers for confirmation and summary messages.
package ui
