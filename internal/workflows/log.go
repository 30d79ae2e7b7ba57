package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/fortress/internal/audit"
	kerrors "github.com/PolarWolf314/fortress/internal/errors"
	"github.com/PolarWolf314/fortress/internal/utils"
)

const dateFormat = "2006-01-02"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by OS username.
	User string

	// Device filters entries by device name.
	Device string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrNoAuditLog if nothing has been logged yet.
// Returns ErrInvalidDateFormat if a date filter is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	// Validate filters before touching the log.
	var since, until time.Time
	var err error
	if opts.Since != "" {
		if since, err = time.Parse(dateFormat, opts.Since); err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
	}
	if opts.Until != "" {
		if until, err = time.Parse(dateFormat, opts.Until); err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = until.Add(24*time.Hour - time.Nanosecond)
	}

	if !utils.FileExists(audit.LogPath()) {
		return nil, kerrors.ErrNoAuditLog
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.User != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.EqualFold(e.User, opts.User)
		})
	}

	if opts.Device != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.EqualFold(e.Device, opts.Device)
		})
	}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return ops[strings.ToLower(e.Operation)]
		})
	}

	if !since.IsZero() {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := audit.ParseTimestamp(e.Timestamp)
			return err == nil && !t.Before(since)
		})
	}

	if !until.IsZero() {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := audit.ParseTimestamp(e.Timestamp)
			return err == nil && !t.After(until)
		})
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := audit.ParseTimestamp(ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format(dateFormat)
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := audit.ParseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case audit.OpEncrypt, audit.OpDecrypt:
		details := fileSummary(e.Files, 3)
		if e.Failed > 0 {
			details = strings.TrimSpace(fmt.Sprintf("%s (%d failed)", details, e.Failed))
		}
		return details
	case audit.OpEncryptText, audit.OpDecryptText:
		return fmt.Sprintf("%d bytes", e.Bytes)
	case audit.OpKeygen:
		if len(e.Outputs) > 0 {
			return fmt.Sprintf("%d keys -> %s", e.Count, e.Outputs[0])
		}
		return fmt.Sprintf("%d keys", e.Count)
	default:
		return ""
	}
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	switch e.Operation {
	case audit.OpEncrypt, audit.OpDecrypt:
		return fileSummary(e.Files, 0)
	case audit.OpEncryptText, audit.OpDecryptText:
		return fmt.Sprintf("%dB", e.Bytes)
	case audit.OpKeygen:
		return fmt.Sprintf("%d keys", e.Count)
	default:
		return ""
	}
}

// fileSummary lists up to limit files by name, or just counts them.
func fileSummary(files []string, limit int) string {
	switch {
	case len(files) == 0:
		return ""
	case len(files) > limit:
		if len(files) == 1 {
			return "1 file"
		}
		return fmt.Sprintf("%d files", len(files))
	default:
		return strings.Join(files, ", ")
	}
}
