package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/fortress/internal/configs"
	"github.com/google/uuid"
)

// TimestampFormat is RFC3339 in UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Operation names recorded in the log.
const (
	OpEncrypt     = "encrypt"
	OpDecrypt     = "decrypt"
	OpEncryptText = "encrypt-text"
	OpDecryptText = "decrypt-text"
	OpKeygen      = "keygen"
)

// Entry is one line of the audit log. It never holds passwords, keys or
// plaintext.
type Entry struct {
	ID             string `json:"id"`
	Timestamp      string `json:"ts"`
	User           string `json:"user"`
	InstallationID string `json:"installation_id,omitempty"`
	Device         string `json:"device,omitempty"`
	Operation      string `json:"op"`

	Files   []string `json:"files,omitempty"`   // Inputs, for encrypt/decrypt.
	Outputs []string `json:"outputs,omitempty"` // Files written.
	Bytes   int64    `json:"bytes,omitempty"`   // Plaintext bytes processed.
	Count   int      `json:"count,omitempty"`   // Keys generated, failures, etc.
	Failed  int      `json:"failed,omitempty"`
}

// Log appends an entry to the audit log. Failures are swallowed so that an
// operation never fails because of auditing.
func Log(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// Record logs entry unless auditing is disabled in the user config.
func Record(entry Entry) {
	if !Enabled() {
		return
	}
	Log(entry)
}

// Enabled reports whether auditing is on. An unreadable config counts as on.
func Enabled() bool {
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return true
	}
	return userConfig.Defaults.Audit
}

// LogWithUser returns an entry for op with the user and installation fields
// filled in.
func LogWithUser(op string) Entry {
	entry := Entry{
		Operation: op,
		User:      configs.UserFortressSettings.Username,
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return entry
	}

	entry.InstallationID = userConfig.User.InstallationID
	entry.Device = userConfig.User.DeviceName

	return entry
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return configs.UserFortressSettings.AuditLogPath()
}

// ReadEntries reads all entries from the audit log. A missing log yields no
// entries and no error.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines, e.g. from a partial write, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// ParseTimestamp parses an entry timestamp, accepting plain RFC3339 too.
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}
