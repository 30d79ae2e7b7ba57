package utils

import (
	"os"
	"os/user"
	"regexp"
	"strconv"
	"strings"
)

var (
	invalidDeviceChars = regexp.MustCompile(`[^a-z0-9\-_]`)
	repeatedHyphens    = regexp.MustCompile(`-+`)
)

// GetUsername returns the current OS username.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	return os.Hostname()
}

// SanitizeDeviceName lowercases name, turns spaces into hyphens and drops
// anything outside [a-z0-9_-]. An empty result becomes "device".
func SanitizeDeviceName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = invalidDeviceChars.ReplaceAllString(name, "")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if name == "" {
		return "device"
	}
	return name
}

// GenerateDeviceName derives a device name from the hostname, falling back
// to the username. A numeric suffix (-2, -3, ...) avoids the given names.
func GenerateDeviceName(existingDeviceNames []string) (string, error) {
	hostname, err := GetHostname()
	if err != nil {
		username, userErr := GetUsername()
		if userErr != nil {
			hostname = "device"
		} else {
			hostname = username
		}
	}

	baseName := SanitizeDeviceName(hostname)
	deviceName := baseName

	existing := make(map[string]bool, len(existingDeviceNames))
	for _, name := range existingDeviceNames {
		existing[strings.ToLower(name)] = true
	}

	for suffix := 2; existing[strings.ToLower(deviceName)]; suffix++ {
		deviceName = baseName + "-" + strconv.Itoa(suffix)
	}

	return deviceName, nil
}
