package player

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// MinVersion is the oldest mpv whose loadfile reply carries the playlist entry id.
const MinVersion = "0.33.0"

var versionPattern = regexp.MustCompile(`mpv v?(\d+\.\d+\.\d+)`)

// Version runs binary --version and returns the release it reports.
func Version(binary string) (string, error) {
	out, err := exec.Command(binary, "--version").Output()
	if err != nil {
		return "", err
	}
	return parseVersion(string(out))
}

func parseVersion(out string) (string, error) {
	m := versionPattern.FindStringSubmatch(out)
	if m == nil {
		first, _, _ := strings.Cut(out, "\n")
		return "", fmt.Errorf("unrecognized version output: %q", first)
	}
	return m[1], nil
}
