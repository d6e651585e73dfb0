// Package version compares dotted release numbers such as the ones mpv prints.
package version

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type release [3]int

func parse(s string) (release, error) {
	var r release
	_, err := fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &r[0], &r[1], &r[2])
	if err != nil {
		return r, fmt.Errorf("parse version %q: %w", s, err)
	}
	return r, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if they are the same release.
func Compare(a, b string) (int, error) {
	ra, err := parse(a)
	if err != nil {
		return 0, err
	}

	rb, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range lo.Zip2(ra[:], rb[:]) {
		switch {
		case pair.A > pair.B:
			return 1, nil
		case pair.A < pair.B:
			return -1, nil
		}
	}

	return 0, nil
}

// AtLeast reports whether have is the same release as want or newer.
func AtLeast(have, want string) (bool, error) {
	c, err := Compare(have, want)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}
