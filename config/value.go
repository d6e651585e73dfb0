package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/vidload/vidload/key"
)

// millisKeys hold durations stored as whole milliseconds.
var millisKeys = map[string]bool{
	key.PlayerFadeDelay:    true,
	key.PlayerFadeDuration: true,
}

// Parse converts command-line arguments into a value of the type registered for k.
// Millisecond keys also accept Go duration strings such as "1.5s".
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("unknown key %s", k)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no value given for %s", k)
	}

	switch field.Value.(type) {
	case string:
		return raw[0], nil
	case int:
		if millisKeys[k] {
			if d, err := time.ParseDuration(raw[0]); err == nil {
				if d < 0 {
					return nil, fmt.Errorf("negative duration for %s: %s", k, raw[0])
				}
				return int(d.Milliseconds()), nil
			}
		}
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		if n < 0 && millisKeys[k] {
			return nil, fmt.Errorf("negative duration for %s: %s", k, raw[0])
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return b, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("unsupported type for %s", k)
	}
}
