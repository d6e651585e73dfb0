package loader

import (
	"github.com/spf13/viper"
	"github.com/vidload/vidload/config"
	"github.com/vidload/vidload/key"
)

// Configured returns handler options read from the active configuration.
func Configured(progress Progress) Options {
	return Options{
		FadeDelay:    config.FadeDelay(),
		FadeDuration: config.FadeDuration(),
		StrictMIME:   viper.GetBool(key.PlayerStrictMIME),
		Progress:     progress,
	}
}
