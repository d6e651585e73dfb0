// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/vidload/vidload/constant"
	"github.com/vidload/vidload/filesystem"
	"github.com/vidload/vidload/key"
	"github.com/vidload/vidload/where"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes the global configuration state, including defaults, environment bindings, and localized file resolution.
func Setup() error {
	viper.SetConfigName(constant.Vidload)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Vidload)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

// FadeDelay is how long a success notice stays fully visible.
// Negative values are clamped to zero.
func FadeDelay() time.Duration {
	return millis(key.PlayerFadeDelay)
}

// FadeDuration is how long the fade-out lasts before the notice is hidden.
func FadeDuration() time.Duration {
	return millis(key.PlayerFadeDuration)
}

func millis(k string) time.Duration {
	ms := viper.GetInt(k)
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}
