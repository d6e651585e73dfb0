package config

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidload/vidload/filesystem"
	"github.com/vidload/vidload/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("player.fade_delay"), ShouldEqual, "player_fade_delay")
		})
	})
}

func TestFadeTiming(t *testing.T) {
	Convey("Fade timing", t, func() {
		_ = Setup()

		Convey("Defaults to two seconds then one second", func() {
			So(FadeDelay(), ShouldEqual, 2*time.Second)
			So(FadeDuration(), ShouldEqual, time.Second)
		})

		Convey("Clamps negative values", func() {
			viper.Set(key.PlayerFadeDelay, -5)
			defer viper.Set(key.PlayerFadeDelay, Default[key.PlayerFadeDelay].Value)
			So(FadeDelay(), ShouldEqual, time.Duration(0))
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.PlayerStrictMIME]

		Convey("Env name carries the application prefix", func() {
			So(f.Env(), ShouldEqual, "VIDLOAD_PLAYER_STRICT_MIME")
		})

		Convey("Type name follows the default value", func() {
			So(f.typeName(), ShouldEqual, "bool")
			origins := Default[key.ServerOrigins]
			So(origins.typeName(), ShouldEqual, "[]string")
		})

		Convey("Fade timings carry a millisecond unit", func() {
			delay := Default[key.PlayerFadeDelay]
			So(delay.unit(), ShouldEqual, "ms")
			So(f.unit(), ShouldBeEmpty)
			So(delay.render(2000), ShouldContainSubstring, "2s")
			So(delay.render("1500"), ShouldContainSubstring, "1.5s")
		})

		Convey("JSON carries the default and the unit", func() {
			delay := Default[key.PlayerFadeDelay]
			out, err := json.Marshal(&delay)
			So(err, ShouldBeNil)
			So(string(out), ShouldContainSubstring, `"default":2000`)
			So(string(out), ShouldContainSubstring, `"unit":"ms"`)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Strings pass through", func() {
			v, err := Parse(key.PlayerBinary, []string{"/usr/local/bin/mpv"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "/usr/local/bin/mpv")
		})

		Convey("Fade timings accept milliseconds and durations", func() {
			v, err := Parse(key.PlayerFadeDelay, []string{"1500"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 1500)

			v, err = Parse(key.PlayerFadeDuration, []string{"1.5s"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 1500)

			_, err = Parse(key.PlayerFadeDuration, []string{"-1s"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlayerFadeDelay, []string{"-5"})
			So(err, ShouldNotBeNil)
		})

		Convey("Booleans are validated", func() {
			v, err := Parse(key.PlayerStrictMIME, []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)

			_, err = Parse(key.PlayerStrictMIME, []string{"sometimes"})
			So(err, ShouldNotBeNil)
		})

		Convey("Slices keep every argument", func() {
			v, err := Parse(key.ServerOrigins, []string{"http://a", "http://b"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"http://a", "http://b"})
		})

		Convey("Unknown keys and missing values fail", func() {
			_, err := Parse("player.volume", []string{"1"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlayerBinary, nil)
			So(err, ShouldNotBeNil)
		})
	})
}
