package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseVersion(t *testing.T) {
	Convey("parseVersion", t, func() {
		Convey("Reads release builds", func() {
			v, err := parseVersion("mpv 0.38.0 Copyright © 2000-2024 mpv/MPlayer/mplayer2 projects\n built on ...")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.38.0")
		})

		Convey("Reads v-prefixed git builds", func() {
			v, err := parseVersion("mpv v0.37.0-dirty Copyright © 2000-2023")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.37.0")
		})

		Convey("Rejects anything else", func() {
			_, err := parseVersion("command not found\n")
			So(err, ShouldNotBeNil)
		})
	})
}
