package open

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidload/vidload/constant"
)

func TestCommand(t *testing.T) {
	Convey("Given a video URL", t, func() {
		const url = "https://example.com/clip.webm"

		Convey("Linux uses xdg-open", func() {
			cmd, ok := command(constant.Linux, url)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"xdg-open", url})
		})

		Convey("Darwin uses open", func() {
			cmd, ok := command(constant.Darwin, url)
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{"open", url})
		})

		Convey("Unknown systems are rejected", func() {
			_, ok := command("plan9", url)
			So(ok, ShouldBeFalse)
		})
	})
}
