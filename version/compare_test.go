package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Orders by major, minor then patch", func() {
			So(must(Compare("0.38.0", "0.33.0")), ShouldEqual, 1)
			So(must(Compare("0.32.9", "0.33.0")), ShouldEqual, -1)
			So(must(Compare("v1.2.3", "1.2.3")), ShouldEqual, 0)
		})

		Convey("Rejects malformed input", func() {
			_, err := Compare("latest", "0.33.0")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("AtLeast", t, func() {
		ok, err := AtLeast("0.33.0", "0.33.0")
		So(err, ShouldBeNil)
		So(ok, ShouldBeTrue)

		ok, _ = AtLeast("0.29.1", "0.33.0")
		So(ok, ShouldBeFalse)
	})
}

func must(c int, err error) int {
	So(err, ShouldBeNil)
	return c
}
