package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Rejects empty and blank input", func() {
			for _, in := range []string{"", " ", "\t\n", "   \r\n  "} {
				_, err := Parse(in)
				So(err, ShouldEqual, ErrEmptyInput)
			}
		})

		Convey("Rejects unsupported schemes", func() {
			for _, in := range []string{
				"ftp://example.com/clip.mp4",
				"example.com/clip.mp4",
				"file:///tmp/clip.mp4",
				"HTTPS://example.com/clip.mp4",
				"//example.com/clip.mp4",
			} {
				_, err := Parse(in)
				So(err, ShouldEqual, ErrUnsupportedFormat)
			}
		})

		Convey("Rejects unsupported extensions", func() {
			for _, in := range []string{
				"https://example.com/clip.avi",
				"https://example.com/clip.MP4",
				"https://example.com/clip.mp4?token=1",
				"https://example.com/clip",
				"http://example.com/mp4",
			} {
				_, err := Parse(in)
				So(err, ShouldEqual, ErrUnsupportedFormat)
			}
		})

		Convey("Accepts every recognized extension", func() {
			for _, f := range Formats {
				req, err := Parse("https://example.com/clip" + string(f))
				So(err, ShouldBeNil)
				So(req.Format, ShouldEqual, f)
			}
		})

		Convey("Rejects padded URLs instead of trimming them", func() {
			for _, in := range []string{
				" https://example.com/clip.mp4",
				"https://example.com/clip.mp4\n",
				"\thttp://example.com/clip.webm ",
			} {
				_, err := Parse(in)
				So(err, ShouldEqual, ErrUnsupportedFormat)
			}
		})

		Convey("Keeps the URL exactly as given", func() {
			req, err := Parse("http://example.com/clip.webm")
			So(err, ShouldBeNil)
			So(req.URL, ShouldEqual, "http://example.com/clip.webm")
		})

		Convey("Only Matroska needs a capability check", func() {
			mkv, _ := Parse("https://example.com/a.mkv")
			mp4, _ := Parse("https://example.com/a.mp4")
			So(mkv.NeedsCapabilityCheck(), ShouldBeTrue)
			So(mp4.NeedsCapabilityCheck(), ShouldBeFalse)
		})
	})
}

func TestSource(t *testing.T) {
	Convey("Source", t, func() {
		req, err := Parse("https://example.com/clip.webm")
		So(err, ShouldBeNil)

		Convey("Labels everything video/mp4 by default", func() {
			So(req.Source(false), ShouldResemble, Source{URL: "https://example.com/clip.webm", Type: "video/mp4"})
		})

		Convey("Maps extension to MIME when strict", func() {
			So(req.Source(true).Type, ShouldEqual, "video/webm")
			So(Ogg.MIME(), ShouldEqual, "video/ogg")
			So(MKV.MIME(), ShouldEqual, MatroskaMIME)
			So(MP4.MIME(), ShouldEqual, GenericMIME)
		})
	})
}

func TestSupportedList(t *testing.T) {
	Convey("SupportedList", t, func() {
		So(SupportedList(), ShouldEqual, ".mp4, .webm, .ogg, .mkv")
	})
}
