package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidload/vidload/media"
)

func TestCounters(t *testing.T) {
	Convey("Counters", t, func() {
		Convey("RecordOutcome increments the outcome series", func() {
			before := testutil.ToFloat64(requestsTotal.WithLabelValues(OutcomeFailed))
			RecordOutcome(OutcomeFailed)
			So(testutil.ToFloat64(requestsTotal.WithLabelValues(OutcomeFailed)), ShouldEqual, before+1)
		})

		Convey("RecordDispatch labels by extension", func() {
			before := testutil.ToFloat64(dispatchesTotal.WithLabelValues(".webm"))
			RecordDispatch(media.WebM)
			So(testutil.ToFloat64(dispatchesTotal.WithLabelValues(".webm")), ShouldEqual, before+1)
		})
	})
}

func TestStreamClients(t *testing.T) {
	Convey("Stream client gauge follows joins and leaves", t, func() {
		before := testutil.ToFloat64(streamClients)
		StreamClientJoined()
		StreamClientJoined()
		StreamClientLeft()
		So(testutil.ToFloat64(streamClients), ShouldEqual, before+1)
		StreamClientLeft()
	})
}
