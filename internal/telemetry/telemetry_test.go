package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/telemetry"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecorderCounts(t *testing.T) {
	Convey("Given a fresh recorder", t, func() {
		rec := telemetry.NewRecorder()

		Convey("When nothing has been recorded", func() {
			So(rec.Count(), ShouldEqual, 0)
			So(rec.AverageComputeTime(), ShouldEqual, 0)
			So(rec.EstimatedServerSavings(), ShouldEqual, 0)
		})

		Convey("When recording calls for both skills", func() {
			now := time.Now()
			rec.Record(model.SkillSpeaking, 4*time.Millisecond, now)
			rec.Record(model.SkillSpeaking, 6*time.Millisecond, now)
			rec.Record(model.SkillWriting, 2*time.Millisecond, now)

			Convey("Then counts split by skill", func() {
				So(rec.Count(), ShouldEqual, 3)
				So(rec.CountFor(model.SkillSpeaking), ShouldEqual, 2)
				So(rec.CountFor(model.SkillWriting), ShouldEqual, 1)
			})

			Convey("Then averages split by skill", func() {
				So(rec.AverageComputeTime(), ShouldEqual, 4*time.Millisecond)
				So(rec.AverageComputeTimeFor(model.SkillSpeaking), ShouldEqual, 5*time.Millisecond)
				So(rec.AverageComputeTimeFor(model.SkillWriting), ShouldEqual, 2*time.Millisecond)
			})
		})
	})
}

func TestEstimatedServerSavings(t *testing.T) {
	Convey("Given a recorder with a 100ms assumed server cost", t, func() {
		rec := telemetry.NewRecorder(telemetry.WithAssumedServerCost(100 * time.Millisecond))
		now := time.Now()

		Convey("When local compute is a quarter of the assumed cost", func() {
			rec.Record(model.SkillSpeaking, 25*time.Millisecond, now)

			Convey("Then three quarters of the compute is saved", func() {
				So(rec.EstimatedServerSavings(), ShouldAlmostEqual, 75.0, 0.001)
			})
		})

		Convey("When local compute exceeds the assumed cost", func() {
			rec.Record(model.SkillWriting, 400*time.Millisecond, now)

			Convey("Then savings clamp at zero", func() {
				So(rec.EstimatedServerSavings(), ShouldEqual, 0)
			})
		})

		Convey("When compute across calls is mixed", func() {
			rec.Record(model.SkillSpeaking, 10*time.Millisecond, now)
			rec.Record(model.SkillWriting, 30*time.Millisecond, now)

			Convey("Then the estimate aggregates all calls", func() {
				// assumed 200ms total, spent 40ms, saved 80%.
				So(rec.EstimatedServerSavings(), ShouldAlmostEqual, 80.0, 0.001)
			})
		})
	})
}

func TestRecorderSnapshot(t *testing.T) {
	Convey("Given a recorder with a few entries", t, func() {
		rec := telemetry.NewRecorder()
		now := time.Now()
		rec.Record(model.SkillSpeaking, 3*time.Millisecond, now)
		rec.Record(model.SkillWriting, 5*time.Millisecond, now)

		Convey("When taking a snapshot", func() {
			snap := rec.Snapshot()

			Convey("Then it reports the aggregate fields", func() {
				So(snap["scoredTotal"], ShouldEqual, 2)
				So(snap["scoredSpeaking"], ShouldEqual, 1)
				So(snap["scoredWriting"], ShouldEqual, 1)
				So(snap["avgComputeMs"], ShouldAlmostEqual, 4.0, 0.001)
				So(snap["serverSavingsPercent"], ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestRecorderConcurrency(t *testing.T) {
	Convey("Given a shared recorder", t, func() {
		rec := telemetry.NewRecorder()

		Convey("When many goroutines record concurrently", func() {
			var wg sync.WaitGroup
			for g := 0; g < 10; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < 100; i++ {
						rec.Record(model.SkillSpeaking, time.Millisecond, time.Now())
					}
				}()
			}
			wg.Wait()

			Convey("Then no entry is lost", func() {
				So(rec.Count(), ShouldEqual, 1000)
			})
		})
	})
}
