package speaking_test

import (
	"strings"
	"testing"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/speaking"
	. "github.com/smartystreets/goconvey/convey"
)

func speakingItem(recordSeconds int) model.Item {
	return model.Item{
		Skill:       model.SkillSpeaking,
		Stage:       model.StageCore,
		TargetLevel: model.LevelB1,
		Speaking: &model.SpeakingAssets{
			Prompt:        "Describe your favorite restaurant and explain why you enjoy it",
			PrepSeconds:   30,
			RecordSeconds: recordSeconds,
		},
	}
}

// fifteenWords is a filler sentence with no hesitation markers.
const fifteenWords = "students prepare answers carefully during lessons today together while teachers watch quietly from nearby rooms. "

func TestValidate(t *testing.T) {
	Convey("Given the speaking validator", t, func() {
		item := speakingItem(60)

		Convey("When the transcript is present", func() {
			So(speaking.Validate(item, model.Response{Transcript: "hello there"}), ShouldBeTrue)
		})

		Convey("When the transcript is empty", func() {
			So(speaking.Validate(item, model.Response{}), ShouldBeFalse)
		})

		Convey("When the transcript is only whitespace", func() {
			So(speaking.Validate(item, model.Response{Transcript: "   "}), ShouldBeFalse)
		})
	})
}

func TestScoreShortCircuits(t *testing.T) {
	Convey("Given the speaking scorer", t, func() {
		item := speakingItem(60)

		Convey("When the transcript is missing", func() {
			result := speaking.Score(item, model.Response{})

			Convey("Then it returns the defined floor result", func() {
				So(result.P, ShouldEqual, 0)
				So(result.Route, ShouldEqual, model.RouteDown)
				So(result.Features["transcriptMissing"], ShouldEqual, 1)
			})
		})

		Convey("When the transcript has exactly nine words", func() {
			result := speaking.Score(item, model.Response{
				Transcript: "one two three four five six seven eight nine",
			})

			Convey("Then it short-circuits to the too-short result", func() {
				So(result.P, ShouldEqual, 0.1)
				So(result.Route, ShouldEqual, model.RouteDown)
				So(result.Features["tooShort"], ShouldEqual, 1)
				So(result.Features["wordCount"], ShouldEqual, 9)
			})
		})

		Convey("When the transcript has exactly ten words", func() {
			result := speaking.Score(item, model.Response{
				Transcript: "one two three four five six seven eight nine ten",
			})

			Convey("Then full scoring runs instead of the short-circuit", func() {
				So(result.Features["tooShort"], ShouldEqual, 0)
				So(result.Features, ShouldContainKey, "fluency")
				So(result.Features, ShouldContainKey, "lexical")
				So(result.Features, ShouldContainKey, "grammar")
				So(result.Features, ShouldContainKey, "task")
			})
		})
	})
}

func TestScoreFluencyBanding(t *testing.T) {
	Convey("Given a 150-word transcript", t, func() {
		transcript := strings.TrimSpace(strings.Repeat(fifteenWords, 10))

		Convey("When it was spoken over 60 seconds (150 WPM)", func() {
			result := speaking.Score(speakingItem(60), model.Response{Transcript: transcript})

			Convey("Then fluency lands in the top band", func() {
				// No filled pauses, so fluency is (wpmScore + 1.0) / 2.
				So(result.Features["fluency"], ShouldEqual, 1.0)
			})
		})

		Convey("When the same word count covers 6 seconds (1500 WPM)", func() {
			result := speaking.Score(speakingItem(6), model.Response{Transcript: transcript})

			Convey("Then the WPM artifact drops fluency to the bottom band", func() {
				So(result.Features["fluency"], ShouldEqual, 0.55)
			})
		})

		Convey("When the recording bound is degenerate", func() {
			result := speaking.Score(speakingItem(0), model.Response{Transcript: transcript})

			Convey("Then the WPM component degrades to its floor without NaN", func() {
				So(result.Features["fluency"], ShouldEqual, 0.55)
				So(result.P, ShouldBeBetweenOrEqual, 0, 1)
			})
		})
	})
}

func TestScorePauses(t *testing.T) {
	Convey("Given two transcripts of equal length", t, func() {
		item := speakingItem(60)
		fluent := "yesterday evening several friends gathered downtown enjoying wonderful conversations about travel plans"
		hesitant := "um yesterday um evening um friends um gathered um downtown um enjoying um conversations um travel"

		Convey("When one is full of filled pauses", func() {
			a := speaking.Score(item, model.Response{Transcript: fluent})
			b := speaking.Score(item, model.Response{Transcript: hesitant})

			Convey("Then its fluency sub-score is lower", func() {
				So(b.Features["fluency"], ShouldBeLessThan, a.Features["fluency"])
			})
		})
	})
}

func TestScoreLexicalMonotonicity(t *testing.T) {
	Convey("Given two transcripts of equal length", t, func() {
		item := speakingItem(60)
		rich := "sun moon star cloud river mountain forest ocean valley desert island glacier"
		poor := "sun sun moon moon star star cloud cloud river river mountain mountain"

		Convey("When one has strictly more distinct words", func() {
			a := speaking.Score(item, model.Response{Transcript: rich})
			b := speaking.Score(item, model.Response{Transcript: poor})

			Convey("Then its lexical sub-score is never lower", func() {
				So(a.Features["lexical"], ShouldBeGreaterThanOrEqualTo, b.Features["lexical"])
			})
		})
	})
}

func TestScoreTaskRelevance(t *testing.T) {
	Convey("Given a prompt about restaurants", t, func() {
		item := speakingItem(60)

		Convey("When the response addresses the prompt with structure", func() {
			onTopic := "In my opinion the restaurant downtown is wonderful because the food " +
				"is fresh and I enjoy the atmosphere. In conclusion I would recommend it."
			offTopic := "yesterday morning weather seemed cold outside while traffic moved " +
				"slowly past crowded stations near the river bridge somewhere"

			a := speaking.Score(item, model.Response{Transcript: onTopic})
			b := speaking.Score(item, model.Response{Transcript: offTopic})

			Convey("Then its task sub-score is higher", func() {
				So(a.Features["task"], ShouldBeGreaterThan, b.Features["task"])
			})
		})

		Convey("When the prompt has no extractable keywords", func() {
			bare := model.Item{
				Skill:    model.SkillSpeaking,
				Speaking: &model.SpeakingAssets{Prompt: "what do you think", RecordSeconds: 60},
			}
			result := speaking.Score(bare, model.Response{
				Transcript: "one two three four five six seven eight nine ten eleven twelve",
			})

			Convey("Then the neutral relevance default applies", func() {
				// marker score 0, default relevance 0.5, averaged.
				So(result.Features["task"], ShouldEqual, 0.25)
			})
		})
	})
}

func TestScoreInvariants(t *testing.T) {
	Convey("Given the speaking scorer", t, func() {
		item := speakingItem(60)
		resp := model.Response{
			Transcript: strings.TrimSpace(strings.Repeat(fifteenWords, 4)),
			Confidence: 0.93,
		}

		Convey("When scoring the same response twice", func() {
			a := speaking.Score(item, resp)
			b := speaking.Score(item, resp)

			Convey("Then the results are bit-identical", func() {
				So(a.P, ShouldEqual, b.P)
				So(a.Route, ShouldEqual, b.Route)
			})
		})

		Convey("When scoring any response", func() {
			result := speaking.Score(item, resp)

			Convey("Then p stays in bounds and features carry the inputs", func() {
				So(result.P, ShouldBeBetweenOrEqual, 0, 1)
				So(result.Features["wordCount"], ShouldEqual, 60)
				So(result.Features["confidence"], ShouldEqual, 0.93)
			})
		})
	})
}
