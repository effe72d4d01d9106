package writing_test

import (
	"strings"
	"testing"

	"github.com/linguaport/quickscore/internal/domain/model"
	"github.com/linguaport/quickscore/internal/domain/writing"
	. "github.com/smartystreets/goconvey/convey"
)

func writingItem(minWords, maxWords int) model.Item {
	return model.Item{
		Skill:       model.SkillWriting,
		Stage:       model.StageCore,
		TargetLevel: model.LevelB1,
		Writing: &model.WritingAssets{
			Prompt:   "Describe your favorite restaurant and explain why you recommend it",
			MinWords: minWords,
			MaxWords: maxWords,
			TaskType: model.TaskDescription,
		},
	}
}

// essaySentence is a clean 15-word filler sentence.
const essaySentence = "students prepare answers carefully during lessons today together while teachers watch quietly from nearby rooms. "

func TestValidate(t *testing.T) {
	Convey("Given the writing validator", t, func() {
		item := writingItem(50, 150)

		Convey("When text is present", func() {
			So(writing.Validate(item, model.Response{Text: "short but present"}), ShouldBeTrue)
		})

		Convey("When text is empty or whitespace", func() {
			So(writing.Validate(item, model.Response{}), ShouldBeFalse)
			So(writing.Validate(item, model.Response{Text: "  \n "}), ShouldBeFalse)
		})

		Convey("When text is present but under the advisory minimum", func() {
			Convey("Then it still validates", func() {
				So(writing.Validate(item, model.Response{Text: "five words under the minimum"}), ShouldBeTrue)
			})
		})
	})
}

func TestScoreShortCircuits(t *testing.T) {
	Convey("Given the writing scorer", t, func() {
		item := writingItem(50, 150)

		Convey("When the text is missing", func() {
			result := writing.Score(item, model.Response{})

			Convey("Then it returns the defined floor result", func() {
				So(result.P, ShouldEqual, 0)
				So(result.Route, ShouldEqual, model.RouteDown)
				So(result.Features["textMissing"], ShouldEqual, 1)
			})
		})

		Convey("When the text has fewer than ten words", func() {
			result := writing.Score(item, model.Response{Text: "only seven words are written right here"})

			Convey("Then it short-circuits to the too-short result", func() {
				So(result.P, ShouldEqual, 0.1)
				So(result.Route, ShouldEqual, model.RouteDown)
				So(result.Features["tooShort"], ShouldEqual, 1)
				So(result.Features["wordCount"], ShouldEqual, 7)
			})
		})
	})
}

func TestLengthAdequacy(t *testing.T) {
	Convey("Given the length-adequacy table", t, func() {
		Convey("When the count is inside the bounds", func() {
			So(writing.LengthAdequacy(100, 50, 150), ShouldEqual, 1.0)
			So(writing.LengthAdequacy(50, 50, 150), ShouldEqual, 1.0)
			So(writing.LengthAdequacy(150, 50, 150), ShouldEqual, 1.0)
		})

		Convey("When the count is just under the minimum", func() {
			So(writing.LengthAdequacy(45, 50, 150), ShouldEqual, 0.7)
			So(writing.LengthAdequacy(40, 50, 150), ShouldEqual, 0.7)
		})

		Convey("When the count is well under the minimum", func() {
			So(writing.LengthAdequacy(30, 50, 150), ShouldEqual, 0.4)
			So(writing.LengthAdequacy(25, 50, 150), ShouldEqual, 0.4)
		})

		Convey("When the count is far under the minimum", func() {
			So(writing.LengthAdequacy(10, 50, 150), ShouldEqual, 0.1)
		})

		Convey("When the count slightly exceeds the maximum", func() {
			So(writing.LengthAdequacy(170, 50, 150), ShouldEqual, 0.8)
			So(writing.LengthAdequacy(180, 50, 150), ShouldEqual, 0.8)
		})

		Convey("When the count far exceeds the maximum", func() {
			So(writing.LengthAdequacy(300, 50, 150), ShouldEqual, 0.6)
		})

		Convey("When the item carries no bounds", func() {
			Convey("Then the candidate is not penalized", func() {
				So(writing.LengthAdequacy(42, 0, 0), ShouldEqual, 1.0)
			})
		})
	})
}

func TestScoreFullPath(t *testing.T) {
	Convey("Given a complete written response", t, func() {
		item := writingItem(30, 200)
		text := "In my opinion the restaurant near the station is the best choice because " +
			"the menu changes weekly and the service is friendly. For example the seasonal " +
			"dishes combine unusual ingredients. In conclusion I recommend it to everyone."

		Convey("When scoring it", func() {
			result := writing.Score(item, model.Response{Text: text})

			Convey("Then every sub-score is recorded and p is in bounds", func() {
				So(result.P, ShouldBeBetweenOrEqual, 0, 1)
				So(result.Features, ShouldContainKey, "length")
				So(result.Features, ShouldContainKey, "lexical")
				So(result.Features, ShouldContainKey, "grammar")
				So(result.Features, ShouldContainKey, "task")
				So(result.Features["length"], ShouldEqual, 1.0)
			})

			Convey("And scoring is deterministic", func() {
				again := writing.Score(item, model.Response{Text: text})
				So(again.P, ShouldEqual, result.P)
				So(again.Route, ShouldEqual, result.Route)
			})
		})

		Convey("When the same text carries grammar errors", func() {
			flawed := strings.ReplaceAll(text, "I recommend it", "he don't recommend it")
			result := writing.Score(item, model.Response{Text: flawed})
			clean := writing.Score(item, model.Response{Text: text})

			Convey("Then the grammar sub-score drops", func() {
				So(result.Features["grammar"], ShouldBeLessThan, clean.Features["grammar"])
			})
		})
	})
}

func TestLevelForScore(t *testing.T) {
	Convey("Given the CEFR band mapping", t, func() {
		Convey("When scores fall in each band", func() {
			So(writing.LevelForScore(0.0), ShouldEqual, model.LevelA1)
			So(writing.LevelForScore(0.24), ShouldEqual, model.LevelA1)
			So(writing.LevelForScore(0.25), ShouldEqual, model.LevelA2)
			So(writing.LevelForScore(0.40), ShouldEqual, model.LevelB1)
			So(writing.LevelForScore(0.55), ShouldEqual, model.LevelB2)
			So(writing.LevelForScore(0.70), ShouldEqual, model.LevelC1)
			So(writing.LevelForScore(0.85), ShouldEqual, model.LevelC2)
			So(writing.LevelForScore(1.0), ShouldEqual, model.LevelC2)
		})

		Convey("When scanning the whole range", func() {
			Convey("Then the mapping is monotonic and total", func() {
				rank := func(l model.Level) int {
					for i, v := range model.Levels {
						if v == l {
							return i
						}
					}
					return -1
				}
				prev := -1
				for i := 0; i <= 1000; i++ {
					p := float64(i) / 1000
					r := rank(writing.LevelForScore(p))
					So(r, ShouldBeGreaterThanOrEqualTo, 0)
					So(r, ShouldBeGreaterThanOrEqualTo, prev)
					prev = r
				}
			})
		})

		Convey("When the score is out of range", func() {
			Convey("Then it clamps instead of failing", func() {
				So(writing.LevelForScore(-0.5), ShouldEqual, model.LevelA1)
				So(writing.LevelForScore(1.5), ShouldEqual, model.LevelC2)
			})
		})

		Convey("When auditing the boundaries", func() {
			bounds := writing.Boundaries()
			So(len(bounds), ShouldEqual, 6)
			So(bounds[model.LevelA1], ShouldEqual, 0.0)
			So(bounds[model.LevelC2], ShouldEqual, 0.85)
		})
	})
}

func TestJustification(t *testing.T) {
	Convey("Given the justification generator", t, func() {
		Convey("When the response was missing", func() {
			text := writing.Justification(0, map[string]float64{"textMissing": 1})
			So(text, ShouldContainSubstring, "No response content")
		})

		Convey("When the response was too short", func() {
			text := writing.Justification(0.1, map[string]float64{"tooShort": 1, "wordCount": 7})
			So(text, ShouldContainSubstring, "too short")
			So(text, ShouldContainSubstring, "7 words")
		})

		Convey("When features are uneven", func() {
			features := map[string]float64{
				"length":  1.0,
				"lexical": 0.4,
				"grammar": 0.8,
				"task":    0.6,
			}
			text := writing.Justification(0.72, features)

			Convey("Then it names the dominant and limiting features", func() {
				So(text, ShouldContainSubstring, "C1")
				So(text, ShouldContainSubstring, "length control")
				So(text, ShouldContainSubstring, "vocabulary range")
			})

			Convey("And it is deterministic", func() {
				So(writing.Justification(0.72, features), ShouldEqual, text)
			})
		})

		Convey("When features are perfectly even", func() {
			features := map[string]float64{
				"length": 0.6, "lexical": 0.6, "grammar": 0.6, "task": 0.6,
			}
			text := writing.Justification(0.6, features)
			So(text, ShouldContainSubstring, "even across")
		})

		Convey("When the feature map is empty", func() {
			So(func() { writing.Justification(0.5, map[string]float64{}) }, ShouldNotPanic)
			So(writing.Justification(0.5, nil), ShouldContainSubstring, "B1")
		})
	})
}
