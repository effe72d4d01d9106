package model_test

import (
	"testing"

	"github.com/linguaport/quickscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseSkill(t *testing.T) {
	Convey("Given the skill parser", t, func() {
		Convey("When parsing valid skills", func() {
			s, err := model.ParseSkill("speaking")
			So(err, ShouldBeNil)
			So(s, ShouldEqual, model.SkillSpeaking)

			s, err = model.ParseSkill("writing")
			So(err, ShouldBeNil)
			So(s, ShouldEqual, model.SkillWriting)
		})

		Convey("When parsing with case and whitespace noise", func() {
			s, err := model.ParseSkill("  Speaking ")
			So(err, ShouldBeNil)
			So(s, ShouldEqual, model.SkillSpeaking)
		})

		Convey("When parsing an unknown skill", func() {
			_, err := model.ParseSkill("listening")
			So(err, ShouldNotBeNil)
		})

		Convey("When parsing an empty string", func() {
			_, err := model.ParseSkill("")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLevels(t *testing.T) {
	Convey("Given the CEFR band list", t, func() {
		Convey("When inspecting it", func() {
			Convey("Then it holds the six bands in ascending order", func() {
				So(len(model.Levels), ShouldEqual, 6)
				So(model.Levels[0], ShouldEqual, model.LevelA1)
				So(model.Levels[5], ShouldEqual, model.LevelC2)
			})
		})
	})
}
