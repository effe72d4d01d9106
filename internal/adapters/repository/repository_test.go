package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/linguaport/quickscore/internal/adapters/repository"
	"github.com/linguaport/quickscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStoreBasics(t *testing.T) {
	Convey("Given an empty session store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When fetching an unknown candidate", func() {
			_, err := store.Session(ctx, "nobody")
			So(err, ShouldEqual, repository.ErrSessionNotFound)
		})

		Convey("When appending with an empty candidate id", func() {
			err := store.Append(ctx, "", repository.Step{AttemptID: "a1"})
			So(err, ShouldEqual, repository.ErrEmptyCandidateID)
		})

		Convey("When appending steps for one candidate", func() {
			steps := []repository.Step{
				{AttemptID: "a1", Skill: model.SkillSpeaking, Stage: model.StageCore, P: 0.8, Route: model.RouteUp, At: time.Now()},
				{AttemptID: "a2", Skill: model.SkillWriting, Stage: model.StageUpper, P: 0.6, Route: model.RouteStay, At: time.Now()},
			}
			for _, s := range steps {
				So(store.Append(ctx, "cand-1", s), ShouldBeNil)
			}

			Convey("Then the session returns them in append order", func() {
				got, err := store.Session(ctx, "cand-1")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].AttemptID, ShouldEqual, "a1")
				So(got[1].AttemptID, ShouldEqual, "a2")
				So(got[1].Route, ShouldEqual, model.RouteStay)
			})

			Convey("Then the candidate count is one", func() {
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then mutating the returned slice leaves the store intact", func() {
				got, _ := store.Session(ctx, "cand-1")
				got[0].AttemptID = "mutated"

				again, _ := store.Session(ctx, "cand-1")
				So(again[0].AttemptID, ShouldEqual, "a1")
			})
		})
	})
}

func TestMemStoreSharding(t *testing.T) {
	Convey("Given a store with a single shard", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(repository.WithShardCount(1))

		Convey("When tracking many candidates", func() {
			for i := 0; i < 50; i++ {
				err := store.Append(ctx, fmt.Sprintf("cand-%d", i), repository.Step{AttemptID: "a"})
				So(err, ShouldBeNil)
			}

			Convey("Then all candidates are retrievable", func() {
				So(store.Count(ctx), ShouldEqual, 50)
				got, err := store.Session(ctx, "cand-42")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
			})
		})
	})
}

func TestMemStoreConcurrency(t *testing.T) {
	Convey("Given a shared session store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When goroutines append to distinct candidates", func() {
			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					id := fmt.Sprintf("cand-%d", g)
					for i := 0; i < 50; i++ {
						_ = store.Append(ctx, id, repository.Step{AttemptID: fmt.Sprintf("a-%d", i)})
					}
				}(g)
			}
			wg.Wait()

			Convey("Then every session holds its own fifty steps in order", func() {
				So(store.Count(ctx), ShouldEqual, 8)
				for g := 0; g < 8; g++ {
					got, err := store.Session(ctx, fmt.Sprintf("cand-%d", g))
					So(err, ShouldBeNil)
					So(len(got), ShouldEqual, 50)
					So(got[0].AttemptID, ShouldEqual, "a-0")
					So(got[49].AttemptID, ShouldEqual, "a-49")
				}
			})
		})
	})
}
