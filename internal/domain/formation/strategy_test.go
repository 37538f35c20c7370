package formation_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/squads/internal/domain/formation"
	"github.com/okian/squads/internal/domain/model"
)

func prof(id string, tokens []string, categories ...string) model.SkillProfile {
	return model.SkillProfile{
		ParticipantID: id,
		Tokens:        model.NewTokenSet(tokens...),
		Categories:    model.NewTokenSet(categories...),
	}
}

func TestSimilarStrategy(t *testing.T) {
	Convey("Given the similar strategy", t, func() {
		s := formation.NewSimilarStrategy([]string{"x", "y"})
		So(s.Name(), ShouldEqual, model.FormationSimilar)

		Convey("When two categories each fill one squad", func() {
			profiles := []model.SkillProfile{
				prof("x1", nil, "x"), prof("y1", nil, "y"),
				prof("x2", nil, "x"), prof("y2", nil, "y"),
				prof("x3", nil, "x"), prof("y3", nil, "y"),
				prof("x4", nil, "x"), prof("y4", nil, "y"),
			}
			got, err := s.Partition(profiles, 4)

			Convey("Then each squad should be homogeneous", func() {
				So(err, ShouldBeNil)
				want := model.Partition{{"x1", "x2", "x3", "x4"}, {"y1", "y2", "y3", "y4"}}
				So(cmp.Diff(want, got), ShouldBeEmpty)
			})
		})

		Convey("When categories leave leftovers and some participants are uncategorized", func() {
			profiles := []model.SkillProfile{
				prof("a", nil, "x"), prof("b", nil, "x"), prof("c", nil, "x"), prof("d", nil, "x"),
				prof("e", nil, "y"), prof("f", nil, "y"),
				prof("g", nil),
			}
			got, err := s.Partition(profiles, 3)

			Convey("Then leftovers should fill spare capacity before opening squads", func() {
				So(err, ShouldBeNil)
				want := model.Partition{{"a", "b", "c"}, {"d", "e", "f"}, {"g"}}
				So(cmp.Diff(want, got), ShouldBeEmpty)
			})
		})

		Convey("When a smaller category is declared first", func() {
			profiles := []model.SkillProfile{
				prof("x1", nil, "x"),
				prof("y1", nil, "y"), prof("y2", nil, "y"),
			}
			got, err := s.Partition(profiles, 2)

			Convey("Then the larger category should be processed first", func() {
				So(err, ShouldBeNil)
				So(cmp.Diff(model.Partition{{"y1", "y2"}, {"x1"}}, got), ShouldBeEmpty)
			})
		})

		Convey("When a participant belongs to several categories", func() {
			profiles := []model.SkillProfile{
				prof("both", nil, "x", "y"),
				prof("x1", nil, "x"),
				prof("y1", nil, "y"),
			}
			got, err := s.Partition(profiles, 2)

			Convey("Then it should be consumed once by the first category reaching it", func() {
				So(err, ShouldBeNil)
				So(cmp.Diff(model.Partition{{"both", "x1"}, {"y1"}}, got), ShouldBeEmpty)
			})
		})

		Convey("When categories are not in the declared order", func() {
			profiles := []model.SkillProfile{prof("q1", nil, "q"), prof("p1", nil, "p")}
			got, err := s.Partition(profiles, 1)

			Convey("Then they should follow in lexical order", func() {
				So(err, ShouldBeNil)
				So(cmp.Diff(model.Partition{{"p1"}, {"q1"}}, got), ShouldBeEmpty)
			})
		})

		Convey("When squad size is not positive", func() {
			_, err := s.Partition([]model.SkillProfile{prof("a", nil)}, 0)
			So(errors.Is(err, formation.ErrInvalidRequest), ShouldBeTrue)
		})

		Convey("When there are no profiles", func() {
			got, err := s.Partition(nil, 3)
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 0)
		})
	})
}

func TestDiverseStrategy(t *testing.T) {
	Convey("Given the diverse strategy", t, func() {
		s := formation.NewDiverseStrategy()
		So(s.Name(), ShouldEqual, model.FormationDiverse)

		Convey("When four participants each cover a distinct category", func() {
			profiles := []model.SkillProfile{
				prof("a", []string{"t1"}, "w"),
				prof("b", []string{"t2"}, "x"),
				prof("c", []string{"t3"}, "y"),
				prof("d", []string{"t4"}, "z"),
			}
			got, err := s.Partition(profiles, 4)

			Convey("Then one squad should cover all four", func() {
				So(err, ShouldBeNil)
				So(cmp.Diff(model.Partition{{"a", "b", "c", "d"}}, got), ShouldBeEmpty)
			})
		})

		Convey("When a window repeats a category", func() {
			profiles := []model.SkillProfile{
				prof("p1", []string{"t1"}, "x"),
				prof("p2", []string{"t2"}, "x"),
				prof("p3", []string{"t3"}, "y"),
				prof("p4", []string{"t4"}, "y"),
			}
			got, err := s.Partition(profiles, 2)

			Convey("Then deferred participants should go where they add coverage", func() {
				So(err, ShouldBeNil)
				So(cmp.Diff(model.Partition{{"p1", "p4"}, {"p3", "p2"}}, got), ShouldBeEmpty)
			})
		})

		Convey("When scores differ", func() {
			profiles := []model.SkillProfile{
				prof("plain", []string{"go"}, "x"),
				prof("rich", []string{"rust", "figma"}, "x", "y"),
			}
			got, err := s.Partition(profiles, 1)

			Convey("Then higher diversity should come first", func() {
				So(err, ShouldBeNil)
				So(cmp.Diff(model.Partition{{"rich"}, {"plain"}}, got), ShouldBeEmpty)
			})
		})

		Convey("When no participant has a category", func() {
			profiles := []model.SkillProfile{prof("a", nil), prof("b", nil), prof("c", nil)}
			got, err := s.Partition(profiles, 2)

			Convey("Then everyone should still be placed", func() {
				So(err, ShouldBeNil)
				So(formation.Validate(got, []string{"a", "b", "c"}, 2), ShouldBeNil)
			})
		})

		Convey("When squad size is not positive", func() {
			_, err := s.Partition([]model.SkillProfile{prof("a", nil)}, -1)
			So(errors.Is(err, formation.ErrInvalidRequest), ShouldBeTrue)
		})
	})
}

func TestStrategyDeterminism(t *testing.T) {
	Convey("Given a fixed input ordering", t, func() {
		profiles := []model.SkillProfile{
			prof("a", []string{"go", "sql"}, "backend", "data"),
			prof("b", []string{"react"}, "frontend"),
			prof("c", []string{"figma"}, "design"),
			prof("d", []string{"go"}, "backend"),
			prof("e", nil),
			prof("f", []string{"python", "pytorch"}, "ai", "backend"),
			prof("g", []string{"react", "figma"}, "frontend", "design"),
		}
		strategies := []formation.Strategy{
			formation.NewSimilarStrategy([]string{"frontend", "backend", "data", "ai", "design"}),
			formation.NewDiverseStrategy(),
		}

		for _, s := range strategies {
			first, err := s.Partition(profiles, 3)
			So(err, ShouldBeNil)
			for range 10 {
				again, err := s.Partition(profiles, 3)
				So(err, ShouldBeNil)
				So(cmp.Diff(first, again), ShouldBeEmpty)
			}
		}
	})
}

func TestStrategyOversizedSquads(t *testing.T) {
	Convey("Given three profiles", t, func() {
		profiles := []model.SkillProfile{
			prof("a", []string{"go"}, "backend"),
			prof("b", []string{"react"}, "frontend"),
			prof("c", nil),
		}
		strategies := []formation.Strategy{
			formation.NewSimilarStrategy([]string{"frontend", "backend"}),
			formation.NewDiverseStrategy(),
		}

		for _, s := range strategies {
			for _, size := range []int{1 << 36, math.MaxInt} {
				Convey(fmt.Sprintf("When the %s strategy gets squad size %d", s.Name(), size), func() {
					var (
						got model.Partition
						err error
					)
					So(func() { got, err = s.Partition(profiles, size) }, ShouldNotPanic)

					Convey("Then it should build one squad", func() {
						So(err, ShouldBeNil)
						So(got, ShouldHaveLength, 1)
						So(got[0], ShouldHaveLength, 3)
					})
				})
			}
		}
	})
}
