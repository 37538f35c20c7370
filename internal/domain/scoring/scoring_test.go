package scoring_test

import (
	"testing"

	"github.com/okian/squads/internal/domain/model"
	scoring "github.com/okian/squads/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func profile(id string, tokens []string, categories ...string) model.SkillProfile {
	return model.SkillProfile{
		ParticipantID: id,
		Tokens:        model.NewTokenSet(tokens...),
		Categories:    model.NewTokenSet(categories...),
	}
}

func TestSimilarity(t *testing.T) {
	Convey("Given two skill profiles", t, func() {
		a := profile("a", []string{"go", "sql", "docker"})
		b := profile("b", []string{"go", "sql", "react", "figma"})

		Convey("When computing similarity", func() {
			s := scoring.Similarity(a, b)

			Convey("Then it should be the Jaccard index", func() {
				So(s, ShouldAlmostEqual, 2.0/5.0)
			})

			Convey("And it should be symmetric", func() {
				So(scoring.Similarity(b, a), ShouldAlmostEqual, s)
			})
		})

		Convey("When comparing a profile with itself", func() {
			So(scoring.Similarity(a, a), ShouldEqual, 1.0)
		})

		Convey("When both profiles are empty", func() {
			So(scoring.Similarity(profile("x", nil), profile("y", nil)), ShouldEqual, 0.0)
		})

		Convey("When one profile is empty", func() {
			So(scoring.Similarity(a, profile("y", nil)), ShouldEqual, 0.0)
		})

		Convey("When profiles are disjoint", func() {
			So(scoring.Similarity(a, profile("c", []string{"figma"})), ShouldEqual, 0.0)
		})
	})
}

func TestDiversity(t *testing.T) {
	Convey("Given a pool of profiles", t, func() {
		profiles := []model.SkillProfile{
			profile("a", []string{"go", "sql"}, "backend", "data"),
			profile("b", []string{"go"}, "backend"),
			profile("c", []string{"rust", "figma"}, "backend", "design"),
			profile("d", nil),
		}

		Convey("When counting token frequency", func() {
			freq := scoring.TokenFrequency(profiles)

			Convey("Then each token should count profiles that contain it", func() {
				So(freq["go"], ShouldEqual, 2)
				So(freq["sql"], ShouldEqual, 1)
				So(freq["figma"], ShouldEqual, 1)
				So(freq["haskell"], ShouldEqual, 0)
			})
		})

		Convey("When scoring diversity", func() {
			scores := scoring.DiversityScores(profiles)

			Convey("Then rare tokens and breadth should both contribute", func() {
				So(len(scores), ShouldEqual, 4)
				So(scores[0], ShouldAlmostEqual, 0.5+1.0+2*scoring.BreadthBonus)
				So(scores[1], ShouldAlmostEqual, 0.5+1*scoring.BreadthBonus)
				So(scores[2], ShouldAlmostEqual, 1.0+1.0+2*scoring.BreadthBonus)
				So(scores[3], ShouldEqual, 0.0)
			})

			Convey("And rarer skills should outrank common ones", func() {
				So(scores[2], ShouldBeGreaterThan, scores[0])
				So(scores[0], ShouldBeGreaterThan, scores[1])
			})
		})

		Convey("When a token is missing from the frequency table", func() {
			So(scoring.Diversity(profile("z", []string{"cobol"}), map[string]int{}), ShouldEqual, 0.0)
		})
	})
}

func TestCategoryCoverage(t *testing.T) {
	Convey("Given squads of profiles", t, func() {
		squads := [][]model.SkillProfile{
			{profile("a", nil, "x", "y"), profile("b", nil, "y")},
			{profile("c", nil)},
		}

		So(scoring.CategoryCoverage(squads), ShouldResemble, []int{2, 0})
	})
}
