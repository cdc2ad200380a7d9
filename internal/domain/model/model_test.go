package model_test

import (
	"testing"

	model "github.com/okian/codearena/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestProblemDetailHiddenCount(t *testing.T) {
	convey.Convey("Given a problem detail", t, func() {
		convey.Convey("When hidden tests are listed explicitly", func() {
			d := model.ProblemDetail{
				PublicTests: []model.TestCase{{Input: "1"}},
				HiddenTests: []model.TestCase{{Input: "2"}, {Input: "3"}},
				TotalTests:  10,
			}

			convey.Convey("Then the explicit list wins", func() {
				convey.So(d.HiddenCount(), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When only a total is known", func() {
			d := model.ProblemDetail{
				PublicTests: []model.TestCase{{Input: "1"}, {Input: "2"}, {Input: "3"}},
				TotalTests:  8,
			}

			convey.Convey("Then the remainder is hidden", func() {
				convey.So(d.HiddenCount(), convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the total is smaller than the public list", func() {
			d := model.ProblemDetail{PublicTests: []model.TestCase{{}, {}}, TotalTests: 1}

			convey.Convey("Then the count is clamped at zero", func() {
				convey.So(d.HiddenCount(), convey.ShouldEqual, 0)
			})
		})
	})
}

func TestSeverityRank(t *testing.T) {
	convey.Convey("Given the lint severities", t, func() {
		convey.Convey("Then errors outrank warnings which outrank info", func() {
			convey.So(model.SeverityError.Rank(), convey.ShouldBeGreaterThan, model.SeverityWarning.Rank())
			convey.So(model.SeverityWarning.Rank(), convey.ShouldBeGreaterThan, model.SeverityInfo.Rank())
			convey.So(model.Severity("bogus").Rank(), convey.ShouldEqual, 0)
		})
	})
}
