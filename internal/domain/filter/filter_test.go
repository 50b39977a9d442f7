package filter_test

import (
	"testing"

	"github.com/okian/vgsales/internal/domain/filter"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDefault(t *testing.T) {
	convey.Convey("Given the startup filter state", t, func() {
		s := filter.Default()

		convey.Convey("Then it matches the documented defaults", func() {
			convey.So(s.Region, convey.ShouldEqual, model.RegionNA)
			convey.So(s.ResultCount, convey.ShouldEqual, 5)
			convey.So(s.Tab, convey.ShouldEqual, filter.TabCounts)
			convey.So(s.YearCutoff, convey.ShouldEqual, 2020)
		})
	})
}

func TestParseTab(t *testing.T) {
	convey.Convey("Given tab identifiers", t, func() {
		convey.Convey("Then wire ids map to tabs", func() {
			tab, ok := filter.ParseTab("tab-3")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(tab, convey.ShouldEqual, filter.TabTopPerformers)

			tab, ok = filter.ParseTab("tab-1")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(tab, convey.ShouldEqual, filter.TabCounts)
		})

		convey.Convey("Then names map to tabs", func() {
			tab, ok := filter.ParseTab("sales")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(tab, convey.ShouldEqual, filter.TabSales)
		})

		convey.Convey("Then unknown ids are rejected", func() {
			_, ok := filter.ParseTab("tab-4")
			convey.So(ok, convey.ShouldBeFalse)
		})

		convey.Convey("Then every tab round-trips", func() {
			for _, tab := range filter.Tabs {
				got, ok := filter.ParseTab(tab.Wire())
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldEqual, tab)
				convey.So(tab.Label(), convey.ShouldNotBeEmpty)
			}
		})
	})
}

func TestApply(t *testing.T) {
	convey.Convey("Given a state and a partial change", t, func() {
		s := filter.Default()
		jp := model.RegionJP
		ten := 10

		convey.Convey("When applying a region change", func() {
			next := s.Apply(filter.Change{Region: &jp})

			convey.Convey("Then only the region moves", func() {
				convey.So(next.Region, convey.ShouldEqual, model.RegionJP)
				convey.So(next.ResultCount, convey.ShouldEqual, s.ResultCount)
				convey.So(next.Tab, convey.ShouldEqual, s.Tab)
				convey.So(next.YearCutoff, convey.ShouldEqual, s.YearCutoff)
			})

			convey.Convey("And the original snapshot is untouched", func() {
				convey.So(s.Region, convey.ShouldEqual, model.RegionNA)
			})
		})

		convey.Convey("When applying several fields at once", func() {
			tab := filter.TabTopPerformers
			next := s.Apply(filter.Change{Region: &jp, ResultCount: &ten, Tab: &tab})

			convey.Convey("Then all of them move together", func() {
				convey.So(next, convey.ShouldResemble, filter.State{
					Region: model.RegionJP, ResultCount: 10, Tab: filter.TabTopPerformers, YearCutoff: 2020,
				})
			})
		})

		convey.Convey("When the change is empty", func() {
			convey.Convey("Then it is reported as such and is a no-op", func() {
				convey.So(filter.Change{}.IsEmpty(), convey.ShouldBeTrue)
				convey.So(filter.Change{ResultCount: &ten}.IsEmpty(), convey.ShouldBeFalse)
				convey.So(s.Apply(filter.Change{}), convey.ShouldResemble, s)
			})
		})
	})
}

func TestStateWire(t *testing.T) {
	convey.Convey("Given the default state", t, func() {
		w := filter.Default().Wire()

		convey.Convey("Then it is rendered with wire values", func() {
			convey.So(w.Region, convey.ShouldEqual, "NA_Sales")
			convey.So(w.ResultCount, convey.ShouldEqual, 5)
			convey.So(w.Tab, convey.ShouldEqual, "tab-1")
			convey.So(w.YearCutoff, convey.ShouldEqual, 2020)
		})
	})
}
