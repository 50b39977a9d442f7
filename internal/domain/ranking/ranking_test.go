package ranking_test

import (
	"testing"

	"github.com/okian/vgsales/internal/domain/aggregation"
	"github.com/okian/vgsales/internal/domain/model"
	"github.com/okian/vgsales/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

type records []model.SaleRecord

func (rs records) Each(fn func(model.SaleRecord)) {
	for _, r := range rs {
		fn(r)
	}
}

func rec(rank int, name, platform string, year model.Year, genre, publisher string, region model.Region, sales float64) model.SaleRecord {
	return model.SaleRecord{
		Rank: rank, Name: name, Platform: platform, Year: year, Genre: genre,
		Publisher: publisher, Region: region, Sales: model.AmountFromMillions(sales),
	}
}

// fixture has two titles tied at 4.0 million in NA (Alpha ranks first on its
// lowest original rank), an unknown-year title and a title past the cutoff.
func fixture() records {
	y := model.KnownYear
	na, eu, jp := model.RegionNA, model.RegionEU, model.RegionJP
	return records{
		rec(12, "Alpha", "Wii", y(2006), "Sports", "Nintendo", na, 2.5),
		rec(12, "Alpha", "Wii", y(2006), "Sports", "Nintendo", eu, 1.0),
		rec(40, "Alpha", "DS", y(2007), "Sports", "Nintendo", na, 1.5),
		rec(30, "Beta", "PS2", y(2004), "Action", "Take-Two", na, 4.0),
		rec(50, "Gamma", "PS2", model.UnknownYear, "Racing", "Sony", na, 3.0),
		rec(5, "Delta", "PS4", y(2021), "Shooter", "Activision", na, 10.0),
		rec(60, "Epsilon", "Wii", y(2010), "Puzzle", "Nintendo", na, 0.5),
		rec(60, "Epsilon", "Wii", y(2010), "Puzzle", "Nintendo", jp, 2.0),
		rec(70, "Zeta", "GB", y(1990), "Puzzle", "Nintendo", na, 1.0),
		rec(70, "Zeta", "GB", y(1990), "Puzzle", "Nintendo", jp, 3.0),
		rec(80, "Eta", "X360", y(2011), "Shooter", "Activision", na, 2.0),
	}
}

func names(r ranking.Result) []string {
	out := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.Entity)
	}
	return out
}

func TestRank(t *testing.T) {
	Convey("Given the grouped views of a small dataset", t, func() {
		src := fixture()
		vs := aggregation.Build(src)
		q := ranking.Query{Region: model.RegionNA, YearCutoff: 2020}

		Convey("When ranking titles in NA without a limit", func() {
			res := ranking.Rank(vs.Title, q)

			Convey("Then ties on sales are broken by the lowest original rank", func() {
				So(names(res), ShouldResemble, []string{"Alpha", "Beta", "Gamma", "Eta", "Zeta", "Epsilon"})
				So(res.Entries[0].Sales, ShouldEqual, res.Entries[1].Sales)
				So(res.Entries[0].MinRank, ShouldEqual, 12)
			})

			Convey("And unknown years are kept while years past the cutoff are not", func() {
				So(names(res), ShouldContain, "Gamma")
				So(names(res), ShouldNotContain, "Delta")
			})

			Convey("And sales are non-increasing", func() {
				for i := 1; i < res.Len(); i++ {
					So(res.Entries[i].Sales.Millions(), ShouldBeLessThanOrEqualTo, res.Entries[i-1].Sales.Millions())
				}
			})

			Convey("And positions are 1-based and contiguous", func() {
				for i, e := range res.Entries {
					So(e.Position, ShouldEqual, i+1)
				}
				So(res.Entity, ShouldEqual, model.EntityTitle)
			})

			Convey("And the total equals the raw sales under the same predicate", func() {
				var raw model.Amount
				src.Each(func(r model.SaleRecord) {
					if r.Region == model.RegionNA && r.Year.AtOrBefore(2020) {
						raw += r.Sales
					}
				})
				So(res.Total(), ShouldEqual, raw)
				So(res.Total(), ShouldEqual, model.AmountFromMillions(14.5))
			})
		})

		Convey("When ranking with a limit", func() {
			Convey("Then the length is min(limit, distinct entities)", func() {
				for _, n := range []int{1, 5, 6, 10, 20} {
					res := ranking.Rank(vs.Title, q.WithLimit(n))
					want := n
					if want > 6 {
						want = 6
					}
					So(res.Len(), ShouldEqual, want)
					So(res.Distinct, ShouldEqual, 6)
				}
			})

			Convey("And the truncated ranking is a prefix of the full one", func() {
				full := names(ranking.Rank(vs.Title, q))
				So(names(ranking.Rank(vs.Title, q.WithLimit(3))), ShouldResemble, full[:3])
			})
		})

		Convey("When ranking platforms", func() {
			res := ranking.Rank(vs.Platform, q)

			Convey("Then titles are re-aggregated across year and genre", func() {
				So(names(res), ShouldResemble, []string{"PS2", "Wii", "X360", "DS", "GB"})
				So(res.Entries[0].Sales, ShouldEqual, model.AmountFromMillions(7.0))
				So(res.Entries[1].Sales, ShouldEqual, model.AmountFromMillions(3.0))
			})
		})

		Convey("When ranking publishers in JP", func() {
			res := ranking.Rank(vs.Publisher, ranking.Query{Region: model.RegionJP, YearCutoff: 2020})

			Convey("Then only JP sales count", func() {
				So(names(res), ShouldResemble, []string{"Nintendo"})
				So(res.Entries[0].Sales, ShouldEqual, model.AmountFromMillions(5.0))
			})
		})

		Convey("When the cutoff moves past every year", func() {
			res := ranking.Rank(vs.Title, ranking.Query{Region: model.RegionNA, YearCutoff: 2030, Limit: 1})

			Convey("Then late titles come back", func() {
				So(names(res), ShouldResemble, []string{"Delta"})
			})
		})

		Convey("When the region has no records", func() {
			res := ranking.Rank(vs.Title, ranking.Query{Region: model.RegionOther, YearCutoff: 2020, Limit: 5})

			Convey("Then the result is empty, not an error", func() {
				So(res.Empty(), ShouldBeTrue)
				So(res.Entries, ShouldNotBeNil)
				So(res.Distinct, ShouldEqual, 0)
			})
		})

		Convey("When the region is unrecognised", func() {
			res := ranking.Rank(vs.Title, ranking.Query{Region: model.RegionUnknown, YearCutoff: 2020, Limit: 5})

			Convey("Then nothing matches", func() {
				So(res.Empty(), ShouldBeTrue)
			})
		})

		Convey("When the view is nil", func() {
			Convey("Then ranking returns an empty result", func() {
				So(ranking.Rank(nil, q).Empty(), ShouldBeTrue)
				So(ranking.Points(nil, q), ShouldBeEmpty)
				So(ranking.GenreOrder(nil, q), ShouldBeEmpty)
			})
		})

		Convey("When ranking twice with the same query", func() {
			Convey("Then the results are identical", func() {
				So(ranking.Rank(vs.Title, q), ShouldResemble, ranking.Rank(vs.Title, q))
				So(ranking.Rank(vs.Platform, q.WithLimit(3)), ShouldResemble, ranking.Rank(vs.Platform, q.WithLimit(3)))
			})
		})

		Convey("When asking for labels", func() {
			res := ranking.Labels(vs.Title, q.WithLimit(20), 0)

			Convey("Then the default overlay is the top five", func() {
				So(res.Len(), ShouldEqual, ranking.LabelCount)
				So(names(res), ShouldResemble, []string{"Alpha", "Beta", "Gamma", "Eta", "Zeta"})
			})

			Convey("Then a custom size is a prefix of the same order", func() {
				So(names(ranking.Labels(vs.Title, q, 2)), ShouldResemble, []string{"Alpha", "Beta"})
			})
		})
	})
}

func TestPoints(t *testing.T) {
	Convey("Given the platform view", t, func() {
		vs := aggregation.Build(fixture())
		q := ranking.Query{Region: model.RegionNA, YearCutoff: 2020}

		Convey("When computing chart points", func() {
			pts := ranking.Points(vs.Platform, q)

			Convey("Then marks are split by genre and ordered like rankings", func() {
				So(len(pts), ShouldEqual, 7)
				So(pts[0].Entity, ShouldEqual, "PS2")
				So(pts[0].Genre, ShouldEqual, "Action")
				So(pts[1].Entity, ShouldEqual, "PS2")
				So(pts[1].Genre, ShouldEqual, "Racing")
				So(pts[2].Entity, ShouldEqual, "Wii")
				So(pts[2].Genre, ShouldEqual, "Sports")
				for i := 1; i < len(pts); i++ {
					So(pts[i].Sales.Millions(), ShouldBeLessThanOrEqualTo, pts[i-1].Sales.Millions())
				}
			})

			Convey("And the marks sum to the ranking total", func() {
				var sum model.Amount
				for _, p := range pts {
					sum += p.Sales
				}
				So(sum, ShouldEqual, ranking.Rank(vs.Platform, q).Total())
			})
		})

		Convey("When limiting points", func() {
			Convey("Then only the top marks are kept", func() {
				So(len(ranking.Points(vs.Platform, q.WithLimit(2))), ShouldEqual, 2)
			})
		})
	})
}

func TestGenreOrder(t *testing.T) {
	Convey("Given a dataset and its title view", t, func() {
		src := fixture()
		vs := aggregation.Build(src)
		na := ranking.Query{Region: model.RegionNA, YearCutoff: 2020}
		jp := ranking.Query{Region: model.RegionJP, YearCutoff: 2020}

		Convey("When ordering genres in NA", func() {
			order := ranking.RecordGenreOrder(src, na)

			Convey("Then genres are sorted by summed sales, ties by name", func() {
				So(order, ShouldResemble, []string{"Action", "Sports", "Racing", "Shooter", "Puzzle"})
			})

			Convey("And the title view yields the same order over the same slice", func() {
				So(ranking.GenreOrder(vs.Title, na), ShouldResemble, order)
			})

			Convey("And totals are reported with the order", func() {
				totals := ranking.RecordGenreTotals(src, na)
				So(totals[0].Sales, ShouldEqual, model.AmountFromMillions(4.0))
				So(totals[len(totals)-1].Genre, ShouldEqual, "Puzzle")
			})
		})

		Convey("When changing region", func() {
			Convey("Then the genre order changes with the sales mix", func() {
				So(ranking.RecordGenreOrder(src, jp), ShouldResemble, []string{"Puzzle"})
				So(ranking.RecordGenreOrder(src, jp), ShouldNotResemble, ranking.RecordGenreOrder(src, na))
			})
		})

		Convey("When the cutoff admits late releases", func() {
			late := ranking.Query{Region: model.RegionNA, YearCutoff: 2030}

			Convey("Then their genres move up", func() {
				So(ranking.RecordGenreOrder(src, late)[0], ShouldEqual, "Shooter")
			})
		})
	})
}

func TestTableRows(t *testing.T) {
	Convey("Given the raw dataset", t, func() {
		src := fixture()
		q := ranking.Query{Region: model.RegionNA, YearCutoff: 2020, Limit: 5}

		Convey("When selecting the table rows for NA", func() {
			rows := ranking.TableRows(src, q)

			Convey("Then record-level rows are ranked by sales", func() {
				So(len(rows), ShouldEqual, 5)
				got := make([]string, 0, len(rows))
				for _, r := range rows {
					got = append(got, r.Name+"/"+r.Platform)
				}
				So(got, ShouldResemble, []string{"Beta/PS2", "Gamma/PS2", "Alpha/Wii", "Eta/X360", "Alpha/DS"})
			})

			Convey("And every row belongs to the selected region", func() {
				for _, r := range rows {
					So(r.Region, ShouldEqual, model.RegionNA)
				}
			})
		})

		Convey("When two rows tie on sales", func() {
			tied := records{
				rec(9, "Late", "GB", model.KnownYear(1990), "Puzzle", "P", model.RegionEU, 4.0),
				rec(3, "Early", "GB", model.KnownYear(1990), "Puzzle", "P", model.RegionEU, 4.0),
			}
			rows := ranking.TableRows(tied, ranking.Query{Region: model.RegionEU, YearCutoff: 2020})

			Convey("Then the lower original rank comes first on every call", func() {
				for i := 0; i < 3; i++ {
					So(rows[0].Name, ShouldEqual, "Early")
					rows = ranking.TableRows(tied, ranking.Query{Region: model.RegionEU, YearCutoff: 2020})
				}
			})
		})

		Convey("When the region is empty", func() {
			rows := ranking.TableRows(src, ranking.Query{Region: model.RegionOther, YearCutoff: 2020, Limit: 5})

			Convey("Then an empty slice is returned", func() {
				So(rows, ShouldNotBeNil)
				So(rows, ShouldBeEmpty)
			})
		})
	})
}
