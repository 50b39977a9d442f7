package aggregation_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/okian/vgsales/internal/domain/aggregation"
	"github.com/okian/vgsales/internal/domain/model"
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

func fixture() records {
	y2006, y2013 := model.KnownYear(2006), model.KnownYear(2013)
	return records{
		rec(1, "Wii Sports", "Wii", y2006, "Sports", "Nintendo", model.RegionNA, 41.49),
		rec(1, "Wii Sports", "Wii", y2006, "Sports", "Nintendo", model.RegionEU, 29.02),
		rec(17, "Grand Theft Auto V", "PS3", y2013, "Action", "Take-Two", model.RegionNA, 7.01),
		rec(17, "Grand Theft Auto V", "PS3", y2013, "Action", "Take-Two", model.RegionEU, 9.27),
		rec(24, "Grand Theft Auto V", "X360", y2013, "Action", "Take-Two", model.RegionNA, 9.63),
		rec(24, "Grand Theft Auto V", "X360", y2013, "Action", "Take-Two", model.RegionEU, 5.31),
		rec(180, "Madden NFL 2004", "PS2", model.UnknownYear, "Sports", "EA", model.RegionNA, 4.26),
		rec(180, "Madden NFL 2004", "PS2", model.UnknownYear, "Sports", "EA", model.RegionEU, 0.26),
	}
}

func snapshot(v *aggregation.View) []string {
	var out []string
	v.Each(func(k aggregation.Key, c aggregation.Cell) {
		out = append(out, k.Entity+"|"+k.Year.String()+"|"+k.Genre+"|"+k.Region.String()+"|"+
			strconv.FormatInt(int64(c.Sales), 10))
	})
	return out
}

func TestBuild(t *testing.T) {
	Convey("Given a canonical record set", t, func() {
		src := fixture()

		Convey("When building the grouped views", func() {
			vs := aggregation.Build(src)

			Convey("Then titles sold on several platforms share one key per year/genre/region", func() {
				c, ok := vs.Title.Get(aggregation.Key{
					Entity: "Grand Theft Auto V", Year: model.KnownYear(2013), Genre: "Action", Region: model.RegionNA,
				})
				So(ok, ShouldBeTrue)
				So(c.Sales, ShouldEqual, model.AmountFromMillions(16.64))
				So(c.MinRank, ShouldEqual, 17)
				So(c.Records, ShouldEqual, 2)
			})

			Convey("And the platform view keeps platforms apart", func() {
				c, ok := vs.Platform.Get(aggregation.Key{
					Entity: "X360", Year: model.KnownYear(2013), Genre: "Action", Region: model.RegionEU,
				})
				So(ok, ShouldBeTrue)
				So(c.Sales, ShouldEqual, model.AmountFromMillions(5.31))
				So(c.MinRank, ShouldEqual, 24)
			})

			Convey("And the unknown year is its own bucket", func() {
				_, ok := vs.Publisher.Get(aggregation.Key{
					Entity: "EA", Year: model.UnknownYear, Genre: "Sports", Region: model.RegionNA,
				})
				So(ok, ShouldBeTrue)
				_, ok = vs.Publisher.Get(aggregation.Key{
					Entity: "EA", Year: model.KnownYear(0), Genre: "Sports", Region: model.RegionNA,
				})
				So(ok, ShouldBeFalse)
			})

			Convey("And no sales are lost or double counted", func() {
				var raw model.Amount
				src.Each(func(r model.SaleRecord) { raw += r.Sales })
				So(vs.Title.Total(), ShouldEqual, raw)
				So(vs.Platform.Total(), ShouldEqual, raw)
				So(vs.Publisher.Total(), ShouldEqual, raw)
			})

			Convey("And summing regions of an (entity, year, genre) matches the raw records", func() {
				var raw model.Amount
				src.Each(func(r model.SaleRecord) {
					if r.Name == "Wii Sports" {
						raw += r.Sales
					}
				})
				var grouped model.Amount
				vs.Title.Each(func(k aggregation.Key, c aggregation.Cell) {
					if k.Entity == "Wii Sports" && k.Year == model.KnownYear(2006) && k.Genre == "Sports" {
						grouped += c.Sales
					}
				})
				So(grouped, ShouldEqual, raw)
			})

			Convey("And views are selectable by granularity", func() {
				So(vs.Get(model.EntityTitle), ShouldEqual, vs.Title)
				So(vs.Get(model.EntityPlatform), ShouldEqual, vs.Platform)
				So(vs.Get(model.EntityPublisher), ShouldEqual, vs.Publisher)
				So(vs.Get(model.Entity(42)), ShouldBeNil)
				So(vs.Platform.Entity(), ShouldEqual, model.EntityPlatform)
			})
		})

		Convey("When the records arrive in a different order", func() {
			shuffled := make(records, len(src))
			copy(shuffled, src)
			rng := rand.New(rand.NewSource(7))
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			a := aggregation.Build(src)
			b := aggregation.Build(shuffled)

			Convey("Then every view is identical", func() {
				So(snapshot(b.Title), ShouldResemble, snapshot(a.Title))
				So(snapshot(b.Platform), ShouldResemble, snapshot(a.Platform))
				So(snapshot(b.Publisher), ShouldResemble, snapshot(a.Publisher))
			})
		})

		Convey("When building a single view", func() {
			v := aggregation.BuildView(src, model.EntityPublisher)

			Convey("Then it matches the one built with the others", func() {
				So(snapshot(v), ShouldResemble, snapshot(aggregation.Build(src).Publisher))
				So(v.Len(), ShouldEqual, aggregation.Build(src).Publisher.Len())
			})
		})

		Convey("When the source is empty", func() {
			vs := aggregation.Build(records{})

			Convey("Then the views are empty, not nil", func() {
				So(vs.Title.Len(), ShouldEqual, 0)
				So(vs.Title.Total(), ShouldEqual, model.Amount(0))
			})
		})
	})
}
