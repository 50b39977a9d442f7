package render_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/okian/vgsales/internal/adapters/render"
	"github.com/okian/vgsales/internal/domain/types"
	"github.com/smartystreets/goconvey/convey"
)

func sampleChart(entity string) types.Chart {
	return types.Chart{
		Entity: entity,
		Title:  "By Platform",
		Region: "NA_Sales",
		Points: []types.ChartPoint{
			{Entity: "Wii", Genre: "Sports", Sales: 65.78},
			{Entity: "NES", Genre: "Platform", Sales: 38.62},
			{Entity: "GB", Genre: "Puzzle", Sales: 23.2},
		},
		Highlights: []types.ChartPoint{
			{Entity: "Wii", Genre: "Sports", Sales: 65.78},
		},
		GenreOrder: []string{"Sports", "Platform", "Puzzle"},
	}
}

func TestVegaLite(t *testing.T) {
	convey.Convey("Given platform chart data", t, func() {
		spec := render.VegaLite(sampleChart("platform"), render.DefaultOptions())

		convey.Convey("Then it has a point layer and a label layer", func() {
			convey.So(len(spec.Layer), convey.ShouldEqual, 2)
			convey.So(spec.Layer[0].Mark.Type, convey.ShouldEqual, "circle")
			convey.So(len(spec.Layer[0].Data.Values), convey.ShouldEqual, 3)
			convey.So(spec.Layer[1].Mark.Type, convey.ShouldEqual, "text")
			convey.So(len(spec.Layer[1].Data.Values), convey.ShouldEqual, 1)
		})

		convey.Convey("And the x axis follows the genre order", func() {
			convey.So(spec.Layer[0].Encoding.X.Sort, convey.ShouldResemble, []string{"Sports", "Platform", "Puzzle"})
			convey.So(spec.Layer[1].Encoding.X.Sort, convey.ShouldResemble, spec.Layer[0].Encoding.X.Sort)
		})

		convey.Convey("And the legend is hidden outside the publisher chart", func() {
			convey.So(*spec.Layer[0].Encoding.Color.Legend, convey.ShouldBeFalse)
			pub := render.VegaLite(sampleChart("publisher"), render.DefaultOptions())
			convey.So(pub.Layer[0].Encoding.Color.Legend, convey.ShouldBeNil)
		})

		convey.Convey("And the JSON is valid and stable", func() {
			a, err := spec.JSON()
			convey.So(err, convey.ShouldBeNil)
			b, _ := render.VegaLite(sampleChart("platform"), render.DefaultOptions()).JSON()
			convey.So(a, convey.ShouldEqual, b)

			var decoded map[string]any
			convey.So(json.Unmarshal([]byte(a), &decoded), convey.ShouldBeNil)
			convey.So(decoded["$schema"], convey.ShouldContainSubstring, "vega-lite")
		})
	})

	convey.Convey("Given a chart without data", t, func() {
		spec := render.VegaLite(types.Chart{Entity: "title"}, render.DefaultOptions())
		raw, err := spec.JSON()

		convey.Convey("Then arrays are empty rather than null", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(raw, convey.ShouldContainSubstring, `"values":[]`)
			convey.So(raw, convey.ShouldNotContainSubstring, "null")
		})
	})
}

func TestDocument(t *testing.T) {
	convey.Convey("Given a chart document", t, func() {
		c := sampleChart("platform")
		c.Points = append(c.Points, types.ChartPoint{Entity: "</script><b>", Genre: "Misc", Sales: 1})
		doc, err := render.DocumentString(c, render.Options{Width: 300, Height: 200})

		convey.Convey("Then it is a standalone HTML page embedding the spec", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(doc, convey.ShouldStartWith, "<!DOCTYPE html>")
			convey.So(doc, convey.ShouldContainSubstring, "vegaEmbed")
			convey.So(doc, convey.ShouldContainSubstring, "<title>By Platform</title>")
			convey.So(doc, convey.ShouldContainSubstring, `"width":300`)
		})

		convey.Convey("And entity names cannot break out of the script", func() {
			convey.So(strings.Count(doc, "</script>"), convey.ShouldEqual, 4)
		})
	})
}
