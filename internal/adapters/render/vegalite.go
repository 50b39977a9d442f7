// Package render turns chart data into self-contained Vega-Lite documents.
package render

import (
	"encoding/json"
	"strings"

	"github.com/okian/vgsales/internal/domain/types"
)

const (
	schemaURL   = "https://vega.github.io/schema/vega-lite/v5.json"
	colorScheme = "category20"
	markSize    = 50
	labelOffset = 10
	salesTitle  = "Sales (in millions)"
)

// Options size the rendered chart.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns the chart size used when none is configured.
func DefaultOptions() Options {
	return Options{Width: 560, Height: 420}
}

// Spec is the subset of a Vega-Lite top-level layered spec we emit.
type Spec struct {
	Schema string  `json:"$schema"`
	Title  string  `json:"title,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	Layer  []Layer `json:"layer"`
}

// Layer is one mark with inline data.
type Layer struct {
	Data     Data     `json:"data"`
	Mark     Mark     `json:"mark"`
	Encoding Encoding `json:"encoding"`
}

// Data holds inline values.
type Data struct {
	Values []Datum `json:"values"`
}

// Datum is one row of inline data.
type Datum struct {
	Entity string  `json:"entity"`
	Genre  string  `json:"genre"`
	Sales  float64 `json:"sales"`
}

// Mark describes the mark type of a layer.
type Mark struct {
	Type  string `json:"type"`
	Size  int    `json:"size,omitempty"`
	Align string `json:"align,omitempty"`
	DX    int    `json:"dx,omitempty"`
}

// Encoding maps data fields to visual channels.
type Encoding struct {
	X       *Channel `json:"x,omitempty"`
	Y       *Channel `json:"y,omitempty"`
	Color   *Channel `json:"color,omitempty"`
	Tooltip *Channel `json:"tooltip,omitempty"`
	Text    *Channel `json:"text,omitempty"`
}

// Channel is a single encoding channel.
type Channel struct {
	Field  string   `json:"field"`
	Type   string   `json:"type"`
	Title  *string  `json:"title,omitempty"`
	Sort   []string `json:"sort,omitempty"`
	Stack  *bool    `json:"stack,omitempty"`
	Scale  *Scale   `json:"scale,omitempty"`
	Legend *bool    `json:"legend,omitempty"`
}

// Scale selects a color scheme.
type Scale struct {
	Scheme string `json:"scheme"`
}

// VegaLite builds the layered scatter spec for a chart: every (entity, genre)
// point placed by genre and sales, plus text labels on the highlighted points.
func VegaLite(c types.Chart, opts Options) Spec {
	genreSort := c.GenreOrder
	if genreSort == nil {
		genreSort = []string{}
	}
	noTitle := ""
	salesAxis := salesTitle
	noStack := false

	color := &Channel{Field: "genre", Type: "nominal", Scale: &Scale{Scheme: colorScheme}}
	if c.Entity != "publisher" {
		hide := false
		color.Legend = &hide
	}

	points := Layer{
		Data: Data{Values: data(c.Points)},
		Mark: Mark{Type: "circle", Size: markSize},
		Encoding: Encoding{
			X:       &Channel{Field: "genre", Type: "nominal", Title: &noTitle, Sort: genreSort},
			Y:       &Channel{Field: "sales", Type: "quantitative", Title: &salesAxis, Stack: &noStack},
			Color:   color,
			Tooltip: &Channel{Field: "entity", Type: "nominal", Title: &c.Entity},
		},
	}

	labels := Layer{
		Data: Data{Values: data(c.Highlights)},
		Mark: Mark{Type: "text", Align: "left", DX: labelOffset},
		Encoding: Encoding{
			X:    &Channel{Field: "genre", Type: "nominal", Sort: genreSort},
			Y:    &Channel{Field: "sales", Type: "quantitative"},
			Text: &Channel{Field: "entity", Type: "nominal"},
		},
	}

	return Spec{
		Schema: schemaURL,
		Title:  c.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Layer:  []Layer{points, labels},
	}
}

func data(points []types.ChartPoint) []Datum {
	out := make([]Datum, len(points))
	for i, p := range points {
		out[i] = Datum{Entity: p.Entity, Genre: p.Genre, Sales: p.Sales}
	}
	return out
}

// JSON encodes the spec. Map-free structs keep the output stable.
func (s Spec) JSON() (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(true)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
