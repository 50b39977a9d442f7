package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/okian/vgsales/internal/domain/types"
)

const (
	vegaURL      = "https://cdn.jsdelivr.net/npm/vega@5"
	vegaLiteURL  = "https://cdn.jsdelivr.net/npm/vega-lite@5"
	vegaEmbedURL = "https://cdn.jsdelivr.net/npm/vega-embed@6"
)

var documentTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="{{.Vega}}"></script>
  <script src="{{.VegaLite}}"></script>
  <script src="{{.VegaEmbed}}"></script>
  <style>body { margin: 0; font-family: sans-serif; }</style>
</head>
<body>
  <div id="vis"></div>
  <script type="text/javascript">
    const spec = {{.Spec}};
    vegaEmbed("#vis", spec, {actions: false}).catch(console.error);
  </script>
</body>
</html>
`))

type documentData struct {
	Title     string
	Vega      string
	VegaLite  string
	VegaEmbed string
	Spec      template.JS
}

// Document writes a standalone HTML page embedding the chart's Vega-Lite spec.
func Document(w io.Writer, c types.Chart, opts Options) error {
	raw, err := VegaLite(c, opts).JSON()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeSpec, err)
	}
	data := documentData{
		Title:     c.Title,
		Vega:      vegaURL,
		VegaLite:  vegaLiteURL,
		VegaEmbed: vegaEmbedURL,
		Spec:      template.JS(raw), //nolint:gosec // JSON produced by encoding/json with HTML escaping
	}
	if err := documentTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// DocumentString renders Document into a string.
func DocumentString(c types.Chart, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Document(&buf, c, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}
