// Package types contains the wire shapes handed to the rendering boundary.
package types

// State mirrors a filter snapshot in wire form.
type State struct {
	Region      string `json:"region"`
	ResultCount int    `json:"result_count"`
	Tab         string `json:"tab"`
	YearCutoff  int    `json:"year_cutoff"`
}

// TableRow is one row of the top titles table.
type TableRow struct {
	Rank      int     `json:"Rank"`
	Name      string  `json:"Name"`
	Platform  string  `json:"Platform"`
	Year      *int    `json:"Year"`
	Genre     string  `json:"Genre"`
	Publisher string  `json:"Publisher"`
	Sales     float64 `json:"Sales"`
}

// RankedEntity is one entry of a ranking.
type RankedEntity struct {
	Position int     `json:"position"`
	Entity   string  `json:"entity"`
	Sales    float64 `json:"sales"`
	MinRank  int     `json:"min_rank"`
}

// ChartPoint is one (entity, genre) mark.
type ChartPoint struct {
	Entity string  `json:"entity"`
	Genre  string  `json:"genre"`
	Sales  float64 `json:"sales"`
}

// Chart carries everything a chart renderer needs for one granularity.
type Chart struct {
	Entity     string         `json:"entity"`
	Title      string         `json:"title"`
	Region     string         `json:"region"`
	Ranking    []RankedEntity `json:"ranking"`
	Labels     []RankedEntity `json:"labels"`
	Points     []ChartPoint   `json:"points"`
	Highlights []ChartPoint   `json:"highlights"`
	GenreOrder []string       `json:"genre_order"`
}

// TopPerformers is the bundle materialised for the top performers tab.
type TopPerformers struct {
	TableRows   []TableRow          `json:"table_rows"`
	Title       Chart               `json:"title_ranking"`
	Platform    Chart               `json:"platform_ranking"`
	Publisher   Chart               `json:"publisher_ranking"`
	GenreOrders map[string][]string `json:"genre_orders"`
}

// Placeholder describes a tab that carries no data.
type Placeholder struct {
	Title string `json:"title"`
}

// Bundle is the complete output of one recomputation.
type Bundle struct {
	State         State          `json:"state"`
	Placeholder   *Placeholder   `json:"placeholder,omitempty"`
	TopPerformers *TopPerformers `json:"top_performers,omitempty"`
}

// Option is one selectable value of a control.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options lists the selectable filter values.
type Options struct {
	Regions      []Option `json:"regions"`
	ResultCounts []int    `json:"result_counts"`
	Tabs         []Option `json:"tabs"`
}
