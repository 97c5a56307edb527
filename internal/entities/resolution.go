package entities

// Resolution is what a dashboard needs for one selection: the table for the
// chart and the per-target metrics. Missing lists targets without metrics.
type Resolution struct {
	Query   Query
	Table   *RateTable
	Metrics map[string]Metric
	Missing []string
}

// Catalog describes the selection controls of the dashboard.
type Catalog struct {
	Currencies       []string `json:"currencies"`
	DefaultBase      string   `json:"default_base"`
	DefaultTargets   []string `json:"default_targets"`
	DefaultStartYear int      `json:"default_start_year"`
	MinYear          int      `json:"min_year"`
	MaxYear          int      `json:"max_year"`
}
