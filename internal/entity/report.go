package entity

// DailyReport is derived from a day's records on every request and has no
// lifecycle of its own; it is never persisted.
type DailyReport struct {
	Date        string        `json:"date"`
	Summary     ReportSummary `json:"summary"`
	HourlyData  []HourlyStat  `json:"hourlyData"`
	PageStats   []PageStat    `json:"pageStats"`
	SourceStats []SourceStat  `json:"sourceStats"`
	Insights    []string      `json:"insights"`
}

type ReportSummary struct {
	PV                 int     `json:"pv"`
	UV                 int     `json:"uv"`
	NewVisitors        int     `json:"newVisitors"`
	ReturnVisitors     int     `json:"returnVisitors"`
	AvgSessionDuration int     `json:"avgSessionDuration"` // seconds
	BounceRate         float64 `json:"bounceRate"`
	PagesPerSession    float64 `json:"pagesPerSession"`
}

type HourlyStat struct {
	Hour string `json:"hour"` // "HH:00"
	PV   int    `json:"pv"`
	UV   int    `json:"uv"`
}

type PageStat struct {
	Path string `json:"path"`
	Name string `json:"name"`
	PV   int    `json:"pv"`
	UV   int    `json:"uv"`
}

type SourceStat struct {
	Source     string `json:"source"`
	UV         int    `json:"uv"`
	Percentage int    `json:"percentage"`
}
