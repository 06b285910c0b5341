package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/liuhaochen/site-analytics/internal/entity"
	"github.com/liuhaochen/site-analytics/pkg/utils"
)

// Session durations at or above one hour (and non-positive ones) are
// treated as invalid samples and excluded, not clamped.
const maxValidDurationMs = 3600000

// Display labels for known referrer tags. Unknown tags render as "Other"
// but keep their own group, keyed by the raw value.
var sourceLabels = map[string]string{
	"direct":          "Direct",
	"search_baidu":    "Baidu Search",
	"search_google":   "Google Search",
	"social_weibo":    "Weibo",
	"social_zhihu":    "Zhihu",
	"social_linkedin": "LinkedIn",
}

// Generate computes the daily report for an ordered sequence of canonical
// records. It is pure and deterministic: same records and date, same report.
// An empty input yields an all-zero summary with the full 24-entry hourly
// grid and only the two unconditional insight lines.
func Generate(records []entity.EventRecord, date string) *entity.DailyReport {
	var pageViews, pageLeaves []entity.EventRecord
	for _, rec := range records {
		switch rec.Type {
		case entity.EventTypePageView:
			pageViews = append(pageViews, rec)
		case entity.EventTypePageLeave:
			pageLeaves = append(pageLeaves, rec)
		}
	}

	visitors := make(map[string]struct{})
	newVisitors := 0
	for _, pv := range pageViews {
		visitors[pv.VisitorHash] = struct{}{}
		if pv.IsNewVisitor {
			newVisitors++
		}
	}
	totalPV := len(pageViews)
	uniqueVisitors := len(visitors)
	// Counted over different record sets, so this can go negative for
	// pathological input; kept unclamped for report compatibility.
	returnVisitors := uniqueVisitors - newVisitors

	pageStats := buildPageStats(pageViews)
	sourceStats := buildSourceStats(pageViews, totalPV)
	hourlyData := buildHourlyData(pageViews)
	bounceRate := computeBounceRate(pageViews, uniqueVisitors)
	avgDuration := averageDuration(pageLeaves)

	pagesPerSession := 0.0
	if uniqueVisitors > 0 {
		pagesPerSession = utils.RoundToTwoDecimals(float64(totalPV) / float64(uniqueVisitors))
	}

	insights := buildInsights(hourlyData, pageStats, totalPV, bounceRate, newVisitors, returnVisitors)

	return &entity.DailyReport{
		Date: date,
		Summary: entity.ReportSummary{
			PV:                 totalPV,
			UV:                 uniqueVisitors,
			NewVisitors:        newVisitors,
			ReturnVisitors:     returnVisitors,
			AvgSessionDuration: avgDuration,
			BounceRate:         utils.RoundToThreeDecimals(bounceRate),
			PagesPerSession:    pagesPerSession,
		},
		HourlyData:  hourlyData,
		PageStats:   pageStats,
		SourceStats: sourceStats,
		Insights:    insights,
	}
}

func buildPageStats(pageViews []entity.EventRecord) []entity.PageStat {
	type pageAgg struct {
		path string
		name string
		pv   int
		uv   map[string]struct{}
	}

	groups := make(map[string]*pageAgg)
	var order []string

	for _, pv := range pageViews {
		path := pv.PagePath
		if path == "" {
			path = "/"
		}

		agg, ok := groups[path]
		if !ok {
			agg = &pageAgg{path: path, uv: make(map[string]struct{})}
			groups[path] = agg
			order = append(order, path)
		}
		agg.pv++
		agg.uv[pv.VisitorHash] = struct{}{}

		// The group name follows the last-seen record.
		if pv.PageName != "" {
			agg.name = pv.PageName
		} else {
			agg.name = path
		}
	}

	stats := make([]entity.PageStat, 0, len(order))
	for _, path := range order {
		agg := groups[path]
		stats = append(stats, entity.PageStat{
			Path: agg.path,
			Name: agg.name,
			PV:   agg.pv,
			UV:   len(agg.uv),
		})
	}

	// Stable: ties keep first-seen group order.
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].PV > stats[j].PV
	})
	return stats
}

func buildSourceStats(pageViews []entity.EventRecord, totalPV int) []entity.SourceStat {
	type sourceAgg struct {
		source string
		uv     map[string]struct{}
		count  int
	}

	// Keyed by the raw referrer value: distinct unmapped referrers stay
	// separate entries even though they all display as "Other".
	groups := make(map[string]*sourceAgg)
	var order []string

	for _, pv := range pageViews {
		source := pv.Referrer
		if source == "" {
			source = "direct"
		}

		agg, ok := groups[source]
		if !ok {
			agg = &sourceAgg{source: source, uv: make(map[string]struct{})}
			groups[source] = agg
			order = append(order, source)
		}
		agg.uv[pv.VisitorHash] = struct{}{}
		agg.count++
	}

	stats := make([]entity.SourceStat, 0, len(order))
	for _, source := range order {
		agg := groups[source]

		label, ok := sourceLabels[agg.source]
		if !ok {
			label = "Other"
		}

		percentage := 0
		if totalPV > 0 {
			percentage = int(math.Round(float64(agg.count) / float64(totalPV) * 100))
		}

		stats = append(stats, entity.SourceStat{
			Source:     label,
			UV:         len(agg.uv),
			Percentage: percentage,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].UV > stats[j].UV
	})
	return stats
}

func buildHourlyData(pageViews []entity.EventRecord) []entity.HourlyStat {
	pvByHour := make([]int, 24)
	uvByHour := make([]map[string]struct{}, 24)

	for _, pv := range pageViews {
		if pv.Hour < 0 || pv.Hour > 23 {
			continue
		}
		pvByHour[pv.Hour]++
		if uvByHour[pv.Hour] == nil {
			uvByHour[pv.Hour] = make(map[string]struct{})
		}
		uvByHour[pv.Hour][pv.VisitorHash] = struct{}{}
	}

	// Always exactly 24 entries, however sparse the data.
	hourly := make([]entity.HourlyStat, 0, 24)
	for hour := 0; hour < 24; hour++ {
		hourly = append(hourly, entity.HourlyStat{
			Hour: fmt.Sprintf("%02d:00", hour),
			PV:   pvByHour[hour],
			UV:   len(uvByHour[hour]),
		})
	}
	return hourly
}

func computeBounceRate(pageViews []entity.EventRecord, uniqueVisitors int) float64 {
	if uniqueVisitors == 0 {
		return 0
	}

	visitorPages := make(map[string]map[string]struct{})
	for _, pv := range pageViews {
		if visitorPages[pv.VisitorHash] == nil {
			visitorPages[pv.VisitorHash] = make(map[string]struct{})
		}
		visitorPages[pv.VisitorHash][pv.PagePath] = struct{}{}
	}

	// A bounce is a visitor who touched exactly one distinct path,
	// regardless of how many views that path got.
	bounced := 0
	for _, pages := range visitorPages {
		if len(pages) == 1 {
			bounced++
		}
	}
	return float64(bounced) / float64(uniqueVisitors)
}

func averageDuration(pageLeaves []entity.EventRecord) int {
	var total float64
	count := 0

	for _, pl := range pageLeaves {
		if pl.Duration == nil {
			continue
		}
		d := *pl.Duration
		if d > 0 && d < maxValidDurationMs {
			total += d
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return int(math.Round(total / float64(count) / 1000))
}

func buildInsights(hourly []entity.HourlyStat, pageStats []entity.PageStat, totalPV int, bounceRate float64, newVisitors, returnVisitors int) []string {
	var insights []string

	peak := hourly[0]
	for _, h := range hourly[1:] {
		if h.PV > peak.PV {
			peak = h
		}
	}
	if peak.PV > 0 {
		insights = append(insights,
			fmt.Sprintf("Traffic peaked at %s with %d page views", peak.Hour, peak.PV))
	}

	if len(pageStats) > 0 {
		top := pageStats[0]
		share := float64(top.PV) / float64(totalPV) * 100
		insights = append(insights,
			fmt.Sprintf("%q is the most popular page, accounting for %.1f%% of total traffic", top.Name, share))
	}

	switch {
	case bounceRate < 0.4:
		insights = append(insights, "Bounce rate is excellent, visitor stickiness is high")
	case bounceRate < 0.6:
		insights = append(insights, "Bounce rate is within a reasonable range")
	default:
		insights = append(insights, "Bounce rate is high, consider improving page content")
	}

	// Equal counts read as loyalty on purpose.
	if newVisitors > returnVisitors {
		insights = append(insights, "New visitors predominate, acquisition is working well")
	} else {
		insights = append(insights, "Returning visitors predominate, visitor loyalty is strong")
	}

	return insights
}
