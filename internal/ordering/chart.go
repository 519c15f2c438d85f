package ordering

import (
	"sort"
	"time"

	"github.com/julianstephens/hourlog/internal/models"
)

// Series is one activity's stack across all chart labels.
type Series struct {
	Activity string
	Color    string
	Values   []float64
}

// Chart is a stacked daily bar chart: one label per date, one series per
// activity, every series as long as Labels.
type Chart struct {
	Labels []string
	Series []Series
}

// ForChart groups ordered entries by local date and sums hours per activity.
// Labels are ascending dates. Series follow the order in which activities
// first appear in ordered.
func ForChart(ordered []models.Entry, loc *time.Location, palette *Palette) Chart {
	sums := make(map[string]map[string]float64)
	var activities []string
	seen := make(map[string]bool)

	for _, e := range ordered {
		day := e.Day(loc)
		if sums[day] == nil {
			sums[day] = make(map[string]float64)
		}
		sums[day][e.Activity] += e.Hours

		if !seen[e.Activity] {
			seen[e.Activity] = true
			activities = append(activities, e.Activity)
		}
	}

	labels := make([]string, 0, len(sums))
	for day := range sums {
		labels = append(labels, day)
	}
	sort.Strings(labels)

	chart := Chart{Labels: labels, Series: make([]Series, 0, len(activities))}
	for _, activity := range activities {
		values := make([]float64, len(labels))
		for i, day := range labels {
			values[i] = sums[day][activity]
		}
		chart.Series = append(chart.Series, Series{
			Activity: activity,
			Color:    palette.Color(activity),
			Values:   values,
		})
	}
	return chart
}

// Total returns the stacked height of the bar at label index i.
func (c Chart) Total(i int) float64 {
	var total float64
	for _, s := range c.Series {
		total += s.Values[i]
	}
	return total
}
