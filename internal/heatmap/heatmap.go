// Package heatmap renders a year of daily activity into fixed-size
// visualization cells.
package heatmap

import (
	"time"

	"messaging-service/internal/models"
)

// Days is the fixed width of the heat map window.
const Days = 365

// Cell is one day of the heat map.
type Cell struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Build produces exactly Days cells in ascending date order, ending on
// the day of today. Days without an activity record count as zero.
func Build(activity []models.DailyActivityRecord, today time.Time) []Cell {
	counts := make(map[string]int, len(activity))
	for _, rec := range activity {
		counts[rec.Date] = rec.TotalMessages
	}

	start := models.DayStart(today).AddDate(0, 0, -(Days - 1))
	cells := make([]Cell, Days)
	for i := range cells {
		day := models.DayKey(start.AddDate(0, 0, i))
		n := counts[day]
		cells[i] = Cell{Date: day, Count: n, Level: Level(n)}
	}
	return cells
}

// Level buckets a daily message count into the 0..4 intensity scale
// used by the client renderer.
func Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 10:
		return 3
	default:
		return 4
	}
}
