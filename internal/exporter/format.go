package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a derived metric with exactly 2 decimal places
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// formatNumber formats a source value with the shortest exact representation
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// round2 rounds half away from zero to 2 decimal places
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
