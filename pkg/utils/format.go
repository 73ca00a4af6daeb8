package utils

import (
	"fmt"
	"math"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
)

// UndefinedPlaceholder is rendered wherever a metric is undefined.
const UndefinedPlaceholder = "—"

// FormatPercent renders a fractional metric as a percentage with one
// decimal, e.g. 0.17 → "17.0%".
func FormatPercent(m domain.Metric) string {
	v, ok := m.Float64()
	if !ok {
		return UndefinedPlaceholder
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// FormatMoney renders a monetary metric with up to two decimals, dropping
// them for whole amounts.
func FormatMoney(m domain.Metric) string {
	v, ok := m.Float64()
	if !ok {
		return UndefinedPlaceholder
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatNumber renders a metric with the given number of decimals.
func FormatNumber(m domain.Metric, decimals int) string {
	v, ok := m.Float64()
	if !ok {
		return UndefinedPlaceholder
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// FormatCount renders a whole-valued metric without decimals.
func FormatCount(m domain.Metric) string {
	v, ok := m.Float64()
	if !ok {
		return UndefinedPlaceholder
	}
	return fmt.Sprintf("%.0f", v)
}
