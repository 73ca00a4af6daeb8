package domain

// DashboardReport is the headline-metrics response for one tariff
// selection and resolved period.
type DashboardReport struct {
	Period    Period            `json:"period"`
	TariffIDs []string          `json:"tariff_ids"`
	Metrics   *MetricsSnapshot  `json:"metrics"`
	Display   map[string]string `json:"display"`
}

// SeriesPoint is one charted day: the aggregated flow counts plus the
// reconstructed per-day MRR across the selection.
type SeriesPoint struct {
	AggregatedDay
	MRR float64 `json:"mrr"`
}

// SeriesReport is the time-series response used by the dashboard charts.
type SeriesReport struct {
	Period    Period        `json:"period"`
	TariffIDs []string      `json:"tariff_ids"`
	Days      []SeriesPoint `json:"days"`
}

// AvailablePeriods describes the date range present in the loaded dataset
// and the relative presets the period resolver accepts.
type AvailablePeriods struct {
	MinDate string         `json:"min_date,omitempty"`
	MaxDate string         `json:"max_date,omitempty"`
	Presets []PeriodPreset `json:"presets"`
}
