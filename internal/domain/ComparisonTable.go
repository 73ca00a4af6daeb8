package domain

// ComparisonCell holds one tariff's metrics inside the comparison grid,
// computed from that tariff's own record series and price.
type ComparisonCell struct {
	TariffID   string           `json:"tariff_id"`
	TariffName string           `json:"tariff_name"`
	Price      int              `json:"price"`
	Metrics    *MetricsSnapshot `json:"metrics"`
}

// ComparisonTable is the two-level cross-tariff grid: outer key is the
// access group, inner key the price-tier label. Tariffs whose data failed
// to load are absent from the grid and reported in Warnings instead.
type ComparisonTable struct {
	Period   Period                                     `json:"period"`
	Groups   map[AccessGroup]map[string]*ComparisonCell `json:"groups"`
	Warnings []string                                   `json:"warnings,omitempty"`
}
