package domain

// MetricsSnapshot bundles the derived business metrics for one
// (tariff selection, period) pair. It is computed fresh on every request
// and never mutated afterwards.
//
// Flow totals (NewSubs, Reactivated, Upgraded, Downgraded, ChurnedTotal)
// are plain sums and always defined; MRR is 0 for an empty period by
// design. The remaining scalars carry the undefined marker independently
// of each other.
type MetricsSnapshot struct {
	StartValue   Metric  `json:"start_value"`
	EndValue     Metric  `json:"end_value"`
	NewSubs      float64 `json:"new_subs"`
	Reactivated  float64 `json:"reactivated"`
	Upgraded     float64 `json:"upgraded"`
	Downgraded   float64 `json:"downgraded"`
	ChurnedTotal float64 `json:"churned_total"`
	MRR          float64 `json:"mrr"`
	ChurnRate    Metric  `json:"churn_rate"`
	GrowthRate   Metric  `json:"growth_rate"`
	Lifetime     Metric  `json:"lifetime"`
	ARPPU        Metric  `json:"arppu"`
	LTV          Metric  `json:"ltv"`
	CAC          Metric  `json:"cac"`
	LTVCAC       Metric  `json:"ltv_cac"`
}
