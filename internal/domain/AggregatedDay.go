package domain

import (
	"time"
)

// AggregatedDay is the column-wise sum of every selected tariff's flow
// counts on one calendar date, restricted to the active period. Churned is
// derived from the flow balance and floored at 0.
type AggregatedDay struct {
	Date            time.Time `json:"date"`
	Start           float64   `json:"start"`
	New             float64   `json:"new"`
	Reactivated     float64   `json:"reactivated"`
	UpgradedEnter   float64   `json:"upgradedEnter"`
	DowngradedEnter float64   `json:"downgradedEnter"`
	End             float64   `json:"end"`
	UpgradedExit    float64   `json:"upgradedExit"`
	DowngradedExit  float64   `json:"downgradedExit"`
	Churned         float64   `json:"churned"`
}
