package domain

import (
	"time"
)

// DailyRecord is one tariff's subscriber-flow counts on one calendar day,
// as loaded from that tariff's sheet. Count fields default to 0 when the
// source cell is missing or unparseable; rows with unparseable dates are
// dropped at load time. Records are not deduplicated by (tariff, date) —
// duplicates are summed during aggregation.
type DailyRecord struct {
	Date            time.Time `json:"date"`
	TariffID        string    `json:"tariff_id"`
	Price           int       `json:"price"`
	Start           float64   `json:"start"`
	New             float64   `json:"new"`
	Reactivated     float64   `json:"reactivated"`
	UpgradedEnter   float64   `json:"upgradedEnter"`
	DowngradedEnter float64   `json:"downgradedEnter"`
	End             float64   `json:"end"`
	UpgradedExit    float64   `json:"upgradedExit"`
	DowngradedExit  float64   `json:"downgradedExit"`
}
