package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// AccessGroup classifies a tariff by what it unlocks. Derived from the
// tariff display-name convention: names mentioning "theory" are
// theory-only, everything else is full-access.
type AccessGroup string

const (
	AccessGroupTheoryOnly AccessGroup = "theory-only"
	AccessGroupFullAccess AccessGroup = "full-access"
)

// Tariff is one priced subscription tier from the static catalogue.
type Tariff struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	SheetID     string      `json:"-"`
	Price       int         `json:"price"`
	AccessGroup AccessGroup `json:"access_group"`
}

var priceInName = regexp.MustCompile(`\d+`)

// NewTariff builds a catalogue tariff from its display name, deriving the
// price tier and access group from the naming convention.
func NewTariff(id, name, sheetID string) Tariff {
	return Tariff{
		ID:          id,
		Name:        name,
		SheetID:     sheetID,
		Price:       PriceFromName(name),
		AccessGroup: AccessGroupFromName(name),
	}
}

// PriceFromName extracts the price tier from a tariff display name, e.g.
// "Theory 250" yields 250. Names without a parsable price yield 0.
func PriceFromName(name string) int {
	match := priceInName.FindString(name)
	if match == "" {
		return 0
	}

	price, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	return price
}

// AccessGroupFromName derives the access group from the display-name
// convention.
func AccessGroupFromName(name string) AccessGroup {
	if strings.Contains(strings.ToLower(name), "theory") {
		return AccessGroupTheoryOnly
	}
	return AccessGroupFullAccess
}

// TierLabel is the human label used as the inner comparison-grid key. It is
// the price tier when one is parsable, otherwise the display name.
func (t Tariff) TierLabel() string {
	if t.Price > 0 {
		return strconv.Itoa(t.Price)
	}
	return t.Name
}
