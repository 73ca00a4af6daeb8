package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceFromName(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"Theory 250", 250},
		{"Full 900", 900},
		{"Theory", 0},
		{"", 0},
		{"Promo 2024 Special", 2024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PriceFromName(tt.name))
		})
	}
}

func TestAccessGroupFromName(t *testing.T) {
	assert.Equal(t, AccessGroupTheoryOnly, AccessGroupFromName("Theory 250"))
	assert.Equal(t, AccessGroupTheoryOnly, AccessGroupFromName("THEORY 400"))
	assert.Equal(t, AccessGroupFullAccess, AccessGroupFromName("Full 900"))
	assert.Equal(t, AccessGroupFullAccess, AccessGroupFromName(""))
}

func TestNewTariff(t *testing.T) {
	tariff := NewTariff("theory_250", "Theory 250", "sheet-250")

	assert.Equal(t, "theory_250", tariff.ID)
	assert.Equal(t, "Theory 250", tariff.Name)
	assert.Equal(t, "sheet-250", tariff.SheetID)
	assert.Equal(t, 250, tariff.Price)
	assert.Equal(t, AccessGroupTheoryOnly, tariff.AccessGroup)
}

func TestTariff_TierLabel(t *testing.T) {
	assert.Equal(t, "250", NewTariff("theory_250", "Theory 250", "s").TierLabel())
	// No parsable price: fall back to the display name.
	assert.Equal(t, "Legacy", NewTariff("legacy", "Legacy", "s").TierLabel())
}
