package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/taxgenius/regime-calculator/internal/domain"
)

func TestComputeSurcharge(t *testing.T) {
	oldBands := oldRegimeFixture().Surcharge
	newBands := newRegimeSurcharge()
	tax := dec(1000000)

	tests := []struct {
		name     string
		bands    []domain.SurchargeBand
		taxable  int64
		expected string
	}{
		{"below all bands", oldBands, 4000000, "0"},
		{"exactly 50L is not above", oldBands, 5000000, "0"},
		{"just above 50L", oldBands, 5000001, "100000"},
		{"above 1Cr", oldBands, 15000000, "150000"},
		{"above 2Cr", oldBands, 30000000, "250000"},
		{"old regime above 5Cr", oldBands, 60000000, "370000"},
		{"new regime capped at 25%", newBands, 60000000, "250000"},
		{"no bands", nil, 60000000, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeSurcharge(tax, dec(tt.taxable), tt.bands).String())
		})
	}
}

func TestComputeSurcharge_UnorderedBands(t *testing.T) {
	bands := []domain.SurchargeBand{
		{Above: dec(20000000), Rate: dec(25)},
		{Above: dec(5000000), Rate: dec(10)},
		{Above: dec(10000000), Rate: dec(15)},
	}
	assert.Equal(t, "15000", ComputeSurcharge(dec(100000), dec(12000000), bands).String())
}

func TestComputeCess(t *testing.T) {
	assert.Equal(t, "2150", ComputeCess(dec(53750), dec(4)).String())
	assert.Equal(t, "59730", ComputeCess(dec(1493250), dec(4)).String())
	assert.True(t, ComputeCess(decimal.Zero, dec(4)).IsZero())
}
