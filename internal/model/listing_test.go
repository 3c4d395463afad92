package model

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestCentsConversion(t *testing.T) {
    assert.Equal(t, 125.50, CentsToAmount(12550))
    assert.Equal(t, 0.0, CentsToAmount(0))

    assert.Equal(t, int64(12550), AmountToCents(125.50))
    assert.Equal(t, int64(10), AmountToCents(0.1), "float noise must round, not truncate")
    assert.Equal(t, int64(2999), AmountToCents(29.99))
}

func TestListingCost(t *testing.T) {
    l := Listing{CostPerNightCents: 7599}
    assert.Equal(t, 75.99, l.CostPerNight())
    assert.Equal(t, int64(22797), l.TotalCostCents(3))
    assert.Equal(t, int64(7599), l.TotalCostCents(1))
}
