package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceTable_AbsentProduceYieldsZero(t *testing.T) {
	prices := PriceTable{"Tomato": 35, "Apple": 180}

	assert.Equal(t, 35.0, prices.Price("Tomato"))
	assert.Equal(t, 0.0, prices.Price("Durian"))
	assert.Equal(t, 0.0, PriceTable(nil).Price("Tomato"))
}

func TestRiskForFreshness_Thresholds(t *testing.T) {
	cases := []struct {
		freshness float64
		want      RiskLevel
	}{
		{100, RiskLow},
		{70, RiskLow},
		{69.99, RiskMedium},
		{40, RiskMedium},
		{39.99, RiskHigh},
		{0, RiskHigh},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RiskForFreshness(tc.freshness), "freshness=%v", tc.freshness)
	}
}
