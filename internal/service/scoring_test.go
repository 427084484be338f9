package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/velamo/remitroute/internal/model"
)

func TestCostScore(t *testing.T) {
	cases := []struct {
		name     string
		cost     float64
		amount   float64
		expected float64
	}{
		{"two percent", 10, 500, 1.0},
		{"four percent", 20, 500, 0.8},
		{"six percent", 30, 500, 0.6},
		{"eight percent", 40, 500, 0.4},
		{"above eight percent", 60, 500, 0.2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, costScore(tc.cost, tc.amount))
		})
	}
}

func TestSpeedScore(t *testing.T) {
	assert.Equal(t, 1.0, speedScore(0.5))
	assert.Equal(t, 0.8, speedScore(3))
	assert.Equal(t, 0.6, speedScore(12))
	assert.Equal(t, 0.4, speedScore(36))
	assert.Equal(t, 0.2, speedScore(72))
}

func TestCompositeScore(t *testing.T) {
	route := &model.Route{
		TotalCost:           10, // 2% of 500 -> cost 1.0
		EstimatedHours:      3,  // speed 0.8
		ConfidenceScore:     90, // reliability 0.9
		RegulatoryCompliant: true,
	}
	expected := 0.35*1.0 + 0.25*0.8 + 0.25*0.9 + 0.15*1.0
	assert.InDelta(t, expected, compositeScore(route, 500), 1e-9)
}

func TestCompositeScore_NonCompliant(t *testing.T) {
	route := &model.Route{
		TotalCost:           10,
		EstimatedHours:      3,
		ConfidenceScore:     90,
		RegulatoryCompliant: false,
	}
	expected := 0.35*1.0 + 0.25*0.8 + 0.25*0.9
	assert.InDelta(t, expected, compositeScore(route, 500), 1e-9)
}

func TestConfidenceScore(t *testing.T) {
	t.Run("thin liquidity penalty", func(t *testing.T) {
		// remaining < 2x total cost
		assert.InDelta(t, 85.0, confidenceScore(95, 30, 20, time.Minute), 1e-9)
	})

	t.Run("stale rate penalty", func(t *testing.T) {
		assert.InDelta(t, 90.0, confidenceScore(95, 1e6, 20, 6*time.Minute), 1e-9)
	})

	t.Run("both penalties", func(t *testing.T) {
		assert.InDelta(t, 80.0, confidenceScore(95, 30, 20, 6*time.Minute), 1e-9)
	})

	t.Run("clamped to zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, confidenceScore(5, 0, 20, 10*time.Minute), 1e-9)
	})

	t.Run("no penalties", func(t *testing.T) {
		assert.InDelta(t, 95.0, confidenceScore(95, 1e6, 20, time.Minute), 1e-9)
	})
}
