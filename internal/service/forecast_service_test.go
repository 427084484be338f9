package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velamo/remitroute/internal/repository"
)

type fakeFlowStore struct {
	stats     repository.FlowStats
	sentiment repository.SentimentStats
	statsErr  error
}

func (f *fakeFlowStore) TrailingStats(context.Context, string, string, int) (repository.FlowStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeFlowStore) RecentSentiment(context.Context, string, int) (repository.SentimentStats, error) {
	return f.sentiment, nil
}

// fixedForecaster pins "today" to a Monday in July so no prediction day in a
// 7-day horizon crosses a weekend-plus-year-end boundary unintentionally.
func fixedForecaster(flows *fakeFlowStore) *Forecaster {
	f := NewForecaster(flows)
	f.now = func() time.Time {
		return time.Date(2026, time.July, 6, 12, 0, 0, 0, time.UTC) // Monday
	}
	return f
}

func TestForecaster_Predict(t *testing.T) {
	flows := &fakeFlowStore{
		stats:     repository.FlowStats{AvgDailyInflowUSD: 10000, AvgDailyOutflowUSD: 8000, DataPoints: 14},
		sentiment: repository.SentimentStats{AvgSentiment: 50, DataPoints: 7},
	}
	f := fixedForecaster(flows)

	predictions, err := f.Predict(context.Background(), "dist-1", "US-HT-USD-HTG", 7)
	require.NoError(t, err)
	require.Len(t, predictions, 7)

	// Neutral sentiment keeps the market multiplier at 1.0.
	weekday := predictions[0] // Tuesday
	assert.InDelta(t, 1.0, weekday.Factors.MarketMultiplier, 1e-9)
	assert.InDelta(t, 1.0, weekday.Factors.SeasonalMultiplier, 1e-9)
	assert.InDelta(t, 10000, weekday.PredictedInflowUSD, 1e-6)
	assert.InDelta(t, 8000, weekday.PredictedOutflowUSD, 1e-6)
	assert.InDelta(t, 2000, weekday.NetFlowUSD, 1e-6)
	assert.InDelta(t, 10000.0/8000.0, weekday.Factors.HistoricalPatternRatio, 1e-9)

	saturday := predictions[4]
	assert.Equal(t, time.Saturday, saturday.PredictionDate.Weekday())
	assert.InDelta(t, 1.2, saturday.Factors.SeasonalMultiplier, 1e-9)
	assert.InDelta(t, 12000, saturday.PredictedInflowUSD, 1e-6)

	// 14 data points x 3 = 42, plus 7/100 sentiment points.
	assert.InDelta(t, 0.49, weekday.Confidence, 1e-9)
	assert.Empty(t, weekday.Factors.MarketEvents)
}

func TestForecaster_SeasonalMultipliersCompound(t *testing.T) {
	// Saturday in December: weekend and year-end apply together.
	m := seasonalMultiplier(time.Date(2026, time.December, 5, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 1.2*1.3, m, 1e-9)

	m = seasonalMultiplier(time.Date(2026, time.December, 7, 0, 0, 0, 0, time.UTC))
	assert.InDelta(t, 1.3, m, 1e-9)
}

func TestForecaster_MarketSentimentShifts(t *testing.T) {
	t.Run("elevated", func(t *testing.T) {
		flows := &fakeFlowStore{
			stats:     repository.FlowStats{AvgDailyInflowUSD: 1000, AvgDailyOutflowUSD: 1000, DataPoints: 14},
			sentiment: repository.SentimentStats{AvgSentiment: 80, DataPoints: 7},
		}
		predictions, err := fixedForecaster(flows).Predict(context.Background(), "dist-1", "US-HT-USD-HTG", 1)
		require.NoError(t, err)
		assert.InDelta(t, 0.8+0.8*0.4, predictions[0].Factors.MarketMultiplier, 1e-9)
		assert.Equal(t, []string{"elevated_market_sentiment"}, predictions[0].Factors.MarketEvents)
	})

	t.Run("depressed", func(t *testing.T) {
		flows := &fakeFlowStore{
			stats:     repository.FlowStats{AvgDailyInflowUSD: 1000, AvgDailyOutflowUSD: 1000, DataPoints: 14},
			sentiment: repository.SentimentStats{AvgSentiment: 20, DataPoints: 7},
		}
		predictions, err := fixedForecaster(flows).Predict(context.Background(), "dist-1", "US-HT-USD-HTG", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"depressed_market_sentiment"}, predictions[0].Factors.MarketEvents)
	})
}

func TestForecaster_RecommendedActions(t *testing.T) {
	t.Run("large shortfall", func(t *testing.T) {
		actions := recommendedActions(-3000, 10000, 0.8)
		assert.Contains(t, actions, "pre-position additional float ahead of the shortfall")
	})

	t.Run("mild shortfall", func(t *testing.T) {
		actions := recommendedActions(-1000, 10000, 0.8)
		assert.Contains(t, actions, "monitor float level, mild outflow pressure expected")
	})

	t.Run("surplus", func(t *testing.T) {
		actions := recommendedActions(2000, 10000, 0.8)
		assert.Contains(t, actions, "sweep excess float to reduce idle liquidity")
	})

	t.Run("low confidence flagged", func(t *testing.T) {
		actions := recommendedActions(2000, 10000, 0.2)
		assert.Contains(t, actions, "low data coverage, extend flow history before acting")
	})
}

func TestForecaster_ScarceDataLowersConfidence(t *testing.T) {
	flows := &fakeFlowStore{
		stats:     repository.FlowStats{AvgDailyInflowUSD: 1000, AvgDailyOutflowUSD: 500, DataPoints: 2},
		sentiment: repository.SentimentStats{AvgSentiment: 50, DataPoints: 0},
	}
	predictions, err := fixedForecaster(flows).Predict(context.Background(), "dist-1", "US-HT-USD-HTG", 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, predictions[0].Confidence, 1e-9)
}

func TestForecaster_StoreFailure(t *testing.T) {
	flows := &fakeFlowStore{statsErr: errors.New("connection reset")}
	_, err := fixedForecaster(flows).Predict(context.Background(), "dist-1", "US-HT-USD-HTG", 7)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
