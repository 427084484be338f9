package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/velamo/remitroute/internal/model"
	"github.com/velamo/remitroute/internal/repository"
)

const (
	trailingWindowDays  = 14
	sentimentWindowDays = 7

	weekendMultiplier = 1.2
	yearEndMultiplier = 1.3
)

type flowStore interface {
	TrailingStats(ctx context.Context, distributorID, corridorID string, windowDays int) (repository.FlowStats, error)
	RecentSentiment(ctx context.Context, corridorID string, windowDays int) (repository.SentimentStats, error)
}

// Forecaster predicts net liquidity need per distributor and corridor from
// trailing flow history and market sentiment. Advisory output only: it never
// gates route optimization and shares no mutable state with the request path.
type Forecaster struct {
	flows flowStore
	now   func() time.Time
}

func NewForecaster(flows flowStore) *Forecaster {
	return &Forecaster{flows: flows, now: time.Now}
}

func (f *Forecaster) Predict(ctx context.Context, distributorID, corridorID string, horizonDays int) ([]model.CashFlowPrediction, error) {
	stats, err := f.flows.TrailingStats(ctx, distributorID, corridorID, trailingWindowDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	sentiment, err := f.flows.RecentSentiment(ctx, corridorID, sentimentWindowDays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	marketMultiplier := 0.8 + sentiment.AvgSentiment/100*0.4
	confidence := math.Min(1.0,
		math.Min(90, float64(stats.DataPoints)*3)/100+
			math.Min(0.10, float64(sentiment.DataPoints)/100))
	events := marketEvents(sentiment.AvgSentiment)

	patternRatio := 0.0
	if stats.AvgDailyOutflowUSD > 0 {
		patternRatio = stats.AvgDailyInflowUSD / stats.AvgDailyOutflowUSD
	}

	today := f.now()
	predictions := make([]model.CashFlowPrediction, 0, horizonDays)
	for day := 1; day <= horizonDays; day++ {
		date := today.AddDate(0, 0, day)
		seasonal := seasonalMultiplier(date)

		inflow := stats.AvgDailyInflowUSD * seasonal * marketMultiplier
		outflow := stats.AvgDailyOutflowUSD * seasonal * marketMultiplier
		net := inflow - outflow

		predictions = append(predictions, model.CashFlowPrediction{
			DistributorID:       distributorID,
			CorridorID:          corridorID,
			PredictionDate:      date,
			PredictedInflowUSD:  inflow,
			PredictedOutflowUSD: outflow,
			NetFlowUSD:          net,
			Confidence:          confidence,
			Factors: model.PredictionFactors{
				SeasonalMultiplier:     seasonal,
				MarketMultiplier:       marketMultiplier,
				MarketEvents:           events,
				HistoricalPatternRatio: patternRatio,
			},
			RecommendedActions: recommendedActions(net, outflow, confidence),
		})
	}

	return predictions, nil
}

func seasonalMultiplier(date time.Time) float64 {
	m := 1.0
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		m *= weekendMultiplier
	}
	if month := date.Month(); month == time.November || month == time.December {
		m *= yearEndMultiplier
	}
	return m
}

func marketEvents(avgSentiment float64) []string {
	switch {
	case avgSentiment >= 70:
		return []string{"elevated_market_sentiment"}
	case avgSentiment <= 30:
		return []string{"depressed_market_sentiment"}
	default:
		return nil
	}
}

func recommendedActions(netFlow, outflow, confidence float64) []string {
	var actions []string
	if netFlow < 0 {
		if outflow > 0 && -netFlow > 0.2*outflow {
			actions = append(actions, "pre-position additional float ahead of the shortfall")
		} else {
			actions = append(actions, "monitor float level, mild outflow pressure expected")
		}
	} else if netFlow > 0 {
		actions = append(actions, "sweep excess float to reduce idle liquidity")
	}
	if confidence < 0.4 {
		actions = append(actions, "low data coverage, extend flow history before acting")
	}
	return actions
}
