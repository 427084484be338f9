// Package events consumes reference-data update events and dispatches them
// into the cache invalidation hooks the core registers at startup. Delivery
// is fire-and-forget and eventually consistent: a route computed just before
// an invalidation may use a stale rate for the remainder of its quote window.
package events

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	TopicCorridorUpdates = "corridor-updates"
	TopicProviderUpdates = "provider-updates"
	TopicRateUpdates     = "rate-updates"
)

type corridorChanged struct {
	CorridorID string `json:"corridor_id"`
}

type providerChanged struct {
	ProviderID string `json:"provider_id"`
}

type rateChanged struct {
	CurrencyFrom string `json:"currency_from"`
	CurrencyTo   string `json:"currency_to"`
}

type Subscriber struct {
	brokers []string
	groupID string

	corridorHandlers []func(corridorID string)
	providerHandlers []func(providerID string)
	rateHandlers     []func(currencyFrom, currencyTo string)
}

func NewSubscriber(brokers []string, groupID string) *Subscriber {
	return &Subscriber{brokers: brokers, groupID: groupID}
}

func (s *Subscriber) OnCorridorChanged(fn func(corridorID string)) {
	s.corridorHandlers = append(s.corridorHandlers, fn)
}

func (s *Subscriber) OnProviderChanged(fn func(providerID string)) {
	s.providerHandlers = append(s.providerHandlers, fn)
}

func (s *Subscriber) OnRateChanged(fn func(currencyFrom, currencyTo string)) {
	s.rateHandlers = append(s.rateHandlers, fn)
}

// Run consumes the three update topics until the context is canceled.
// Register all handlers before calling Run.
func (s *Subscriber) Run(ctx context.Context) {
	go s.consume(ctx, TopicCorridorUpdates, s.handleCorridor)
	go s.consume(ctx, TopicProviderUpdates, s.handleProvider)
	go s.consume(ctx, TopicRateUpdates, s.handleRate)
	<-ctx.Done()
}

func (s *Subscriber) consume(ctx context.Context, topic string, handle func([]byte)) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: s.brokers,
		Topic:   topic,
		GroupID: s.groupID,
	})
	defer reader.Close()

	for {
		m, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Error().Err(err).Str("topic", topic).Msg("event read failed")
			continue
		}
		handle(m.Value)
	}
}

func (s *Subscriber) handleCorridor(value []byte) {
	var ev corridorChanged
	if err := json.Unmarshal(value, &ev); err != nil || ev.CorridorID == "" {
		log.Warn().Err(err).Str("topic", TopicCorridorUpdates).Msg("malformed update event")
		return
	}
	for _, fn := range s.corridorHandlers {
		fn(ev.CorridorID)
	}
}

func (s *Subscriber) handleProvider(value []byte) {
	var ev providerChanged
	if err := json.Unmarshal(value, &ev); err != nil || ev.ProviderID == "" {
		log.Warn().Err(err).Str("topic", TopicProviderUpdates).Msg("malformed update event")
		return
	}
	for _, fn := range s.providerHandlers {
		fn(ev.ProviderID)
	}
}

func (s *Subscriber) handleRate(value []byte) {
	var ev rateChanged
	if err := json.Unmarshal(value, &ev); err != nil || ev.CurrencyFrom == "" || ev.CurrencyTo == "" {
		log.Warn().Err(err).Str("topic", TopicRateUpdates).Msg("malformed update event")
		return
	}
	for _, fn := range s.rateHandlers {
		fn(ev.CurrencyFrom, ev.CurrencyTo)
	}
}
