package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type corridorSeed struct {
	ID          string
	Origin      string
	Destination string
	From        string
	To          string
	Tier        string
	MinUSD      float64
	MaxUSD      float64
	DailyCapUSD float64
	AvgHours    float64
}

type providerSeed struct {
	ID            string
	Name          string
	Type          string
	BaseFee       float64
	PctFee        float64
	MinFee        float64
	MaxFee        float64
	FXMarginPct   float64
	AvgHours      float64
	SuccessPct    float64
	CompliancePct float64
	RealtimeRates bool
	Tracking      bool
	Corridors     []string
	Methods       []string
	RemainingUSD  float64 // 0 = no capacity integration
}

var corridorSeeds = []corridorSeed{
	{"US-HT-USD-HTG", "US", "HT", "USD", "HTG", "enhanced", 5, 2500, 500000, 24},
	{"US-MX-USD-MXN", "US", "MX", "USD", "MXN", "basic", 1, 10000, 2000000, 4},
	{"US-PH-USD-PHP", "US", "PH", "USD", "PHP", "basic", 1, 10000, 1500000, 12},
	{"US-DO-USD-DOP", "US", "DO", "USD", "DOP", "enhanced", 5, 5000, 750000, 24},
	{"US-NG-USD-NGN", "US", "NG", "USD", "NGN", "strict", 10, 50000, 1000000, 48},
	{"CA-IN-CAD-INR", "CA", "IN", "CAD", "INR", "basic", 1, 15000, 1200000, 8},
}

var providerSeeds = []providerSeed{
	{"unibank-ht", "UniBank Haiti", "BANK", 8, 0.5, 8, 60, 1.2, 48, 97, 95, false, false,
		[]string{"US-HT-USD-HTG"}, []string{"BANK_DEPOSIT", "CASH_PICKUP"}, 250000},
	{"caribe-express", "Caribe Express", "MONEY_TRANSFER_OPERATOR", 4, 1.0, 4, 0, 2.0, 6, 93, 88, true, true,
		[]string{"US-HT-USD-HTG", "US-DO-USD-DOP"}, []string{"CASH_PICKUP", "HOME_DELIVERY"}, 80000},
	{"moncash", "MonCash", "MOBILE_MONEY", 1.5, 1.5, 1.5, 25, 2.5, 0.5, 90, 82, true, false,
		[]string{"US-HT-USD-HTG"}, []string{"MOBILE_WALLET"}, 30000},
	{"stellar-remit", "Stellar Remit", "CRYPTO", 0.5, 0.3, 0.5, 15, 0.8, 0.25, 88, 75, true, true,
		[]string{"US-HT-USD-HTG", "US-PH-USD-PHP", "US-NG-USD-NGN"}, []string{"MOBILE_WALLET", "BANK_DEPOSIT"}, 0},
	{"wiselike", "WiseLike Transfers", "FINTECH", 2, 0.6, 2, 40, 0.5, 2, 96, 92, true, true,
		[]string{"US-MX-USD-MXN", "US-PH-USD-PHP", "CA-IN-CAD-INR"}, []string{"BANK_DEPOSIT", "MOBILE_WALLET"}, 0},
	{"aztlan-pagos", "Aztlan Pagos", "MONEY_TRANSFER_OPERATOR", 3, 0.8, 3, 0, 1.5, 3, 94, 90, true, false,
		[]string{"US-MX-USD-MXN"}, []string{"CASH_PICKUP", "BANK_DEPOSIT"}, 120000},
	{"manila-direct", "Manila Direct", "BANK", 6, 0.4, 6, 50, 1.0, 24, 95, 93, false, true,
		[]string{"US-PH-USD-PHP"}, []string{"BANK_DEPOSIT"}, 0},
	{"naija-pay", "NaijaPay", "MOBILE_MONEY", 2, 1.2, 2, 30, 2.2, 1, 86, 81, true, false,
		[]string{"US-NG-USD-NGN"}, []string{"MOBILE_WALLET", "CASH_PICKUP"}, 45000},
	{"rupee-bridge", "Rupee Bridge", "FINTECH", 1.5, 0.5, 1.5, 35, 0.6, 4, 95, 91, true, true,
		[]string{"CA-IN-CAD-INR"}, []string{"BANK_DEPOSIT", "MOBILE_WALLET"}, 0},
}

var midMarketSeeds = []struct {
	From string
	To   string
	Rate float64
}{
	{"USD", "HTG", 131.50},
	{"USD", "MXN", 18.65},
	{"USD", "PHP", 57.20},
	{"USD", "DOP", 60.10},
	{"USD", "NGN", 1545.00},
	{"CAD", "INR", 61.85},
}

var agentFeeSeeds = []struct {
	CorridorID string
	Location   string
	FeeUSD     float64
}{
	{"US-HT-USD-HTG", "Port-au-Prince", 3},
	{"US-HT-USD-HTG", "Cap-Haitien", 6},
	{"US-MX-USD-MXN", "Mexico City", 2},
	{"US-MX-USD-MXN", "Oaxaca", 4},
	{"US-PH-USD-PHP", "Manila", 2.5},
	{"US-NG-USD-NGN", "Lagos", 4},
	{"CA-IN-CAD-INR", "Mumbai", 2},
}

func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM corridors").Scan(&count); err != nil {
		return fmt.Errorf("check existing data: %w", err)
	}
	if count > 0 {
		log.Info().Msg("seed data already exists, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range corridorSeeds {
		_, err := tx.Exec(ctx, `
			INSERT INTO corridors (id, origin_country, destination_country, currency_from, currency_to,
				active, compliance_tier, min_amount_usd, max_amount_usd, daily_cap_usd, avg_delivery_hours)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, $8, $9, $10)`,
			c.ID, c.Origin, c.Destination, c.From, c.To, c.Tier, c.MinUSD, c.MaxUSD, c.DailyCapUSD, c.AvgHours)
		if err != nil {
			return fmt.Errorf("seed corridor %s: %w", c.ID, err)
		}
	}

	for _, p := range providerSeeds {
		_, err := tx.Exec(ctx, `
			INSERT INTO providers (id, name, type, base_fee, percentage_fee, min_fee, max_fee,
				fee_currency, fx_margin_pct, avg_delivery_hours, success_rate_pct, compliance_rating_pct,
				realtime_rates, realtime_tracking)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 'USD', $8, $9, $10, $11, $12, $13)`,
			p.ID, p.Name, p.Type, p.BaseFee, p.PctFee, p.MinFee, p.MaxFee,
			p.FXMarginPct, p.AvgHours, p.SuccessPct, p.CompliancePct, p.RealtimeRates, p.Tracking)
		if err != nil {
			return fmt.Errorf("seed provider %s: %w", p.ID, err)
		}
		for _, corridorID := range p.Corridors {
			if _, err := tx.Exec(ctx,
				`INSERT INTO provider_corridors (provider_id, corridor_id) VALUES ($1, $2)`,
				p.ID, corridorID); err != nil {
				return fmt.Errorf("seed provider corridor %s/%s: %w", p.ID, corridorID, err)
			}
		}
		for _, method := range p.Methods {
			if _, err := tx.Exec(ctx,
				`INSERT INTO provider_delivery_methods (provider_id, method) VALUES ($1, $2)`,
				p.ID, method); err != nil {
				return fmt.Errorf("seed delivery method %s/%s: %w", p.ID, method, err)
			}
		}
		if p.RemainingUSD > 0 {
			if _, err := tx.Exec(ctx,
				`INSERT INTO provider_capacity (provider_id, remaining_usd) VALUES ($1, $2)`,
				p.ID, p.RemainingUSD); err != nil {
				return fmt.Errorf("seed capacity %s: %w", p.ID, err)
			}
		}
	}

	for _, r := range midMarketSeeds {
		if _, err := tx.Exec(ctx,
			`INSERT INTO mid_market_rates (currency_from, currency_to, rate) VALUES ($1, $2, $3)`,
			r.From, r.To, r.Rate); err != nil {
			return fmt.Errorf("seed rate %s/%s: %w", r.From, r.To, err)
		}
	}

	for _, a := range agentFeeSeeds {
		if _, err := tx.Exec(ctx,
			`INSERT INTO agent_fees (corridor_id, location, fee_usd) VALUES ($1, $2, $3)`,
			a.CorridorID, a.Location, a.FeeUSD); err != nil {
			return fmt.Errorf("seed agent fee %s/%s: %w", a.CorridorID, a.Location, err)
		}
	}

	if err := seedHistory(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().
		Int("corridors", len(corridorSeeds)).
		Int("providers", len(providerSeeds)).
		Msg("seed data loaded")
	return nil
}

// seedHistory generates deterministic sender ratings and distributor flow
// history so personalization and forecasting have data out of the box.
func seedHistory(ctx context.Context, tx pgx.Tx) error {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	senders := []struct {
		ID        string
		Provider  string
		Corridor  string
		Rating    [2]int
		Hours     [2]float64
		Cost      [2]float64
		Transfers int
	}{
		{"sender-001", "caribe-express", "US-HT-USD-HTG", [2]int{4, 5}, [2]float64{2, 6}, [2]float64{10, 18}, 8},
		{"sender-001", "unibank-ht", "US-HT-USD-HTG", [2]int{2, 3}, [2]float64{36, 60}, [2]float64{12, 20}, 2},
		{"sender-002", "unibank-ht", "US-HT-USD-HTG", [2]int{4, 5}, [2]float64{40, 56}, [2]float64{9, 14}, 6},
		{"sender-003", "wiselike", "US-MX-USD-MXN", [2]int{4, 5}, [2]float64{1, 3}, [2]float64{5, 9}, 10},
	}

	for _, s := range senders {
		for i := 0; i < s.Transfers; i++ {
			rating := s.Rating[0] + rng.Intn(s.Rating[1]-s.Rating[0]+1)
			hours := s.Hours[0] + rng.Float64()*(s.Hours[1]-s.Hours[0])
			cost := s.Cost[0] + rng.Float64()*(s.Cost[1]-s.Cost[0])
			createdAt := now.AddDate(0, 0, -rng.Intn(180))
			_, err := tx.Exec(ctx, `
				INSERT INTO sender_route_history (sender_id, provider_id, corridor_id, rating, delivery_hours, total_cost_usd, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				s.ID, s.Provider, s.Corridor, rating, hours, cost, createdAt)
			if err != nil {
				return fmt.Errorf("seed sender history: %w", err)
			}
		}
	}

	distributors := []struct {
		ID       string
		Corridor string
		Inflow   [2]float64
		Outflow  [2]float64
	}{
		{"dist-pap", "US-HT-USD-HTG", [2]float64{8000, 16000}, [2]float64{10000, 20000}},
		{"dist-cdmx", "US-MX-USD-MXN", [2]float64{30000, 60000}, [2]float64{28000, 55000}},
	}

	for _, d := range distributors {
		for day := 0; day < 60; day++ {
			recordedAt := now.AddDate(0, 0, -day)
			inflow := d.Inflow[0] + rng.Float64()*(d.Inflow[1]-d.Inflow[0])
			outflow := d.Outflow[0] + rng.Float64()*(d.Outflow[1]-d.Outflow[0])
			if _, err := tx.Exec(ctx, `
				INSERT INTO flow_history (distributor_id, corridor_id, direction, amount_usd, recorded_at)
				VALUES ($1, $2, 'INFLOW', $3, $4), ($1, $2, 'OUTFLOW', $5, $4)`,
				d.ID, d.Corridor, inflow, recordedAt, outflow); err != nil {
				return fmt.Errorf("seed flow history: %w", err)
			}
		}
		for day := 0; day < 14; day++ {
			recordedAt := now.AddDate(0, 0, -day)
			sentiment := 40 + rng.Float64()*30
			if _, err := tx.Exec(ctx, `
				INSERT INTO market_signals (corridor_id, sentiment, recorded_at)
				VALUES ($1, $2, $3)`,
				d.Corridor, sentiment, recordedAt); err != nil {
				return fmt.Errorf("seed market signals: %w", err)
			}
		}
	}

	return nil
}
