package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
)

// Migrate creates any missing tables. Existing tables are left untouched.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, model := range Models() {
		q := db.NewCreateTable().Model(model).IfNotExists()
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model, err)
		}
	}
	log.Info().Int("tables", len(Models())).Msg("store schema is up to date")
	return nil
}

// Seed inserts a small demo catalogue. Rows that already exist are skipped.
func Seed(ctx context.Context, db bun.IDB) error {
	hotels := []Hotel{
		{ID: "UDA01", Name: "Taj Lake Palace", Location: "Udaipur", Category: "Luxury", PricePerNight: 45000, Rating: 4.9},
		{ID: "UDA02", Name: "Jagat Niwas Palace", Location: "Udaipur", Category: "Mid-Range", PricePerNight: 6500, Rating: 4.5},
		{ID: "UDA03", Name: "Zostel Udaipur", Location: "Udaipur", Category: "Budget", PricePerNight: 1800, Rating: 4.4},
		{ID: "GOA01", Name: "Taj Exotica", Location: "Goa", Category: "Luxury", PricePerNight: 28000, Rating: 4.8},
		{ID: "GOA02", Name: "Casa Anjuna", Location: "Goa", Category: "Mid-Range", PricePerNight: 7200, Rating: 4.3},
		{ID: "GOA03", Name: "The Hosteller Goa", Location: "Goa", Category: "Budget", PricePerNight: 1200, Rating: 4.2},
	}
	transport := []TransportOption{
		{ID: "TRN18", Origin: "Jaipur", Destination: "Udaipur", Mode: "Train", Provider: "Udaipur Express", Price: 500, Duration: "6 hours"},
		{ID: "FLT07", Origin: "Mumbai", Destination: "Goa", Mode: "Flight", Provider: "IndiGo", Price: 4200, Duration: "1 hour 10 minutes"},
		{ID: "BUS11", Origin: "Mumbai", Destination: "Goa", Mode: "Bus", Provider: "Paulo Travels", Price: 1100, Duration: "12 hours"},
	}
	attractions := []Attraction{
		{Name: "City Palace", Type: "Culture", Summary: "Palace complex overlooking Lake Pichola.", Location: "Udaipur"},
		{Name: "Lake Pichola Boat Ride", Type: "Nature", Summary: "Sunset cruise past the island palaces.", Location: "Udaipur"},
		{Name: "Baga Beach", Type: "Beach", Summary: "Lively beach with water sports and shacks.", Location: "Goa"},
		{Name: "Dudhsagar Falls Trek", Type: "Adventure", Summary: "Jungle trek to a four-tiered waterfall.", Location: "Goa"},
		{Name: "Basilica of Bom Jesus", Type: "History", Summary: "UNESCO-listed baroque church in Old Goa.", Location: "Goa"},
	}
	details := []DestinationDetail{
		{Location: "Udaipur", Description: "The City of Lakes, known for its palaces and Rajput heritage."},
		{Location: "Goa", Description: "India's beach capital with Portuguese architecture and a lively food scene."},
	}
	contacts := []EmergencyContact{
		{Type: "Police", Number: "100", Description: "National police emergency line."},
		{Type: "Ambulance", Number: "108", Description: "Medical emergencies and ambulance dispatch."},
		{Type: "Tourist Helpline", Number: "1363", Description: "24x7 multilingual tourist support."},
	}

	rows := []any{&hotels, &transport, &details}
	for _, models := range rows {
		if _, err := db.NewInsert().Model(models).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return fmt.Errorf("seed %T: %w", models, err)
		}
	}

	// Serial tables have no natural key, so only seed them when empty.
	for _, models := range []any{&attractions, &contacts} {
		count, err := db.NewSelect().Model(models).Count(ctx)
		if err != nil {
			return fmt.Errorf("count %T: %w", models, err)
		}
		if count > 0 {
			continue
		}
		if _, err := db.NewInsert().Model(models).Exec(ctx); err != nil {
			return fmt.Errorf("seed %T: %w", models, err)
		}
	}
	log.Info().Msg("store demo data seeded")
	return nil
}
