package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	slotsx "github.com/tanpawarit/Chative-Travel-Assistant/agent/slots"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
)

const (
	hotelSearchLimit      = 3
	suggestionSearchLimit = 5
)

// TransportModes are the modes find_flights_trains_or_buses accepts.
var TransportModes = []string{"Flight", "Train", "Bus", "Car"}

// SearchHotels returns the top rated hotels at the destination in the session's budget category.
func (t *Toolbox) SearchHotels(ctx context.Context, st *statex.SessionState) contractx.Envelope {
	return t.run(ctx, ToolSearchHotels, func(ctx context.Context) contractx.Envelope {
		repo, env, ok := t.repository(ctx, ToolSearchHotels)
		if !ok {
			return env
		}
		if st == nil || st.Destination == "" || st.BudgetLevel == "" {
			return contractx.Failure("To search for hotels, I need to know both your destination and your budget level (e.g., Budget, Mid-Range, or Luxury).")
		}

		hotels, err := repo.SearchHotels(ctx, st.Destination, string(st.BudgetLevel), hotelSearchLimit)
		if err != nil {
			return t.queryFailure(ToolSearchHotels, "A critical technical error occurred while searching for hotels", err)
		}
		if len(hotels) == 0 {
			return contractx.Empty(
				fmt.Sprintf("My search was successful, but I couldn't find any %s hotels for %s in my database. You might want to try a different budget category.", st.BudgetLevel, st.Destination),
				map[string]any{"hotels": []map[string]any{}},
			)
		}

		st.OfferHotels(lo.Map(hotels, func(h storex.Hotel, _ int) string { return h.ID }))
		return contractx.Success(map[string]any{
			"hotels": lo.Map(hotels, func(h storex.Hotel, _ int) map[string]any {
				return map[string]any{
					"id":              h.ID,
					"name":            h.Name,
					"location":        h.Location,
					"category":        h.Category,
					"price_per_night": rupees(float64(h.PricePerNight)),
					"rating":          h.Rating,
				}
			}),
		})
	})
}

// FindTransport lists transport from the session's origin to its destination,
// optionally restricted to one mode.
func (t *Toolbox) FindTransport(ctx context.Context, st *statex.SessionState, mode string) contractx.Envelope {
	return t.run(ctx, ToolFindTransport, func(ctx context.Context) contractx.Envelope {
		repo, env, ok := t.repository(ctx, ToolFindTransport)
		if !ok {
			return env
		}
		if st == nil || st.Origin == "" || st.Destination == "" {
			return contractx.Failure("To find transport options, I need to know both where you're starting from and where you're going.")
		}

		mode = NormalizeMode(mode)
		options, err := repo.SearchTransport(ctx, st.Origin, st.Destination, mode)
		if err != nil {
			return t.queryFailure(ToolFindTransport, "A critical technical error occurred while searching for transport", err)
		}
		if len(options) == 0 {
			forMode := ""
			if mode != "" {
				forMode = fmt.Sprintf(" for mode '%s'", mode)
			}
			return contractx.Empty(
				fmt.Sprintf("My search was successful, but I couldn't find any direct transport options%s from %s to %s in my database. Would you like me to check for other modes of transport?", forMode, st.Origin, st.Destination),
				map[string]any{"transport_options": []map[string]any{}},
			)
		}

		st.OfferTransport(lo.Map(options, func(o storex.TransportOption, _ int) string { return o.ID }))
		return contractx.Success(map[string]any{
			"transport_options": lo.Map(options, func(o storex.TransportOption, _ int) map[string]any {
				return map[string]any{
					"id":          o.ID,
					"origin":      o.Origin,
					"destination": o.Destination,
					"mode":        o.Mode,
					"provider":    o.Provider,
					"price":       rupees(float64(o.Price)),
					"duration":    o.Duration,
				}
			}),
		})
	})
}

// GetLocationSuggestions returns attractions at the destination, filtered to the
// session's interests when it has any.
func (t *Toolbox) GetLocationSuggestions(ctx context.Context, st *statex.SessionState) contractx.Envelope {
	return t.run(ctx, ToolGetLocationSuggestions, func(ctx context.Context) contractx.Envelope {
		repo, env, ok := t.repository(ctx, ToolGetLocationSuggestions)
		if !ok {
			return env
		}
		if st == nil || st.Destination == "" {
			return contractx.Failure("I need a destination before I can suggest attractions.")
		}

		types := lo.Map(st.Interests, func(s string, _ int) string { return slotsx.TitleCase(s) })
		attractions, err := repo.SearchAttractions(ctx, st.Destination, types, suggestionSearchLimit)
		if err != nil {
			return t.queryFailure(ToolGetLocationSuggestions, "A database error occurred while getting suggestions", err)
		}
		if len(attractions) == 0 {
			return contractx.Empty(
				fmt.Sprintf("My search was successful, but I couldn't find any attractions matching your interests in %s. I can give you general suggestions if you'd like.", st.Destination),
				map[string]any{"suggestions": []map[string]any{}},
			)
		}
		return contractx.Success(map[string]any{
			"suggestions": lo.Map(attractions, func(a storex.Attraction, _ int) map[string]any {
				return map[string]any{"name": a.Name, "type": a.Type, "summary": a.Summary}
			}),
		})
	})
}

// NormalizeMode capitalises a known transport mode and drops anything else.
func NormalizeMode(mode string) string {
	m := strings.TrimSpace(mode)
	for _, known := range TransportModes {
		if strings.EqualFold(m, known) {
			return known
		}
	}
	switch strings.ToLower(m) {
	case "flights", "plane", "air":
		return "Flight"
	case "trains", "rail":
		return "Train"
	case "buses", "coach":
		return "Bus"
	case "cab", "taxi", "drive":
		return "Car"
	}
	return ""
}
