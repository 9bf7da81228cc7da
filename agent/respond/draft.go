// Package respond turns handler envelopes into user-facing text without a model.
package respond

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

// Draft renders the result of tool. Listed options always carry "(ID: x)" so the
// confirmation step can find them again.
func Draft(tool string, env contractx.Envelope) string {
	if !env.OK() {
		return env.ErrorMessage
	}
	if env.Message != "" && !hasItems(env) {
		return env.Message
	}

	switch tool {
	case toolx.ToolSearchHotels:
		return bulletList("Here are the top rated options I found:", items(env, "hotels"), func(h map[string]any) string {
			return fmt.Sprintf("%s (ID: %s): %s hotel in %s, %s per night, rated %v",
				h["name"], h["id"], h["category"], h["location"], h["price_per_night"], h["rating"])
		}) + "\n\nWould you like to book one of these, or shall I look at transport options?"
	case toolx.ToolFindTransport:
		return bulletList("Here are the transport options:", items(env, "transport_options"), func(o map[string]any) string {
			return fmt.Sprintf("%s %s (ID: %s): %s, %s", o["provider"], o["mode"], o["id"], durationOrDash(o["duration"]), o["price"])
		}) + "\n\nDoes one of these work for you?"
	case toolx.ToolGetLocationSuggestions:
		return bulletList("Here are some places you might enjoy:", items(env, "suggestions"), func(a map[string]any) string {
			return fmt.Sprintf("%s (%s): %s", a["name"], a["type"], a["summary"])
		})
	case toolx.ToolGetBudgetEstimate:
		est, _ := env.Data["budget_estimate"].(map[string]any)
		return fmt.Sprintf("For a %v-day %v trip, I estimate a total of about %v.", est["days"], est["level"], est["total_cost"])
	case toolx.ToolGeneratePackingList:
		list, _ := env.Data["packing_list"].([]string)
		return bulletList("Here's what I'd pack:", list, func(s string) string { return s })
	case toolx.ToolGetDestinationInfo:
		return destinationInfo(env)
	case toolx.ToolGetEmergencyContacts:
		return bulletList("Emergency contacts:", items(env, "contacts"), func(c map[string]any) string {
			if d, _ := c["description"].(string); d != "" {
				return fmt.Sprintf("%s: %s (%s)", c["type"], c["number"], d)
			}
			return fmt.Sprintf("%s: %s", c["type"], c["number"])
		})
	case toolx.ToolGetWeather:
		return fmt.Sprintf("Weather in %v: %v", env.Data["location"], env.Data["weather"])
	case toolx.ToolGetCurrentState:
		return currentState(env)
	case toolx.ToolConfirmBooking:
		return fmt.Sprintf("Your booking is confirmed! 🎉\nConfirmation number: %v\nHotel: %v\nTransport: %v",
			env.Data["confirmation_id"], env.Data["booked_hotel"], env.Data["booked_transport"])
	}

	if env.Message != "" {
		return env.Message
	}
	return "Done."
}

// TemplateResponder returns the draft unchanged.
type TemplateResponder struct{}

var _ contractx.Responder = TemplateResponder{}

func (TemplateResponder) Respond(_ context.Context, req contractx.RespondRequest) (string, error) {
	if req.Draft != "" || req.Result == nil {
		return req.Draft, nil
	}
	return Draft(req.Tool, *req.Result), nil
}

func hasItems(env contractx.Envelope) bool {
	for _, v := range env.Data {
		if list, ok := v.([]map[string]any); ok && len(list) > 0 {
			return true
		}
	}
	return false
}

func items(env contractx.Envelope, key string) []map[string]any {
	switch v := env.Data[key].(type) {
	case []map[string]any:
		return v
	case []any:
		return lo.FilterMap(v, func(item any, _ int) (map[string]any, bool) {
			m, ok := item.(map[string]any)
			return m, ok
		})
	default:
		return nil
	}
}

func bulletList[T any](heading string, list []T, line func(T) string) string {
	var b strings.Builder
	b.WriteString(heading)
	for _, item := range list {
		b.WriteString("\n- ")
		b.WriteString(line(item))
	}
	return b.String()
}

func durationOrDash(v any) string {
	if s, _ := v.(string); s != "" {
		return s
	}
	return "duration not listed"
}

func destinationInfo(env contractx.Envelope) string {
	info, _ := env.Data["destination_info"].(map[string]any)
	text := fmt.Sprintf("%v: %v", env.Data["destination"], info["summary"])

	attractions, _ := info["popular_attractions"].([]map[string]any)
	if len(attractions) > 0 {
		names := lo.Map(attractions, func(a map[string]any, _ int) string { return fmt.Sprintf("%v (%v)", a["name"], a["type"]) })
		text += "\nPopular attractions: " + strings.Join(names, ", ")
	}
	return text
}

func currentState(env contractx.Envelope) string {
	snap, _ := env.Data["current_state"].(map[string]any)
	if len(snap) == 0 {
		return "I haven't saved any trip details yet."
	}
	keys := lo.Keys(snap)
	slices.Sort(keys)
	return bulletList("Here's what I have saved:", keys, func(k string) string {
		return fmt.Sprintf("%s: %v", k, snap[k])
	})
}
