package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	slotsx "github.com/tanpawarit/Chative-Travel-Assistant/agent/slots"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
)

const (
	topAttractionsLimit    = 4
	defaultDestinationInfo = "A popular travel destination."
)

// GetDestinationInfo describes destination, or the session's destination when it is blank.
func (t *Toolbox) GetDestinationInfo(ctx context.Context, st *statex.SessionState, destination string) contractx.Envelope {
	return t.run(ctx, ToolGetDestinationInfo, func(ctx context.Context) contractx.Envelope {
		repo, env, ok := t.repository(ctx, ToolGetDestinationInfo)
		if !ok {
			return env
		}

		target := strings.TrimSpace(destination)
		if target == "" && st != nil {
			target = st.Destination
		}
		if target == "" {
			return contractx.Failure("A destination has not been set. Please tell me which city you're interested in.")
		}
		location := slotsx.TitleCase(target)

		description, err := repo.DestinationDescription(ctx, location)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			description = defaultDestinationInfo
		case err != nil:
			return t.queryFailure(ToolGetDestinationInfo, "An error occurred while fetching destination info", err)
		}

		attractions, err := repo.TopAttractions(ctx, location, topAttractionsLimit)
		if err != nil {
			return t.queryFailure(ToolGetDestinationInfo, "An error occurred while fetching destination info", err)
		}

		return contractx.Success(map[string]any{
			"destination": location,
			"destination_info": map[string]any{
				"summary": description,
				"popular_attractions": lo.Map(attractions, func(a storex.Attraction, _ int) map[string]any {
					return map[string]any{"name": a.Name, "type": a.Type}
				}),
			},
		})
	})
}

func (t *Toolbox) GetEmergencyContacts(ctx context.Context) contractx.Envelope {
	return t.run(ctx, ToolGetEmergencyContacts, func(ctx context.Context) contractx.Envelope {
		repo, env, ok := t.repository(ctx, ToolGetEmergencyContacts)
		if !ok {
			return env
		}

		contacts, err := repo.EmergencyContacts(ctx)
		if err != nil {
			return t.queryFailure(ToolGetEmergencyContacts, "An error occurred while fetching emergency contacts", err)
		}
		if len(contacts) == 0 {
			return contractx.Empty("I could not find any emergency contacts in the database.",
				map[string]any{"contacts": []map[string]any{}})
		}
		return contractx.Success(map[string]any{
			"contacts": lo.Map(contacts, func(c storex.EmergencyContact, _ int) map[string]any {
				return map[string]any{"type": c.Type, "number": c.Number, "description": c.Description}
			}),
		})
	})
}

// GetWeather asks the web-search backed lookup for a forecast at location, or
// at the session's destination when location is blank.
func (t *Toolbox) GetWeather(ctx context.Context, st *statex.SessionState, location string) contractx.Envelope {
	return t.run(ctx, ToolGetWeather, func(ctx context.Context) contractx.Envelope {
		target := strings.TrimSpace(location)
		when := ""
		if st != nil {
			if target == "" {
				target = st.Destination
			}
			when = st.TravelDate
		}
		if target == "" {
			return contractx.Failure("Which city would you like the weather for?")
		}
		if t.weather == nil {
			return contractx.Failure("Weather lookup is not available right now.")
		}

		target = slotsx.TitleCase(target)
		report, err := t.weather.Forecast(ctx, target, when)
		if err != nil {
			return contractx.Failure(fmt.Sprintf("An error occurred while fetching the weather for %s: %v", target, err))
		}
		report = strings.TrimSpace(report)
		if report == "" {
			return contractx.Empty(fmt.Sprintf("I couldn't find a weather report for %s.", target), map[string]any{"location": target})
		}
		return contractx.Success(map[string]any{"location": target, "weather": report})
	})
}
