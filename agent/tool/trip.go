package tool

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	slotsx "github.com/tanpawarit/Chative-Travel-Assistant/agent/slots"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

const (
	baseCostPerDay     = 8000
	defaultPackingDays = 3
)

var budgetMultipliers = map[statex.BudgetLevel]float64{
	statex.BudgetLow:  0.7,
	statex.BudgetMid:  1.2,
	statex.BudgetHigh: 2.5,
}

// StoreTripParameters merges the supplied parameters into the session. Blank
// parameters leave existing values alone. The envelope lists the keys whose value
// changed, so repeating a call reports nothing new.
func (t *Toolbox) StoreTripParameters(ctx context.Context, st *statex.SessionState, p contractx.TripParameters) contractx.Envelope {
	return t.run(ctx, ToolStoreTripParameters, func(context.Context) contractx.Envelope {
		if st == nil {
			return contractx.Failure("A critical error occurred while saving trip details: no active session.")
		}
		changed := MergeTripParameters(st, p)
		return contractx.Envelope{
			Status:  contractx.StatusSuccess,
			Message: "State updated successfully.",
			Data: map[string]any{
				"updated_keys": lo.Map(changed, func(k statex.Key, _ int) string { return string(k) }),
			},
		}
	})
}

// MergeTripParameters applies p to st and returns the keys whose value changed.
func MergeTripParameters(st *statex.SessionState, p contractx.TripParameters) []statex.Key {
	var changed []statex.Key
	setString := func(key statex.Key, dst *string, raw string) {
		v := strings.TrimSpace(raw)
		if v == "" || v == *dst {
			return
		}
		*dst = v
		changed = append(changed, key)
	}

	setString(statex.KeyDestination, &st.Destination, slotsx.TitleCase(p.Destination))
	setString(statex.KeyOrigin, &st.Origin, slotsx.TitleCase(p.Origin))
	setString(statex.KeyTravelDate, &st.TravelDate, p.TravelDate)

	if days, ok := slotsx.ParseDuration(p.Duration); ok && days != st.DurationDays {
		st.DurationDays = days
		changed = append(changed, statex.KeyDurationDays)
	}

	if level, ok := slotsx.ClassifyBudget(p.Budget); ok && level != st.BudgetLevel {
		st.BudgetLevel = level
		changed = append(changed, statex.KeyBudgetLevel)
	}

	interests := lo.Uniq(lo.FilterMap(p.Interests, func(s string, _ int) (string, bool) {
		v := slotsx.TitleCase(s)
		return v, v != ""
	}))
	if len(interests) > 0 && !slices.Equal(interests, st.Interests) {
		st.Interests = interests
		changed = append(changed, statex.KeyInterests)
	}
	return changed
}

func (t *Toolbox) ClearTripState(ctx context.Context, st *statex.SessionState) contractx.Envelope {
	return t.run(ctx, ToolClearTripState, func(context.Context) contractx.Envelope {
		if st == nil {
			return contractx.Failure("Failed to clear state: no active session.")
		}
		st.ClearTripState()
		return contractx.Envelope{Status: contractx.StatusSuccess, Message: "Previous trip state cleared."}
	})
}

// GetBudgetEstimate prices the trip at a flat daily rate scaled by budget level
// and remembers the total in the session.
func (t *Toolbox) GetBudgetEstimate(ctx context.Context, st *statex.SessionState) contractx.Envelope {
	return t.run(ctx, ToolGetBudgetEstimate, func(context.Context) contractx.Envelope {
		if st == nil || st.DurationDays <= 0 || st.BudgetLevel == "" {
			return contractx.Failure("Missing duration or budget_level.")
		}
		multiplier, ok := budgetMultipliers[st.BudgetLevel]
		if !ok {
			multiplier = budgetMultipliers[statex.BudgetMid]
		}
		total := float64(baseCostPerDay*st.DurationDays) * multiplier
		st.CalculatedBudgetTotal = &total

		return contractx.Success(map[string]any{
			"budget_estimate": map[string]any{
				"total_cost": rupees(total),
				"level":      string(st.BudgetLevel),
				"days":       st.DurationDays,
			},
		})
	})
}

func (t *Toolbox) GeneratePackingList(ctx context.Context, st *statex.SessionState) contractx.Envelope {
	return t.run(ctx, ToolGeneratePackingList, func(context.Context) contractx.Envelope {
		days := defaultPackingDays
		var interests []string
		if st != nil {
			if st.DurationDays > 0 {
				days = st.DurationDays
			}
			interests = st.Interests
		}

		items := []string{"Phone & Charger", "ID", "Cards & Cash", "Toiletries", fmt.Sprintf("%d sets of clothes", days)}
		if hasInterest(interests, "adventure") {
			items = append(items, "Hiking Shoes", "First-Aid Kit")
		}
		if hasInterest(interests, "beach") {
			items = append(items, "Swimsuit", "Sunglasses")
		}
		return contractx.Success(map[string]any{"packing_list": items})
	})
}

// GetCurrentState is a debugging aid that exposes the session's set slots.
func (t *Toolbox) GetCurrentState(ctx context.Context, st *statex.SessionState) contractx.Envelope {
	return t.run(ctx, ToolGetCurrentState, func(context.Context) contractx.Envelope {
		return contractx.Success(map[string]any{"current_state": st.Snapshot()})
	})
}

func hasInterest(interests []string, want string) bool {
	return lo.ContainsBy(interests, func(s string) bool {
		return strings.EqualFold(strings.TrimSpace(s), want)
	})
}
