package intent

import (
	"context"
	"slices"
	"testing"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want contractx.Intent
	}{
		{"hi", contractx.IntentGreeting},
		{"Hello!", contractx.IntentGreeting},
		{"thank you so much", contractx.IntentGreeting},
		{"hi, find me hotels in Goa", contractx.IntentPlanning},
		{"Plan a trip to Goa", contractx.IntentPlanning},
		{"find flights from Mumbai", contractx.IntentPlanning},
		{"Tell me about Udaipur", contractx.IntentInfo},
		{"what's the weather like in Goa?", contractx.IntentInfo},
		{"emergency numbers please", contractx.IntentInfo},
		{"debug state", contractx.IntentInfo},
		{"Book it", contractx.IntentConfirmation},
		{"please go ahead and finalize", contractx.IntentConfirmation},
		{"confirm the hotel, and what's the weather?", contractx.IntentConfirmation},
		{"tell me about the weather and book it", contractx.IntentConfirmation},
		{"", contractx.IntentPlanning},
	}

	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Fatalf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestRuleClassifier(t *testing.T) {
	t.Parallel()

	got, err := NewRuleClassifier().Classify(context.Background(), contractx.ClassifyRequest{UserMessage: "confirm"})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if got != contractx.IntentConfirmation {
		t.Fatalf("Classify() = %s, want confirmation", got)
	}
}

func TestDetectGoal(t *testing.T) {
	t.Parallel()

	tests := map[string]Goal{
		"find me a hotel":                       GoalHotels,
		"how do I get there?":                   GoalTransport,
		"any trains?":                           GoalTransport,
		"what should I do in Goa":               GoalSuggestions,
		"how much will it cost":                 GoalBudget,
		"what should I pack?":                   GoalPacking,
		"let's start over":                      GoalStartOver,
		"sounds good":                           GoalNone,
		"suggest some hotels for the trip":      GoalHotels,
		"what should I pack for the beach trip": GoalPacking,
	}
	for text, want := range tests {
		if got := DetectGoal(text); got != want {
			t.Fatalf("DetectGoal(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestDetectMode(t *testing.T) {
	t.Parallel()

	if got := DetectMode("any TRAINS tomorrow?"); got != "TRAINS" {
		t.Fatalf("DetectMode() = %q", got)
	}
	if got := DetectMode("how do I get there"); got != "" {
		t.Fatalf("DetectMode() = %q, want empty", got)
	}
}

func TestPrerequisites(t *testing.T) {
	t.Parallel()

	if got := GoalHotels.Prerequisites(); !slices.Equal(got, []statex.Key{statex.KeyDestination, statex.KeyBudgetLevel}) {
		t.Fatalf("hotels prerequisites = %v", got)
	}
	if got := GoalPacking.Prerequisites(); got != nil {
		t.Fatalf("packing prerequisites = %v, want none", got)
	}
}
