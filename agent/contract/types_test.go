package contract

import (
	"encoding/json"
	"testing"
)

func TestEnvelopeMarshalFlattensData(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Empty("nothing found", map[string]any{"hotels": []string{}}))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["status"] != "success" || got["message"] != "nothing found" {
		t.Fatalf("envelope = %s", raw)
	}
	if _, ok := got["hotels"]; !ok {
		t.Fatalf("hotels not flattened: %s", raw)
	}
	if _, ok := got["error_message"]; ok {
		t.Fatalf("unexpected error_message: %s", raw)
	}
}

func TestEnvelopeText(t *testing.T) {
	t.Parallel()

	if got := Failure("boom").Text(); got != "boom" {
		t.Fatalf("Failure().Text() = %q", got)
	}
	if Failure("boom").OK() {
		t.Fatal("Failure().OK() = true")
	}
	if got := Success(nil).Text(); got != "" {
		t.Fatalf("Success().Text() = %q", got)
	}
}

func TestParseIntent(t *testing.T) {
	t.Parallel()

	tests := map[string]Intent{
		"planning":       IntentPlanning,
		" Confirmation ": IntentConfirmation,
		"INFO":           IntentInfo,
		"greeting":       IntentGreeting,
	}
	for in, want := range tests {
		got, ok := ParseIntent(in)
		if !ok || got != want {
			t.Fatalf("ParseIntent(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := ParseIntent("weather"); ok {
		t.Fatal("ParseIntent(weather) ok = true")
	}
}

func TestIntentAgent(t *testing.T) {
	t.Parallel()

	if IntentConfirmation.Agent() != AgentTypeConfirmation ||
		IntentInfo.Agent() != AgentTypeInfo ||
		IntentPlanning.Agent() != AgentTypePlanning ||
		IntentGreeting.Agent() != AgentTypeOrchestrator {
		t.Fatal("Intent.Agent() mapping mismatch")
	}
	if Intent("").Agent() != AgentTypePlanning {
		t.Fatal("zero intent must default to planning")
	}
}

func TestTripParametersIsZero(t *testing.T) {
	t.Parallel()

	if !(TripParameters{Destination: "  "}).IsZero() {
		t.Fatal("blank destination counted as set")
	}
	if (TripParameters{Interests: []string{"beach"}}).IsZero() {
		t.Fatal("interests not counted")
	}
	if !(Identity{Name: "A", Contact: "b"}).Complete() || (Identity{Name: "A"}).Complete() {
		t.Fatal("Identity.Complete() mismatch")
	}
}
