package tool

import (
	"context"
	"slices"
	"strings"
	"testing"

	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

func goaSession() *statex.SessionState {
	st := statex.NewSessionState("s-1", testNow())
	st.Destination = "Goa"
	st.Origin = "Mumbai"
	st.BudgetLevel = statex.BudgetLow
	return st
}

func TestSearchHotelsFormatsAndRecordsOffers(t *testing.T) {
	t.Parallel()

	st := goaSession()
	env := newTestToolbox(seededRepo()).SearchHotels(context.Background(), st)
	if !env.OK() {
		t.Fatalf("SearchHotels() = %+v", env)
	}
	hotels := env.Data["hotels"].([]map[string]any)
	if len(hotels) != 1 {
		t.Fatalf("hotels = %v, want 1", hotels)
	}
	if hotels[0]["id"] != "GOA03" || hotels[0]["price_per_night"] != "₹1,200" {
		t.Fatalf("hotel = %v", hotels[0])
	}
	if !slices.Equal(st.OfferedHotelIDs, []string{"GOA03"}) {
		t.Fatalf("offered hotels = %v", st.OfferedHotelIDs)
	}
}

func TestSearchHotelsPrerequisites(t *testing.T) {
	t.Parallel()

	st := goaSession()
	st.BudgetLevel = ""
	env := newTestToolbox(seededRepo()).SearchHotels(context.Background(), st)
	if env.OK() || !strings.Contains(env.ErrorMessage, "destination and your budget level") {
		t.Fatalf("SearchHotels() = %+v", env)
	}
}

func TestSearchHotelsEmpty(t *testing.T) {
	t.Parallel()

	st := goaSession()
	st.BudgetLevel = statex.BudgetMid
	env := newTestToolbox(seededRepo()).SearchHotels(context.Background(), st)
	if !env.OK() {
		t.Fatalf("SearchHotels() = %+v, want success with no rows", env)
	}
	if !strings.Contains(env.Message, "couldn't find any Mid-Range hotels for Goa") {
		t.Fatalf("message = %q", env.Message)
	}
	if len(st.OfferedHotelIDs) != 0 {
		t.Fatalf("offered hotels = %v, want none", st.OfferedHotelIDs)
	}
}

func TestFindTransport(t *testing.T) {
	t.Parallel()

	tb := newTestToolbox(seededRepo())

	st := goaSession()
	env := tb.FindTransport(context.Background(), st, "")
	if !env.OK() {
		t.Fatalf("FindTransport() = %+v", env)
	}
	if got := env.Data["transport_options"].([]map[string]any); len(got) != 2 {
		t.Fatalf("transport_options = %v", got)
	}
	if !slices.Equal(st.OfferedTransportIDs, []string{"FLT07", "BUS11"}) {
		t.Fatalf("offered transport = %v", st.OfferedTransportIDs)
	}

	env = tb.FindTransport(context.Background(), st, "plane")
	got := env.Data["transport_options"].([]map[string]any)
	if len(got) != 1 || got[0]["provider"] != "IndiGo" || got[0]["price"] != "₹4,200" {
		t.Fatalf("flight options = %v", got)
	}

	env = tb.FindTransport(context.Background(), st, "train")
	if !env.OK() || !strings.Contains(env.Message, "for mode 'Train' from Mumbai to Goa") {
		t.Fatalf("train search = %+v", env)
	}

	st.Origin = ""
	env = tb.FindTransport(context.Background(), st, "")
	if env.OK() {
		t.Fatalf("FindTransport() without origin = %+v, want error", env)
	}
}

func TestNormalizeMode(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"flight": "Flight",
		" BUS ":  "Bus",
		"rail":   "Train",
		"taxi":   "Car",
		"boat":   "",
		"":       "",
	}
	for in, want := range tests {
		if got := NormalizeMode(in); got != want {
			t.Fatalf("NormalizeMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetLocationSuggestions(t *testing.T) {
	t.Parallel()

	tb := newTestToolbox(seededRepo())

	st := goaSession()
	st.Interests = []string{"beach", "Adventure"}
	env := tb.GetLocationSuggestions(context.Background(), st)
	got := env.Data["suggestions"].([]map[string]any)
	if len(got) != 2 || got[0]["name"] != "Baga Beach" {
		t.Fatalf("suggestions = %v", got)
	}

	st.Interests = nil
	got = tb.GetLocationSuggestions(context.Background(), st).Data["suggestions"].([]map[string]any)
	if len(got) != 3 {
		t.Fatalf("unfiltered suggestions = %v", got)
	}

	st.Interests = []string{"Nightlife"}
	env = tb.GetLocationSuggestions(context.Background(), st)
	if !env.OK() || !strings.Contains(env.Message, "couldn't find any attractions") {
		t.Fatalf("no match = %+v", env)
	}

	st.Destination = ""
	if env := tb.GetLocationSuggestions(context.Background(), st); env.OK() {
		t.Fatalf("no destination = %+v, want error", env)
	}
}
