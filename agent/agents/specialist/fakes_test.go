package specialist

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

// fakeHandlers records which handler ran and with what arguments. Results can
// be overridden per tool.
type fakeHandlers struct {
	calls   []string
	args    map[string][]string
	results map[string]contractx.Envelope
}

var _ Handlers = (*fakeHandlers)(nil)

func newFakeHandlers() *fakeHandlers {
	return &fakeHandlers{
		args:    map[string][]string{},
		results: map[string]contractx.Envelope{},
	}
}

func (f *fakeHandlers) record(tool string, args ...string) (contractx.Envelope, bool) {
	f.calls = append(f.calls, tool)
	f.args[tool] = args
	env, ok := f.results[tool]
	return env, ok
}

func (f *fakeHandlers) StoreTripParameters(_ context.Context, st *statex.SessionState, p contractx.TripParameters) contractx.Envelope {
	if env, ok := f.record(toolx.ToolStoreTripParameters); ok {
		return env
	}
	changed := toolx.MergeTripParameters(st, p)
	keys := make([]string, 0, len(changed))
	for _, k := range changed {
		keys = append(keys, string(k))
	}
	return contractx.Envelope{Status: contractx.StatusSuccess, Message: "State updated successfully.", Data: map[string]any{"updated_keys": keys}}
}

func (f *fakeHandlers) ClearTripState(_ context.Context, st *statex.SessionState) contractx.Envelope {
	if env, ok := f.record(toolx.ToolClearTripState); ok {
		return env
	}
	st.ClearTripState()
	return contractx.Envelope{Status: contractx.StatusSuccess, Message: "Previous trip state cleared."}
}

func (f *fakeHandlers) GetBudgetEstimate(_ context.Context, _ *statex.SessionState) contractx.Envelope {
	if env, ok := f.record(toolx.ToolGetBudgetEstimate); ok {
		return env
	}
	return contractx.Success(map[string]any{"budget_estimate": map[string]any{"days": 5, "level": "Budget", "total_cost": "₹28,000"}})
}

func (f *fakeHandlers) GeneratePackingList(_ context.Context, _ *statex.SessionState) contractx.Envelope {
	if env, ok := f.record(toolx.ToolGeneratePackingList); ok {
		return env
	}
	return contractx.Success(map[string]any{"packing_list": []string{"Passport", "5 sets of clothes"}})
}

func (f *fakeHandlers) GetCurrentState(_ context.Context, st *statex.SessionState) contractx.Envelope {
	if env, ok := f.record(toolx.ToolGetCurrentState); ok {
		return env
	}
	return contractx.Success(map[string]any{"current_state": st.Snapshot()})
}

func (f *fakeHandlers) SearchHotels(_ context.Context, st *statex.SessionState) contractx.Envelope {
	if env, ok := f.record(toolx.ToolSearchHotels, st.Destination, string(st.BudgetLevel)); ok {
		return env
	}
	st.OfferHotels([]string{"GOA03"})
	return contractx.Success(map[string]any{"hotels": []map[string]any{
		{"id": "GOA03", "name": "The Hosteller Goa", "location": "Goa", "category": "Budget", "price_per_night": "₹1,200", "rating": 4.2},
	}})
}

func (f *fakeHandlers) FindTransport(_ context.Context, st *statex.SessionState, mode string) contractx.Envelope {
	if env, ok := f.record(toolx.ToolFindTransport, mode); ok {
		return env
	}
	st.OfferTransport([]string{"FLT07"})
	return contractx.Success(map[string]any{"transport_options": []map[string]any{
		{"id": "FLT07", "provider": "IndiGo", "mode": "Flight", "duration": "1 hour 10 minutes", "price": "₹4,200"},
	}})
}

func (f *fakeHandlers) GetLocationSuggestions(_ context.Context, _ *statex.SessionState) contractx.Envelope {
	if env, ok := f.record(toolx.ToolGetLocationSuggestions); ok {
		return env
	}
	return contractx.Success(map[string]any{"suggestions": []map[string]any{
		{"name": "Baga Beach", "type": "Beach", "summary": "Lively beach with shacks."},
	}})
}

func (f *fakeHandlers) GetDestinationInfo(_ context.Context, _ *statex.SessionState, destination string) contractx.Envelope {
	if env, ok := f.record(toolx.ToolGetDestinationInfo, destination); ok {
		return env
	}
	return contractx.Success(map[string]any{
		"destination":      destination,
		"destination_info": map[string]any{"summary": destination + " is lovely."},
	})
}

func (f *fakeHandlers) GetEmergencyContacts(_ context.Context) contractx.Envelope {
	if env, ok := f.record(toolx.ToolGetEmergencyContacts); ok {
		return env
	}
	return contractx.Success(map[string]any{"contacts": []map[string]any{
		{"type": "Police", "number": "100"},
	}})
}

func (f *fakeHandlers) GetWeather(_ context.Context, _ *statex.SessionState, location string) contractx.Envelope {
	if env, ok := f.record(toolx.ToolGetWeather, location); ok {
		return env
	}
	return contractx.Success(map[string]any{"location": location, "weather": "Sunny, 31°C"})
}

func (f *fakeHandlers) AuthenticateUser(_ context.Context, st *statex.SessionState, name, contact string) contractx.Envelope {
	if env, ok := f.record(toolx.ToolAuthenticateUser, name, contact); ok {
		return env
	}
	first := strings.Fields(name)[0]
	st.Authenticate(first, contact)
	return contractx.Envelope{Status: contractx.StatusSuccess, Message: "Welcome " + first + "! You're now authenticated."}
}

func (f *fakeHandlers) ConfirmBooking(_ context.Context, _ *statex.SessionState, hotelID, transportID string) contractx.Envelope {
	if env, ok := f.record(toolx.ToolConfirmBooking, hotelID, transportID); ok {
		return env
	}
	return contractx.Success(map[string]any{
		"confirmation_id":  "TRV-TEST0001",
		"booked_hotel":     "The Hosteller Goa",
		"booked_transport": "Not included",
	})
}

type fakeExtractor struct {
	out contractx.Extraction
	err error
}

func (f fakeExtractor) Extract(context.Context, contractx.ExtractRequest) (contractx.Extraction, error) {
	return f.out, f.err
}

type fakeResponder struct {
	text string
	err  error
	reqs []contractx.RespondRequest
}

func (f *fakeResponder) Respond(_ context.Context, req contractx.RespondRequest) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.text, f.err
}

type fakeSpecialist struct {
	resp  contractx.SpecialistResponse
	err   error
	calls int
}

func (f *fakeSpecialist) Run(context.Context, contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	f.calls++
	return f.resp, f.err
}

var errFake = errors.New("fake failure")

func newTestRegistry(t *testing.T, h Handlers, opts ...Option) contractx.Registry {
	t.Helper()
	reg, err := NewRegistry(context.Background(), h, opts...)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func request(st *statex.SessionState, text string) contractx.SpecialistRequest {
	return contractx.SpecialistRequest{UserMessage: text, Session: st, Now: testNow}
}

func authedSession() *statex.SessionState {
	st := statex.NewSessionState("s-1", testNow)
	st.Authenticate("Asha", "asha@example.com")
	return st
}

func assertCalls(t *testing.T, h *fakeHandlers, want ...string) {
	t.Helper()
	if strings.Join(h.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("handler calls = %v, want %v", h.calls, want)
	}
}
