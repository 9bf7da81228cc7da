package orchestratornode

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))

type stubStore struct {
	st  *statex.SessionState
	err error
}

func (s stubStore) Load(context.Context, string) (*statex.SessionState, error) { return s.st, s.err }
func (s stubStore) Save(context.Context, *statex.SessionState) error          { return s.err }
func (s stubStore) Delete(context.Context, string) error                      { return nil }

type stubRegistry struct {
	contractx.Registry
	info contractx.Specialist
}

func (r stubRegistry) Info() contractx.Specialist { return r.info }

type echoSpecialist struct{}

func (echoSpecialist) Run(_ context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	return contractx.SpecialistResponse{Message: "echo: " + req.UserMessage, Tool: "get_weather"}, nil
}

type stubClassifier contractx.Intent

func (c stubClassifier) Classify(context.Context, contractx.ClassifyRequest) (contractx.Intent, error) {
	return contractx.Intent(c), nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	in, err := ValidateRequest(GraphInput{SessionID: " s1 ", Text: "  hello  "}, func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("ValidateRequest() error = %v", err)
	}
	if in.SessionID != "s1" || in.Text != "hello" || in.Now.Location() != time.UTC {
		t.Fatalf("unexpected state: %+v", in)
	}

	if _, err := ValidateRequest(GraphInput{Text: "hi"}, time.Now); !errors.Is(err, ErrInvalidSession) || !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("missing session error = %v", err)
	}
	if _, err := ValidateRequest(GraphInput{SessionID: "s1"}, time.Now); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("missing text error = %v", err)
	}
}

func TestLoadOrCreateState(t *testing.T) {
	t.Parallel()

	in, err := LoadOrCreateState(context.Background(), &GraphState{SessionID: "s1", Now: fixedNow}, stubStore{err: statex.ErrStateNotFound})
	if err != nil {
		t.Fatalf("LoadOrCreateState() error = %v", err)
	}
	if in.Session == nil || in.Session.SessionID != "s1" || in.Session.UserAuthenticated {
		t.Fatalf("unexpected new session: %+v", in.Session)
	}

	boom := errors.New("boom")
	if _, err := LoadOrCreateState(context.Background(), &GraphState{SessionID: "s1"}, stubStore{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("load error = %v, want boom", err)
	}
}

func TestRouteTurnRunsOneSpecialist(t *testing.T) {
	t.Parallel()

	in := &GraphState{SessionID: "s1", Text: "weather?", Session: statex.NewSessionState("s1", fixedNow)}
	out, err := RouteTurn(context.Background(), in, stubClassifier(contractx.IntentInfo), stubRegistry{info: echoSpecialist{}})
	if err != nil {
		t.Fatalf("RouteTurn() error = %v", err)
	}
	if out.Agent != contractx.AgentTypeInfo || out.Message != "echo: weather?" || out.Tool != "get_weather" || out.Intent != contractx.IntentInfo {
		t.Fatalf("unexpected state: %+v", out)
	}
}

func TestRouteTurnMissingSpecialist(t *testing.T) {
	t.Parallel()

	in := &GraphState{SessionID: "s1", Text: "weather?", Session: statex.NewSessionState("s1", fixedNow)}
	if _, err := RouteTurn(context.Background(), in, stubClassifier(contractx.IntentInfo), stubRegistry{}); !errors.Is(err, contractx.ErrNoSpecialist) {
		t.Fatalf("RouteTurn() error = %v, want ErrNoSpecialist", err)
	}
}

func TestRecordTurnAndFinalize(t *testing.T) {
	t.Parallel()

	st := statex.NewSessionState("s1", fixedNow)
	in := &GraphState{Text: "hi", Session: st, Agent: contractx.AgentTypeOrchestrator, Message: " " + GreetingReply + " "}
	if _, err := RecordTurn(in); err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}
	if len(st.History) != 2 || st.History[1].Role != statex.RoleAssistant || st.History[1].Content != GreetingReply {
		t.Fatalf("unexpected history: %+v", st.History)
	}

	out, err := FinalizeReply(in)
	if err != nil {
		t.Fatalf("FinalizeReply() error = %v", err)
	}
	if out.Reply.Text != GreetingReply || out.Reply.Agent != contractx.AgentTypeOrchestrator || out.Reply.Fallback {
		t.Fatalf("unexpected reply: %+v", out.Reply)
	}

	if _, err := RecordTurn(&GraphState{Text: "hi", Session: st}); !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("empty message error = %v", err)
	}
}

func TestSaveStateRejectsInvalidSession(t *testing.T) {
	t.Parallel()

	st := statex.NewSessionState("s1", fixedNow)
	st.UserAuthenticated = true
	if _, err := SaveState(context.Background(), &GraphState{Session: st, Now: fixedNow}, stubStore{}); !errors.Is(err, statex.ErrUnauthenticatedSlot) {
		t.Fatalf("SaveState() error = %v", err)
	}
}
