package contract

import (
	"encoding/json"
	"strings"
	"time"

	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

type AgentType string

const (
	AgentTypeAuthenticator AgentType = "authenticator"
	AgentTypeOrchestrator  AgentType = "orchestrator"
	AgentTypePlanning      AgentType = "planning"
	AgentTypeInfo          AgentType = "info"
	AgentTypeConfirmation  AgentType = "confirmation"
	AgentTypeFallback      AgentType = "fallback"
)

// Intent is the router's classification of an authenticated user turn.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentPlanning     Intent = "planning"
	IntentInfo         Intent = "info"
	IntentConfirmation Intent = "confirmation"
)

// ParseIntent maps a label to a known Intent. Unknown labels report false.
func ParseIntent(label string) (Intent, bool) {
	switch Intent(strings.ToLower(strings.TrimSpace(label))) {
	case IntentGreeting:
		return IntentGreeting, true
	case IntentPlanning:
		return IntentPlanning, true
	case IntentInfo:
		return IntentInfo, true
	case IntentConfirmation:
		return IntentConfirmation, true
	default:
		return "", false
	}
}

// Agent returns the specialist that serves the intent. Greetings are answered by
// the orchestrator itself.
func (i Intent) Agent() AgentType {
	switch i {
	case IntentGreeting:
		return AgentTypeOrchestrator
	case IntentInfo:
		return AgentTypeInfo
	case IntentConfirmation:
		return AgentTypeConfirmation
	default:
		return AgentTypePlanning
	}
}

// TripParameters are raw trip details pulled out of a user turn. Empty fields were
// not mentioned.
type TripParameters struct {
	Destination string   `json:"destination,omitempty"`
	Origin      string   `json:"origin,omitempty"`
	Duration    string   `json:"duration_days,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	TravelDate  string   `json:"travel_date,omitempty"`
}

func (p TripParameters) IsZero() bool {
	return strings.TrimSpace(p.Destination) == "" &&
		strings.TrimSpace(p.Origin) == "" &&
		strings.TrimSpace(p.Duration) == "" &&
		strings.TrimSpace(p.Budget) == "" &&
		len(p.Interests) == 0 &&
		strings.TrimSpace(p.TravelDate) == ""
}

type Identity struct {
	Name    string `json:"full_name,omitempty"`
	Contact string `json:"contact,omitempty"`
}

func (i Identity) Complete() bool {
	return strings.TrimSpace(i.Name) != "" && strings.TrimSpace(i.Contact) != ""
}

type Extraction struct {
	Trip     TripParameters `json:"trip"`
	Identity Identity       `json:"identity"`
}

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Envelope is the uniform result of every handler.
type Envelope struct {
	Status       Status
	Message      string
	ErrorMessage string
	Data         map[string]any
}

func Success(data map[string]any) Envelope {
	return Envelope{Status: StatusSuccess, Data: data}
}

// Empty is a successful result that found nothing; message explains it to the user.
func Empty(message string, data map[string]any) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

func Failure(message string) Envelope {
	return Envelope{Status: StatusError, ErrorMessage: message}
}

func (e Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// Text returns the user-facing message carried by the envelope, if any.
func (e Envelope) Text() string {
	if e.Status == StatusError {
		return e.ErrorMessage
	}
	return e.Message
}

// MarshalJSON writes Data next to status so the shape matches what the models see.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Data)+3)
	for k, v := range e.Data {
		out[k] = v
	}
	out["status"] = e.Status
	if e.Message != "" {
		out["message"] = e.Message
	}
	if e.ErrorMessage != "" {
		out["error_message"] = e.ErrorMessage
	}
	return json.Marshal(out)
}

// Reply is the Supervisor's answer for one turn.
type Reply struct {
	Text     string    `json:"reply"`
	Agent    AgentType `json:"agent"`
	Fallback bool      `json:"fallback,omitempty"`
}

type SpecialistRequest struct {
	UserMessage string
	Session     *statex.SessionState
	Now         time.Time
}

type SpecialistResponse struct {
	Message string
	// Tool names the handler that ran this turn, empty when none did.
	Tool   string
	Result *Envelope
}

type ClassifyRequest struct {
	UserMessage string
	Session     *statex.SessionState
}

type ExtractRequest struct {
	UserMessage string
	Session     *statex.SessionState
}

type RespondRequest struct {
	Agent       AgentType
	UserMessage string
	Tool        string
	Result      *Envelope
	// Draft is the deterministic reply; responders may rephrase it but must keep its facts.
	Draft string
}
