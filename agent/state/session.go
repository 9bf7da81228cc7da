package state

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// SessionState is the per-conversation record carried across turns.
// Zero values mean "unset" for every optional slot.
type SessionState struct {
	SessionID string `json:"session_id"`

	// Identity
	UserAuthenticated bool   `json:"user_authenticated,omitempty"`
	UserName          string `json:"user_name,omitempty"`
	UserContact       string `json:"user_contact,omitempty"`

	// Identity details given before authentication completes.
	PendingUserName    string `json:"pending_user_name,omitempty"`
	PendingUserContact string `json:"pending_user_contact,omitempty"`

	// Trip slots
	Destination           string      `json:"destination,omitempty"`
	Origin                string      `json:"origin,omitempty"`
	DurationDays          int         `json:"duration_days,omitempty"`
	BudgetLevel           BudgetLevel `json:"budget_level,omitempty"`
	Interests             []string    `json:"interests,omitempty"`
	TravelDate            string      `json:"travel_date,omitempty"`
	CalculatedBudgetTotal *float64    `json:"calculated_budget_total,omitempty"`

	// Ids shown to the user by the last searches, newest first.
	OfferedHotelIDs     []string `json:"offered_hotel_ids,omitempty"`
	OfferedTransportIDs []string `json:"offered_transport_ids,omitempty"`

	History   []Turn    `json:"history,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BudgetLevel string

const (
	BudgetLow  BudgetLevel = "Budget"
	BudgetMid  BudgetLevel = "Mid-Range"
	BudgetHigh BudgetLevel = "Luxury"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MaxHistory bounds the transcript kept for model context.
const MaxHistory = 20

// Key names a documented session slot.
type Key string

const (
	KeyUserAuthenticated     Key = "user_authenticated"
	KeyUserName              Key = "user_name"
	KeyUserContact           Key = "user_contact"
	KeyDestination           Key = "destination"
	KeyOrigin                Key = "origin"
	KeyDurationDays          Key = "duration_days"
	KeyBudgetLevel           Key = "budget_level"
	KeyInterests             Key = "interests"
	KeyTravelDate            Key = "travel_date"
	KeyCalculatedBudgetTotal Key = "calculated_budget_total"
)

// TripKeys are the slots removed by ClearTripState. Identity keys are not included.
var TripKeys = []Key{
	KeyDestination,
	KeyDurationDays,
	KeyBudgetLevel,
	KeyInterests,
	KeyOrigin,
	KeyTravelDate,
	KeyCalculatedBudgetTotal,
}

var (
	ErrNilSession          = errors.New("nil session state")
	ErrUnauthenticatedSlot = errors.New("authenticated session must carry user_contact")
)

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// Has reports whether the slot named by k is set.
func (s *SessionState) Has(k Key) bool {
	if s == nil {
		return false
	}
	switch k {
	case KeyUserAuthenticated:
		return s.UserAuthenticated
	case KeyUserName:
		return s.UserName != ""
	case KeyUserContact:
		return s.UserContact != ""
	case KeyDestination:
		return s.Destination != ""
	case KeyOrigin:
		return s.Origin != ""
	case KeyDurationDays:
		return s.DurationDays > 0
	case KeyBudgetLevel:
		return s.BudgetLevel != ""
	case KeyInterests:
		return len(s.Interests) > 0
	case KeyTravelDate:
		return s.TravelDate != ""
	case KeyCalculatedBudgetTotal:
		return s.CalculatedBudgetTotal != nil
	default:
		return false
	}
}

// Delete unsets the slot named by k. Unknown keys are ignored.
func (s *SessionState) Delete(k Key) {
	if s == nil {
		return
	}
	switch k {
	case KeyUserAuthenticated:
		s.UserAuthenticated = false
	case KeyUserName:
		s.UserName = ""
	case KeyUserContact:
		s.UserContact = ""
	case KeyDestination:
		s.Destination = ""
	case KeyOrigin:
		s.Origin = ""
	case KeyDurationDays:
		s.DurationDays = 0
	case KeyBudgetLevel:
		s.BudgetLevel = ""
	case KeyInterests:
		s.Interests = nil
	case KeyTravelDate:
		s.TravelDate = ""
	case KeyCalculatedBudgetTotal:
		s.CalculatedBudgetTotal = nil
	}
}

// Missing returns the keys in want that are not set, preserving order.
func (s *SessionState) Missing(want ...Key) []Key {
	var out []Key
	for _, k := range want {
		if !s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

// ClearTripState removes every trip-planning slot and the offered ids.
func (s *SessionState) ClearTripState() {
	for _, k := range TripKeys {
		s.Delete(k)
	}
	s.OfferedHotelIDs = nil
	s.OfferedTransportIDs = nil
}

// Authenticate marks the session as belonging to a known user and drops any
// pending identity details.
func (s *SessionState) Authenticate(displayName, contact string) {
	s.UserName = displayName
	s.UserContact = contact
	s.UserAuthenticated = true
	s.PendingUserName = ""
	s.PendingUserContact = ""
}

// RememberIdentity keeps the non-blank parts of a partial identity until the
// user supplies the rest.
func (s *SessionState) RememberIdentity(name, contact string) {
	if v := strings.TrimSpace(name); v != "" {
		s.PendingUserName = v
	}
	if v := strings.TrimSpace(contact); v != "" {
		s.PendingUserContact = v
	}
}

// Snapshot returns the set slots keyed by their documented names.
func (s *SessionState) Snapshot() map[string]any {
	out := make(map[string]any, 10)
	if s == nil {
		return out
	}
	if s.UserAuthenticated {
		out[string(KeyUserAuthenticated)] = true
	}
	setString := func(k Key, v string) {
		if v != "" {
			out[string(k)] = v
		}
	}
	setString(KeyUserName, s.UserName)
	setString(KeyUserContact, s.UserContact)
	setString(KeyDestination, s.Destination)
	setString(KeyOrigin, s.Origin)
	setString(KeyBudgetLevel, string(s.BudgetLevel))
	setString(KeyTravelDate, s.TravelDate)
	if s.DurationDays > 0 {
		out[string(KeyDurationDays)] = s.DurationDays
	}
	if len(s.Interests) > 0 {
		out[string(KeyInterests)] = slices.Clone(s.Interests)
	}
	if s.CalculatedBudgetTotal != nil {
		out[string(KeyCalculatedBudgetTotal)] = *s.CalculatedBudgetTotal
	}
	return out
}

// OfferHotels records hotel ids presented to the user.
func (s *SessionState) OfferHotels(ids []string) {
	s.OfferedHotelIDs = slices.Clone(ids)
}

// OfferTransport records transport ids presented to the user.
func (s *SessionState) OfferTransport(ids []string) {
	s.OfferedTransportIDs = slices.Clone(ids)
}

// AppendTurn adds a transcript entry, keeping at most MaxHistory entries.
func (s *SessionState) AppendTurn(role Role, content string) {
	if content == "" {
		return
	}
	s.History = append(s.History, Turn{Role: role, Content: content})
	if over := len(s.History) - MaxHistory; over > 0 {
		s.History = slices.Clone(s.History[over:])
	}
}

func (s *SessionState) Validate() error {
	if s == nil {
		return ErrNilSession
	}
	if s.UserAuthenticated && s.UserContact == "" {
		return ErrUnauthenticatedSlot
	}
	return nil
}
