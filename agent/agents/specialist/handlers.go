// Package specialist holds the role agents the router delegates authenticated
// and unauthenticated turns to.
package specialist

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	respondx "github.com/tanpawarit/Chative-Travel-Assistant/agent/respond"
	slotsx "github.com/tanpawarit/Chative-Travel-Assistant/agent/slots"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

// Handlers is the part of the toolbox the specialists call directly.
type Handlers interface {
	StoreTripParameters(ctx context.Context, st *statex.SessionState, p contractx.TripParameters) contractx.Envelope
	ClearTripState(ctx context.Context, st *statex.SessionState) contractx.Envelope
	GetBudgetEstimate(ctx context.Context, st *statex.SessionState) contractx.Envelope
	GeneratePackingList(ctx context.Context, st *statex.SessionState) contractx.Envelope
	GetCurrentState(ctx context.Context, st *statex.SessionState) contractx.Envelope
	SearchHotels(ctx context.Context, st *statex.SessionState) contractx.Envelope
	FindTransport(ctx context.Context, st *statex.SessionState, mode string) contractx.Envelope
	GetLocationSuggestions(ctx context.Context, st *statex.SessionState) contractx.Envelope
	GetDestinationInfo(ctx context.Context, st *statex.SessionState, destination string) contractx.Envelope
	GetEmergencyContacts(ctx context.Context) contractx.Envelope
	GetWeather(ctx context.Context, st *statex.SessionState, location string) contractx.Envelope
	AuthenticateUser(ctx context.Context, st *statex.SessionState, name, contact string) contractx.Envelope
	ConfirmBooking(ctx context.Context, st *statex.SessionState, hotelID, transportID string) contractx.Envelope
}

var _ Handlers = (*toolx.Toolbox)(nil)

// base carries the collaborators every specialist shares.
type base struct {
	handlers  Handlers
	extractor contractx.Extractor
	responder contractx.Responder
}

// extract falls back to the rule extractor when the configured one fails.
func (b *base) extract(ctx context.Context, agentType contractx.AgentType, req contractx.SpecialistRequest) contractx.Extraction {
	extReq := contractx.ExtractRequest{UserMessage: req.UserMessage, Session: req.Session}
	out, err := b.extractor.Extract(ctx, extReq)
	if err == nil {
		return out
	}
	log.Warn().Err(err).Str("agent", string(agentType)).Msg("extractor failed, using rule extraction")
	out, _ = slotsx.NewRuleExtractor().Extract(ctx, extReq)
	return out
}

// reply renders a handler result. The responder may rephrase the draft; if it
// fails the draft is sent as is.
func (b *base) reply(ctx context.Context, agentType contractx.AgentType, req contractx.SpecialistRequest, tool string, env contractx.Envelope, draft string) contractx.SpecialistResponse {
	if draft == "" {
		draft = respondx.Draft(tool, env)
	}
	resp := contractx.SpecialistResponse{Message: draft}
	if tool != "" {
		resp.Tool = tool
		resp.Result = &env
	}

	text, err := b.responder.Respond(ctx, contractx.RespondRequest{
		Agent:       agentType,
		UserMessage: req.UserMessage,
		Tool:        tool,
		Result:      resp.Result,
		Draft:       draft,
	})
	switch {
	case err != nil:
		log.Warn().Err(err).Str("agent", string(agentType)).Str("tool", tool).Msg("responder failed, sending draft")
	case strings.TrimSpace(text) != "":
		resp.Message = strings.TrimSpace(text)
	}
	return resp
}
