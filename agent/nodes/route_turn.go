package orchestratornode

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	intentx "github.com/tanpawarit/Chative-Travel-Assistant/agent/intent"
)

const GreetingReply = "Hello again! How can I help with your travel plans?"

// RouteTurn classifies an authenticated turn and delegates it to exactly one
// specialist. Greetings are answered here.
func RouteTurn(
	ctx context.Context,
	in *GraphState,
	classifier contractx.Classifier,
	registry contractx.Registry,
) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}

	intent, err := classifier.Classify(ctx, contractx.ClassifyRequest{UserMessage: in.Text, Session: in.Session})
	if err != nil {
		intent = intentx.Classify(in.Text)
		log.Warn().Err(err).Str("session_id", in.SessionID).Str("intent", string(intent)).Msg("classifier failed, routing by rules")
	}
	in.Intent = intent

	agentType := intent.Agent()
	var s contractx.Specialist
	switch agentType {
	case contractx.AgentTypeOrchestrator:
		in.Agent = agentType
		in.Message = GreetingReply
		return in, nil
	case contractx.AgentTypeInfo:
		s = registry.Info()
	case contractx.AgentTypeConfirmation:
		s = registry.Confirmation()
	default:
		s = registry.Planning()
	}

	log.Debug().Str("session_id", in.SessionID).Str("intent", string(intent)).Str("agent", string(agentType)).Msg("turn routed")
	return runSpecialist(ctx, in, agentType, s)
}
