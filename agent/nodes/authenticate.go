package orchestratornode

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
)

// Authenticate hands an unauthenticated turn to the authenticator. No other
// specialist is reachable until the session is authenticated.
func Authenticate(ctx context.Context, in *GraphState, registry contractx.Registry) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	return runSpecialist(ctx, in, contractx.AgentTypeAuthenticator, registry.Authenticator())
}

func runSpecialist(ctx context.Context, in *GraphState, agentType contractx.AgentType, s contractx.Specialist) (*GraphState, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: %s", contractx.ErrNoSpecialist, agentType)
	}
	resp, err := s.Run(ctx, contractx.SpecialistRequest{
		UserMessage: in.Text,
		Session:     in.Session,
		Now:         in.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("%s specialist: %w", agentType, err)
	}

	in.Agent = agentType
	in.Tool = resp.Tool
	in.Message = resp.Message
	return in, nil
}
