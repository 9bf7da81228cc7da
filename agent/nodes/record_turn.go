package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

// RecordTurn appends the exchange to the session transcript.
func RecordTurn(in *GraphState) (*GraphState, error) {
	if in == nil || in.Session == nil {
		return nil, fmt.Errorf("%w: graph session is nil", contractx.ErrValidation)
	}
	in.Message = strings.TrimSpace(in.Message)
	if in.Message == "" {
		return nil, fmt.Errorf("%w: %s returned an empty message", contractx.ErrSchemaViolation, in.Agent)
	}

	in.Session.AppendTurn(statex.RoleUser, in.Text)
	in.Session.AppendTurn(statex.RoleAssistant, in.Message)
	return in, nil
}
