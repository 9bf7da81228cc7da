package orchestratornode

import (
	"fmt"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
)

func FinalizeReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	return GraphOutput{Reply: contractx.Reply{Text: in.Message, Agent: in.Agent}}, nil
}
