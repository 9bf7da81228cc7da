package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
)

type responderOutput struct {
	Reply string `json:"reply"`
}

// Responder rephrases a specialist's draft reply with the model.
type Responder struct {
	runner compose.Runnable[map[string]any, responderOutput]
}

var _ contractx.Responder = (*Responder)(nil)

func NewResponder(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Responder, error) {
	runner, err := compileStructuredLLMGraph[responderOutput](ctx, chatModel, systemPrompt, "specialist.respond_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile responder graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Responder{runner: runner}, nil
}

func (r *Responder) Respond(ctx context.Context, req contractx.RespondRequest) (string, error) {
	payload := map[string]any{
		"agent":        req.Agent,
		"user_message": req.UserMessage,
		"tool":         req.Tool,
		"draft":        req.Draft,
	}
	if req.Result != nil {
		payload["result"] = req.Result
	}
	input, err := marshalInput(payload)
	if err != nil {
		return "", err
	}

	out, err := r.runner.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: respond: %v", contractx.ErrModelInvoke, err)
	}
	reply := strings.TrimSpace(out.Reply)
	if reply == "" {
		return "", fmt.Errorf("%w: reply is empty", contractx.ErrSchemaViolation)
	}
	return reply, nil
}
