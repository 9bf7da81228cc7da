package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
)

type classifierOutput struct {
	Intent string `json:"intent"`
}

// Classifier asks the model for the intent of an authenticated turn.
type Classifier struct {
	runner compose.Runnable[map[string]any, classifierOutput]
}

var _ contractx.Classifier = (*Classifier)(nil)

func NewClassifier(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Classifier, error) {
	runner, err := compileStructuredLLMGraph[classifierOutput](ctx, chatModel, systemPrompt, "router.classify_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile classifier graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Classifier{runner: runner}, nil
}

// Classify returns planning when the model answers with an unknown label.
func (c *Classifier) Classify(ctx context.Context, req contractx.ClassifyRequest) (contractx.Intent, error) {
	input, err := marshalInput(map[string]any{
		"user_message": req.UserMessage,
		"recent_turns": recentTurns(req.Session),
	})
	if err != nil {
		return "", err
	}

	out, err := c.runner.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("%w: classify: %v", contractx.ErrModelInvoke, err)
	}

	intent, ok := contractx.ParseIntent(out.Intent)
	if !ok {
		log.Warn().Str("label", out.Intent).Msg("router returned unknown intent, using planning")
		return contractx.IntentPlanning, nil
	}
	return intent, nil
}
