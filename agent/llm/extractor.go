package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
)

// Extractor pulls trip and identity details out of a turn with the model.
type Extractor struct {
	runner compose.Runnable[map[string]any, contractx.Extraction]
}

var _ contractx.Extractor = (*Extractor)(nil)

func NewExtractor(ctx context.Context, chatModel einomodel.BaseChatModel, systemPrompt string) (*Extractor, error) {
	runner, err := compileStructuredLLMGraph[contractx.Extraction](ctx, chatModel, systemPrompt, "slots.extract_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: compile extractor graph: %v", contractx.ErrModelInvoke, err)
	}
	return &Extractor{runner: runner}, nil
}

func (e *Extractor) Extract(ctx context.Context, req contractx.ExtractRequest) (contractx.Extraction, error) {
	input, err := marshalInput(map[string]any{
		"user_message": req.UserMessage,
		"known":        req.Session.Snapshot(),
	})
	if err != nil {
		return contractx.Extraction{}, err
	}

	out, err := e.runner.Invoke(ctx, input)
	if err != nil {
		return contractx.Extraction{}, fmt.Errorf("%w: extract: %v", contractx.ErrModelInvoke, err)
	}
	return normalizeExtraction(out), nil
}

func normalizeExtraction(in contractx.Extraction) contractx.Extraction {
	trim := strings.TrimSpace
	return contractx.Extraction{
		Trip: contractx.TripParameters{
			Destination: trim(in.Trip.Destination),
			Origin:      trim(in.Trip.Origin),
			Duration:    trim(in.Trip.Duration),
			Budget:      trim(in.Trip.Budget),
			Interests: lo.Compact(lo.Map(in.Trip.Interests, func(s string, _ int) string {
				return trim(s)
			})),
			TravelDate: trim(in.Trip.TravelDate),
		},
		Identity: contractx.Identity{
			Name:    trim(in.Identity.Name),
			Contact: trim(in.Identity.Contact),
		},
	}
}
