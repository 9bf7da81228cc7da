package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
)

const weatherSystemPrompt = `You are a weather forecasting assistant with web search.
Search for the current forecast for the requested place and answer in at most four short sentences:
conditions, temperature range in Celsius, rain chance, and one packing tip. Do not invent data.`

// WebSearchWeather answers forecasts through an OpenAI-compatible chat model
// that has web search enabled.
type WebSearchWeather struct {
	client *openaisdk.Client
	model  string
}

func NewWebSearchWeather(client *openaisdk.Client, model string) (*WebSearchWeather, error) {
	if client == nil {
		return nil, errors.New("openai client is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("weather model is required")
	}
	return &WebSearchWeather{client: client, model: strings.TrimSpace(model)}, nil
}

func (w *WebSearchWeather) Forecast(ctx context.Context, location, when string) (string, error) {
	question := fmt.Sprintf("Weather forecast in %s for the next 3 days.", location)
	if when = strings.TrimSpace(when); when != "" {
		question = fmt.Sprintf("Weather forecast in %s around %s.", location, when)
	}

	resp, err := w.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(w.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(weatherSystemPrompt),
			openaisdk.UserMessage(question),
		},
	})
	if err != nil {
		return "", fmt.Errorf("weather completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("weather completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
