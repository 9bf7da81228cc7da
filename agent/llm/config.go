package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	openrouterx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/openrouter"
)

// Role names a model-backed component. Each role may override the default model.
type Role string

const (
	RoleRouter    Role = "router"
	RoleExtractor Role = "extractor"
	RoleInfo      Role = "info"
	RoleResponder Role = "responder"
)

// Config is read with the OPENROUTER prefix. Without an API key the assistant
// runs on the rule-based classifier, extractor and responder.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"google/gemini-2.5-flash"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	RouterModel          string  `envconfig:"ROUTER_MODEL" split_words:"true"`
	ExtractorModel       string  `envconfig:"EXTRACTOR_MODEL" split_words:"true"`
	InfoModel            string  `envconfig:"INFO_MODEL" split_words:"true"`
	ResponderModel       string  `envconfig:"RESPONDER_MODEL" split_words:"true"`
	WeatherModel         string  `envconfig:"WEATHER_MODEL" split_words:"true"`
	RouterTemperature    float32 `envconfig:"ROUTER_TEMPERATURE" split_words:"true" default:"0"`
	ExtractorTemperature float32 `envconfig:"EXTRACTOR_TEMPERATURE" split_words:"true" default:"0"`
	InfoTemperature      float32 `envconfig:"INFO_TEMPERATURE" split_words:"true" default:"-1"`
	ResponderTemperature float32 `envconfig:"RESPONDER_TEMPERATURE" split_words:"true" default:"-1"`

	MaxToolSteps int `envconfig:"MAX_TOOL_STEPS" split_words:"true" default:"4"`
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c Config) Validate() error {
	if !c.Enabled() {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	if c.MaxToolSteps <= 0 {
		return fmt.Errorf("%w: max tool steps must be > 0", contractx.ErrValidation)
	}
	return nil
}

func (c Config) OpenRouterFor(role Role) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(model string, t float32) {
		if v := strings.TrimSpace(model); v != "" {
			modelName = v
		}
		if t >= 0 {
			temp = t
		}
	}

	switch role {
	case RoleRouter:
		override(c.RouterModel, c.RouterTemperature)
	case RoleExtractor:
		override(c.ExtractorModel, c.ExtractorTemperature)
	case RoleInfo:
		override(c.InfoModel, c.InfoTemperature)
	case RoleResponder:
		override(c.ResponderModel, c.ResponderTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}

// WeatherConfig is the client config for the web-search weather lookup.
func (c Config) WeatherConfig() openrouterx.Config {
	cfg := c.OpenRouterFor(RoleInfo)
	if v := strings.TrimSpace(c.WeatherModel); v != "" {
		cfg.Model = v
	}
	cfg.Model = cfg.WebSearchModel()
	return cfg
}
