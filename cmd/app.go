package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/tanpawarit/Chative-Travel-Assistant/agent/agents/orchestrator"
	specialistx "github.com/tanpawarit/Chative-Travel-Assistant/agent/agents/specialist"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	intentx "github.com/tanpawarit/Chative-Travel-Assistant/agent/intent"
	llmx "github.com/tanpawarit/Chative-Travel-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Chative-Travel-Assistant/agent/prompt"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	storex "github.com/tanpawarit/Chative-Travel-Assistant/agent/store"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
	configx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/config"
	metricsx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/metrics"
	openrouterx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/openrouter"
	qstashx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/qstash"
)

// AppConfig is read with the APP prefix.
type AppConfig struct {
	Name        string        `split_words:"true" default:"travelbot"`
	TurnTimeout time.Duration `split_words:"true" default:"60s"`
}

type app struct {
	cfg        AppConfig
	supervisor *orchestrator.Supervisor
	registry   *prometheus.Registry
	provider   *storex.Provider
	sessions   statex.Store
}

// conversation bounds every turn by the configured timeout.
type conversation struct {
	sup     *orchestrator.Supervisor
	timeout time.Duration
}

func (c conversation) HandleMessage(ctx context.Context, sessionID, text string) (contractx.Reply, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.sup.HandleMessage(ctx, sessionID, text)
}

func (c conversation) Reset(ctx context.Context, sessionID string) error {
	return c.sup.Reset(ctx, sessionID)
}

func (a *app) conversation() conversation {
	return conversation{sup: a.supervisor, timeout: a.cfg.TurnTimeout}
}

func (a *app) Close() error {
	var errs []error
	if closer, ok := a.sessions.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	errs = append(errs, a.provider.Close())
	return errors.Join(errs...)
}

func buildApp(ctx context.Context) (*app, error) {
	appCfg, err := configx.New[AppConfig]("APP")
	if err != nil {
		return nil, err
	}
	storeCfg, err := configx.New[storex.Config]("STORE")
	if err != nil {
		return nil, err
	}
	sessionCfg, err := configx.New[statex.Config]("SESSION")
	if err != nil {
		return nil, err
	}
	llmCfg, err := configx.New[llmx.Config]("OPENROUTER")
	if err != nil {
		return nil, err
	}
	qstashCfg, err := configx.New[qstashx.Config]("QSTASH")
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := metricsx.New(reg)

	provider := storex.NewProvider(*storeCfg)
	toolOpts := []toolx.Option{toolx.WithMetrics(metrics)}

	if llmCfg.Enabled() {
		weatherCfg := llmCfg.WeatherConfig()
		weather, err := toolx.NewWebSearchWeather(openrouterx.NewClient(weatherCfg), weatherCfg.Model)
		if err != nil {
			return nil, fmt.Errorf("weather lookup: %w", err)
		}
		toolOpts = append(toolOpts, toolx.WithWeather(weather))
	}
	if qstashCfg.Enabled() {
		client, err := qstashx.NewClient(*qstashCfg)
		if err != nil {
			return nil, fmt.Errorf("qstash client: %w", err)
		}
		notifier, err := toolx.NewQueueNotifier(client)
		if err != nil {
			return nil, err
		}
		toolOpts = append(toolOpts, toolx.WithNotifier(notifier))
	}
	toolbox := toolx.New(provider, toolOpts...)

	sessions, err := statex.NewStore(*sessionCfg)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	var (
		registry   contractx.Registry
		classifier contractx.Classifier
	)
	if llmCfg.Enabled() {
		registry, err = specialistx.NewLLMRegistry(ctx, *llmCfg, toolbox)
		if err != nil {
			return nil, err
		}
		routerCfg := llmCfg.OpenRouterFor(llmx.RoleRouter)
		routerModel, err := routerCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create router model: %v", contractx.ErrModelInvoke, err)
		}
		classifier, err = llmx.NewClassifier(ctx, routerModel, promptx.LoadPromptSet().Router)
		if err != nil {
			return nil, err
		}
		log.Info().Str("model", routerCfg.Model).Msg("model-backed routing enabled")
	} else {
		registry, err = specialistx.NewRegistry(ctx, toolbox)
		if err != nil {
			return nil, err
		}
		classifier = intentx.NewRuleClassifier()
		log.Info().Msg("OPENROUTER_API_KEY is not set; using rule-based routing")
	}

	sup, err := orchestrator.New(sessions, registry, classifier, orchestrator.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("app", appCfg.Name).
		Str("session_backend", sessionCfg.Backend).
		Bool("notifications", qstashCfg.Enabled()).
		Msg("application wired")

	return &app{
		cfg:        *appCfg,
		supervisor: sup,
		registry:   reg,
		provider:   provider,
		sessions:   sessions,
	}, nil
}
