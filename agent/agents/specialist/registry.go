package specialist

import (
	"context"
	"fmt"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	llmx "github.com/tanpawarit/Chative-Travel-Assistant/agent/llm"
	promptx "github.com/tanpawarit/Chative-Travel-Assistant/agent/prompt"
	respondx "github.com/tanpawarit/Chative-Travel-Assistant/agent/respond"
	slotsx "github.com/tanpawarit/Chative-Travel-Assistant/agent/slots"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

type registryImpl struct {
	authenticator contractx.Specialist
	planning      contractx.Specialist
	info          contractx.Specialist
	confirmation  contractx.Specialist
}

func (r *registryImpl) Authenticator() contractx.Specialist {
	return r.authenticator
}

func (r *registryImpl) Planning() contractx.Specialist {
	return r.planning
}

func (r *registryImpl) Info() contractx.Specialist {
	return r.info
}

func (r *registryImpl) Confirmation() contractx.Specialist {
	return r.confirmation
}

type options struct {
	extractor contractx.Extractor
	responder contractx.Responder
	infoAgent contractx.Specialist
}

type Option func(*options)

// WithExtractor replaces the rule-based extractor.
func WithExtractor(e contractx.Extractor) Option {
	return func(o *options) {
		if e != nil {
			o.extractor = e
		}
	}
}

// WithResponder replaces the template responder.
func WithResponder(r contractx.Responder) Option {
	return func(o *options) {
		if r != nil {
			o.responder = r
		}
	}
}

// WithInfoAgent lets a tool-calling agent answer info questions before the
// topic rules are tried.
func WithInfoAgent(s contractx.Specialist) Option {
	return func(o *options) {
		o.infoAgent = s
	}
}

// NewRegistry builds the specialists over handlers. Without options they run
// entirely on rules and templates.
func NewRegistry(ctx context.Context, handlers Handlers, opts ...Option) (contractx.Registry, error) {
	if handlers == nil {
		return nil, fmt.Errorf("%w: handlers are required", contractx.ErrValidation)
	}
	o := options{
		extractor: slotsx.NewRuleExtractor(),
		responder: respondx.TemplateResponder{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	b := base{handlers: handlers, extractor: o.extractor, responder: o.responder}
	plan, err := newPlanning(ctx, b)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		authenticator: &authenticator{base: b},
		planning:      plan,
		info:          &info{base: b, agent: o.infoAgent},
		confirmation:  &confirmation{base: b},
	}, nil
}

// NewLLMRegistry wires the model-backed extractor, responder and info agent
// from cfg on top of tb.
func NewLLMRegistry(ctx context.Context, cfg llmx.Config, tb *toolx.Toolbox) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tb == nil {
		return nil, fmt.Errorf("%w: toolbox is required", contractx.ErrValidation)
	}

	prompts := promptx.LoadPromptSet()

	extractorModelCfg := cfg.OpenRouterFor(llmx.RoleExtractor)
	extractorModel, err := extractorModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create extractor model: %v", contractx.ErrModelInvoke, err)
	}
	responderModelCfg := cfg.OpenRouterFor(llmx.RoleResponder)
	responderModel, err := responderModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create responder model: %v", contractx.ErrModelInvoke, err)
	}
	infoModelCfg := cfg.OpenRouterFor(llmx.RoleInfo)
	infoModel, err := infoModelCfg.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create info model: %v", contractx.ErrModelInvoke, err)
	}

	extractor, err := llmx.NewExtractor(ctx, extractorModel, prompts.Extractor)
	if err != nil {
		return nil, err
	}
	responder, err := llmx.NewResponder(ctx, responderModel, prompts.Responder)
	if err != nil {
		return nil, err
	}
	tools, exec := tb.BuildForAgent(contractx.AgentTypeInfo)
	infoAgent, err := llmx.NewToolLoop(ctx, contractx.AgentTypeInfo, infoModel, prompts.Info, tools, exec, cfg.MaxToolSteps)
	if err != nil {
		return nil, err
	}

	return NewRegistry(ctx, tb,
		WithExtractor(extractor),
		WithResponder(responder),
		WithInfoAgent(infoAgent),
	)
}
