package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	nodex "github.com/tanpawarit/Chative-Travel-Assistant/agent/nodes"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	metricsx "github.com/tanpawarit/Chative-Travel-Assistant/pkg/metrics"
)

// FallbackReply is sent whenever a turn cannot be completed.
const FallbackReply = "I'm sorry, I didn't quite catch that. As TravelBot, I can help with things like planning trips, finding flights, or getting destination info. Could you please try rephrasing?"

var (
	ErrInvalidMessage = nodex.ErrInvalidMessage
	ErrInvalidSession = nodex.ErrInvalidSession
)

// Supervisor runs one conversation turn end to end.
type Supervisor struct {
	store      statex.Store
	registry   contractx.Registry
	classifier contractx.Classifier
	metrics    *metricsx.Metrics

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	now func() time.Time
}

type Option func(*Supervisor)

func WithMetrics(m *metricsx.Metrics) Option {
	return func(s *Supervisor) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Supervisor) {
		if now != nil {
			s.now = now
		}
	}
}

func New(
	store statex.Store,
	registry contractx.Registry,
	classifier contractx.Classifier,
	opts ...Option,
) (*Supervisor, error) {
	if store == nil {
		return nil, errors.New("state store is required")
	}
	if registry == nil {
		return nil, errors.New("specialist registry is required")
	}
	if classifier == nil {
		return nil, errors.New("intent classifier is required")
	}

	s := &Supervisor{
		store:      store,
		registry:   registry,
		classifier: classifier,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	graphRunner, err := s.compileHandleMessageGraph(context.Background())
	if err != nil {
		return nil, err
	}
	s.graphRunner = graphRunner

	return s, nil
}

// HandleMessage answers one user turn. Invalid input is returned as an error;
// every other failure, panics included, becomes the fallback reply and leaves
// the stored session untouched.
func (s *Supervisor) HandleMessage(ctx context.Context, sessionID string, text string) (reply contractx.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("session_id", sessionID).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("turn panicked")
			reply, err = s.fallback(), nil
		}
	}()

	out, err := s.graphRunner.Invoke(ctx, nodex.GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	switch {
	case errors.Is(err, ErrInvalidSession), errors.Is(err, ErrInvalidMessage):
		return contractx.Reply{}, err
	case err != nil:
		log.Error().Err(err).Str("session_id", sessionID).Msg("turn failed")
		return s.fallback(), nil
	}

	s.metrics.ObserveTurn(string(out.Reply.Agent))
	return out.Reply, nil
}

// Reset forgets a conversation.
func (s *Supervisor) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("reset session %s: %w", sessionID, err)
	}
	return nil
}

func (s *Supervisor) fallback() contractx.Reply {
	s.metrics.ObserveFallback()
	return contractx.Reply{Text: FallbackReply, Agent: contractx.AgentTypeFallback, Fallback: true}
}
