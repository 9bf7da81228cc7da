package specialist

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	intentx "github.com/tanpawarit/Chative-Travel-Assistant/agent/intent"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

var slotQuestions = map[statex.Key]string{
	statex.KeyDestination:  "Where would you like to go?",
	statex.KeyOrigin:       "Where will you be travelling from?",
	statex.KeyBudgetLevel:  "What's your budget level: Budget, Mid-Range or Luxury?",
	statex.KeyDurationDays: "How many days will you be travelling?",
}

var slotLabels = map[statex.Key]string{
	statex.KeyDestination:  "destination",
	statex.KeyOrigin:       "origin",
	statex.KeyBudgetLevel:  "budget level",
	statex.KeyDurationDays: "trip length",
	statex.KeyInterests:    "interests",
	statex.KeyTravelDate:   "travel date",
}

var goalActions = map[intentx.Goal]string{
	intentx.GoalHotels:      "search for hotels",
	intentx.GoalTransport:   "find transport options",
	intentx.GoalSuggestions: "suggest places to visit",
	intentx.GoalBudget:      "estimate your budget",
	intentx.GoalPacking:     "put together a packing list",
}

// planning gathers trip details and runs one planning handler per turn. A turn
// that carries new details only stores them; goals run on turns with nothing new.
type planning struct {
	base
	runner compose.Runnable[contractx.SpecialistRequest, contractx.SpecialistResponse]
}

var _ contractx.Specialist = (*planning)(nil)

type planningState struct {
	Req     contractx.SpecialistRequest
	Goal    intentx.Goal
	Updated []statex.Key
}

func newPlanning(ctx context.Context, b base) (*planning, error) {
	p := &planning{base: b}
	runner, err := compilePlanningGraph(ctx, p.gather, p.acknowledge, p.executeGoal)
	if err != nil {
		return nil, err
	}
	p.runner = runner
	return p, nil
}

func (p *planning) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	if err := validateRequest(req); err != nil {
		return contractx.SpecialistResponse{}, err
	}
	return p.runner.Invoke(ctx, req)
}

// gather detects the goal and stores any new trip details. Details already
// known are not stored again, and starting over skips extraction, so a turn
// runs at most one handler.
func (p *planning) gather(ctx context.Context, req contractx.SpecialistRequest) (*planningState, error) {
	st := &planningState{Req: req, Goal: intentx.DetectGoal(req.UserMessage)}
	if st.Goal == intentx.GoalStartOver {
		return st, nil
	}

	trip := p.extract(ctx, contractx.AgentTypePlanning, req).Trip
	if trip.IsZero() {
		return st, nil
	}
	probe := *req.Session
	if len(toolx.MergeTripParameters(&probe, trip)) == 0 {
		return st, nil
	}
	env := p.handlers.StoreTripParameters(ctx, req.Session, trip)
	if !env.OK() {
		return nil, fmt.Errorf("store trip parameters: %s", env.ErrorMessage)
	}
	keys, _ := env.Data["updated_keys"].([]string)
	st.Updated = lo.Map(keys, func(k string, _ int) statex.Key { return statex.Key(k) })
	log.Debug().Strs("updated_keys", keys).Str("goal", string(st.Goal)).Msg("planning details stored")
	return st, nil
}

func (p *planning) acknowledge(ctx context.Context, st *planningState) (contractx.SpecialistResponse, error) {
	s := st.Req.Session
	noted := lo.FilterMap(st.Updated, func(k statex.Key, _ int) (string, bool) {
		label, ok := slotLabels[k]
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s (%s)", label, slotValue(s, k)), true
	})

	var b strings.Builder
	b.WriteString("Got it! I've noted your ")
	b.WriteString(joinWords(noted))
	b.WriteString(".")
	if next := p.nextStep(s, st.Goal); next != "" {
		b.WriteString(" ")
		b.WriteString(next)
	}
	return contractx.SpecialistResponse{Message: b.String()}, nil
}

// nextStep asks for what the goal still needs, or offers to run it.
func (p *planning) nextStep(s *statex.SessionState, goal intentx.Goal) string {
	if goal != intentx.GoalNone && goal != intentx.GoalStartOver {
		if missing := s.Missing(goal.Prerequisites()...); len(missing) > 0 {
			return askFor(missing)
		}
		return fmt.Sprintf("Just say the word and I'll %s.", goalActions[goal])
	}
	for _, k := range []statex.Key{statex.KeyDestination, statex.KeyDurationDays, statex.KeyBudgetLevel, statex.KeyOrigin} {
		if !s.Has(k) {
			return slotQuestions[k]
		}
	}
	return "Would you like me to find hotels, transport options or things to do?"
}

func (p *planning) executeGoal(ctx context.Context, st *planningState) (contractx.SpecialistResponse, error) {
	req := st.Req
	s := req.Session

	if st.Goal == intentx.GoalStartOver {
		env := p.handlers.ClearTripState(ctx, s)
		draft := env.ErrorMessage
		if env.OK() {
			draft = "I've cleared your previous trip details. " + slotQuestions[statex.KeyDestination]
		}
		return p.reply(ctx, contractx.AgentTypePlanning, req, toolx.ToolClearTripState, env, draft), nil
	}
	if st.Goal == intentx.GoalNone {
		return contractx.SpecialistResponse{Message: p.nextStep(s, st.Goal)}, nil
	}

	if missing := s.Missing(st.Goal.Prerequisites()...); len(missing) > 0 {
		return contractx.SpecialistResponse{
			Message: fmt.Sprintf("To %s, I need a little more information. %s", goalActions[st.Goal], askFor(missing)),
		}, nil
	}

	var (
		tool string
		env  contractx.Envelope
	)
	switch st.Goal {
	case intentx.GoalHotels:
		tool, env = toolx.ToolSearchHotels, p.handlers.SearchHotels(ctx, s)
	case intentx.GoalTransport:
		tool, env = toolx.ToolFindTransport, p.handlers.FindTransport(ctx, s, intentx.DetectMode(req.UserMessage))
	case intentx.GoalSuggestions:
		tool, env = toolx.ToolGetLocationSuggestions, p.handlers.GetLocationSuggestions(ctx, s)
	case intentx.GoalBudget:
		tool, env = toolx.ToolGetBudgetEstimate, p.handlers.GetBudgetEstimate(ctx, s)
	case intentx.GoalPacking:
		tool, env = toolx.ToolGeneratePackingList, p.handlers.GeneratePackingList(ctx, s)
	default:
		return contractx.SpecialistResponse{}, fmt.Errorf("%w: unsupported planning goal %q", contractx.ErrValidation, st.Goal)
	}
	return p.reply(ctx, contractx.AgentTypePlanning, req, tool, env, ""), nil
}

func askFor(missing []statex.Key) string {
	return strings.Join(lo.Map(missing, func(k statex.Key, _ int) string { return slotQuestions[k] }), " ")
}

func slotValue(s *statex.SessionState, k statex.Key) string {
	switch k {
	case statex.KeyDestination:
		return s.Destination
	case statex.KeyOrigin:
		return s.Origin
	case statex.KeyBudgetLevel:
		return string(s.BudgetLevel)
	case statex.KeyDurationDays:
		if s.DurationDays == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", s.DurationDays)
	case statex.KeyInterests:
		return strings.Join(s.Interests, ", ")
	case statex.KeyTravelDate:
		return s.TravelDate
	default:
		return ""
	}
}

func joinWords(items []string) string {
	switch len(items) {
	case 0:
		return "details"
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
