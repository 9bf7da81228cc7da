package specialist

import (
	"context"
	"regexp"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	slotsx "github.com/tanpawarit/Chative-Travel-Assistant/agent/slots"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

var (
	emergencyTopic = regexp.MustCompile(`(?i)\b(?:emergency|police|ambulance|hospital|helpline|fire brigade)\b`)
	stateTopic     = regexp.MustCompile(`(?i)\b(?:debug state|current state|what do you (?:know|have)|my details)\b`)
	weatherTopic   = regexp.MustCompile(`(?i)\b(?:weather|forecast|temperature|rain|climate)\b`)
)

// info answers factual questions. With a tool loop configured the model picks
// the handler; otherwise the topic is matched from the text.
type info struct {
	base
	agent contractx.Specialist
}

var _ contractx.Specialist = (*info)(nil)

func (i *info) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	if err := validateRequest(req); err != nil {
		return contractx.SpecialistResponse{}, err
	}

	if i.agent != nil {
		resp, err := i.agent.Run(ctx, req)
		switch {
		case err != nil && resp.Result != nil:
			log.Warn().Err(err).Str("tool", resp.Tool).Msg("info tool loop failed after a handler ran, drafting from its result")
			return i.reply(ctx, contractx.AgentTypeInfo, req, resp.Tool, *resp.Result, ""), nil
		case err != nil:
			log.Warn().Err(err).Msg("info tool loop failed, answering from rules")
		case resp.Message == "" && resp.Result != nil:
			return i.reply(ctx, contractx.AgentTypeInfo, req, resp.Tool, *resp.Result, ""), nil
		default:
			return resp, nil
		}
	}
	return i.answer(ctx, req), nil
}

func (i *info) answer(ctx context.Context, req contractx.SpecialistRequest) contractx.SpecialistResponse {
	text := req.UserMessage
	switch {
	case emergencyTopic.MatchString(text):
		return i.reply(ctx, contractx.AgentTypeInfo, req, toolx.ToolGetEmergencyContacts, i.handlers.GetEmergencyContacts(ctx), "")
	case stateTopic.MatchString(text):
		return i.reply(ctx, contractx.AgentTypeInfo, req, toolx.ToolGetCurrentState, i.handlers.GetCurrentState(ctx, req.Session), "")
	case weatherTopic.MatchString(text):
		env := i.handlers.GetWeather(ctx, req.Session, slotsx.ExtractPlace(text))
		return i.reply(ctx, contractx.AgentTypeInfo, req, toolx.ToolGetWeather, env, "")
	default:
		env := i.handlers.GetDestinationInfo(ctx, req.Session, slotsx.ExtractPlace(text))
		return i.reply(ctx, contractx.AgentTypeInfo, req, toolx.ToolGetDestinationInfo, env, "")
	}
}
