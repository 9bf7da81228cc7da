package specialist

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	intentx "github.com/tanpawarit/Chative-Travel-Assistant/agent/intent"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

const (
	greetingWelcome = "Hello! Welcome to TravelBot. To get started, could you please provide your full name and contact information?"
	commandWelcome  = "I can certainly help you with %s. But first, to personalize your experience, could you please provide your full name and contact information?"
	askContact      = "Thanks, %s! Could you also share your contact information, like an email address or phone number?"
	askName         = "Thanks! Could you also tell me your full name?"
	afterWelcome    = "How can I help you with your travel plans today?"
)

// authenticator gates every turn until the user has identified themselves.
type authenticator struct {
	base
}

var _ contractx.Specialist = (*authenticator)(nil)

func (a *authenticator) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	if err := validateRequest(req); err != nil {
		return contractx.SpecialistResponse{}, err
	}
	if req.Session.UserAuthenticated {
		return contractx.SpecialistResponse{}, nil
	}

	id := a.extract(ctx, contractx.AgentTypeAuthenticator, req).Identity
	req.Session.RememberIdentity(id.Name, id.Contact)
	id.Name = req.Session.PendingUserName
	id.Contact = req.Session.PendingUserContact

	switch {
	case id.Complete():
		env := a.handlers.AuthenticateUser(ctx, req.Session, id.Name, id.Contact)
		draft := env.ErrorMessage
		if env.OK() {
			draft = env.Message + " " + afterWelcome
		}
		return a.reply(ctx, contractx.AgentTypeAuthenticator, req, toolx.ToolAuthenticateUser, env, draft), nil
	case strings.TrimSpace(id.Name) != "":
		return contractx.SpecialistResponse{Message: fmt.Sprintf(askContact, strings.Fields(id.Name)[0])}, nil
	case strings.TrimSpace(id.Contact) != "":
		return contractx.SpecialistResponse{Message: askName}, nil
	case intentx.IsGreeting(req.UserMessage):
		return contractx.SpecialistResponse{Message: greetingWelcome}, nil
	default:
		return contractx.SpecialistResponse{Message: fmt.Sprintf(commandWelcome, describeRequest(req.UserMessage))}, nil
	}
}

// describeRequest names what the user asked for, for the acknowledgement.
func describeRequest(text string) string {
	switch intentx.DetectGoal(text) {
	case intentx.GoalHotels:
		return "finding a hotel"
	case intentx.GoalTransport:
		if mode := toolx.NormalizeMode(intentx.DetectMode(text)); mode != "" {
			return "finding a " + strings.ToLower(mode)
		}
		return "finding transport"
	case intentx.GoalSuggestions:
		return "planning your trip"
	case intentx.GoalBudget:
		return "estimating your budget"
	case intentx.GoalPacking:
		return "a packing list"
	}
	switch intentx.Classify(text) {
	case contractx.IntentInfo:
		return "travel information"
	case contractx.IntentConfirmation:
		return "your booking"
	default:
		return "your travel plans"
	}
}

func validateRequest(req contractx.SpecialistRequest) error {
	if req.Session == nil {
		return fmt.Errorf("%w: session is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		return fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}
	return nil
}
