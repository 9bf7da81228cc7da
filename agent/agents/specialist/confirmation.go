package specialist

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

var (
	idToken        = regexp.MustCompile(`\b[A-Za-z]{2,5}\d{1,4}\b`)
	transportWords = regexp.MustCompile(`(?i)\b(?:flights?|trains?|bus|car|cab|transport|both|everything|all of it)\b`)
)

// confirmation books the hotel, and optionally the transport, the user picked
// from the options listed earlier in the conversation.
type confirmation struct {
	base
}

var _ contractx.Specialist = (*confirmation)(nil)

func (c *confirmation) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	if err := validateRequest(req); err != nil {
		return contractx.SpecialistResponse{}, err
	}
	s := req.Session

	hotelID, transportID := selectBooking(req.UserMessage, s.OfferedHotelIDs, s.OfferedTransportIDs)
	if hotelID == "" {
		if len(s.OfferedHotelIDs) == 0 {
			return contractx.SpecialistResponse{
				Message: "I don't have a hotel picked out for you yet. Would you like me to search for hotels first?",
			}, nil
		}
		return contractx.SpecialistResponse{
			Message: fmt.Sprintf("Which hotel would you like to book? Please reply with its ID: %s.", strings.Join(s.OfferedHotelIDs, ", ")),
		}, nil
	}

	env := c.handlers.ConfirmBooking(ctx, s, hotelID, transportID)
	draft := ""
	if !env.OK() {
		draft = env.ErrorMessage + " Please try again."
	}
	return c.reply(ctx, contractx.AgentTypeConfirmation, req, toolx.ToolConfirmBooking, env, draft), nil
}

// selectBooking picks the ids to book from text. Ids that were offered win; a
// lone offered hotel is assumed; the single offered transport is only added
// when the user mentions transport. Unrecognised ids are passed through so the
// booking reports them as not found.
func selectBooking(text string, hotels, transport []string) (hotelID, transportID string) {
	var unknown []string
	for _, tok := range idToken.FindAllString(text, -1) {
		id := strings.ToUpper(tok)
		switch {
		case hotelID == "" && slices.Contains(hotels, id):
			hotelID = id
		case transportID == "" && slices.Contains(transport, id):
			transportID = id
		case !slices.Contains(hotels, id) && !slices.Contains(transport, id):
			unknown = append(unknown, id)
		}
	}

	if hotelID == "" {
		switch {
		case len(unknown) > 0:
			hotelID, unknown = unknown[0], unknown[1:]
		case len(hotels) == 1:
			hotelID = hotels[0]
		}
	}
	if transportID == "" {
		switch {
		case len(unknown) > 0:
			transportID = unknown[0]
		case len(transport) == 1 && transportWords.MatchString(text):
			transportID = transport[0]
		}
	}
	return hotelID, transportID
}
