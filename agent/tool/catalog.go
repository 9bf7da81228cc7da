package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

const (
	ToolStoreTripParameters    = "store_trip_parameters"
	ToolClearTripState         = "clear_trip_state"
	ToolGetBudgetEstimate      = "get_budget_estimate"
	ToolGeneratePackingList    = "generate_packing_list"
	ToolGetCurrentState        = "get_current_state"
	ToolSearchHotels           = "search_hotels"
	ToolFindTransport          = "find_flights_trains_or_buses"
	ToolGetLocationSuggestions = "get_location_suggestions"
	ToolGetDestinationInfo     = "get_destination_info"
	ToolGetEmergencyContacts   = "get_emergency_contacts"
	ToolGetWeather             = "get_weather"
	ToolAuthenticateUser       = "process_and_authenticate_user"
	ToolConfirmBooking         = "confirm_booking"
)

// Executor runs one model-requested tool call against the session.
type Executor func(ctx context.Context, st *statex.SessionState, tool string, args map[string]any) (contractx.Envelope, error)

// BuildForAgent returns the tools an agent may call and an executor restricted to them.
func (t *Toolbox) BuildForAgent(agentType contractx.AgentType) ([]*schema.ToolInfo, Executor) {
	infos := InfosForAgent(agentType)
	allowed := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		allowed[info.Name] = struct{}{}
	}
	return infos, func(ctx context.Context, st *statex.SessionState, tool string, args map[string]any) (contractx.Envelope, error) {
		if _, ok := allowed[tool]; !ok {
			return contractx.Envelope{}, fmt.Errorf("%w: tool=%s is not available for agent=%s", contractx.ErrUnknownTool, tool, agentType)
		}
		return t.Execute(ctx, st, tool, args)
	}
}

// Execute dispatches a tool call by name. Unknown names are an error; handler
// failures are reported in the envelope.
func (t *Toolbox) Execute(ctx context.Context, st *statex.SessionState, tool string, args map[string]any) (contractx.Envelope, error) {
	switch tool {
	case ToolStoreTripParameters:
		return t.StoreTripParameters(ctx, st, contractx.TripParameters{
			Destination: argString(args, "destination"),
			Origin:      argString(args, "origin"),
			Duration:    argString(args, "duration_days"),
			Budget:      argString(args, "budget"),
			Interests:   argStrings(args, "interests"),
			TravelDate:  argString(args, "travel_date"),
		}), nil
	case ToolClearTripState:
		return t.ClearTripState(ctx, st), nil
	case ToolGetBudgetEstimate:
		return t.GetBudgetEstimate(ctx, st), nil
	case ToolGeneratePackingList:
		return t.GeneratePackingList(ctx, st), nil
	case ToolGetCurrentState:
		return t.GetCurrentState(ctx, st), nil
	case ToolSearchHotels:
		return t.SearchHotels(ctx, st), nil
	case ToolFindTransport:
		return t.FindTransport(ctx, st, argString(args, "mode")), nil
	case ToolGetLocationSuggestions:
		return t.GetLocationSuggestions(ctx, st), nil
	case ToolGetDestinationInfo:
		return t.GetDestinationInfo(ctx, st, argString(args, "destination")), nil
	case ToolGetEmergencyContacts:
		return t.GetEmergencyContacts(ctx), nil
	case ToolGetWeather:
		return t.GetWeather(ctx, st, argString(args, "location")), nil
	case ToolAuthenticateUser:
		return t.AuthenticateUser(ctx, st, argString(args, "name"), argString(args, "contact")), nil
	case ToolConfirmBooking:
		return t.ConfirmBooking(ctx, st, argString(args, "selected_hotel_id"), argString(args, "selected_transport_id")), nil
	default:
		return contractx.Envelope{}, fmt.Errorf("%w: %s", contractx.ErrUnknownTool, tool)
	}
}

func argString(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%g", v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func argStrings(args map[string]any, key string) []string {
	switch v := args[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	case []string:
		return v
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

var (
	storeTripParametersInfo = &schema.ToolInfo{
		Name: ToolStoreTripParameters,
		Desc: "Save any new trip details the user mentioned. Only pass fields the user actually gave.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"destination":   {Type: schema.String, Desc: "City the user wants to visit"},
			"origin":        {Type: schema.String, Desc: "City the user travels from"},
			"duration_days": {Type: schema.String, Desc: "Trip length as the user said it, e.g. 5 days"},
			"budget":        {Type: schema.String, Desc: "Budget as the user said it: an amount or low, mid-range, luxury"},
			"interests":     {Type: schema.Array, ElemInfo: &schema.ParameterInfo{Type: schema.String}, Desc: "Interests such as beach, adventure, culture"},
			"travel_date":   {Type: schema.String, Desc: "When the user wants to travel"},
		}),
	}
	noArgs = schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{})
)

// InfosForAgent lists the tool schemas offered to an agent's model.
func InfosForAgent(agentType contractx.AgentType) []*schema.ToolInfo {
	switch agentType {
	case contractx.AgentTypeAuthenticator:
		return []*schema.ToolInfo{
			{
				Name: ToolAuthenticateUser,
				Desc: "Authenticate the user by full name and contact (email or phone), registering them if new.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"name":    {Type: schema.String, Desc: "Full name", Required: true},
					"contact": {Type: schema.String, Desc: "Email address or phone number", Required: true},
				}),
			},
		}
	case contractx.AgentTypePlanning:
		return []*schema.ToolInfo{
			storeTripParametersInfo,
			{Name: ToolClearTripState, Desc: "Forget the current trip plan so the user can start over.", ParamsOneOf: noArgs},
			{Name: ToolGetBudgetEstimate, Desc: "Estimate total trip cost from duration and budget level.", ParamsOneOf: noArgs},
			{Name: ToolGetLocationSuggestions, Desc: "Suggest attractions at the destination matching the user's interests.", ParamsOneOf: noArgs},
			{Name: ToolSearchHotels, Desc: "Find the top rated hotels at the destination in the user's budget level.", ParamsOneOf: noArgs},
			{
				Name: ToolFindTransport,
				Desc: "Find flights, trains, buses or cars from origin to destination.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"mode": {Type: schema.String, Desc: "Optional transport mode", Enum: TransportModes},
				}),
			},
			{Name: ToolGeneratePackingList, Desc: "Suggest what to pack for the trip.", ParamsOneOf: noArgs},
		}
	case contractx.AgentTypeInfo:
		return []*schema.ToolInfo{
			storeTripParametersInfo,
			{
				Name: ToolGetWeather,
				Desc: "Get a live weather forecast for a city.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"location": {Type: schema.String, Desc: "City name; defaults to the trip destination"},
				}),
			},
			{
				Name: ToolGetDestinationInfo,
				Desc: "Describe a destination and list its popular attractions.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"destination": {Type: schema.String, Desc: "City name; defaults to the trip destination"},
				}),
			},
			{Name: ToolGetEmergencyContacts, Desc: "List emergency phone numbers.", ParamsOneOf: noArgs},
			{Name: ToolGetCurrentState, Desc: "Show the saved trip details, for debugging.", ParamsOneOf: noArgs},
		}
	case contractx.AgentTypeConfirmation:
		return []*schema.ToolInfo{
			{
				Name: ToolConfirmBooking,
				Desc: "Book the selected hotel, and transport if one was chosen.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"selected_hotel_id":     {Type: schema.String, Desc: "Id of the hotel shown to the user", Required: true},
					"selected_transport_id": {Type: schema.String, Desc: "Id of the transport option, if any"},
				}),
			},
		}
	default:
		return nil
	}
}
