package intent

import (
	"regexp"

	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

// Goal is what a planning turn asks the assistant to do once no new trip details were given.
type Goal string

const (
	GoalNone        Goal = ""
	GoalStartOver   Goal = "start_over"
	GoalHotels      Goal = "hotels"
	GoalTransport   Goal = "transport"
	GoalSuggestions Goal = "suggestions"
	GoalBudget      Goal = "budget"
	GoalPacking     Goal = "packing"
)

var goalPatterns = []struct {
	goal    Goal
	pattern *regexp.Regexp
}{
	{GoalStartOver, regexp.MustCompile(`(?i)\b(?:start over|start again|new trip|reset|forget (?:it|everything|the trip)|clear (?:the )?(?:trip|plan))\b`)},
	{GoalPacking, regexp.MustCompile(`(?i)\b(?:pack|packing)\b`)},
	{GoalBudget, regexp.MustCompile(`(?i)\b(?:how much|cost|estimate|expensive|total budget)\b`)},
	{GoalHotels, regexp.MustCompile(`(?i)\b(?:hotels?|stay|accommodation|hostels?|resorts?|rooms?)\b`)},
	{GoalTransport, regexp.MustCompile(`(?i)\b(?:flights?|trains?|bus(?:es)?|cabs?|taxi|car|transport|get (?:to|there)|travel options?)\b`)},
	{GoalSuggestions, regexp.MustCompile(`(?i)\b(?:things to do|what to do|what should i do|suggest|recommend|attractions?|places to (?:visit|see)|activities|sightseeing|itinerary|plan)\b`)},
}

var modePattern = regexp.MustCompile(`(?i)\b(flights?|plane|trains?|rail|bus(?:es)?|coach|cabs?|taxi|car)\b`)

// DetectGoal returns the first goal, in precedence order, that text asks for.
func DetectGoal(text string) Goal {
	for _, gp := range goalPatterns {
		if gp.pattern.MatchString(text) {
			return gp.goal
		}
	}
	return GoalNone
}

// DetectMode returns the transport mode word in text, or "" when none is named.
func DetectMode(text string) string {
	return modePattern.FindString(text)
}

// Prerequisites lists the session keys a goal needs before its handler can run.
func (g Goal) Prerequisites() []statex.Key {
	switch g {
	case GoalHotels:
		return []statex.Key{statex.KeyDestination, statex.KeyBudgetLevel}
	case GoalTransport:
		return []statex.Key{statex.KeyOrigin, statex.KeyDestination}
	case GoalSuggestions:
		return []statex.Key{statex.KeyDestination}
	case GoalBudget:
		return []statex.Key{statex.KeyDurationDays, statex.KeyBudgetLevel}
	default:
		return nil
	}
}
