// Package intent classifies authenticated user turns without a model.
package intent

import (
	"context"
	"regexp"
	"strings"

	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
)

var (
	greetings = map[string]struct{}{
		"hi": {}, "hello": {}, "hey": {}, "hiya": {}, "thanks": {}, "thank you": {}, "thx": {},
		"good morning": {}, "good afternoon": {}, "good evening": {}, "namaste": {},
	}

	greetingSuffixes = []string{"there", "again", "travelbot", "so much"}

	confirmationPattern = regexp.MustCompile(`(?i)\b(?:book it|book (?:this|that|the|them)|confirm|go ahead|finali[sz]e|reserve it|lock it in)\b`)
	infoPattern         = regexp.MustCompile(`(?i)\b(?:tell me about|weather|forecast|emergency|helpline|police|ambulance|debug state|current state|flight status)\b`)
)

// IsGreeting reports whether text is nothing more than a greeting or a thank-you.
func IsGreeting(text string) bool {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	normalized = strings.TrimRight(normalized, "!.?, ")
	if _, ok := greetings[normalized]; ok {
		return true
	}
	for _, suffix := range greetingSuffixes {
		if head, ok := strings.CutSuffix(normalized, " "+suffix); ok {
			if _, ok := greetings[strings.TrimRight(head, ", ")]; ok {
				return true
			}
		}
	}
	return false
}

// Classify picks an intent with the precedence confirmation, info, planning.
func Classify(text string) contractx.Intent {
	switch {
	case IsGreeting(text):
		return contractx.IntentGreeting
	case confirmationPattern.MatchString(text):
		return contractx.IntentConfirmation
	case infoPattern.MatchString(text):
		return contractx.IntentInfo
	default:
		return contractx.IntentPlanning
	}
}

// RuleClassifier is the keyword-based contract.Classifier.
type RuleClassifier struct{}

var _ contractx.Classifier = RuleClassifier{}

func NewRuleClassifier() RuleClassifier {
	return RuleClassifier{}
}

func (RuleClassifier) Classify(_ context.Context, req contractx.ClassifyRequest) (contractx.Intent, error) {
	return Classify(req.UserMessage), nil
}
