package slots

import (
	"regexp"
	"strconv"
	"strings"

	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

const (
	budgetUpperBound = 15000
	luxuryLowerBound = 50000
)

var (
	digitRun     = regexp.MustCompile(`\d+`)
	groupedDigit = regexp.MustCompile(`\d+(?:,\d{2,3})*`)
)

// ClassifyBudget maps free-form budget text to a level. Keywords win over numbers:
// "low"/"budget" then "high"/"luxury". A number at or below 15000 is Budget, at or
// above 50000 is Luxury, anything between is Mid-Range. Text with neither keywords
// nor digits is Mid-Range. ok is false only for blank input.
func ClassifyBudget(raw string) (level statex.BudgetLevel, ok bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return "", false
	}

	switch {
	case strings.Contains(text, "low") || strings.Contains(text, "budget"):
		return statex.BudgetLow, true
	case strings.Contains(text, "high") || strings.Contains(text, "luxury"):
		return statex.BudgetHigh, true
	}

	num := groupedDigit.FindString(text)
	if num == "" {
		return statex.BudgetMid, true
	}
	amount, err := strconv.ParseInt(strings.ReplaceAll(num, ",", ""), 10, 64)
	if err != nil {
		// Only overflow reaches here, which is far above the luxury bound.
		return statex.BudgetHigh, true
	}

	switch {
	case amount <= budgetUpperBound:
		return statex.BudgetLow, true
	case amount >= luxuryLowerBound:
		return statex.BudgetHigh, true
	default:
		return statex.BudgetMid, true
	}
}

// ParseDuration returns the first run of digits in raw as a day count.
// ok is false when there are no digits, the run overflows, or it is zero.
func ParseDuration(raw string) (days int, ok bool) {
	run := digitRun.FindString(raw)
	if run == "" {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
