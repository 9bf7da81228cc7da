package slots

import (
	"context"
	"regexp"
	"strings"

	"github.com/samber/lo"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	placeAfterPreposition = regexp.MustCompile(`\b(?:to|in)\s+([A-Z]\p{L}+(?:\s[A-Z]\p{L}+)*)`)
	placeAfterPhrase      = regexp.MustCompile(`(?i)\b(?:trip to|travel to|travell?ing to|fly to|flying to|visit|visiting|destination is|holiday in|vacation in|headed to|heading to)\s+(\p{L}{2,})`)
	placeAbout            = regexp.MustCompile(`\b(?i:about|weather (?:in|at|for)|forecast (?:in|for))\s+(\p{L}{2,}(?:\s[A-Z]\p{L}+)*)`)
	originCapitalized     = regexp.MustCompile(`\bfrom\s+([A-Z]\p{L}+(?:\s[A-Z]\p{L}+)*)`)
	originLower           = regexp.MustCompile(`(?i)\b(?:from|leaving|departing)\s+(\p{L}{2,})`)

	durationPhrase = regexp.MustCompile(`(?i)\b(\d+|a few|few|a couple of|couple of)\s*(?:-\s*\d+\s*)?(?:days?|nights?)\b`)

	budgetAmount  = regexp.MustCompile(`(?i)(?:\b(?:budget|spend|under|around|about|upto|up to|inr|rs)\b\.?|₹)\s*(?:is|of|around|about)?\s*(?:₹|rs\.?|inr)?\s*(\d+(?:,\d{2,3})*)`)
	budgetKeyword = regexp.MustCompile(`(?i)\b(low|cheap|budget|affordable|mid-range|mid range|moderate|high|luxury|premium)\b`)

	isoDate      = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	dayMonthDate = regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\b`)
	monthDayDate = regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\s+\d{1,2}(?:st|nd|rd|th)?\b`)
	relativeDate = regexp.MustCompile(`(?i)\b(?:tomorrow|this weekend|next (?:week|weekend|month|monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`)

	namePhrase     = regexp.MustCompile(`\b(?i:my name is|name:)\s+(\p{L}+(?:\s[A-Z]\p{L}+)*)`)
	nameIntroduced = regexp.MustCompile(`\b(?:[Ii] am|I'm|[Tt]his is)\s+([A-Z]\p{L}+(?:\s[A-Z]\p{L}+)*)`)
	emailPattern   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern   = regexp.MustCompile(`\+?\d[\d\s\-]{7,}\d`)
)

const minPhoneDigits = 10

var interestKeywords = map[string]string{
	"beach":      "Beach",
	"beaches":    "Beach",
	"adventure":  "Adventure",
	"trek":       "Adventure",
	"trekking":   "Adventure",
	"hiking":     "Adventure",
	"culture":    "Culture",
	"cultural":   "Culture",
	"history":    "History",
	"historical": "History",
	"heritage":   "History",
	"nature":     "Nature",
	"wildlife":   "Wildlife",
	"food":       "Food",
	"nightlife":  "Nightlife",
	"shopping":   "Shopping",
	"religious":  "Religious",
	"temples":    "Religious",
	"relaxation": "Relaxation",
}

var interestOrder = []string{
	"Beach", "Adventure", "Culture", "History", "Nature", "Wildlife",
	"Food", "Nightlife", "Shopping", "Religious", "Relaxation",
}

// notPlaces are capitalised words that commonly follow "to"/"in" without naming a place.
var notPlaces = map[string]struct{}{
	"i": {}, "the": {}, "a": {}, "an": {}, "my": {}, "me": {}, "some": {}, "book": {}, "go": {}, "see": {}, "please": {},
	"it": {}, "this": {}, "that": {}, "there": {}, "here": {},
	"budget": {}, "luxury": {}, "mid-range": {},
	"january": {}, "february": {}, "march": {}, "april": {}, "may": {}, "june": {}, "july": {},
	"august": {}, "september": {}, "october": {}, "november": {}, "december": {},
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {}, "friday": {}, "saturday": {}, "sunday": {},
}

// TitleCase normalises a place or interest name for storage and lookups.
// A Caser is stateful, so each call gets its own.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// RuleExtractor pulls trip details and identity out of a turn with regular expressions.
// It never fails and never reads the session.
type RuleExtractor struct{}

func NewRuleExtractor() RuleExtractor {
	return RuleExtractor{}
}

func (RuleExtractor) Extract(_ context.Context, req contractx.ExtractRequest) (contractx.Extraction, error) {
	text := req.UserMessage
	return contractx.Extraction{
		Trip: contractx.TripParameters{
			Destination: extractDestination(text),
			Origin:      extractOrigin(text),
			Duration:    extractDuration(text),
			Budget:      extractBudget(text),
			Interests:   ExtractInterests(text),
			TravelDate:  extractTravelDate(text),
		},
		Identity: ExtractIdentity(text),
	}, nil
}

func extractDestination(text string) string {
	for _, re := range []*regexp.Regexp{placeAfterPreposition, placeAfterPhrase} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if place := cleanPlace(m[1]); place != "" {
				return place
			}
		}
	}
	return ""
}

// ExtractPlace finds the place a question is about, e.g. "tell me about Udaipur"
// or "weather in goa", falling back to destination phrasing.
func ExtractPlace(text string) string {
	for _, m := range placeAbout.FindAllStringSubmatch(text, -1) {
		if place := cleanPlace(m[1]); place != "" {
			return place
		}
	}
	return extractDestination(text)
}

func extractOrigin(text string) string {
	for _, re := range []*regexp.Regexp{originCapitalized, originLower} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if place := cleanPlace(m[1]); place != "" {
				return place
			}
		}
	}
	return ""
}

// cleanPlace keeps the words before the first stop word and title-cases them.
func cleanPlace(candidate string) string {
	var kept []string
	for _, w := range strings.Fields(candidate) {
		if _, stop := notPlaces[strings.ToLower(w)]; stop {
			break
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return ""
	}
	return TitleCase(strings.Join(kept, " "))
}

func extractDuration(text string) string {
	return strings.TrimSpace(durationPhrase.FindString(text))
}

// extractBudget ignores numbers that belong to a trip length or a date, so
// "about 5 days" is not read as an amount.
func extractBudget(text string) string {
	amountText := text
	for _, re := range []*regexp.Regexp{durationPhrase, isoDate, dayMonthDate, monthDayDate} {
		amountText = re.ReplaceAllString(amountText, " ")
	}
	if m := budgetAmount.FindStringSubmatch(amountText); m != nil {
		return m[1]
	}
	m := budgetKeyword.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	switch strings.ToLower(m[1]) {
	case "cheap", "affordable", "budget", "low":
		return "low"
	case "high", "luxury", "premium":
		return "luxury"
	default:
		return "mid-range"
	}
}

// ExtractInterests returns the canonical interests mentioned in text, in a stable order.
func ExtractInterests(text string) []string {
	found := map[string]struct{}{}
	for _, word := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	}) {
		if canonical, ok := interestKeywords[word]; ok {
			found[canonical] = struct{}{}
		}
	}
	return lo.Filter(interestOrder, func(name string, _ int) bool {
		_, ok := found[name]
		return ok
	})
}

func extractTravelDate(text string) string {
	for _, re := range []*regexp.Regexp{isoDate, dayMonthDate, monthDayDate, relativeDate} {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// ExtractIdentity finds a full name and a contact (email or phone number) in text.
func ExtractIdentity(text string) contractx.Identity {
	var id contractx.Identity
	if m := namePhrase.FindStringSubmatch(text); m != nil {
		id.Name = TitleCase(m[1])
	} else if m := nameIntroduced.FindStringSubmatch(text); m != nil {
		id.Name = m[1]
	}
	if email := emailPattern.FindString(text); email != "" {
		id.Contact = strings.ToLower(email)
	} else if phone := findPhone(text); phone != "" {
		id.Contact = phone
	}
	return id
}

// findPhone returns the first digit sequence long enough to be a phone number,
// with spaces and dashes removed.
func findPhone(text string) string {
	for _, candidate := range phonePattern.FindAllString(text, -1) {
		compact := strings.Map(func(r rune) rune {
			if r == ' ' || r == '-' || r == '\t' {
				return -1
			}
			return r
		}, candidate)
		digits := lo.CountBy([]rune(compact), func(r rune) bool { return r >= '0' && r <= '9' })
		if digits >= minPhoneDigits {
			return compact
		}
	}
	return ""
}
