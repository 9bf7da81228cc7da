package prompt

import (
	"strings"
	"testing"
)

func TestLoadPromptSet(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()
	prompts := map[string]string{
		"router":    set.Router,
		"extractor": set.Extractor,
		"responder": set.Responder,
		"info":      set.Info,
	}
	for name, p := range prompts {
		if p == "" {
			t.Fatalf("%s prompt is empty", name)
		}
		if p != strings.TrimSpace(p) {
			t.Fatalf("%s prompt is not trimmed", name)
		}
		// FString rendering treats braces as placeholders.
		if strings.ContainsAny(p, "{}") {
			t.Fatalf("%s prompt contains braces", name)
		}
	}
	if !strings.Contains(set.Router, "greeting, planning, info, confirmation") {
		t.Fatalf("router prompt does not list the intents")
	}
}
