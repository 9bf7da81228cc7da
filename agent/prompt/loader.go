package prompt

import (
	_ "embed"
	"strings"
)

var (
	//go:embed template/router.txt
	routerRaw string

	//go:embed template/extractor.txt
	extractorRaw string

	//go:embed template/responder.txt
	responderRaw string

	//go:embed template/info.txt
	infoRaw string
)

// PromptSet holds the system prompts for each model-backed component.
// Prompts are rendered as FString templates, so they must not contain braces.
type PromptSet struct {
	Router    string
	Extractor string
	Responder string
	Info      string
}

func LoadPromptSet() PromptSet {
	return PromptSet{
		Router:    strings.TrimSpace(routerRaw),
		Extractor: strings.TrimSpace(extractorRaw),
		Responder: strings.TrimSpace(responderRaw),
		Info:      strings.TrimSpace(infoRaw),
	}
}
