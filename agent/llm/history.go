package llm

import (
	"github.com/cloudwego/eino/schema"
	statex "github.com/tanpawarit/Chative-Travel-Assistant/agent/state"
)

// contextTurns bounds how much transcript is sent with each model call.
const contextTurns = 8

func recentTurns(st *statex.SessionState) []map[string]string {
	if st == nil {
		return nil
	}
	turns := st.History
	if len(turns) > contextTurns {
		turns = turns[len(turns)-contextTurns:]
	}
	out := make([]map[string]string, 0, len(turns))
	for _, t := range turns {
		out = append(out, map[string]string{"role": string(t.Role), "content": t.Content})
	}
	return out
}

func historyMessages(st *statex.SessionState) []*schema.Message {
	if st == nil {
		return nil
	}
	turns := st.History
	if len(turns) > contextTurns {
		turns = turns[len(turns)-contextTurns:]
	}
	out := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case statex.RoleUser:
			out = append(out, schema.UserMessage(t.Content))
		case statex.RoleAssistant:
			out = append(out, schema.AssistantMessage(t.Content, nil))
		}
	}
	return out
}
