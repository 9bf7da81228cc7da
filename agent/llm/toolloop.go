package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
	toolx "github.com/tanpawarit/Chative-Travel-Assistant/agent/tool"
)

const DefaultMaxToolSteps = 4

const skippedToolCall = `{"status":"error","error_message":"Only one tool can run per turn."}`

// ToolLoop lets a tool-bound model call at most one handler per turn and then
// answer from its result. Model calls per turn are capped at maxSteps.
type ToolLoop struct {
	agentType    contractx.AgentType
	systemPrompt string
	runner       compose.Runnable[[]*schema.Message, *schema.Message]
	exec         toolx.Executor
	maxSteps     int
}

var _ contractx.Specialist = (*ToolLoop)(nil)

func NewToolLoop(
	ctx context.Context,
	agentType contractx.AgentType,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	tools []*schema.ToolInfo,
	exec toolx.Executor,
	maxSteps int,
) (*ToolLoop, error) {
	if exec == nil {
		return nil, fmt.Errorf("%w: tool executor is required", contractx.ErrValidation)
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxToolSteps
	}

	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contractx.ErrModelInvoke, agentType, err)
	}
	runner, err := compileConversationGraph(ctx, toolModel, fmt.Sprintf("%s.tool_loop_graph", agentType))
	if err != nil {
		return nil, fmt.Errorf("%w: compile tool loop graph: %v", contractx.ErrModelInvoke, err)
	}

	return &ToolLoop{
		agentType:    agentType,
		systemPrompt: systemPrompt,
		runner:       runner,
		exec:         exec,
		maxSteps:     maxSteps,
	}, nil
}

// Run returns the model's answer. When the model asks for a second handler the
// loop stops and returns the first result with an empty Message. Errors are
// returned together with any handler result already produced this turn.
func (l *ToolLoop) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	messages := make([]*schema.Message, 0, contextTurns+4)
	messages = append(messages, schema.SystemMessage(l.systemPrompt))
	messages = append(messages, historyMessages(req.Session)...)
	messages = append(messages, schema.UserMessage(req.UserMessage))

	var resp contractx.SpecialistResponse
	for step := 0; step < l.maxSteps; step++ {
		msg, err := l.runner.Invoke(ctx, messages)
		if err != nil {
			return resp, fmt.Errorf("%w: %s tool loop: %v", contractx.ErrModelInvoke, l.agentType, err)
		}
		if msg == nil {
			return resp, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
		}

		if len(msg.ToolCalls) == 0 {
			resp.Message = strings.TrimSpace(msg.Content)
			if resp.Message == "" && resp.Result == nil {
				return resp, fmt.Errorf("%w: model returned neither content nor tool calls", contractx.ErrSchemaViolation)
			}
			return resp, nil
		}
		if resp.Result != nil {
			log.Debug().Str("agent", string(l.agentType)).Msg("model asked for a second tool, answering from the first result")
			return resp, nil
		}

		messages = append(messages, msg)
		for i, call := range msg.ToolCalls {
			if i > 0 {
				messages = append(messages, schema.ToolMessage(skippedToolCall, call.ID))
				continue
			}
			env, err := l.runTool(ctx, req, call)
			if err != nil {
				return resp, err
			}
			resp.Tool = call.Function.Name
			resp.Result = &env

			content, err := json.Marshal(env)
			if err != nil {
				return resp, fmt.Errorf("%w: marshal tool result: %v", contractx.ErrValidation, err)
			}
			messages = append(messages, schema.ToolMessage(string(content), call.ID))
		}
	}
	return resp, fmt.Errorf("%w: agent=%s steps=%d", contractx.ErrToolStepLimit, l.agentType, l.maxSteps)
}

func (l *ToolLoop) runTool(ctx context.Context, req contractx.SpecialistRequest, call schema.ToolCall) (contractx.Envelope, error) {
	name := strings.TrimSpace(call.Function.Name)
	if name == "" {
		return contractx.Envelope{}, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return contractx.Envelope{}, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
		}
	}

	env, err := l.exec(ctx, req.Session, name, args)
	if err != nil {
		return contractx.Envelope{}, fmt.Errorf("%w: agent=%s: %v", contractx.ErrSchemaViolation, l.agentType, err)
	}
	return env, nil
}
