package specialist

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/Chative-Travel-Assistant/agent/contract"
)

type stepFunc func(context.Context, *planningState) (contractx.SpecialistResponse, error)

func compilePlanningGraph(
	ctx context.Context,
	gather func(context.Context, contractx.SpecialistRequest) (*planningState, error),
	acknowledge stepFunc,
	executeGoal stepFunc,
) (compose.Runnable[contractx.SpecialistRequest, contractx.SpecialistResponse], error) {
	graph := compose.NewGraph[contractx.SpecialistRequest, contractx.SpecialistResponse]()

	if err := graph.AddLambdaNode("gather_details",
		compose.InvokableLambda(func(ctx context.Context, req contractx.SpecialistRequest) (*planningState, error) {
			return gather(ctx, req)
		}),
	); err != nil {
		return nil, fmt.Errorf("add planning gather node: %w", err)
	}

	guard := func(step stepFunc) *compose.Lambda {
		return compose.InvokableLambda(func(ctx context.Context, in *planningState) (contractx.SpecialistResponse, error) {
			if in == nil {
				return contractx.SpecialistResponse{}, fmt.Errorf("%w: planning graph state is nil", contractx.ErrValidation)
			}
			return step(ctx, in)
		})
	}
	if err := graph.AddLambdaNode("acknowledge", guard(acknowledge)); err != nil {
		return nil, fmt.Errorf("add planning acknowledge node: %w", err)
	}
	if err := graph.AddLambdaNode("execute_goal", guard(executeGoal)); err != nil {
		return nil, fmt.Errorf("add planning execute node: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *planningState) (string, error) {
			if in == nil {
				return "", fmt.Errorf("%w: planning graph state is nil", contractx.ErrValidation)
			}
			if len(in.Updated) > 0 {
				return "acknowledge", nil
			}
			return "execute_goal", nil
		},
		map[string]bool{
			"acknowledge":  true,
			"execute_goal": true,
		},
	)

	if err := graph.AddBranch("gather_details", branch); err != nil {
		return nil, fmt.Errorf("add planning branch: %w", err)
	}
	if err := graph.AddEdge(compose.START, "gather_details"); err != nil {
		return nil, fmt.Errorf("add planning edge start->gather: %w", err)
	}
	if err := graph.AddEdge("acknowledge", compose.END); err != nil {
		return nil, fmt.Errorf("add planning edge acknowledge->end: %w", err)
	}
	if err := graph.AddEdge("execute_goal", compose.END); err != nil {
		return nil, fmt.Errorf("add planning edge execute->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("planning.runtime_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile planning runtime graph: %w", err)
	}
	return runner, nil
}
