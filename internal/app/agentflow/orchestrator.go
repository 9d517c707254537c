package agentflow

import (
	"context"
	"fmt"
	"time"

	"github.com/slotline/slotline-agent/internal/app/tools"
	"github.com/slotline/slotline-agent/internal/domain"
	"github.com/slotline/slotline-agent/internal/observability"
)

// defaultMaxSteps bounds the reasoning loop; each step is one round trip
// to the model plus any tool calls it requested.
const defaultMaxSteps = 6

// fallbackReply is returned when the loop runs out of steps without a
// final answer, so the user never sees a raw failure.
const fallbackReply = "Sorry, I got a bit tangled up there. Could you rephrase what you'd like to book?"

// Orchestrator drives the reasoning backend through the tool-invocation
// contract: ask for the next step, execute any requested tool calls,
// feed the results back, and stop at the first final reply.
type Orchestrator struct {
	llm      domain.LLMClient
	registry *tools.Registry
	maxSteps int
}

func NewOrchestrator(llm domain.LLMClient, registry *tools.Registry) *Orchestrator {
	return &Orchestrator{
		llm:      llm,
		registry: registry,
		maxSteps: defaultMaxSteps,
	}
}

// Run produces the assistant's reply for one user message.
func (o *Orchestrator) Run(
	ctx context.Context,
	input string,
	convCtx domain.ConversationContext,
) (string, error) {
	log := observability.LoggerFromContext(ctx).With(
		"session_id", convCtx.SessionID,
		"user_id", convCtx.UserID,
	)
	log.Info("orchestrator started")

	defs := o.registry.Definitions()
	tctx := tools.ToolContext{
		UserID:    string(convCtx.UserID),
		SessionID: string(convCtx.SessionID),
		RequestID: observability.RequestIDFromContext(ctx),
	}

	var exchanges []domain.ToolExchange

	for step := 0; step < o.maxSteps; step++ {
		start := time.Now()

		st, err := o.llm.NextStep(ctx, input, convCtx, defs, exchanges)
		if err != nil {
			log.Error("reasoning step failed", "step", step, "error", err)
			return "", fmt.Errorf("reasoning step %d: %w", step, err)
		}

		log.Info("reasoning step done",
			"step", step,
			"tool_calls", len(st.ToolCalls),
			"elapsed_ms", time.Since(start).Milliseconds())

		if len(st.ToolCalls) == 0 {
			if st.Text == "" {
				log.Warn("reasoning produced neither text nor tool calls")
				return fallbackReply, nil
			}
			log.Info("orchestrator end", "steps", step+1)
			return st.Text, nil
		}

		for _, call := range st.ToolCalls {
			out := o.registry.Dispatch(ctx, tctx, call)
			exchanges = append(exchanges, domain.ToolExchange{
				Call:   call,
				Output: out,
			})
		}
	}

	log.Warn("orchestrator step budget exhausted", "max_steps", o.maxSteps)
	return fallbackReply, nil
}
