package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/slotline/slotline-agent/internal/domain"
)

// MockLLM is a scriptable stand-in for the reasoning backend, used in
// local mode and tests. Scripted steps are consumed in order; once they
// run out it falls back to a canned clarifying reply.
type MockLLM struct {
	mu    sync.Mutex
	steps []*domain.AgentStep
}

func NewMockLLM(steps ...*domain.AgentStep) *MockLLM {
	return &MockLLM{steps: steps}
}

func (m *MockLLM) NextStep(
	ctx context.Context,
	input string,
	convCtx domain.ConversationContext,
	tools []domain.ToolDefinition,
	exchanges []domain.ToolExchange,
) (*domain.AgentStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.steps) > 0 {
		st := m.steps[0]
		m.steps = m.steps[1:]
		return st, nil
	}

	return &domain.AgentStep{
		Text: fmt.Sprintf("I hear you: %q. Which service and date did you have in mind?", input),
	}, nil
}
