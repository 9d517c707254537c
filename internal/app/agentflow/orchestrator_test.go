package agentflow_test

import (
	"context"
	"testing"

	"github.com/slotline/slotline-agent/internal/adapters/llm"
	"github.com/slotline/slotline-agent/internal/adapters/storage/memory"
	"github.com/slotline/slotline-agent/internal/app/agentflow"
	"github.com/slotline/slotline-agent/internal/app/booking"
	"github.com/slotline/slotline-agent/internal/app/tools"
	"github.com/slotline/slotline-agent/internal/domain"
)

func newTestRegistry(t *testing.T) (*tools.Registry, *booking.Service) {
	t.Helper()

	svc := booking.NewService(booking.DefaultCatalog(), memory.NewBookingStore())
	reg := tools.NewRegistry(
		tools.NewListServicesTool(svc),
		tools.NewCheckAvailabilityTool(svc),
		tools.NewBookAppointmentTool(svc),
	)
	return reg, svc
}

func TestRunReturnsFinalReplyWithoutTools(t *testing.T) {
	reg, _ := newTestRegistry(t)
	mock := llm.NewMockLLM(&domain.AgentStep{Text: "Happy to help!"})

	orch := agentflow.NewOrchestrator(mock, reg)
	reply, err := orch.Run(context.Background(), "hi", domain.ConversationContext{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if reply != "Happy to help!" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestRunExecutesToolCallsBeforeFinalReply(t *testing.T) {
	reg, svc := newTestRegistry(t)
	mock := llm.NewMockLLM(
		&domain.AgentStep{ToolCalls: []domain.ToolCall{{
			Name: "BookAppointment",
			Args: map[string]any{
				"service_type": "haircut",
				"date":         "2025-06-05",
				"time":         "10:00",
				"user_name":    "Alice",
			},
		}}},
		&domain.AgentStep{Text: "You're booked for 10:00!"},
	)

	orch := agentflow.NewOrchestrator(mock, reg)
	reply, err := orch.Run(context.Background(), "book me a haircut", domain.ConversationContext{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if reply != "You're booked for 10:00!" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	available, err := svc.CheckAvailability("haircut", "2025-06-05")
	if err != nil {
		t.Fatalf("CheckAvailability failed: %v", err)
	}
	for _, tm := range available {
		if tm == "10:00" {
			t.Fatal("tool call did not commit the booking")
		}
	}
}

func TestRunFallsBackWhenBudgetExhausted(t *testing.T) {
	reg, _ := newTestRegistry(t)

	// every step asks for another tool call, never a final reply
	var steps []*domain.AgentStep
	for i := 0; i < 10; i++ {
		steps = append(steps, &domain.AgentStep{ToolCalls: []domain.ToolCall{{
			Name: "ListServices",
		}}})
	}
	mock := llm.NewMockLLM(steps...)

	orch := agentflow.NewOrchestrator(mock, reg)
	reply, err := orch.Run(context.Background(), "hmm", domain.ConversationContext{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a fallback reply, got empty string")
	}
}

func TestRunFallsBackOnEmptyStep(t *testing.T) {
	reg, _ := newTestRegistry(t)
	mock := llm.NewMockLLM(&domain.AgentStep{})

	orch := agentflow.NewOrchestrator(mock, reg)
	reply, err := orch.Run(context.Background(), "hm", domain.ConversationContext{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if reply == "" {
		t.Fatal("expected a fallback reply, got empty string")
	}
}
