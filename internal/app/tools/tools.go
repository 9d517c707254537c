package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/slotline/slotline-agent/internal/domain"
	"github.com/slotline/slotline-agent/internal/observability"
)

// ToolContext brings metadata of the call to the tool
type ToolContext struct {
	UserID    string
	SessionID string
	RequestID string
}

// Tool represents an operation the agent can invoke. Input/output is a
// generic map to maintain flexibility across reasoning backends.
type Tool interface {
	Definition() domain.ToolDefinition

	// SafeDefault is the well-formed result returned when the invocation
	// faults. The reasoning component must always receive a usable tool
	// result, never an error it cannot recover from.
	SafeDefault() map[string]any

	Call(ctx context.Context, tctx ToolContext, input map[string]any) (map[string]any, error)
}

// Registry holds the tool catalog in registration order and dispatches
// calls behind a never-fails boundary.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{
		byName: make(map[string]Tool, len(ts)),
	}
	for _, t := range ts {
		r.tools = append(r.tools, t)
		r.byName[t.Definition().Name] = t
	}
	return r
}

// Definitions returns the tool contracts for the reasoning component, in
// registration order.
func (r *Registry) Definitions() []domain.ToolDefinition {
	out := make([]domain.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.Definition())
	}
	return out
}

// Dispatch runs one tool call. It never returns an error: malformed
// arguments, unknown tools and internal faults are logged and collapsed
// to a safe default so the reasoning loop always gets a result back.
func (r *Registry) Dispatch(ctx context.Context, tctx ToolContext, call domain.ToolCall) map[string]any {
	log := observability.LoggerFromContext(ctx).With(
		"tool", call.Name,
		"session_id", tctx.SessionID,
	)

	tool, ok := r.byName[call.Name]
	if !ok {
		log.Error("unknown tool requested")
		return map[string]any{"error": fmt.Sprintf("unknown tool: %s", call.Name)}
	}

	args := call.Args
	if args == nil {
		args = map[string]any{}
	}

	if err := validateArgs(tool.Definition(), args); err != nil {
		log.Error("tool arguments rejected", "error", err)
		return tool.SafeDefault()
	}

	out, err := tool.Call(ctx, tctx, args)
	if err != nil {
		log.Error("tool call failed", "error", err)
		return tool.SafeDefault()
	}

	return out
}

// validateArgs checks the input map against the tool's declared argument
// schema before the tool ever sees it.
func validateArgs(def domain.ToolDefinition, args map[string]any) error {
	schema := schemaDocument(def)

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(args),
	)
	if err != nil {
		return fmt.Errorf("validating arguments: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("invalid arguments: %s", strings.Join(problems, "; "))
	}
	return nil
}

// schemaDocument renders a ToolDefinition as a JSON schema object.
func schemaDocument(def domain.ToolDefinition) map[string]any {
	props := make(map[string]any, len(def.Parameters))
	for name, p := range def.Parameters {
		props[name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
	}

	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(def.Required) > 0 {
		doc["required"] = def.Required
	}
	return doc
}

// getString pulls a string field out of a tool input map.
func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
