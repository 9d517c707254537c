package domain

// ToolParam describes one named argument of a tool.
type ToolParam struct {
	Type        string // JSON schema type: "string", "integer", ...
	Description string
}

// ToolDefinition is the contract a tool publishes to the reasoning
// component: a name, a natural-language description (consumed by the
// model to decide when to invoke it), and an argument schema.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]ToolParam
	Required    []string
}

// ToolCall is a structured invocation request produced by the reasoning
// component.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolExchange pairs a tool call with the result it produced, so the
// reasoning component can see what already happened this turn.
type ToolExchange struct {
	Call   ToolCall
	Output map[string]any
}

// AgentStep is one decision of the reasoning component: either a final
// reply (Text, no tool calls) or one or more tool invocations.
type AgentStep struct {
	Text      string
	ToolCalls []ToolCall
}
