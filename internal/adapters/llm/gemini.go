package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/slotline/slotline-agent/internal/domain"
)

// GeminiClient implements domain.LLMClient on Vertex AI (Gemini) with
// function calling: the tool catalog is declared to the model, and any
// function calls it returns are handed back as domain.ToolCalls.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates the Vertex-backed reasoning client.
func NewGeminiClient(ctx context.Context, projectID, location, modelName string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("projectID and location are required for the Gemini client")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// NextStep implements domain.LLMClient.
func (g *GeminiClient) NextStep(
	ctx context.Context,
	input string,
	convCtx domain.ConversationContext,
	tools []domain.ToolDefinition,
	exchanges []domain.ToolExchange,
) (*domain.AgentStep, error) {
	// 1) History (user / bot) as conversation
	var contents []*genai.Content
	for _, m := range convCtx.History {
		role := genai.Role(genai.RoleUser)
		if m.Sender == domain.RoleBot {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	// 2) Current user message
	contents = append(contents, genai.NewContentFromText(input, genai.RoleUser))

	// 3) Tool calls already executed this turn, with their results, so the
	// model can continue from where it left off.
	for _, ex := range exchanges {
		contents = append(contents, genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromFunctionCall(ex.Call.Name, ex.Call.Args)},
			genai.RoleModel,
		))
		contents = append(contents, genai.NewContentFromParts(
			[]*genai.Part{genai.NewPartFromFunctionResponse(ex.Call.Name, ex.Output)},
			genai.RoleUser,
		))
	}

	// Generation parameters tuned for conversational variety.
	temp := float32(0.8)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(BuildSystemPrompt(), genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   outputTokens,
		Tools: []*genai.Tool{
			{FunctionDeclarations: toFunctionDeclarations(tools)},
		},
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	if calls := res.FunctionCalls(); len(calls) > 0 {
		step := &domain.AgentStep{}
		for _, c := range calls {
			step.ToolCalls = append(step.ToolCalls, domain.ToolCall{
				Name: c.Name,
				Args: c.Args,
			})
		}
		return step, nil
	}

	text := res.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned neither text nor function calls")
	}
	return &domain.AgentStep{Text: text}, nil
}

func toFunctionDeclarations(defs []domain.ToolDefinition) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		decl := &genai.FunctionDeclaration{
			Name:        def.Name,
			Description: def.Description,
		}
		if len(def.Parameters) > 0 {
			props := make(map[string]*genai.Schema, len(def.Parameters))
			for name, p := range def.Parameters {
				props[name] = &genai.Schema{
					Type:        toGenaiType(p.Type),
					Description: p.Description,
				}
			}
			decl.Parameters = &genai.Schema{
				Type:       genai.TypeObject,
				Properties: props,
				Required:   def.Required,
			}
		}
		out = append(out, decl)
	}
	return out
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
