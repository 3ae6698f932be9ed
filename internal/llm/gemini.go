package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider implements Provider using the Google Gen AI SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(float32(req.Temperature))
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil || req.JSON {
		config.ResponseMIMEType = "application/json"
	}
	if req.Schema != nil {
		config.ResponseSchema = geminiSchema(req.Schema.Definition)
	}

	contents := make([]*genai.Content, len(req.Messages))
	for i, m := range req.Messages {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents[i] = genai.NewContentFromText(m.Content, role)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, statusError(apiErr.Code, err)
		}
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErrPtr) {
			return nil, statusError(apiErrPtr.Code, err)
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}

	resp := &Response{
		Text:       result.Text(),
		Model:      p.model,
		StopReason: "end",
	}
	if resp.Text == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no text content in Gemini response")}
	}
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		resp.StopReason = "max_tokens"
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return finish(resp)
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// geminiSchema converts the subset of JSON Schema used by lesson schemas
// into a genai.Schema.
func geminiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		schema.Type = geminiType(t)
	}
	if desc, ok := def["description"].(string); ok {
		schema.Description = desc
	}
	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for k, v := range props {
			if propDef, ok := v.(map[string]any); ok {
				schema.Properties[k] = geminiSchema(propDef)
			}
		}
	}
	schema.Required = stringList(def["required"])
	schema.Enum = stringList(def["enum"])
	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = geminiSchema(items)
	}
	if n, ok := def["minItems"].(int); ok {
		schema.MinItems = genai.Ptr(int64(n))
	}
	if n, ok := def["maxItems"].(int); ok {
		schema.MaxItems = genai.Ptr(int64(n))
	}

	return schema
}

func stringList(v any) []string {
	var out []string
	switch vs := v.(type) {
	case []string:
		out = append(out, vs...)
	case []any:
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func geminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
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
