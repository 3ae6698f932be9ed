// Package llm is the text-generation collaborator used to author lesson
// content. Providers take a prompt and return the model's raw text; the
// caller is responsible for finding and checking any JSON inside it.
package llm

import "context"

// Provider sends a prompt to a hosted model.
type Provider interface {
	// Generate returns the model's text for req. Transport and HTTP
	// failures are reported as the typed errors in errors.go.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for its native structured output.
	// The response is still returned as text and is not validated here.
	Schema *Schema

	// JSON asks for a bare JSON object without a strict schema. Providers
	// without a JSON mode ignore it.
	JSON bool

	MaxTokens   int
	Temperature float64
}

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds the single-turn request used for content generation.
func UserPrompt(system, prompt string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case, e.g. "lesson-exercises". It doubles as the
	// OpenAI schema name and the validator cache key.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	// Text is the raw payload. It may wrap JSON in prose or code fences.
	Text  string
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
