package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion. Implementations honour ctx
// cancellation and, when Request.Schema is set, return Content that
// already passed Schema.Check.
//
// Providers compose as decorators; see NewProvider for the usual stack.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the configured model, used for pricing and event logs.
	ModelID() string
}

// Request is a single-turn generation request.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for a JSON document matching it through the
	// provider's structured-output mode.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]; zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies who wrote a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON document a request expects back. Providers
// forward Definition to the model as structured-output constraints and
// verify the answer with Check.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "remediation-insights".
	Name string

	// Description tells the model what the document is for.
	Description string

	// Definition is a JSON Schema (draft 2020-12) object.
	Definition map[string]any

	compiled compiledSchema
}

// Response is a completed generation.
type Response struct {
	// Content is the JSON document, or the raw text when the request had
	// no Schema.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request, which may be
	// a dated variant of ModelID.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
