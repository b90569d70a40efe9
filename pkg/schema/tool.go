package schema

import (
	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolDefinition represents a provider-agnostic tool definition.
// Providers can reshape this into their required payloads.
type ToolDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema,omitempty"`
}

// ToolInvocation records a single tool call made during a restoration run
type ToolInvocation struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Input   any    `json:"input,omitempty"`
	Output  any    `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t ToolDefinition) String() string {
	return types.Stringify(t)
}

func (t ToolInvocation) String() string {
	return types.Stringify(t)
}
