package tool

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	heritage "github.com/mutablelogic/go-heritage"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

// Toolkit is a collection of tools with unique names
type Toolkit struct {
	tools map[string]Tool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]Tool),
	}
	if err := tk.Register(tools...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in the toolkit, ordered by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.tools))
	for _, t := range tk.tools {
		result = append(result, t)
	}
	slices.SortFunc(result, func(a, b Tool) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// Register adds one or more tools to the toolkit.
// Returns an error if any tool is nil, or has an invalid or duplicate name.
func (tk *Toolkit) Register(tools ...Tool) error {
	for _, t := range tools {
		if t == nil {
			return heritage.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !types.IsIdentifier(name) {
			return heritage.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.tools[name]; exists {
			return heritage.ErrConflict.Withf("duplicate tool name: %q", name)
		}
		tk.tools[name] = t
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.tools[name]
}

// Definition returns the provider-agnostic definition of a tool
func (tk *Toolkit) Definition(name string) (*schema.ToolDefinition, error) {
	t := tk.Lookup(name)
	if t == nil {
		return nil, heritage.ErrNotFound.Withf("tool not found: %q", name)
	}
	s, err := t.Schema()
	if err != nil {
		return nil, heritage.ErrInternalServerError.Withf("schema generation failed for %q: %v", name, err)
	}
	return &schema.ToolDefinition{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: s,
	}, nil
}

// Definitions returns the definitions of all tools, ordered by name
func (tk *Toolkit) Definitions() ([]schema.ToolDefinition, error) {
	result := make([]schema.ToolDefinition, 0, len(tk.tools))
	for _, t := range tk.Tools() {
		def, err := tk.Definition(t.Name())
		if err != nil {
			return nil, err
		}
		result = append(result, *def)
	}
	return result, nil
}

// Run executes a tool by name with the given input.
// The input should be json.RawMessage, []byte or a value which can be
// marshalled to JSON. Returns an error if the tool is not found, the input
// does not match the schema, or the tool execution fails.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (any, error) {
	// Lookup the tool
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, heritage.ErrNotFound.Withf("tool not found: %q", name)
	}

	// Convert input to json.RawMessage
	var rawInput json.RawMessage
	if input != nil {
		switch v := input.(type) {
		case json.RawMessage:
			rawInput = v
		case []byte:
			rawInput = json.RawMessage(v)
		default:
			data, err := json.Marshal(input)
			if err != nil {
				return nil, heritage.ErrBadParameter.Withf("failed to marshal input: %v", err)
			}
			rawInput = json.RawMessage(data)
		}
	}

	// Validate input against schema if provided
	if len(rawInput) > 0 {
		schema, err := tool.Schema()
		if err != nil {
			return nil, heritage.ErrBadParameter.Withf("schema generation failed: %v", err)
		}
		if schema != nil {
			var mapInput map[string]any
			if err := json.Unmarshal(rawInput, &mapInput); err != nil {
				return nil, heritage.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
			}
			resolved, err := schema.Resolve(nil)
			if err != nil {
				return nil, heritage.ErrBadParameter.Withf("schema resolution failed: %v", err)
			}
			if err := resolved.Validate(mapInput); err != nil {
				return nil, heritage.ErrBadParameter.Withf("input validation failed: %v", err)
			}
		}
	}

	// Run the tool with raw JSON
	return tool.Run(ctx, rawInput)
}

// Feedback returns a human-readable progress line for a tool call
func (tk *Toolkit) Feedback(call schema.ToolCall) string {
	return "에이전트가 외부 도구 호출: " + call.Name
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	defs, err := tk.Definitions()
	if err != nil {
		return err.Error()
	}
	return types.Stringify(defs)
}
