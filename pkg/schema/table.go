package schema

import (
	"encoding/json"

	// Packages
	uitable "github.com/mutablelogic/go-heritage/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolTable implements table.TableData for a list of tool definitions.
type ToolTable []ToolDefinition

// CallTable implements table.TableData for the tool calls of a restoration run.
type CallTable []ToolInvocation

const (
	cellWidth = 60
)

///////////////////////////////////////////////////////////////////////////////
// TOOL TABLE (LIST)

func (t ToolTable) Header() []string {
	return []string{"NAME", "DESCRIPTION"}
}

func (t ToolTable) Len() int {
	return len(t)
}

func (t ToolTable) Row(i int) []any {
	return []any{uitable.Bold{Value: t[i].Name}, t[i].Description}
}

///////////////////////////////////////////////////////////////////////////////
// CALL TABLE (LIST)

func (t CallTable) Header() []string {
	return []string{"TOOL", "INPUT", "RESULT"}
}

func (t CallTable) Len() int {
	return len(t)
}

func (t CallTable) Row(i int) []any {
	call := t[i]
	result := compact(call.Output)
	if call.Error != "" {
		result = "error: " + call.Error
	}
	return []any{call.Name, uitable.Truncate(compact(call.Input), cellWidth), uitable.Truncate(result, cellWidth)}
}

func compact(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
