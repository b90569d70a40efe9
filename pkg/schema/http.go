package schema

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ListToolRequest represents a request to list tools
type ListToolRequest struct {
	Limit  *uint `json:"limit,omitempty" help:"Maximum number of tools to return"`
	Offset uint  `json:"offset,omitempty" help:"Offset for pagination"`
}

// ListToolResponse represents a response containing a list of tools
type ListToolResponse struct {
	Count  uint             `json:"count"`
	Offset uint             `json:"offset,omitzero"`
	Limit  *uint            `json:"limit,omitzero"`
	Body   []ToolDefinition `json:"body,omitzero"`
}

// RecordRequest represents a direct lookup of a historical record
type RecordRequest struct {
	Location      string `json:"location,omitempty" help:"Region where the structure is located"`
	StructureName string `json:"structure_name" help:"Name or features of the structure"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ListToolRequest) String() string {
	return types.Stringify(r)
}

func (r ListToolResponse) String() string {
	return types.Stringify(r)
}

func (r RecordRequest) String() string {
	return types.Stringify(r)
}
