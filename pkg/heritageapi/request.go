package heritageapi

import (
	"encoding/json"
	"strings"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
)

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// TextRecordRequest defines the input for the historical record lookup
type TextRecordRequest struct {
	Location      string `json:"location,omitempty" jsonschema:"Region where the structure is located"`
	StructureName string `json:"structure_name" jsonschema:"Name or distinguishing features of the structure"`
}

// RestorationRequest defines the input for the restoration service
type RestorationRequest struct {
	Description  string `json:"description" jsonschema:"Detailed visual description of the restored structure"`
	LocationData string `json:"location_data" jsonschema:"Terrain data for the site"`
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

// decode unmarshals the tool input into v, which may be empty
func decode(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return heritage.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}

// Validate checks the required fields of the request
func (r *TextRecordRequest) Validate() error {
	if strings.TrimSpace(r.StructureName) == "" {
		return heritage.ErrBadParameter.With("structure_name is required")
	}
	return nil
}

// Validate checks the required fields of the request
func (r *RestorationRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return heritage.ErrBadParameter.With("description is required")
	}
	return nil
}
