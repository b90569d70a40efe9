package schema

import (
	"encoding/json"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// The result of generating a message (stopped, tool call, etc.)
type ResultType uint

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

const (
	ResultStop          ResultType = iota // Normal completion
	ResultToolCall                        // Model requested a tool call
	ResultMaxTokens                       // Truncated due to max tokens
	ResultMaxIterations                   // Tool-calling loop ran out of iterations
	ResultBlocked                         // Blocked by content filter
	ResultError                           // Generation error
	ResultOther                           // Other/unknown finish reason
)

var resultNames = map[ResultType]string{
	ResultStop:          "stop",
	ResultToolCall:      "tool_call",
	ResultMaxTokens:     "max_tokens",
	ResultMaxIterations: "max_iterations",
	ResultBlocked:       "blocked",
	ResultError:         "error",
	ResultOther:         "other",
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ResultType) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "unknown"
}

////////////////////////////////////////////////////////////////////////////////
// JSON MARSHAL

func (r ResultType) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *ResultType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for k, v := range resultNames {
		if v == s {
			*r = k
			return nil
		}
	}
	return fmt.Errorf("unknown result type: %q", s)
}
