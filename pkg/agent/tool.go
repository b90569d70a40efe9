package agent

import (
	"context"
	"encoding/json"
	"log/slog"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	errgroup "golang.org/x/sync/errgroup"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// runTools executes the tool calls of one model turn concurrently and
// returns the results as content blocks in the order of the calls. Progress
// is reported for every call before any of them run. Tool failures become
// error results for the model.
func (a *Agent) runTools(ctx context.Context, logger *slog.Logger, req schema.RestoreRequest, calls []schema.ToolCall, response *schema.RestoreResponse, fn ProgressFn) []schema.ContentBlock {
	results := make([]schema.ContentBlock, len(calls))
	invocations := make([]schema.ToolInvocation, len(calls))

	// Apply the request values and report progress
	for i := range calls {
		calls[i].Input = overrideInput(calls[i], req)
		feedback := a.toolkit.Feedback(calls[i])
		invocations[i] = schema.ToolInvocation{
			ID:      calls[i].ID,
			Name:    calls[i].Name,
			Input:   decode(calls[i].Input),
			Message: feedback,
		}
		logger.InfoContext(ctx, feedback, slog.String("tool", calls[i].Name), slog.String("call_id", calls[i].ID))
		if fn != nil {
			fn(feedback)
		}
	}

	var group errgroup.Group
	for i, call := range calls {
		group.Go(func() error {
			output, err := a.runTool(ctx, call)
			if err != nil {
				logger.WarnContext(ctx, "tool failed", slog.String("tool", call.Name), slog.Any("error", err))
				results[i] = schema.NewToolError(call.ID, call.Name, err)
				invocations[i].Error = err.Error()
			} else {
				results[i] = schema.NewToolResult(call.ID, call.Name, output)
				if result := results[i].ToolResult; result != nil && !result.IsError {
					invocations[i].Output = decode(result.Content)
				}
			}
			return nil
		})
	}
	_ = group.Wait()

	response.Calls = append(response.Calls, invocations...)
	return results
}

// runTool runs a single tool within a span
func (a *Agent) runTool(ctx context.Context, call schema.ToolCall) (_ any, err error) {
	ctx, endSpan := otel.StartSpan(a.tracer, ctx, "RunTool",
		attribute.String("tool", call.Name),
		attribute.String("call_id", call.ID),
	)
	defer func() { endSpan(err) }()
	return a.toolkit.Run(ctx, call.Name, call.Input)
}

// overrideInput returns the tool input with values from the request applied.
// The record lookup always uses the requested location and structure name.
// The restoration falls back to the requested terrain data when the model
// leaves it out.
func overrideInput(call schema.ToolCall, req schema.RestoreRequest) json.RawMessage {
	switch call.Name {
	case heritageapi.TextRecordToolName, heritageapi.RestorationToolName:
	default:
		return call.Input
	}

	args := make(map[string]any)
	if len(call.Input) > 0 {
		if err := json.Unmarshal(call.Input, &args); err != nil || args == nil {
			args = make(map[string]any)
		}
	}

	switch call.Name {
	case heritageapi.TextRecordToolName:
		args["location"] = req.Location
		args["structure_name"] = req.StructureName
	case heritageapi.RestorationToolName:
		if v, _ := args["location_data"].(string); v == "" && req.LocationData != "" {
			args["location_data"] = req.LocationData
		}
	}

	data, err := json.Marshal(args)
	if err != nil {
		return call.Input
	}
	return data
}

// decode returns the JSON value as a generic value, or the raw text if it
// cannot be decoded
func decode(data json.RawMessage) any {
	if len(data) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}
