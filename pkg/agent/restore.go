package agent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	// Packages
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	heritage "github.com/mutablelogic/go-heritage"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Restore asks the model to analyse and restore the structure in the
// request. The model may call tools for up to the configured number of
// rounds; after that a final answer is requested without tools. The last
// successful result of each tool is returned alongside the analysis.
func (a *Agent) Restore(ctx context.Context, req schema.RestoreRequest, fn ProgressFn) (response *schema.RestoreResponse, err error) {
	req.Location = strings.TrimSpace(req.Location)
	req.StructureName = strings.TrimSpace(req.StructureName)
	req.LocationData = strings.TrimSpace(req.LocationData)
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.StructureName == "" {
		return nil, heritage.ErrBadParameter.With("structure name is required")
	}
	if req.Prompt == "" {
		req.Prompt = schema.DefaultPrompt(req.StructureName)
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = a.model
	}

	// Otel span
	id := uuid.NewString()
	ctx, endSpan := otel.StartSpan(a.tracer, ctx, "Restore",
		attribute.String("id", id),
		attribute.String("model", model),
		attribute.String("structure_name", req.StructureName),
	)
	defer func() { endSpan(err) }()

	logger := a.logger.With(slog.String("id", id))
	logger.InfoContext(ctx, "restore", slog.String("structure_name", req.StructureName), slog.String("model", model))

	response = &schema.RestoreResponse{
		ID:    id,
		Model: model,
	}
	results := make(map[string]json.RawMessage)
	conversation := schema.Conversation{schema.NewMessage(schema.RoleUser, req.Prompt)}

	// Tool-calling rounds
	for i := uint(0); i < a.maxIterations; i++ {
		message, err := a.generate(ctx, model, &conversation, response, true)
		if err != nil {
			return nil, err
		}

		calls := message.ToolCalls()
		if len(calls) == 0 {
			response.Analysis = message.Text()
			response.Result = message.Result
			if response.Result == schema.ResultToolCall || response.Result == schema.ResultOther {
				response.Result = schema.ResultStop
			}
			return a.finish(ctx, logger, response, results)
		}

		// Run the tools and send the results back
		blocks := a.runTools(ctx, logger, req, calls, response, fn)
		for _, block := range blocks {
			if block.ToolResult != nil && !block.ToolResult.IsError {
				results[block.ToolResult.Name] = block.ToolResult.Content
			}
		}
		conversation.Append(schema.Message{
			Role:    schema.RoleTool,
			Content: blocks,
		})
	}

	// Ask for a final answer without tools
	logger.DebugContext(ctx, "iterations exhausted", slog.Uint64("max_iterations", uint64(a.maxIterations)))
	message, err := a.generate(ctx, model, &conversation, response, false)
	if err != nil {
		return nil, err
	}
	response.Analysis = message.Text()
	response.Result = schema.ResultMaxIterations

	return a.finish(ctx, logger, response, results)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// generate calls the model once and accumulates usage. A reply truncated by
// the token limit is kept rather than returned as an error.
func (a *Agent) generate(ctx context.Context, model string, conversation *schema.Conversation, response *schema.RestoreResponse, withTools bool) (*schema.Message, error) {
	opts := []opt.Opt{}
	if a.systemPrompt != "" {
		opts = append(opts, opt.SetString(opt.SystemPromptKey, a.systemPrompt))
	}
	if withTools {
		opts = append(opts, tool.WithToolkit(a.toolkit), opt.SetString(opt.ToolChoiceKey, "auto"))
	}

	message, usage, err := a.generator.Generate(ctx, model, conversation, opts...)
	response.Usage.Add(usage)
	if err != nil {
		if errors.Is(err, heritage.ErrMaxTokens) && message != nil {
			return message, nil
		}
		return nil, err
	}
	if message == nil {
		return nil, heritage.ErrInternalServerError.With("generator returned no message")
	}
	return message, nil
}

// finish decodes the last tool results into the response
func (a *Agent) finish(ctx context.Context, logger *slog.Logger, response *schema.RestoreResponse, results map[string]json.RawMessage) (*schema.RestoreResponse, error) {
	if data, exists := results[heritageapi.TextRecordToolName]; exists {
		var record schema.HeritageRecord
		if err := json.Unmarshal(data, &record); err == nil {
			response.Record = &record
		}
	}
	if data, exists := results[heritageapi.RestorationToolName]; exists {
		var restoration schema.Restoration
		if err := json.Unmarshal(data, &restoration); err == nil {
			response.Restoration = &restoration
		}
	}
	logger.InfoContext(ctx, "restore complete",
		slog.String("result", response.Result.String()),
		slog.Int("calls", len(response.Calls)),
		slog.Uint64("tokens", uint64(response.Usage.Total())),
	)
	return response, nil
}
