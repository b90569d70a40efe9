package openai

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	heritage "github.com/mutablelogic/go-heritage"
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// INTERFACE CHECK

var _ heritage.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate sends the conversation to the model and appends the reply to it.
// A reply truncated by the token limit returns ErrMaxTokens, and a reply
// withheld by the content filter returns ErrRefusal; in both cases the
// message and usage are still returned.
func (c *Client) Generate(ctx context.Context, model string, conversation *schema.Conversation, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	if conversation == nil || len(*conversation) == 0 {
		return nil, nil, heritage.ErrBadParameter.With("conversation is required")
	}
	if model == "" {
		model = DefaultModel
	}

	// Apply options
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}

	// Build request
	request, err := generateRequestFromOpts(model, conversation, options)
	if err != nil {
		return nil, nil, err
	}

	// Create JSON payload
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, nil, err
	}

	// Send the request
	var response chatCompletionResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, nil, err
	}

	return processResponse(&response, conversation)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// processResponse converts a response to a schema message and appends it to
// the conversation
func processResponse(response *chatCompletionResponse, conversation *schema.Conversation) (*schema.Message, *schema.Usage, error) {
	if len(response.Choices) == 0 {
		return nil, nil, heritage.ErrInternalServerError.With("response has no choices")
	}
	choice := response.Choices[0]
	message := messageFromOpenAIChoice(&choice)
	usage := &schema.Usage{
		InputTokens:  uint(response.Usage.PromptTokens),
		OutputTokens: uint(response.Usage.CompletionTokens),
	}
	conversation.Append(*message)

	// Return error for finish reasons that need caller attention
	switch message.Result {
	case schema.ResultMaxTokens:
		return message, usage, heritage.ErrMaxTokens
	case schema.ResultBlocked:
		return message, usage, heritage.ErrRefusal
	}

	return message, usage, nil
}

///////////////////////////////////////////////////////////////////////////////
// REQUEST BUILDING

// generateRequestFromOpts builds a chatCompletionRequest from the
// conversation and applied options
func generateRequestFromOpts(model string, conversation *schema.Conversation, options *opt.Options) (*chatCompletionRequest, error) {
	messages, err := openaiMessagesFromConversation(conversation)
	if err != nil {
		return nil, err
	}

	request := &chatCompletionRequest{
		Model:    model,
		Messages: messages,
	}

	// System prompt, prepended as a system role message
	if systemPrompt := options.GetString(opt.SystemPromptKey); systemPrompt != "" {
		request.Messages = append([]openaiMessage{{
			Role:    roleSystem,
			Content: &systemPrompt,
		}}, request.Messages...)
	}

	// Temperature
	if options.Has(opt.TemperatureKey) {
		v := options.GetFloat64(opt.TemperatureKey)
		request.Temperature = &v
	}

	// Max tokens
	if options.Has(opt.MaxTokensKey) {
		v := int(options.GetUint(opt.MaxTokensKey))
		request.MaxTokens = &v
	}

	// Tools from toolkit
	if tk := tool.FromOpts(options); tk != nil {
		tools, err := openaiToolsFromToolkit(tk)
		if err != nil {
			return nil, err
		}
		if len(tools) > 0 {
			request.Tools = tools
		}
	}

	// Tool choice is only meaningful with tools
	if tc := options.GetString(opt.ToolChoiceKey); tc != "" && len(request.Tools) > 0 {
		request.ToolChoice = tc
	}

	return request, nil
}
