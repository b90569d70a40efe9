package openai

import (
	"encoding/json"
	"strings"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// CONVERSATION → OPENAI MESSAGES

// openaiMessagesFromConversation converts a schema.Conversation to OpenAI
// message format. Tool result messages are split so each carries exactly
// one tool_call_id.
func openaiMessagesFromConversation(conversation *schema.Conversation) ([]openaiMessage, error) {
	if conversation == nil {
		return nil, nil
	}
	messages := make([]openaiMessage, 0, len(*conversation))
	for _, msg := range *conversation {
		if msg == nil {
			continue
		}

		// One "tool" message per result
		if results := msg.ToolResults(); len(results) > 0 {
			for _, result := range results {
				messages = append(messages, openaiToolResultMessage(result))
			}
			continue
		}

		mm, err := openaiMessageFromMessage(msg)
		if err != nil {
			return nil, err
		}
		messages = append(messages, mm)
	}
	return messages, nil
}

// openaiMessageFromMessage converts a text or tool-call message
func openaiMessageFromMessage(msg *schema.Message) (openaiMessage, error) {
	mm := openaiMessage{
		Role: msg.Role,
	}
	switch msg.Role {
	case roleSystem, roleUser, roleAssistant:
	default:
		return mm, heritage.ErrBadParameter.Withf("unsupported message role %q", msg.Role)
	}

	for _, call := range msg.ToolCalls() {
		tc := openaiToolCall{
			Id:   call.ID,
			Type: "function",
			Function: openaiFunction{
				Name:      call.Name,
				Arguments: "{}",
			},
		}
		if len(call.Input) > 0 {
			tc.Function.Arguments = string(call.Input)
		}
		mm.ToolCalls = append(mm.ToolCalls, tc)
	}

	// Assistant messages which only call tools have null content
	if text := msg.Text(); text != "" || len(mm.ToolCalls) == 0 {
		mm.Content = &text
	}

	return mm, nil
}

// openaiToolResultMessage creates a "tool" role message from a ToolResult
func openaiToolResultMessage(result schema.ToolResult) openaiMessage {
	content := string(result.Content)
	if content == "" {
		content = "null"
	}
	return openaiMessage{
		Role:       roleTool,
		Content:    &content,
		ToolCallID: result.ID,
	}
}

///////////////////////////////////////////////////////////////////////////////
// OPENAI RESPONSE → SCHEMA MESSAGE

// messageFromOpenAIChoice converts a single chat choice to a schema.Message
func messageFromOpenAIChoice(choice *chatChoice) *schema.Message {
	msg := &choice.Message
	blocks := []schema.ContentBlock{}

	// Text or refusal
	if msg.Content != nil && *msg.Content != "" {
		text := *msg.Content
		blocks = append(blocks, schema.ContentBlock{Text: &text})
	} else if msg.Refusal != "" {
		text := msg.Refusal
		blocks = append(blocks, schema.ContentBlock{Text: &text})
	}

	// Tool calls
	for _, tc := range msg.ToolCalls {
		input := json.RawMessage(strings.TrimSpace(tc.Function.Arguments))
		if len(input) == 0 || !json.Valid(input) {
			input = json.RawMessage("{}")
		}
		blocks = append(blocks, schema.ContentBlock{
			ToolCall: &schema.ToolCall{
				ID:    tc.Id,
				Name:  tc.Function.Name,
				Input: input,
			},
		})
	}

	result := resultFromFinishReason(choice.FinishReason)
	if len(msg.ToolCalls) > 0 {
		result = schema.ResultToolCall
	} else if msg.Refusal != "" {
		result = schema.ResultBlocked
	}

	return &schema.Message{
		Role:    schema.RoleAssistant,
		Content: blocks,
		Result:  result,
	}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL CONVERSION

// openaiToolsFromToolkit converts a tool.Toolkit to OpenAI tool definitions
func openaiToolsFromToolkit(tk *tool.Toolkit) ([]toolDefinition, error) {
	defs, err := tk.Definitions()
	if err != nil {
		return nil, err
	}
	result := make([]toolDefinition, 0, len(defs))
	for _, def := range defs {
		parameters := json.RawMessage(`{"type":"object","properties":{}}`)
		if def.InputSchema != nil {
			data, err := json.Marshal(def.InputSchema)
			if err != nil {
				return nil, heritage.ErrInternalServerError.Withf("failed to serialize schema for %q: %v", def.Name, err)
			}
			parameters = data
		}
		result = append(result, toolDefinition{
			Type: "function",
			Function: toolFunctionDef{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  parameters,
			},
		})
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// FINISH REASON → RESULT TYPE

// resultFromFinishReason maps OpenAI finish reasons to schema.ResultType
func resultFromFinishReason(reason string) schema.ResultType {
	switch reason {
	case finishReasonStop:
		return schema.ResultStop
	case finishReasonLength:
		return schema.ResultMaxTokens
	case finishReasonToolCalls:
		return schema.ResultToolCall
	case finishReasonContentFilter:
		return schema.ResultBlocked
	default:
		return schema.ResultOther
	}
}
