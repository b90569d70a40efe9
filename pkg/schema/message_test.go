package schema_test

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	assert "github.com/stretchr/testify/assert"
)

func TestNewMessage(t *testing.T) {
	assert := assert.New(t)
	msg := schema.NewMessage(schema.RoleUser, "Hello, world!")
	assert.Equal(schema.RoleUser, msg.Role)
	assert.Len(msg.Content, 1)
	assert.NotNil(msg.Content[0].Text)
	assert.Equal("Hello, world!", msg.Text())
}

func TestMessageText(t *testing.T) {
	assert := assert.New(t)
	msg := schema.Message{
		Role: schema.RoleAssistant,
		Content: []schema.ContentBlock{
			{Text: types.Ptr("First")},
			{ToolCall: &schema.ToolCall{ID: "call_1", Name: "get_heritage_text_record"}},
			{Text: types.Ptr("Second")},
		},
	}
	assert.Equal("First\nSecond", msg.Text())
	assert.Len(msg.ToolCalls(), 1)
	assert.Equal("call_1", msg.ToolCalls()[0].ID)
	assert.Empty(msg.ToolResults())
}

func TestToolResult(t *testing.T) {
	assert := assert.New(t)
	block := schema.NewToolResult("call_1", "call_3d_restoration_api", schema.Restoration{
		Status:      schema.StatusSuccess,
		RestoredURL: "https://example.com/restored.jpg",
	})
	if assert.NotNil(block.ToolResult) {
		assert.False(block.ToolResult.IsError)
		assert.JSONEq(`{"status":"success","restored_url":"https://example.com/restored.jpg"}`, string(block.ToolResult.Content))
	}
}

func TestToolError(t *testing.T) {
	assert := assert.New(t)
	block := schema.NewToolError("call_2", "get_heritage_text_record", errors.New(`bad "input"`))
	if assert.NotNil(block.ToolResult) {
		assert.True(block.ToolResult.IsError)
		var text string
		assert.NoError(json.Unmarshal(block.ToolResult.Content, &text))
		assert.Equal(`bad "input"`, text)
	}
}

func TestToolResultUnmarshallable(t *testing.T) {
	assert := assert.New(t)
	block := schema.NewToolResult("call_3", "broken", make(chan int))
	if assert.NotNil(block.ToolResult) {
		assert.True(block.ToolResult.IsError)
	}
}

func TestConversationAppend(t *testing.T) {
	assert := assert.New(t)
	var conv schema.Conversation
	assert.Nil(conv.Last())
	conv.Append(*schema.NewMessage(schema.RoleUser, "one"))
	conv.Append(*schema.NewMessage(schema.RoleAssistant, "two"))
	assert.Len(conv, 2)
	assert.Equal("two", conv.Last().Text())
}

func TestUsageAdd(t *testing.T) {
	assert := assert.New(t)
	u := schema.Usage{InputTokens: 1, OutputTokens: 2}
	u.Add(&schema.Usage{InputTokens: 10, OutputTokens: 20})
	u.Add(nil)
	assert.Equal(uint(11), u.InputTokens)
	assert.Equal(uint(22), u.OutputTokens)
	assert.Equal(uint(33), u.Total())
}

func TestResultType(t *testing.T) {
	assert := assert.New(t)
	data, err := json.Marshal(schema.ResultMaxIterations)
	assert.NoError(err)
	assert.Equal(`"max_iterations"`, string(data))

	var r schema.ResultType
	assert.NoError(json.Unmarshal([]byte(`"tool_call"`), &r))
	assert.Equal(schema.ResultToolCall, r)
	assert.Error(json.Unmarshal([]byte(`"bogus"`), &r))
	assert.Equal("unknown", schema.ResultType(100).String())
}
