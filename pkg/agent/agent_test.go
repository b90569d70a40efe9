package agent_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	agent "github.com/mutablelogic/go-heritage/pkg/agent"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// scriptedGenerator replies with a fixed sequence of messages and records
// the options and conversation length of each request
type scriptedGenerator struct {
	sync.Mutex
	replies []*schema.Message
	errs    []error
	options []*opt.Options
	lengths []int
}

var _ heritage.Generator = (*scriptedGenerator)(nil)

func (*scriptedGenerator) Name() string { return "scripted" }

func (g *scriptedGenerator) Generate(_ context.Context, _ string, conversation *schema.Conversation, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	g.Lock()
	defer g.Unlock()

	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}
	g.options = append(g.options, options)
	g.lengths = append(g.lengths, len(*conversation))

	n := len(g.options) - 1
	if n < len(g.errs) && g.errs[n] != nil {
		return nil, nil, g.errs[n]
	}
	if n >= len(g.replies) {
		return nil, nil, heritage.ErrInternalServerError.With("script exhausted")
	}
	reply := g.replies[n]
	conversation.Append(*reply)
	return reply, &schema.Usage{InputTokens: 10, OutputTokens: 2}, nil
}

func text(v string) *schema.Message {
	message := schema.NewMessage(schema.RoleAssistant, v)
	message.Result = schema.ResultStop
	return message
}

func calls(calls ...schema.ToolCall) *schema.Message {
	message := &schema.Message{Role: schema.RoleAssistant, Result: schema.ResultToolCall}
	for i := range calls {
		message.Content = append(message.Content, schema.ContentBlock{ToolCall: &calls[i]})
	}
	return message
}

func newAgent(t *testing.T, generator heritage.Generator, opts ...agent.Opt) *agent.Agent {
	t.Helper()
	catalog, err := heritageapi.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	tools, err := heritageapi.NewTools(catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	toolkit, err := tool.NewToolkit(tools...)
	if err != nil {
		t.Fatal(err)
	}
	a, err := agent.New(generator, toolkit, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func defaultRequest() schema.RestoreRequest {
	return schema.RestoreRequest{
		Location:      "서울 종로",
		StructureName: "경복궁 사정전",
		LocationData:  "평지",
	}
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_agent_001(t *testing.T) {
	// Both tools called, then an answer
	assert := assert.New(t)
	generator := &scriptedGenerator{replies: []*schema.Message{
		calls(schema.ToolCall{ID: "c1", Name: heritageapi.TextRecordToolName, Input: json.RawMessage(`{"structure_name":"경복궁 사정전"}`)}),
		calls(schema.ToolCall{ID: "c2", Name: heritageapi.RestorationToolName, Input: json.RawMessage(`{"description":"단청이 선명한 팔작지붕","location_data":"평지"}`)}),
		text("복원 분석"),
	}}
	a := newAgent(t, generator)

	var progress []string
	response, err := a.Restore(context.Background(), defaultRequest(), func(message string) {
		progress = append(progress, message)
	})
	if !assert.NoError(err) {
		t.FailNow()
	}

	assert.NotEmpty(response.ID)
	assert.Equal(agent.DefaultModel, response.Model)
	assert.Equal("복원 분석", response.Analysis)
	assert.Equal(schema.ResultStop, response.Result)
	assert.True(response.ShowRecord())
	assert.True(response.ShowImages())
	assert.Equal("https://example.com/damaged_original.jpg", response.Record.OriginalImageURL)
	assert.Equal(heritageapi.DefaultRestoredURL, response.Restoration.RestoredURL)
	assert.Equal([]string{
		"에이전트가 외부 도구 호출: get_heritage_text_record",
		"에이전트가 외부 도구 호출: call_3d_restoration_api",
	}, progress)
	assert.Len(response.Calls, 2)
	assert.Equal(uint(30), response.Usage.InputTokens)
	assert.Equal(uint(6), response.Usage.OutputTokens)

	// Each round grows the conversation by a reply and a tool message
	assert.Equal([]int{1, 3, 5}, generator.lengths)
	for _, options := range generator.options {
		assert.NotNil(tool.FromOpts(options))
		assert.Equal("auto", options.GetString(opt.ToolChoiceKey))
	}
}

func Test_agent_002(t *testing.T) {
	// Record lookup arguments are replaced with the request values
	assert := assert.New(t)
	generator := &scriptedGenerator{replies: []*schema.Message{
		calls(schema.ToolCall{ID: "c1", Name: heritageapi.TextRecordToolName, Input: json.RawMessage(`{"location":"부산","structure_name":"불국사"}`)}),
		text("done"),
	}}
	a := newAgent(t, generator)

	response, err := a.Restore(context.Background(), defaultRequest(), nil)
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(response.Calls, 1) {
		assert.Equal(map[string]any{"location": "서울 종로", "structure_name": "경복궁 사정전"}, response.Calls[0].Input)
		assert.Empty(response.Calls[0].Error)
	}
	assert.True(response.ShowRecord())
	assert.False(response.ShowImages())
	assert.Nil(response.Restoration)
}

func Test_agent_003(t *testing.T) {
	// Iterations exhausted, final answer requested without tools
	assert := assert.New(t)
	lookup := schema.ToolCall{ID: "c", Name: heritageapi.TextRecordToolName, Input: json.RawMessage(`{}`)}
	generator := &scriptedGenerator{replies: []*schema.Message{
		calls(lookup), calls(lookup), calls(lookup), text("최종 답변"),
	}}
	a := newAgent(t, generator)

	response, err := a.Restore(context.Background(), defaultRequest(), nil)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal("최종 답변", response.Analysis)
	assert.Equal(schema.ResultMaxIterations, response.Result)
	assert.Len(response.Calls, 3)
	if assert.Len(generator.options, 4) {
		assert.Nil(tool.FromOpts(generator.options[3]))
		assert.False(generator.options[3].Has(opt.ToolChoiceKey))
	}
}

func Test_agent_004(t *testing.T) {
	// Tool errors are returned to the model, and unknown records are not shown
	assert := assert.New(t)
	generator := &scriptedGenerator{replies: []*schema.Message{
		calls(
			schema.ToolCall{ID: "c1", Name: "no_such_tool", Input: json.RawMessage(`{}`)},
			schema.ToolCall{ID: "c2", Name: heritageapi.RestorationToolName, Input: json.RawMessage(`{"location_data":"평지"}`)},
		),
		text("실패"),
	}}
	a := newAgent(t, generator)

	request := defaultRequest()
	request.StructureName = "불국사"
	response, err := a.Restore(context.Background(), request, nil)
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(response.Calls, 2) {
		assert.NotEmpty(response.Calls[0].Error)
		assert.NotEmpty(response.Calls[1].Error)
	}
	assert.Nil(response.Record)
	assert.Nil(response.Restoration)
	assert.False(response.ShowRecord())
}

func Test_agent_005(t *testing.T) {
	// Missing terrain data is filled from the request, the last result wins
	assert := assert.New(t)
	generator := &scriptedGenerator{replies: []*schema.Message{
		calls(
			schema.ToolCall{ID: "c1", Name: heritageapi.TextRecordToolName},
			schema.ToolCall{ID: "c2", Name: heritageapi.RestorationToolName, Input: json.RawMessage(`{"description":"첫 번째"}`)},
		),
		calls(schema.ToolCall{ID: "c3", Name: heritageapi.RestorationToolName, Input: json.RawMessage(`{"description":"두 번째","location_data":"구릉"}`)}),
		text("ok"),
	}}
	a := newAgent(t, generator)

	response, err := a.Restore(context.Background(), defaultRequest(), nil)
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(response.Calls, 3) {
		assert.Equal("평지", response.Calls[1].Input.(map[string]any)["location_data"])
		assert.Equal("구릉", response.Calls[2].Input.(map[string]any)["location_data"])
	}
	assert.True(response.ShowImages())
}

func Test_agent_006(t *testing.T) {
	// Default prompt, model override and validation
	assert := assert.New(t)
	generator := &scriptedGenerator{replies: []*schema.Message{text("a")}}
	a := newAgent(t, generator, agent.WithModel("gpt-4o"), agent.WithSystemPrompt("한국어로 답하라"))

	request := defaultRequest()
	request.Model = " gpt-4.1 "
	response, err := a.Restore(context.Background(), request, nil)
	if assert.NoError(err) {
		assert.Equal("gpt-4.1", response.Model)
	}
	if assert.Len(generator.options, 1) {
		assert.Equal("한국어로 답하라", generator.options[0].GetString(opt.SystemPromptKey))
	}

	request.StructureName = "  "
	_, err = a.Restore(context.Background(), request, nil)
	assert.ErrorIs(err, heritage.ErrBadParameter)
	assert.Equal("gpt-4o", a.Model())
}

func Test_agent_007(t *testing.T) {
	// Generator errors abort the run
	assert := assert.New(t)
	generator := &scriptedGenerator{errs: []error{heritage.ErrRefusal}}
	a := newAgent(t, generator)
	_, err := a.Restore(context.Background(), defaultRequest(), nil)
	assert.ErrorIs(err, heritage.ErrRefusal)
}

func Test_agent_008(t *testing.T) {
	// Options
	assert := assert.New(t)
	toolkit, err := tool.NewToolkit()
	assert.NoError(err)

	_, err = agent.New(nil, toolkit)
	assert.ErrorIs(err, heritage.ErrBadParameter)
	_, err = agent.New(&scriptedGenerator{}, nil)
	assert.ErrorIs(err, heritage.ErrBadParameter)
	_, err = agent.New(&scriptedGenerator{}, toolkit, agent.WithMaxIterations(0))
	assert.ErrorIs(err, heritage.ErrBadParameter)
	_, err = agent.New(&scriptedGenerator{}, toolkit, agent.WithModel(""))
	assert.ErrorIs(err, heritage.ErrBadParameter)
	_, err = agent.New(&scriptedGenerator{}, toolkit, agent.WithLogger(nil))
	assert.ErrorIs(err, heritage.ErrBadParameter)

	a, err := agent.New(&scriptedGenerator{}, toolkit, agent.WithMaxIterations(1))
	if assert.NoError(err) {
		assert.Same(toolkit, a.Toolkit())
		assert.Equal(agent.DefaultModel, a.Model())
	}
}
