package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	// Packages
	agent "github.com/mutablelogic/go-heritage/pkg/agent"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	httphandler "github.com/mutablelogic/go-heritage/pkg/httphandler"
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// MOCK GENERATOR

// mockGenerator calls both tools once and then answers with markdown
type mockGenerator struct {
	sync.Mutex
	calls int
}

func (*mockGenerator) Name() string { return "mock" }

func (g *mockGenerator) Generate(_ context.Context, _ string, conversation *schema.Conversation, _ ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	g.Lock()
	defer g.Unlock()
	g.calls++

	var reply *schema.Message
	switch g.calls {
	case 1:
		reply = &schema.Message{Role: schema.RoleAssistant, Result: schema.ResultToolCall, Content: []schema.ContentBlock{
			{ToolCall: &schema.ToolCall{ID: "c1", Name: heritageapi.TextRecordToolName, Input: json.RawMessage(`{}`)}},
			{ToolCall: &schema.ToolCall{ID: "c2", Name: heritageapi.RestorationToolName, Input: json.RawMessage(`{"description":"청기와 지붕"}`)}},
		}}
	default:
		reply = schema.NewMessage(schema.RoleAssistant, "## 복원 결과\n\n**사정전**은 편전이다.")
		reply.Result = schema.ResultStop
	}
	conversation.Append(*reply)
	return reply, &schema.Usage{InputTokens: 1, OutputTokens: 1}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

func serveMux(t *testing.T) (http.Handler, *mockGenerator) {
	t.Helper()
	router, generator := newRouter(t, "")
	return router, generator
}

func newRouter(t *testing.T, prefix string) (*httprouter.Router, *mockGenerator) {
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
	generator := new(mockGenerator)
	a, err := agent.New(generator, toolkit)
	if err != nil {
		t.Fatal(err)
	}

	router, err := httprouter.NewRouter(context.Background(), http.NewServeMux(), prefix, "*", "test", "0.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if err := httphandler.RegisterHandlers(router, a, catalog); err != nil {
		t.Fatal(err)
	}
	if err := router.RegisterCatchAll("/", false); err != nil {
		t.Fatal(err)
	}
	return router, generator
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

///////////////////////////////////////////////////////////////////////////////
// PAGE TESTS

func TestPage_Get(t *testing.T) {
	assert := assert.New(t)
	mux, generator := serveMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(body, "지역 문화유산 디지털 마스터 에이전트")
	assert.Contains(body, `value="서울 종로"`)
	assert.Contains(body, `value="경복궁 사정전"`)
	assert.Contains(body, `value="평지"`)
	assert.Contains(body, "의 역사 기록을 검색하고")
	assert.Contains(body, `id="pending"`)
	assert.Contains(body, schema.RestorePending)
	assert.Zero(generator.calls)
}

func TestPage_NotRoot(t *testing.T) {
	assert := assert.New(t)
	mux, generator := serveMux(t)

	for _, path := range []string{"/foo/", "/api/", "/index.html", "/api/tool/x/y"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(http.StatusNotFound, w.Code, path)
		assert.NotContains(w.Body.String(), "<form", path)
	}
	assert.Zero(generator.calls)
}

func TestPage_Prefix(t *testing.T) {
	assert := assert.New(t)
	router, _ := newRouter(t, "/heritage")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/heritage/", nil))
	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), "<form")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/heritage/api/tool", nil))
	assert.Equal(http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/heritage/other/", nil))
	assert.Equal(http.StatusNotFound, w.Code)
}

func TestPage_Post(t *testing.T) {
	assert := assert.New(t)
	mux, generator := serveMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, formRequest(url.Values{
		"location":       {"서울 종로"},
		"structure_name": {"경복궁 사정전"},
		"location_data":  {"평지"},
		"prompt":         {"복원해 줘"},
	}))

	assert.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(2, generator.calls)
	assert.Contains(body, "에이전트가 외부 도구 호출: get_heritage_text_record")
	assert.Contains(body, "에이전트가 외부 도구 호출: call_3d_restoration_api")
	assert.Contains(body, "<h2>복원 결과</h2>")
	assert.Contains(body, "<strong>사정전</strong>")
	assert.Contains(body, "검색된 역사 기록")
	assert.Contains(body, "사정전은 경복궁의 정전으로")
	assert.Contains(body, "https://example.com/damaged_original.jpg")
	assert.Contains(body, heritageapi.DefaultRestoredURL)
}

func TestPage_PostWarning(t *testing.T) {
	assert := assert.New(t)
	mux, generator := serveMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, formRequest(url.Values{
		"structure_name": {"경복궁 사정전"},
		"prompt":         {"  "},
	}))

	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), "문화유산 이름과 분석 요청을 입력해 주세요.")
	assert.Zero(generator.calls)
}

func TestPage_MethodNotAllowed(t *testing.T) {
	mux, _ := serveMux(t)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

///////////////////////////////////////////////////////////////////////////////
// REGISTER TESTS

func TestRegisterHandlers_Spec(t *testing.T) {
	assert := assert.New(t)
	router, _ := newRouter(t, "")

	spec := router.Spec()
	if !assert.NotNil(spec.Paths) {
		t.FailNow()
	}
	paths := spec.Paths.MapOfPathItemValues
	if assert.Contains(paths, "/api/restore") {
		assert.NotNil(paths["/api/restore"].Post)
	}
	if assert.Contains(paths, "/api/tool/{name}") {
		assert.NotNil(paths["/api/tool/{name}"].Get)
		assert.Len(paths["/api/tool/{name}"].Parameters, 1)
	}
	assert.Contains(paths, "/api/tool")
	assert.Contains(paths, "/api/record")
	assert.NotContains(paths, "/{$}")
}

func TestRegisterHandlers_Duplicate(t *testing.T) {
	router, _ := newRouter(t, "")
	catalog, err := heritageapi.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	assert.Error(t, httphandler.RegisterHandlers(router, nil, catalog))
}

///////////////////////////////////////////////////////////////////////////////
// RESTORE TESTS

func TestRestore_OK(t *testing.T) {
	assert := assert.New(t)
	mux, _ := serveMux(t)

	body, _ := json.Marshal(schema.RestoreRequest{
		Location:      "서울 종로",
		StructureName: "경복궁 사정전",
		LocationData:  "평지",
	})
	r := httptest.NewRequest(http.MethodPost, "/api/restore", strings.NewReader(string(body)))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if !assert.Equal(http.StatusOK, w.Code) {
		t.FailNow()
	}
	var resp schema.RestoreResponse
	if !assert.NoError(json.NewDecoder(w.Body).Decode(&resp)) {
		t.FailNow()
	}
	assert.Equal(schema.ResultStop, resp.Result)
	assert.True(resp.ShowImages())
	assert.Equal("평지", resp.Calls[1].Input.(map[string]any)["location_data"])
}

func TestRestore_BadRequest(t *testing.T) {
	mux, _ := serveMux(t)
	r := httptest.NewRequest(http.MethodPost, "/api/restore", strings.NewReader(`{"location":"서울 종로"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

///////////////////////////////////////////////////////////////////////////////
// TOOL TESTS

func TestToolList_OK(t *testing.T) {
	assert := assert.New(t)
	mux, _ := serveMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tool", nil))
	assert.Equal(http.StatusOK, w.Code)

	var resp schema.ListToolResponse
	if assert.NoError(json.NewDecoder(w.Body).Decode(&resp)) {
		assert.Equal(uint(2), resp.Count)
		if assert.Len(resp.Body, 2) {
			assert.Equal(heritageapi.RestorationToolName, resp.Body[0].Name)
		}
	}
}

func TestToolList_WithPagination(t *testing.T) {
	assert := assert.New(t)
	mux, _ := serveMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tool?limit=1&offset=1", nil))
	assert.Equal(http.StatusOK, w.Code)

	var resp schema.ListToolResponse
	if assert.NoError(json.NewDecoder(w.Body).Decode(&resp)) {
		assert.Equal(uint(2), resp.Count)
		if assert.Len(resp.Body, 1) {
			assert.Equal(heritageapi.TextRecordToolName, resp.Body[0].Name)
		}
	}
}

func TestToolGet(t *testing.T) {
	assert := assert.New(t)
	mux, _ := serveMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tool/"+heritageapi.TextRecordToolName, nil))
	assert.Equal(http.StatusOK, w.Code)
	var def schema.ToolDefinition
	if assert.NoError(json.NewDecoder(w.Body).Decode(&def)) {
		assert.Equal(heritageapi.TextRecordToolName, def.Name)
		assert.NotNil(def.InputSchema)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tool/missing", nil))
	assert.Equal(http.StatusNotFound, w.Code)
}

///////////////////////////////////////////////////////////////////////////////
// RECORD TESTS

func TestRecord(t *testing.T) {
	assert := assert.New(t)
	mux, _ := serveMux(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/record?structure_name="+url.QueryEscape("경복궁 사정전"), nil))
	assert.Equal(http.StatusOK, w.Code)
	var record schema.HeritageRecord
	if assert.NoError(json.NewDecoder(w.Body).Decode(&record)) {
		assert.True(record.Success())
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/record?structure_name="+url.QueryEscape("불국사"), nil))
	assert.Equal(http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/record", nil))
	assert.Equal(http.StatusBadRequest, w.Code)
}
