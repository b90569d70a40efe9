package httphandler

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"strings"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	agent "github.com/mutablelogic/go-heritage/pkg/agent"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	goldmark "github.com/yuin/goldmark"
	extension "github.com/yuin/goldmark/extension"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type page struct {
	Title    string
	Subtitle string
	Request  schema.RestoreRequest
	Response *schema.RestoreResponse
	Analysis template.HTML
	Progress []string
	Pending  string
	Warning  string
	Error    string
}

// formItem serves the restoration form, which is kept out of the API document
type formItem struct {
	httprequest.PathItem
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	pageTitle    = "🌍 지역 문화유산 디지털 마스터 에이전트"
	pageSubtitle = "역사 기록을 분석하고 훼손된 문화유산을 디지털로 복원합니다."
	pageWarning  = "문화유산 이름과 분석 요청을 입력해 주세요."
)

//go:embed page.html
var pageSource string

var (
	pageTmpl = template.Must(template.New("page").Parse(pageSource))
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: / (exact match)
func PageHandler(agent *agent.Agent) (string, *jsonschema.Schema, httprequest.PathItem) {
	return "{$}", nil, formItem{httprequest.NewPathItem(
		"Page", "Restoration form",
	).Get(func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, http.StatusOK, defaultPage())
	}, "Show the restoration form").Post(func(w http.ResponseWriter, r *http.Request) {
		status, data := restorePage(r, agent)
		renderPage(w, status, data)
	}, "Run a restoration from the form and show the result")}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (formItem) Spec(string, *jsonschema.Schema) *openapi.PathItem {
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func defaultPage() page {
	req := schema.RestoreRequest{
		Location:      "서울 종로",
		StructureName: "경복궁 사정전",
		LocationData:  "평지",
	}
	req.Prompt = schema.DefaultPrompt(req.StructureName)
	return page{
		Title:    pageTitle,
		Subtitle: pageSubtitle,
		Request:  req,
		Pending:  schema.RestorePending,
	}
}

// restorePage runs the agent with the form values. A missing structure name
// or prompt renders a warning without calling the model.
func restorePage(r *http.Request, agent *agent.Agent) (int, page) {
	data := defaultPage()
	if err := r.ParseForm(); err != nil {
		data.Error = err.Error()
		return http.StatusBadRequest, data
	}
	data.Request = schema.RestoreRequest{
		Location:      strings.TrimSpace(r.PostForm.Get("location")),
		StructureName: strings.TrimSpace(r.PostForm.Get("structure_name")),
		LocationData:  strings.TrimSpace(r.PostForm.Get("location_data")),
		Prompt:        strings.TrimSpace(r.PostForm.Get("prompt")),
	}
	if data.Request.StructureName == "" || data.Request.Prompt == "" {
		data.Warning = pageWarning
		return http.StatusOK, data
	}

	response, err := agent.Restore(r.Context(), data.Request, func(message string) {
		data.Progress = append(data.Progress, message)
	})
	if err != nil {
		data.Error = err.Error()
		return statusCode(err), data
	}

	analysis, err := renderMarkdown(response.Analysis)
	if err != nil {
		data.Error = heritage.ErrInternalServerError.Withf("markdown: %v", err).Error()
		return http.StatusInternalServerError, data
	}
	data.Response = response
	data.Analysis = analysis
	return http.StatusOK, data
}

func renderMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func renderPage(w http.ResponseWriter, status int, data page) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		_ = httpresponse.Error(w, httpresponse.ErrInternalError.With(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
