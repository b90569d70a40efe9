package httphandler

import (
	"net/http"

	// Packages
	agent "github.com/mutablelogic/go-heritage/pkg/agent"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: api/tool
func ToolListHandler(agent *agent.Agent) (string, *jsonschema.Schema, httprequest.PathItem) {
	return "api/tool", nil, httprequest.NewPathItem(
		"Tools", "Tools available to the agent", "tool",
	).Get(func(w http.ResponseWriter, r *http.Request) {
		var req schema.ListToolRequest
		if err := httprequest.Query(r.URL.Query(), &req); err != nil {
			_ = httpresponse.Error(w, err)
			return
		}
		defs, err := agent.Toolkit().Definitions()
		if err != nil {
			_ = httpresponse.Error(w, httpErr(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), paginate(defs, req))
	}, "List the tools available to the agent",
		openapi.WithQuery(jsonschema.MustFor[schema.ListToolRequest]()),
	)
}

// Path: api/tool/{name}
func ToolGetHandler(agent *agent.Agent) (string, *jsonschema.Schema, httprequest.PathItem) {
	return "api/tool/{name}", nil, httprequest.NewPathItem(
		"Tool", "A single tool definition", "tool",
	).Get(func(w http.ResponseWriter, r *http.Request) {
		def, err := agent.Toolkit().Definition(r.PathValue("name"))
		if err != nil {
			_ = httpresponse.Error(w, httpErr(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), def)
	}, "Get a tool definition by name",
		openapi.WithErrorResponse(http.StatusNotFound, "Tool not found"),
	)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func paginate(defs []schema.ToolDefinition, req schema.ListToolRequest) schema.ListToolResponse {
	resp := schema.ListToolResponse{
		Count:  uint(len(defs)),
		Offset: req.Offset,
		Limit:  req.Limit,
	}
	if req.Offset >= uint(len(defs)) {
		return resp
	}
	defs = defs[req.Offset:]
	if req.Limit != nil && *req.Limit < uint(len(defs)) {
		defs = defs[:*req.Limit]
	}
	resp.Body = defs
	return resp
}
