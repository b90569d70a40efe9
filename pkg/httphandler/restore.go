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

// Path: api/restore
func RestoreHandler(agent *agent.Agent) (string, *jsonschema.Schema, httprequest.PathItem) {
	return "api/restore", nil, httprequest.NewPathItem(
		"Restore", "Analyse a heritage structure and simulate its restoration", "heritage",
	).Post(func(w http.ResponseWriter, r *http.Request) {
		var req schema.RestoreRequest
		if err := httprequest.Read(r, &req); err != nil {
			_ = httpresponse.Error(w, err)
			return
		}
		resp, err := agent.Restore(r.Context(), req, nil)
		if err != nil {
			_ = httpresponse.Error(w, httpErr(err))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
	}, "Run the agent on a structure",
		openapi.WithJSONRequest(jsonschema.MustFor[schema.RestoreRequest]()),
		openapi.WithErrorResponse(http.StatusBadRequest, "Structure name is missing"),
		openapi.WithErrorResponse(http.StatusInternalServerError, "Model or tool failure"),
	)
}
