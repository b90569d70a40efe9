package httphandler

import (
	"net/http"
	"strings"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
	openapi "github.com/mutablelogic/go-server/pkg/openapi"
)

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: api/record
func RecordHandler(catalog *heritageapi.Catalog) (string, *jsonschema.Schema, httprequest.PathItem) {
	return "api/record", nil, httprequest.NewPathItem(
		"Record", "Historical records of heritage structures", "heritage",
	).Get(func(w http.ResponseWriter, r *http.Request) {
		var req schema.RecordRequest
		if err := httprequest.Query(r.URL.Query(), &req); err != nil {
			_ = httpresponse.Error(w, err)
			return
		}
		if strings.TrimSpace(req.StructureName) == "" {
			_ = httpresponse.Error(w, httpErr(heritage.ErrBadParameter.With("structure_name is required")))
			return
		}
		record := catalog.Lookup(req.Location, req.StructureName)
		if !record.Success() {
			_ = httpresponse.Error(w, httpErr(heritage.ErrNotFound.With(record.TextRecord)))
			return
		}
		_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), record)
	}, "Look up the historical record of a structure",
		openapi.WithQuery(jsonschema.MustFor[schema.RecordRequest]()),
		openapi.WithErrorResponse(http.StatusBadRequest, "Structure name is missing"),
		openapi.WithErrorResponse(http.StatusNotFound, "No record for the structure"),
	)
}
