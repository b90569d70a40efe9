package httphandler

import (
	"errors"
	"net/http"

	// Package
	heritage "github.com/mutablelogic/go-heritage"
	agent "github.com/mutablelogic/go-heritage/pkg/agent"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	jsonschema "github.com/mutablelogic/go-server/pkg/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router is the part of an httprouter.Router used to register handlers
type Router interface {
	RegisterPath(path string, params *jsonschema.Schema, pathitem httprequest.PathItem) error
}

var _ Router = (*httprouter.Router)(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the web page and the JSON API with the router.
// Paths are relative to the router prefix.
func RegisterHandlers(router Router, agent *agent.Agent, catalog *heritageapi.Catalog) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, params *jsonschema.Schema, item httprequest.PathItem) {
		result = errors.Join(result, router.RegisterPath(path, params, item))
	}

	// Register handlers
	register(PageHandler(agent))
	register(RestoreHandler(agent))
	register(ToolListHandler(agent))
	register(ToolGetHandler(agent))
	register(RecordHandler(catalog))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a heritage.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var code heritage.Err
	if !errors.As(err, &code) {
		return err
	}
	switch code {
	case heritage.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case heritage.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case heritage.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case heritage.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}

// statusCode returns the HTTP status for an error rendered as a page
func statusCode(err error) int {
	var code heritage.Err
	if !errors.As(err, &code) {
		return http.StatusInternalServerError
	}
	switch code {
	case heritage.ErrNotFound:
		return http.StatusNotFound
	case heritage.ErrBadParameter:
		return http.StatusBadRequest
	case heritage.ErrConflict:
		return http.StatusConflict
	case heritage.ErrNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
