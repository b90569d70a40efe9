package httpclient

import (
	"context"
	"net/url"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	heritage "github.com/mutablelogic/go-heritage"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Record looks up the historical record of a structure
func (c *Client) Record(ctx context.Context, req schema.RecordRequest) (*schema.HeritageRecord, error) {
	if strings.TrimSpace(req.StructureName) == "" {
		return nil, heritage.ErrBadParameter.With("structure_name is required")
	}

	// Set the query
	q := url.Values{}
	q.Set("structure_name", req.StructureName)
	if req.Location != "" {
		q.Set("location", req.Location)
	}

	// Perform request
	var response schema.HeritageRecord
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("record"), client.OptQuery(q)); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// Restore runs the agent on the server to analyse and restore a structure.
// The call blocks until the run is complete.
func (c *Client) Restore(ctx context.Context, req schema.RestoreRequest) (*schema.RestoreResponse, error) {
	if strings.TrimSpace(req.StructureName) == "" {
		return nil, heritage.ErrBadParameter.With("structure_name is required")
	}

	// Create request
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform request
	var response schema.RestoreResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("restore")); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
