package httpclient

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	heritage "github.com/mutablelogic/go-heritage"
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns the tools available to the agent.
// Use WithLimit and WithOffset to paginate results.
func (c *Client) ListTools(ctx context.Context, opts ...opt.Opt) (*schema.ListToolResponse, error) {
	// Apply options
	o, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}

	// Create request
	req := client.NewRequest()
	reqOpts := []client.RequestOpt{client.OptPath("tool")}
	if q := o.Query(opt.LimitKey, opt.OffsetKey); len(q) > 0 {
		reqOpts = append(reqOpts, client.OptQuery(q))
	}

	// Perform request
	var response schema.ListToolResponse
	if err := c.DoWithContext(ctx, req, &response, reqOpts...); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}

// GetTool retrieves a tool definition by name.
func (c *Client) GetTool(ctx context.Context, name string) (*schema.ToolDefinition, error) {
	if name == "" {
		return nil, heritage.ErrBadParameter.With("tool name cannot be empty")
	}

	// Perform request
	var response schema.ToolDefinition
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("tool", name)); err != nil {
		return nil, err
	}

	// Return the response
	return &response, nil
}
