/*
openai implements a chat completions client for the OpenAI API.
https://platform.openai.com/docs/api-reference/chat
*/
package openai

import (
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	heritage "github.com/mutablelogic/go-heritage"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

var _ heritage.Client = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint  = "https://api.openai.com/v1"
	keyPrefix = "sk-"

	// DefaultModel is the model used when none is requested
	DefaultModel = "gpt-4o-mini"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new OpenAI API client with the given API key. Options are
// applied after the defaults, so an endpoint passed here replaces the
// public one.
func New(apiKey string, opts ...client.ClientOpt) (*Client, error) {
	if err := ValidateKey(apiKey); err != nil {
		return nil, err
	}
	opts = append([]client.ClientOpt{
		client.OptEndpoint(endPoint),
		client.OptReqToken(client.Token{Scheme: client.Bearer, Value: strings.TrimSpace(apiKey)}),
	}, opts...)
	if c, err := client.New(opts...); err != nil {
		return nil, err
	} else {
		return &Client{c}, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Name returns the provider name
func (*Client) Name() string {
	return "openai"
}

// ValidateKey returns an error if the key is missing or is not shaped like
// an OpenAI secret key
func ValidateKey(apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return heritage.ErrBadParameter.With("OpenAI API key is required")
	}
	if !strings.HasPrefix(apiKey, keyPrefix) {
		return heritage.ErrBadParameter.Withf("OpenAI API key should start with %q", keyPrefix)
	}
	return nil
}
