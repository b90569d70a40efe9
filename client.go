package heritage

import (
	"context"

	// Packages
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is the interface that wraps basic model provider methods
type Client interface {
	// Return the provider name
	Name() string
}

// Generator is an interface for conducting a conversation with a model
type Generator interface {
	Client

	// Generate sends the conversation to the model, appends the reply to
	// the conversation and returns it together with the token usage
	Generate(ctx context.Context, model string, conversation *schema.Conversation, opts ...opt.Opt) (*schema.Message, *schema.Usage, error)
}
