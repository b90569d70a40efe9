/*
agent runs the chat-completion loop which looks up the record of a heritage
structure, asks for a visual description of its restored form and requests
a restoration image, calling tools on behalf of the model.
*/
package agent

import (
	"log/slog"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Agent drives a generator and a toolkit to answer restoration requests
type Agent struct {
	generator     heritage.Generator
	toolkit       *tool.Toolkit
	model         string
	maxIterations uint
	systemPrompt  string
	tracer        trace.Tracer
	logger        *slog.Logger
}

// ProgressFn receives a human-readable line for each tool the agent calls
type ProgressFn func(message string)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultModel         = "gpt-4o-mini"
	DefaultMaxIterations = 3
	tracerName           = "github.com/mutablelogic/go-heritage/pkg/agent"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns an agent which sends requests to the generator and runs tools
// from the toolkit
func New(generator heritage.Generator, toolkit *tool.Toolkit, opts ...Opt) (*Agent, error) {
	if generator == nil {
		return nil, heritage.ErrBadParameter.With("generator is required")
	}
	if toolkit == nil {
		return nil, heritage.ErrBadParameter.With("toolkit is required")
	}

	agent := &Agent{
		generator:     generator,
		toolkit:       toolkit,
		model:         DefaultModel,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		if err := opt(agent); err != nil {
			return nil, err
		}
	}

	// Set defaults
	if agent.tracer == nil {
		agent.tracer = otel.Tracer(tracerName)
	}
	if agent.logger == nil {
		agent.logger = slog.Default()
	}

	// Return success
	return agent, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Model returns the default model name
func (a *Agent) Model() string {
	return a.model
}

// Toolkit returns the tools available to the model
func (a *Agent) Toolkit() *tool.Toolkit {
	return a.toolkit
}
