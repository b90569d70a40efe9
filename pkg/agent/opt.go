package agent

import (
	"log/slog"
	"strings"

	// Packages
	heritage "github.com/mutablelogic/go-heritage"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for configuring an agent
type Opt func(*Agent) error

///////////////////////////////////////////////////////////////////////////////
// AGENT OPTIONS

// WithModel sets the model used when a request does not name one
func WithModel(model string) Opt {
	return func(a *Agent) error {
		if model = strings.TrimSpace(model); model == "" {
			return heritage.ErrBadParameter.With("model is required")
		}
		a.model = model
		return nil
	}
}

// WithMaxIterations sets the number of tool-calling rounds before the
// model is asked for a final answer without tools
func WithMaxIterations(n uint) Opt {
	return func(a *Agent) error {
		if n == 0 {
			return heritage.ErrBadParameter.With("max iterations must be at least 1")
		}
		a.maxIterations = n
		return nil
	}
}

// WithSystemPrompt sets a system prompt sent with every request
func WithSystemPrompt(value string) Opt {
	return func(a *Agent) error {
		a.systemPrompt = strings.TrimSpace(value)
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer for restoration spans
func WithTracer(tracer trace.Tracer) Opt {
	return func(a *Agent) error {
		a.tracer = tracer
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Opt {
	return func(a *Agent) error {
		if logger == nil {
			return heritage.ErrBadParameter.With("logger is required")
		}
		a.logger = logger
		return nil
	}
}
