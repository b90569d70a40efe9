package heritageapi

import (
	"context"
	"log/slog"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Restorer is a stand-in for a 3D modelling or image restoration service
type Restorer struct {
	url    string
	logger *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultRestoredURL is the placeholder returned for every restoration
	DefaultRestoredURL = "https://example.com/restored_model_placeholder.jpg"

	// Number of characters of the description which are logged
	descriptionPreview = 50
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewRestorer returns a restorer which answers with the given image URL,
// or DefaultRestoredURL when empty. A nil logger uses slog.Default.
func NewRestorer(url string, logger *slog.Logger) *Restorer {
	if url = strings.TrimSpace(url); url == "" {
		url = DefaultRestoredURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Restorer{url: url, logger: logger}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Restore "generates" a restored model from the description, which always
// succeeds unless the context is cancelled
func (r *Restorer) Restore(ctx context.Context, description, locationData string) schema.Restoration {
	if ctx.Err() != nil {
		return schema.Restoration{Status: schema.StatusError}
	}
	r.logger.InfoContext(ctx, "calling 3D restoration API",
		slog.String("description", preview(description, descriptionPreview)),
		slog.String("location_data", locationData),
	)
	return schema.Restoration{
		Status:      schema.StatusSuccess,
		RestoredURL: r.url,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func preview(v string, n int) string {
	runes := []rune(v)
	if len(runes) <= n {
		return v
	}
	return string(runes[:n]) + "..."
}
