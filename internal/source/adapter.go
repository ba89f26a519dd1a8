// Package source implements the information-source adapters. Every adapter
// answers a topic with best-effort text: on any failure it logs a diagnostic
// and returns "", never an error, so one dead source cannot abort the
// research run.
package source

import (
	"context"

	"github.com/govbrief/govbrief/internal/model"
)

// Adapter wraps one external information source.
type Adapter interface {
	// Name identifies the adapter in logs.
	Name() string

	// Origin classifies the chunk this adapter contributes.
	Origin() model.SourceID

	// Label is the heading used when the chunk is rendered into the
	// aggregated context.
	Label() string

	// Query returns best-effort text for the topic, or "" on any failure.
	Query(ctx context.Context, topic string) string
}
