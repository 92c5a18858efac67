package draftclaim

import (
	"context"
	"time"
)

// Model describes a language model available at the generation endpoint.
type Model struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// ModelService lists the models available for generation.
type ModelService interface {
	// ListModels returns the models the endpoint can serve, in the
	// order the endpoint reports them. An empty list is a valid result.
	// Returns EUNAVAILABLE when the endpoint cannot be reached.
	ListModels(ctx context.Context) ([]Model, error)
}
