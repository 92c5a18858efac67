package mock

import (
	"context"

	"github.com/siddhant230/draftclaim"
)

var _ draftclaim.DocumentReader = (*DocumentReader)(nil)

// DocumentReader is a mock implementation of draftclaim.DocumentReader.
type DocumentReader struct {
	ReadDocumentFn func(ctx context.Context, path string, role draftclaim.DocumentRole) (*draftclaim.Document, error)
}

func (r *DocumentReader) ReadDocument(ctx context.Context, path string, role draftclaim.DocumentRole) (*draftclaim.Document, error) {
	return r.ReadDocumentFn(ctx, path, role)
}
