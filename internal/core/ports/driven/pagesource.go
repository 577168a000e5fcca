package driven

import (
	"context"

	"github.com/bloglab/notion-sync/internal/core/domain"
)

// PageSource fetches pages from the remote document database.
type PageSource interface {
	// FetchAll returns every page of the configured database, newest
	// first. The implementation is expected to fall back through sort
	// strategies when the remote schema does not support one; exhausting
	// all strategies propagates the error, which is fatal for the pass.
	FetchAll(ctx context.Context) ([]domain.Page, error)

	// Validate performs a lightweight check that the source is reachable
	// and the credentials grant access to the database.
	Validate(ctx context.Context) error
}

// BlockSource fetches one level of a page's block tree.
// The converter recurses through it to render nested content.
type BlockSource interface {
	// ListBlockChildren returns the direct children of a block or page,
	// following pagination until the level is complete.
	ListBlockChildren(ctx context.Context, blockID string) ([]domain.Block, error)
}
