package notion

import (
	"context"
	"sort"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.PageSource  = (*Client)(nil)
	_ driven.BlockSource = (*Client)(nil)
)

// Sort property names tried in order. Databases migrated between schema
// versions disagree on which date column exists, so the query falls
// back through them before giving up on server-side sorting entirely.
const (
	primarySortProperty   = "date"
	secondarySortProperty = "createDate"
)

// FetchAll returns every page of the database, newest first.
//
// Three tiers are attempted, each at most once: sort by the primary
// date property; sort by the secondary date property; fetch unsorted
// and sort locally by creation timestamp descending. Exhausting all
// tiers propagates the last error, which is fatal for the sync pass.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Page, error) {
	pages, err := c.queryDatabase(ctx, []sortSpec{
		{Property: primarySortProperty, Direction: "descending"},
	})
	if err == nil {
		return pages, nil
	}
	logger.Warn("Query sorted by %q failed, trying %q: %v", primarySortProperty, secondarySortProperty, err)

	pages, err = c.queryDatabase(ctx, []sortSpec{
		{Property: secondarySortProperty, Direction: "descending"},
	})
	if err == nil {
		return pages, nil
	}
	logger.Warn("Query sorted by %q failed, falling back to unsorted fetch: %v", secondarySortProperty, err)

	pages, err = c.queryDatabase(ctx, nil)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].CreatedTime.After(pages[j].CreatedTime)
	})
	return pages, nil
}
