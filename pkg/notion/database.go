package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

const (
	// StatusActive is the Status value of content pages that are live.
	StatusActive = "Active"

	propStatus  = "Status"
	maxPageSize = 100
)

// ActiveFilter selects pages whose Status is Active.
func ActiveFilter() notionapi.PropertyFilter {
	return notionapi.PropertyFilter{
		Property: propStatus,
		Status:   &notionapi.StatusFilterCondition{Equals: StatusActive},
	}
}

// Pages runs filter against dbID and follows NextCursor until the database
// reports no more results. A nil filter returns every page.
func Pages(ctx context.Context, c Client, dbID string, filter notionapi.Filter) ([]notionapi.Page, error) {
	var (
		out    []notionapi.Page
		cursor notionapi.Cursor
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrapf(err, "notion: pages of %s", dbID)
		}
		resp, err := c.QueryDatabase(ctx, dbID, &notionapi.DatabaseQueryRequest{
			Filter:      filter,
			StartCursor: cursor,
			PageSize:    maxPageSize,
		})
		if err != nil {
			return nil, eris.Wrapf(err, "notion: pages of %s", dbID)
		}
		out = append(out, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return out, nil
		}
		cursor = resp.NextCursor
	}
}

// ActivePages returns every Active content page in dbID.
func ActivePages(ctx context.Context, c Client, dbID string) ([]notionapi.Page, error) {
	pages, err := Pages(ctx, c, dbID, ActiveFilter())
	if err != nil {
		return nil, eris.Wrap(err, "notion: active pages")
	}
	return pages, nil
}
