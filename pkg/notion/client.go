// Package notion reads subcomponent content pages out of Notion databases.
package notion

import (
	"context"
	"math"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client runs a single database query and returns one page of results.
type Client interface {
	QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// limitedClient spaces queries under a token bucket. A nil limiter means
// queries go out as fast as the caller issues them.
type limitedClient struct {
	api     *notionapi.Client
	limiter *rate.Limiter
}

// NewClient returns a Client for the integration token that sends at most
// rps queries per second. rps of zero or less turns throttling off.
func NewClient(token string, rps float64) Client {
	return &limitedClient{
		api:     notionapi.NewClient(notionapi.Token(token)),
		limiter: newLimiter(rps),
	}
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), int(math.Max(1, math.Floor(rps))))
}

func (c *limitedClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrapf(err, "notion: throttle %s", dbID)
		}
	}
	resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(dbID), req)
	if err != nil {
		return nil, eris.Wrapf(err, "notion: query %s", dbID)
	}
	return resp, nil
}
