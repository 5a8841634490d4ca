package notion

import (
	"context"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient implements Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	args := m.Called(ctx, dbID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.DatabaseQueryResponse), args.Error(1)
}

func TestNewClient_Throttling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		rps       float64
		throttled bool
		burst     int
	}{
		{"notion budget", 3, true, 3},
		{"fractional rate keeps a burst of one", 0.5, true, 1},
		{"zero disables", 0, false, 0},
		{"negative disables", -1, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, ok := NewClient("secret", tt.rps).(*limitedClient)
			require.True(t, ok)
			require.NotNil(t, c.api)
			if !tt.throttled {
				assert.Nil(t, c.limiter)
				return
			}
			require.NotNil(t, c.limiter)
			assert.InDelta(t, tt.rps, float64(c.limiter.Limit()), 0.001)
			assert.Equal(t, tt.burst, c.limiter.Burst())
		})
	}
}

func TestQueryDatabase_ThrottleRespectsContext(t *testing.T) {
	t.Parallel()

	c := NewClient("secret", 0.001).(*limitedClient)
	// Spend the single token so the next query has to wait.
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := c.QueryDatabase(ctx, "dims", &notionapi.DatabaseQueryRequest{})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notion: throttle dims")
}

func TestPropertyHelpers(t *testing.T) {
	t.Parallel()

	p := notionapi.Page{Properties: notionapi.Properties{
		"Name":   &notionapi.TitleProperty{Title: []notionapi.RichText{{PlainText: "Segment "}, {PlainText: "Tiering"}}},
		"Notes":  &notionapi.RichTextProperty{RichText: []notionapi.RichText{{PlainText: "hello"}}},
		"Weight": &notionapi.NumberProperty{Number: 25},
		"Kind":   &notionapi.SelectProperty{Select: notionapi.Option{Name: "core"}},
	}}

	assert.Equal(t, "Segment Tiering", Title(p, "Name"))
	assert.Equal(t, "hello", Text(p, "Notes"))
	assert.InDelta(t, 25, Number(p, "Weight"), 0.001)
	assert.Equal(t, "core", Select(p, "Kind"))

	assert.Empty(t, Title(p, "Notes"))
	assert.Empty(t, Text(p, "Missing"))
	assert.Zero(t, Number(p, "Name"))
	assert.Empty(t, Select(p, "Missing"))
}
