package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSQL(t *testing.T) {
	got, err := UpsertSQL(UpsertConfig{
		Table:        "score_history",
		Columns:      []string{"id", "subcomponent_id", "session_id", "overall_score"},
		ConflictKeys: []string{"subcomponent_id", "session_id"},
	})
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "score_history" ("id", "subcomponent_id", "session_id", "overall_score") VALUES ($1, $2, $3, $4) `+
			`ON CONFLICT ("subcomponent_id", "session_id") DO UPDATE SET "id" = EXCLUDED."id", "overall_score" = EXCLUDED."overall_score"`,
		got)
}

func TestUpsertSQL_ExplicitUpdateCols(t *testing.T) {
	got, err := UpsertSQL(UpsertConfig{
		Table:        "app.score_history",
		Columns:      []string{"id", "session_id", "result"},
		ConflictKeys: []string{"session_id"},
		UpdateCols:   []string{"result"},
	})
	require.NoError(t, err)
	assert.Contains(t, got, `INSERT INTO "app"."score_history"`)
	assert.Contains(t, got, `DO UPDATE SET "result" = EXCLUDED."result"`)
	assert.NotContains(t, got, `"id" = EXCLUDED`)
}

func TestUpsertSQL_DoNothing(t *testing.T) {
	got, err := UpsertSQL(UpsertConfig{
		Table:        "t",
		Columns:      []string{"id"},
		ConflictKeys: []string{"id"},
	})
	require.NoError(t, err)
	assert.Contains(t, got, "ON CONFLICT (\"id\") DO NOTHING")
}

func TestUpsertSQL_Errors(t *testing.T) {
	_, err := UpsertSQL(UpsertConfig{Columns: []string{"id"}, ConflictKeys: []string{"id"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no table specified")

	_, err = UpsertSQL(UpsertConfig{Table: "t", ConflictKeys: []string{"id"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns specified")

	_, err = UpsertSQL(UpsertConfig{Table: "t", Columns: []string{"id"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conflict keys specified")
}

func TestSanitizeTable(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", `"simple"`},
		{"app.score_history", `"app"."score_history"`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := sanitizeTable(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQuoteAndJoin(t *testing.T) {
	result := quoteAndJoin([]string{"id", "name", "value"})
	assert.Equal(t, `"id", "name", "value"`, result)
}
