package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/scorecard/internal/model"
)

func TestParseID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id           string
		block, index int
		ok           bool
	}{
		{"3-1", 3, 1, true},
		{" 16-6 ", 16, 6, true},
		{"3", 0, 0, false},
		{"0-1", 0, 0, false},
		{"a-1", 0, 0, false},
		{"3-x", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			b, i, ok := ParseID(tt.id)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.block, b)
			assert.Equal(t, tt.index, i)
		})
	}
}

func TestRegistry_LookupIsACopy(t *testing.T) {
	t.Parallel()

	r := New(model.Subcomponent{ID: "3-1", Dimensions: []model.Dimension{{Name: "Segment Tiering"}}})

	s, ok := r.Lookup("3-1")
	require.True(t, ok)
	assert.Equal(t, 3, s.Block)
	s.Dimensions[0].Name = "mutated"

	again, _ := r.Lookup("3-1")
	assert.Equal(t, "Segment Tiering", again.Dimensions[0].Name)

	_, ok = r.Lookup("9-9")
	assert.False(t, ok)

	var nilReg *Registry
	_, ok = nilReg.Lookup("3-1")
	assert.False(t, ok)
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	r := New(
		model.Subcomponent{ID: "10-1"},
		model.Subcomponent{ID: "2-2"},
		model.Subcomponent{ID: "2-1"},
		model.Subcomponent{ID: ""},
	)
	ids := []string{}
	for _, s := range r.List() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"2-1", "2-2", "10-1"}, ids)
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_Merge(t *testing.T) {
	t.Parallel()

	base := New(
		model.Subcomponent{
			ID:         "3-1",
			Name:       "Base",
			Dimensions: []model.Dimension{{Name: "A"}},
			UseCases:   []model.UseCase{{Company: "One"}},
		},
		model.Subcomponent{ID: "3-2", Dimensions: []model.Dimension{{Name: "Keep"}}},
	)
	overlay := New(
		model.Subcomponent{
			ID:         "3-1",
			Dimensions: []model.Dimension{{Name: "B"}, {Name: "C"}},
			UseCases:   []model.UseCase{{Company: "Two"}},
		},
		model.Subcomponent{ID: "3-2", UseCases: []model.UseCase{{Company: "Three"}}},
		model.Subcomponent{ID: "4-1", Name: "New"},
	)

	merged := base.Merge(overlay, nil)

	s, ok := merged.Lookup("3-1")
	require.True(t, ok)
	assert.Equal(t, "Base", s.Name)
	assert.Equal(t, []model.Dimension{{Name: "B"}, {Name: "C"}}, s.Dimensions)
	assert.Equal(t, []model.UseCase{{Company: "One"}, {Company: "Two"}}, s.UseCases)

	s2, _ := merged.Lookup("3-2")
	assert.Equal(t, "Keep", s2.Dimensions[0].Name)
	assert.Len(t, s2.UseCases, 1)

	_, ok = merged.Lookup("4-1")
	assert.True(t, ok)

	orig, _ := base.Lookup("3-1")
	assert.Len(t, orig.UseCases, 1)
	assert.Equal(t, "A", orig.Dimensions[0].Name)
}

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	r, err := LoadEmbedded()
	require.NoError(t, err)

	s, ok := r.Lookup("3-1")
	require.True(t, ok)
	assert.Equal(t, 3, s.Block)
	require.Len(t, s.Dimensions, 5)
	assert.Equal(t, "Segment Tiering", s.Dimensions[0].Name)
	assert.NotEmpty(t, s.UseCases)

	for _, sub := range r.List() {
		_, _, ok := ParseID(sub.ID)
		assert.True(t, ok, sub.ID)
		assert.NotEmpty(t, sub.Dimensions, sub.ID)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`subcomponents:
  - id: "7-1"
    dimensions:
      - name: Process Framework
        weight: 30
`), 0o644))

	r, err := LoadFile(yamlPath)
	require.NoError(t, err)
	s, ok := r.Lookup("7-1")
	require.True(t, ok)
	assert.Equal(t, 7, s.Block)
	assert.InDelta(t, 30, s.Dimensions[0].Weight, 0.001)

	jsonPath := filepath.Join(dir, "extra.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"subcomponents":[{"id":"8-2","use_cases":[{"company":"Acme","key_insight":"k"}]}]}`), 0o644))
	r, err = LoadFile(jsonPath)
	require.NoError(t, err)
	s, ok = r.Lookup("8-2")
	require.True(t, ok)
	assert.Equal(t, "k", s.UseCases[0].KeyInsight)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = LoadFile(txt)
	assert.Error(t, err)
}

func TestLoadDirAndLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("subcomponents:\n  - id: \"1-1\"\n    name: first\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("subcomponents:\n  - id: \"1-1\"\n    name: second\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	r, err := LoadDir(dir)
	require.NoError(t, err)
	s, ok := r.Lookup("1-1")
	require.True(t, ok)
	assert.Equal(t, "second", s.Name)

	viaLoad, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, viaLoad.Len())

	_, err = Load(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
