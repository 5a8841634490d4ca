package narrative

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const segmentationAnswer = "We review segmentation weekly using Salesforce with a clear scoring rubric and 85% win rate on Tier 1 accounts."

func build(name, text string, score float64) Narrative {
	in := Inspect(name, text)
	in.Score = score
	return BuildDimension(in)
}

func TestDimensionBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{100, BandExceptional},
		{85, BandExceptional},
		{84.9, BandStrong},
		{70, BandStrong},
		{69.9, BandDeveloping},
		{55, BandDeveloping},
		{54.9, BandCritical},
		{0, BandCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DimensionBand(tt.score), "score %v", tt.score)
	}
}

func TestOverallBand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{90, BandExceptional},
		{75, BandStrong},
		{65, BandProficient},
		{55, BandDeveloping},
		{52, BandEmerging},
		{50, BandEmerging},
		{49.9, BandCritical},
		{0, BandCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OverallBand(tt.score), "score %v", tt.score)
	}

	// The two scales disagree below 55.
	assert.Equal(t, BandCritical, DimensionBand(52))
	assert.Equal(t, BandEmerging, OverallBand(52))
}

func TestBuildDimension_SegmentationAnswer(t *testing.T) {
	t.Parallel()

	n := build("Segment Tiering", segmentationAnswer, 77)

	assert.Equal(t, BandStrong, n.Band)
	assert.Equal(t, DomainSegmentation, n.Category)
	require.NotEmpty(t, n.Strengths)
	assert.LessOrEqual(t, len(n.Strengths), 3)

	var domainSpecific bool
	for _, s := range n.Strengths {
		l := strings.ToLower(s)
		if strings.Contains(l, "segment") || strings.Contains(l, "tier") {
			domainSpecific = true
		}
	}
	assert.True(t, domainSpecific, "strengths should use segmentation wording: %v", n.Strengths)
	assert.Contains(t, n.Strengths[0], "85%")

	require.NotEmpty(t, n.Improvements)
	assert.Contains(t, n.Improvements[0], "single-threaded owner")
	assert.Contains(t, n.Improvements[0], "RevOps")
	assert.True(t, strings.HasPrefix(n.Improvements[len(n.Improvements)-1], "Operationalize"))
	assert.Contains(t, n.Feedback, "85%")
}

func TestBuildDimension_EmptyAnswer(t *testing.T) {
	t.Parallel()

	n := build("Segment Tiering", "", 50)
	assert.Equal(t, BandCritical, n.Band)
	assert.Empty(t, n.Strengths)
	assert.Len(t, n.Improvements, 5)
	assert.True(t, strings.HasPrefix(n.Improvements[0], "Instrument 2-3 KPIs"))
	assert.Contains(t, n.Feedback, noDetailMessage)
}

func TestBuildDimension_FillerAboveFiftyFive(t *testing.T) {
	t.Parallel()

	n := build("Segment Tiering", "", 60)
	require.Len(t, n.Strengths, 1)
	assert.Contains(t, n.Strengths[0], "developing segmentation capability")

	g := build("Team Morale", "", 60)
	require.Len(t, g.Strengths, 1)
	assert.Contains(t, g.Strengths[0], "Team Morale")
	assert.Equal(t, CategoryGeneric, g.Category)
}

func TestBuildDimension_Categories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Segment Tiering", DomainSegmentation},
		{"Revenue Model", DomainRevenue},
		{"ICP Fit", DomainFit},
		{"Growth Potential", DomainGrowth},
		{"Buyer Persona", DomainPersona},
		{"Funnel Conversion", DomainJourney},
		{"Framework Quality", CategoryFramework},
		{"Stakeholder Alignment", CategoryStakeholder},
		{"Budget Allocation", CategoryResource},
		{"Decision Speed", CategoryDecision},
		{"Outcome Tracking", CategoryOutcome},
		{"Team Morale", CategoryGeneric},
	}

	seen := map[string]string{}
	for _, tt := range tests {
		n := build(tt.name, "Documented in our wiki and reviewed monthly", 72)
		assert.Equal(t, tt.want, n.Category, tt.name)
		require.NotEmpty(t, n.Strengths, tt.name)
		first := n.Strengths[0]
		if prev, ok := seen[first]; ok {
			t.Errorf("%s and %s share strength wording %q", prev, tt.name, first)
		}
		seen[first] = tt.name
	}
}

func TestBuildDimension_Deterministic(t *testing.T) {
	t.Parallel()

	a := build("Segment Tiering", segmentationAnswer, 77)
	_ = build("Revenue Model", "Pricing owned by the CFO, reviewed quarterly", 40)
	b := build("Segment Tiering", segmentationAnswer, 77)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("narrative changed between runs (-first +second):\n%s", diff)
	}
}

func TestBuildDimension_Invariants(t *testing.T) {
	t.Parallel()

	texts := []string{
		"",
		segmentationAnswer,
		"Marketing and RevOps jointly own a documented playbook in HubSpot; reviewed quarterly; ARR up $2M and churn down 12%.",
		"not sure",
	}
	names := []string{"Segment Tiering", "Revenue Model", "Decision Speed", "Team Morale"}

	for _, name := range names {
		for _, text := range texts {
			for score := 0.0; score <= 100; score += 5 {
				n := build(name, text, score)
				assert.LessOrEqual(t, len(n.Strengths), 5)
				assert.LessOrEqual(t, len(n.Improvements), 5)
				assert.LessOrEqual(t, len(n.Strengths), strengthCap(score))
				assert.LessOrEqual(t, len(n.Improvements), improvementCap(n.Band))
				assertNoFoldDuplicates(t, n.Strengths)
				assertNoFoldDuplicates(t, n.Improvements)
				if score >= 55 {
					assert.NotEmpty(t, n.Strengths, "%s/%q/%v", name, text, score)
				}
			}
		}
	}
}

func TestSymptom(t *testing.T) {
	t.Parallel()

	n := build("Segment Tiering", "", 40)
	assert.Equal(t, "a lack of instrumented KPIs for Segment Tiering", Symptom(n.Improvements[0], "Segment Tiering"))
	assert.Equal(t, "execution gaps in X", Symptom("Do something else", "X"))
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	got := dedupe([]string{"Alpha", "beta", "ALPHA", " ", "Beta ", "gamma"})
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, got)
}

func TestJoinList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", joinList(nil))
	assert.Equal(t, "a", joinList([]string{"a"}))
	assert.Equal(t, "a and b", joinList([]string{"a", "b"}))
	assert.Equal(t, "a, b and c", joinList([]string{"a", "b", "c"}))
}

func assertNoFoldDuplicates(t *testing.T, items []string) {
	t.Helper()
	seen := map[string]bool{}
	for _, s := range items {
		k := strings.ToLower(s)
		assert.False(t, seen[k], "duplicate %q", s)
		seen[k] = true
	}
}
