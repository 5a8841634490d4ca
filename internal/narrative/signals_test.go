package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/scorecard/internal/model"
)

func TestDetectSignals_Cadence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want model.Cadence
	}{
		{"We meet weekly and report monthly", model.CadenceWeekly},
		{"Bi-weekly syncs with sales", model.CadenceWeekly},
		{"Reviewed every month", model.CadenceMonthly},
		{"Covered in our QBR", model.CadenceQuarterly},
		{"Quarterly planning only, monthly check-ins", model.CadenceMonthly},
		{"When we get to it", model.CadenceNone},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectSignals(tt.text).Cadence)
		})
	}
}

func TestDetectSignals_Ownership(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want model.Ownership
	}{
		{"RevOps and marketing co-own it", model.OwnerSalesOps},
		{"The product team decides", model.OwnerProduct},
		{"Marketing runs the process", model.OwnerMarketing},
		{"Our CSMs own renewals", model.OwnerCS},
		{"The CEO signs off", model.OwnerExec},
		{"Nobody in particular", model.OwnerNone},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DetectSignals(tt.text).Ownership)
		})
	}
}

func TestDetectSignals_Flags(t *testing.T) {
	t.Parallel()

	sig := DetectSignals("We use a scoring rubric in Salesforce and HubSpot, documented in Confluence, built cross-functionally.")
	assert.True(t, sig.Standardization)
	assert.True(t, sig.DocSignals)
	assert.True(t, sig.CrossFunction)
	assert.Equal(t, []string{"Salesforce", "Hubspot"}, sig.Tooling)
	assert.Equal(t, model.ClarityLow, sig.Clarity)

	empty := DetectSignals("")
	assert.Equal(t, model.CadenceNone, empty.Cadence)
	assert.Equal(t, model.OwnerNone, empty.Ownership)
	assert.NotNil(t, empty.Tooling)
	assert.Empty(t, empty.Tooling)
	assert.False(t, empty.Standardization)
}

func TestSignalCount(t *testing.T) {
	t.Parallel()

	text := "We review segmentation weekly using Salesforce with a clear scoring rubric and 85% win rate on Tier 1 accounts."
	assert.Equal(t, 4, SignalCount(DetectSignals(text), ExtractFacts(text)))
	assert.Equal(t, 0, SignalCount(DetectSignals(""), ExtractFacts("")))
}

func TestMapDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dimension string
		want      string
	}{
		{"Segment Tiering", DomainSegmentation},
		{"Pricing Model", DomainRevenue},
		{"ARR Quality", DomainRevenue},
		{"Strategic Fit", DomainFit},
		{"Growth Potential", DomainGrowth},
		{"Persona Clarity", DomainPersona},
		{"User Journey", DomainJourney},
		{"Decision Speed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.dimension, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapDomain(tt.dimension, "").Key)
		})
	}
}

func TestMapDomain_HitsAndTemplates(t *testing.T) {
	t.Parallel()

	info := MapDomain("Segment Tiering", "Our segmentation uses firmographic data and Tier 1 named accounts")
	assert.Equal(t, []string{"segment", "tier", "firmographic", "named accounts"}, info.Hits)
	assert.Len(t, info.Templates, 2)

	none := MapDomain("Decision Speed", "segment tier")
	assert.Empty(t, none.Hits)
	assert.Empty(t, none.Templates)
}

func TestContainsWordPrefix(t *testing.T) {
	t.Parallel()

	assert.True(t, containsWordPrefix("tiering works", "tier"))
	assert.True(t, containsWordPrefix("our arr grew", "arr"))
	assert.False(t, containsWordPrefix("we carry it", "arr"))
	assert.False(t, containsWordPrefix("", "arr"))
}
