package scoring

import "github.com/sells-group/scorecard/internal/model"

var (
	missionDefaults     = names("Mission Clarity", "Problem Definition", "Discovery Process", "Stakeholder Alignment", "Outcome Tracking")
	insightDefaults     = names("Persona Clarity", "Customer Journey", "Research Cadence", "Insight Quality", "Decision Speed")
	prioritizeDefaults  = names("Segment Tiering", "Revenue Potential", "Strategic Fit", "Growth Potential", "Persona Clarity")
	launchDefaults      = names("Launch Framework", "Stakeholder Alignment", "Funnel Conversion", "Resource Allocation", "Outcome Tracking")
	gtmDefaults         = names("ICP Fit", "Pricing Model", "Channel Strategy", "Pipeline Growth", "Decision Speed")
	engagementDefaults  = names("Onboarding Journey", "Customer Health", "Expansion Potential", "Feedback Process", "Outcome Tracking")
	operationsDefaults  = names("Process Framework", "Resource Allocation", "Tooling Adoption", "Decision Speed", "Metric Tracking")
	leadershipDefaults  = names("Strategic Vision", "Stakeholder Alignment", "Budget Allocation", "Decision Speed", "Outcome Tracking")
	genericDefaultNames = names("Strategy Clarity", "Process Framework", "Stakeholder Alignment", "Resource Allocation", "Outcome Tracking")
)

// DefaultDimensions is the agent-default rubric used when the registry has
// no dimensions for a subcomponent. Every entry has the default weight.
func DefaultDimensions(block int) []model.Dimension {
	var src []model.Dimension
	switch {
	case block == 1:
		src = missionDefaults
	case block == 2:
		src = insightDefaults
	case block == 3:
		src = prioritizeDefaults
	case block == 4:
		src = launchDefaults
	case block == 5:
		src = gtmDefaults
	case block == 6:
		src = engagementDefaults
	case block >= 7 && block <= 9:
		src = operationsDefaults
	case block >= 10:
		src = leadershipDefaults
	default:
		src = genericDefaultNames
	}
	out := make([]model.Dimension, len(src))
	copy(out, src)
	return out
}

func names(ns ...string) []model.Dimension {
	out := make([]model.Dimension, len(ns))
	for i, n := range ns {
		out[i] = model.Dimension{Name: n, Weight: model.DefaultDimensionWeight}
	}
	return out
}
