package narrative

type agentContext struct {
	minBlock, maxBlock int
	high, needsWork    string
}

// agentContexts maps product-lifecycle blocks to the "why it matters"
// sentence. Blocks past the last range use the leadership entry.
var agentContexts = []agentContext{
	{1, 1,
		"A sharp mission and discovery practice gives every downstream team a clear reason for what they build and sell.",
		"Without a sharper mission and discovery practice, downstream teams end up guessing at priorities."},
	{2, 2,
		"Deep customer insight is compounding here, letting product and marketing act on evidence instead of opinion.",
		"Thin customer insight means product and marketing decisions rest on opinion more than evidence."},
	{3, 3,
		"Disciplined prioritization is concentrating effort on the segments and bets most likely to pay back.",
		"Loose prioritization spreads effort across too many segments and bets to move any of them decisively."},
	{4, 4,
		"A repeatable launch motion is turning new capabilities into adoption quickly.",
		"An inconsistent launch motion is slowing how quickly new capabilities turn into adoption."},
	{5, 5,
		"Go-to-market execution is converting demand efficiently, which frees budget for the next growth bet.",
		"Go-to-market friction is raising acquisition cost and leaving qualified demand unconverted."},
	{6, 6,
		"Strong engagement practices are keeping customers active and expanding.",
		"Weak engagement practices put retention and expansion revenue at risk."},
	{7, 9,
		"Operational maturity here lets the business scale without adding proportional headcount.",
		"Operational gaps here will turn growth into overhead unless they are closed before the next scale step."},
	{10, 1 << 30,
		"Leadership practices are setting a clear direction that teams can execute against without escalation.",
		"Leadership practices are not yet giving teams the clarity they need to execute without escalation."},
}

const (
	genericContextHigh      = "These practices are giving the team a dependable base to build on."
	genericContextNeedsWork = "Closing these gaps will give the team a dependable base to build on."
	highContextThreshold    = 80
)

// AgentContext returns the block-specific sentence, using the
// high-performance framing when score is at least 80.
func AgentContext(block int, score float64) string {
	high := score >= highContextThreshold
	for _, c := range agentContexts {
		if block >= c.minBlock && block <= c.maxBlock {
			if high {
				return c.high
			}
			return c.needsWork
		}
	}
	if high {
		return genericContextHigh
	}
	return genericContextNeedsWork
}
