package narrative

import "regexp"

// Category keys beyond the six business domains.
const (
	CategoryFramework   = "framework-quality"
	CategoryStakeholder = "stakeholder-alignment"
	CategoryResource    = "resource-allocation"
	CategoryDecision    = "decision-speed"
	CategoryOutcome     = "outcome-tracking"
	CategoryGeneric     = "generic"
)

// strengthTemplates holds one statement per detectable signal. Placeholders:
// {name} {cadence} {evidence} {tools} {owner} {hits}.
type strengthTemplates struct {
	evidence      string
	standard      string
	cadence       string
	tooling       string
	hits          string
	owner         string
	crossFunction string
	docs          string
}

// category is the rule record for one kind of dimension. Every category
// carries its own wording so reports never fall back to interchangeable
// boilerplate when a better match exists.
type category struct {
	key       string
	match     *regexp.Regexp // nil for domain-backed categories and generic
	owner     string
	kpis      string
	tooling   string
	filler    string
	strengths strengthTemplates
	actions   [2]string
}

var categories = []category{
	{
		key:     DomainSegmentation,
		owner:   "RevOps",
		kpis:    "win rate by tier, ACV by tier, and sales cycle length by tier",
		tooling: "your CRM with a required tier field on every account",
		filler:  "{name} shows a developing segmentation capability: accounts are being grouped, and the grouping is ready to be formalized into tiers.",
		strengths: strengthTemplates{
			evidence:      "Segmentation is anchored to a measurable outcome ({evidence}), tying tier definitions to observed performance.",
			standard:      "Tiering criteria for {name} are codified, so an account lands in the same tier no matter who scores it.",
			cadence:       "Tier assignments are revisited on a {cadence} cadence, keeping segments current as account data changes.",
			tooling:       "Tier logic lives in {tools}, making segment membership visible to every team that acts on it.",
			hits:          "The answer references concrete segmentation inputs ({hits}), showing tiers are grounded in account data.",
			owner:         "{owner} owns segment definitions, which keeps tier changes deliberate rather than ad hoc.",
			crossFunction: "Sales and marketing work from the same segment definitions, so targeting and coverage stay aligned.",
			docs:          "Segment definitions are written down, which makes tiering teachable to new reps.",
		},
		actions: [2]string{
			"Back-test the current tiers against the last four quarters of closed-won deals and move accounts whose outcomes contradict their tier.",
			"Set a coverage model per tier (named, pooled, digital) so effort follows segment value.",
		},
	},
	{
		key:     DomainRevenue,
		owner:   "Finance/RevOps",
		kpis:    "net revenue retention, gross margin by plan, and average discount rate",
		tooling: "a billing or CPQ system such as Stripe or Chargebee linked to the CRM",
		filler:  "{name} shows a developing revenue capability: pricing exists and is ready to be tied to measured customer value.",
		strengths: strengthTemplates{
			evidence:      "Revenue performance is quantified ({evidence}), so pricing decisions can be judged against real results.",
			standard:      "Pricing and discount rules are codified, which protects margin from deal-by-deal negotiation.",
			cadence:       "Revenue metrics are reviewed on a {cadence} basis, giving early warning on churn or discount creep.",
			tooling:       "Revenue data flows through {tools}, giving a single source of truth for bookings and billing.",
			hits:          "The answer names specific revenue levers ({hits}), showing the model is understood beyond top-line totals.",
			owner:         "{owner} is accountable for pricing outcomes, so changes have a clear decision-maker.",
			crossFunction: "Finance and go-to-market teams share revenue targets, which keeps pricing and selling motions consistent.",
			docs:          "Pricing logic is documented, making packaging changes easier to reason about.",
		},
		actions: [2]string{
			"Model price realization by segment and close the gap between list and realized price on the two largest segments.",
			"Introduce a discount approval matrix with explicit thresholds by deal size.",
		},
	},
	{
		key:     DomainFit,
		owner:   "Sales Ops",
		kpis:    "qualified-to-won conversion, disqualification rate, and time-to-disqualify",
		tooling: "lead and account scoring fields in the CRM enforced at stage entry",
		filler:  "{name} shows a developing qualification capability: fit is discussed and ready to be turned into explicit criteria.",
		strengths: strengthTemplates{
			evidence:      "Fit decisions are backed by outcome data ({evidence}), so qualification can be tuned against results.",
			standard:      "Qualification uses explicit criteria, so reps disqualify poor-fit deals consistently.",
			cadence:       "Fit criteria are recalibrated on a {cadence} cadence against won and lost deals.",
			tooling:       "Fit scoring is captured in {tools}, which makes qualification auditable.",
			hits:          "The answer references a recognized qualification approach ({hits}) rather than rep intuition.",
			owner:         "{owner} maintains the fit definition, keeping qualification consistent across teams.",
			crossFunction: "Marketing and sales agree on what a qualified opportunity is, reducing handoff friction.",
			docs:          "The ideal customer profile is documented and available to everyone who qualifies leads.",
		},
		actions: [2]string{
			"Compare the profile of the last 20 won and 20 lost deals and add the two strongest differentiators to the fit criteria.",
			"Add a mandatory disqualification reason at stage exit so poor-fit patterns become visible.",
		},
	},
	{
		key:     DomainGrowth,
		owner:   "Growth/Product",
		kpis:    "expansion revenue share, pipeline coverage, and whitespace penetration",
		tooling: "an account planning view in the CRM that tracks expansion opportunities per account",
		filler:  "{name} shows a developing growth capability: upside is recognized and ready to be sized and tracked.",
		strengths: strengthTemplates{
			evidence:      "Growth potential is sized with real numbers ({evidence}), which makes prioritization defensible.",
			standard:      "Growth opportunities are evaluated against consistent criteria, so bets are comparable.",
			cadence:       "Growth pipeline is reviewed {cadence}, keeping expansion plays from stalling.",
			tooling:       "Expansion opportunities are tracked in {tools}, so upside is visible across the book.",
			hits:          "The answer points to concrete growth levers ({hits}) rather than generic ambition.",
			owner:         "{owner} owns the growth agenda, giving expansion work a clear home.",
			crossFunction: "Growth plays are run jointly across teams, which spreads expansion beyond a single channel.",
			docs:          "Growth hypotheses are written down, so results can be compared against the original thesis.",
		},
		actions: [2]string{
			"Build a whitespace map for the top 25 accounts and assign an expansion play to each gap.",
			"Stage-gate growth bets with a 90-day checkpoint and a pre-agreed kill criterion.",
		},
	},
	{
		key:     DomainPersona,
		owner:   "Marketing/PM",
		kpis:    "message resonance by persona, persona coverage in pipeline, and interview count per quarter",
		tooling: "a research repository that links interview notes to persona records",
		filler:  "{name} shows a developing audience capability: buyers are recognized and ready to be profiled from direct research.",
		strengths: strengthTemplates{
			evidence:      "Persona insight is quantified ({evidence}), which moves the audience model beyond anecdote.",
			standard:      "Personas follow a consistent template, making them comparable and easy to apply.",
			cadence:       "Persona research is refreshed {cadence}, keeping the audience model current.",
			tooling:       "Audience data is maintained in {tools}, so personas stay connected to real accounts.",
			hits:          "The answer draws on direct buyer evidence ({hits}), grounding personas in real conversations.",
			owner:         "{owner} owns the persona model, so updates are coordinated rather than fragmented.",
			crossFunction: "Personas are shared across product, marketing, and sales, so every team speaks to the same buyer.",
			docs:          "Persona profiles are documented and accessible to customer-facing teams.",
		},
		actions: [2]string{
			"Run five buyer interviews per primary persona this quarter and update pains and triggers from verbatim quotes.",
			"Map each persona to the funnel stage where it has the most influence and tailor one asset per stage.",
		},
	},
	{
		key:     DomainJourney,
		owner:   "Product/CS",
		kpis:    "stage-to-stage conversion, time in stage, and activation rate",
		tooling: "product analytics such as Amplitude or Mixpanel joined to CRM stages",
		filler:  "{name} shows a developing journey capability: stages are recognized and ready to be instrumented end to end.",
		strengths: strengthTemplates{
			evidence:      "Journey performance is measured ({evidence}), so drop-off points can be found and fixed.",
			standard:      "Stage entry and exit criteria are defined, so conversion rates mean the same thing everywhere.",
			cadence:       "Funnel health is reviewed {cadence}, which keeps leakage from compounding.",
			tooling:       "The journey is instrumented in {tools}, linking behaviour to pipeline stages.",
			hits:          "The answer identifies specific journey stages ({hits}), showing the funnel is mapped rather than assumed.",
			owner:         "{owner} owns the end-to-end journey, so handoffs have a single accountable party.",
			crossFunction: "Handoffs between teams are coordinated, reducing where customers fall through the cracks.",
			docs:          "The customer journey is documented, which makes onboarding and handoffs repeatable.",
		},
		actions: [2]string{
			"Identify the single stage with the largest drop-off and run one experiment against it in the next 30 days.",
			"Define a handoff checklist between sales and onboarding with a named receiver for every closed deal.",
		},
	},
	{
		key:     CategoryFramework,
		match:   regexp.MustCompile(`(?i)framework|methodolog|process|rubric|quality`),
		owner:   "Owner",
		kpis:    "framework adoption rate, rework rate, and decision consistency across reviewers",
		tooling: "a shared workspace that holds the framework, its templates, and past decisions",
		filler:  "{name} shows a developing framework: a repeatable approach is emerging and ready to be written down.",
		strengths: strengthTemplates{
			evidence:      "The framework is tied to measurable outcomes ({evidence}), so its quality can be verified.",
			standard:      "A defined rubric gives {name} repeatable, comparable outputs.",
			cadence:       "The framework is exercised {cadence}, which keeps it a living tool rather than shelfware.",
			tooling:       "The framework is embedded in {tools}, so it is applied where the work happens.",
			hits:          "The answer describes concrete framework components ({hits}).",
			owner:         "{owner} maintains the framework, so changes are versioned and communicated.",
			crossFunction: "The framework is used across teams, giving a common language for decisions.",
			docs:          "The methodology is documented well enough for a new team member to apply it.",
		},
		actions: [2]string{
			"Score three recent decisions with the framework and note where reviewers disagreed; tighten those criteria.",
			"Version the framework and keep a short changelog so teams know which rules apply.",
		},
	},
	{
		key:     CategoryStakeholder,
		match:   regexp.MustCompile(`(?i)stakeholder|alignment|buy-?in|consensus|communicat`),
		owner:   "Owner",
		kpis:    "decision sign-off time, escalation count, and stakeholder satisfaction",
		tooling: "a shared decision log visible to every stakeholder group",
		filler:  "{name} shows developing stakeholder alignment: the right people are engaged and ready for a formal operating rhythm.",
		strengths: strengthTemplates{
			evidence:      "Alignment is measured ({evidence}), so disagreements surface as data rather than friction.",
			standard:      "Stakeholder input follows an agreed decision process, which limits re-opened debates.",
			cadence:       "Stakeholders meet on a {cadence} rhythm, keeping priorities synchronized.",
			tooling:       "Decisions and context are shared through {tools}, keeping stakeholders informed asynchronously.",
			hits:          "The answer names the specific groups involved ({hits}).",
			owner:         "{owner} convenes stakeholders, giving alignment work a clear driver.",
			crossFunction: "Multiple functions contribute to decisions, which builds durable buy-in.",
			docs:          "Decisions are recorded, so stakeholders can trace why choices were made.",
		},
		actions: [2]string{
			"Publish a RACI for the three most contested decisions and confirm it with each stakeholder group.",
			"Start a one-page decision log and circulate it after every alignment meeting.",
		},
	},
	{
		key:     CategoryResource,
		match:   regexp.MustCompile(`(?i)resource|budget|allocat|capacity|staff|headcount`),
		owner:   "Owner",
		kpis:    "spend against plan, capacity utilization, and return per allocated dollar",
		tooling: "a planning model that links budget lines to the initiatives they fund",
		filler:  "{name} shows developing resource discipline: spending is tracked and ready to be tied to priorities.",
		strengths: strengthTemplates{
			evidence:      "Resource decisions are quantified ({evidence}), making trade-offs explicit.",
			standard:      "Allocation follows agreed criteria, so funding tracks priority rather than volume of requests.",
			cadence:       "Allocations are revisited {cadence}, allowing resources to shift toward what works.",
			tooling:       "Budget and capacity are tracked in {tools}, giving a current view of commitments.",
			hits:          "The answer details how resources are assigned ({hits}).",
			owner:         "{owner} controls allocation, so trade-offs are made by someone who sees the whole portfolio.",
			crossFunction: "Resource trade-offs are negotiated across teams rather than decided in silos.",
			docs:          "Allocation rules are written down, which makes funding decisions predictable.",
		},
		actions: [2]string{
			"Rank current initiatives by expected return and reallocate the bottom 10 percent of spend to the top three.",
			"Hold back a small reserve each quarter for validated opportunities instead of committing everything up front.",
		},
	},
	{
		key:     CategoryDecision,
		match:   regexp.MustCompile(`(?i)decision|speed|velocity|agility|cycle time`),
		owner:   "Owner",
		kpis:    "time from question to decision, reversal rate, and decisions pending past their deadline",
		tooling: "a lightweight decision tracker with owners and due dates",
		filler:  "{name} shows developing decision discipline: choices are being made and are ready to be time-boxed.",
		strengths: strengthTemplates{
			evidence:      "Decision speed is measured ({evidence}), which makes delays visible.",
			standard:      "Decisions follow clear rules on who decides and how, so they are not re-litigated.",
			cadence:       "A {cadence} decision forum keeps choices from queueing up.",
			tooling:       "Decisions are tracked in {tools}, so pending items have owners and dates.",
			hits:          "The answer describes how decisions are made in practice ({hits}).",
			owner:         "{owner} has decision rights, which shortens the path from question to answer.",
			crossFunction: "Cross-functional input is gathered before decisions, reducing later reversals.",
			docs:          "Decision rationale is recorded, which speeds up similar decisions later.",
		},
		actions: [2]string{
			"Separate reversible from irreversible decisions and give reversible ones a 48-hour default deadline.",
			"Review the last ten decisions for time-to-decide and remove one approval step from the slowest path.",
		},
	},
	{
		key:     CategoryOutcome,
		match:   regexp.MustCompile(`(?i)outcome|measure|metric|kpi|tracking|result`),
		owner:   "Owner",
		kpis:    "leading indicators for each goal, target attainment, and forecast accuracy",
		tooling: "a dashboard in a BI tool such as Looker or Tableau with agreed metric definitions",
		filler:  "{name} shows developing measurement: outcomes are discussed and ready to be defined as tracked metrics.",
		strengths: strengthTemplates{
			evidence:      "Outcomes are tracked with concrete figures ({evidence}), so progress is verifiable.",
			standard:      "Metric definitions are agreed, so everyone reads results the same way.",
			cadence:       "Results are reviewed {cadence}, which allows course corrections before quarter end.",
			tooling:       "Outcome data is surfaced in {tools}, making performance visible without manual reporting.",
			hits:          "The answer names the specific measures in use ({hits}).",
			owner:         "{owner} owns the scorecard, so metric changes are controlled.",
			crossFunction: "Teams share outcome metrics, which keeps incentives pointed in the same direction.",
			docs:          "Metric definitions are documented, reducing disputes over what the numbers mean.",
		},
		actions: [2]string{
			"Pair every lagging outcome metric with one leading indicator the team can move within a month.",
			"Set explicit targets for each tracked metric and flag any that have no owner.",
		},
	},
	{
		key:     CategoryGeneric,
		owner:   "Owner",
		kpis:    "two or three outcome metrics that reflect success for this area",
		tooling: "a shared system of record rather than spreadsheets and inboxes",
		filler:  "{name} shows a developing capability: the basics are in place and ready to be made repeatable.",
		strengths: strengthTemplates{
			evidence:      "Results for {name} are quantified ({evidence}), giving a baseline for improvement.",
			standard:      "{name} follows a defined standard, which makes execution repeatable.",
			cadence:       "{name} is reviewed on a {cadence} cadence, which keeps it from drifting.",
			tooling:       "{name} is supported by {tools}, so the work is visible beyond individual contributors.",
			hits:          "The answer gives concrete detail on how {name} works ({hits}).",
			owner:         "{owner} owns {name}, providing clear accountability.",
			crossFunction: "{name} involves several functions, which broadens support for the work.",
			docs:          "{name} is documented, making it easier to hand over and improve.",
		},
		actions: [2]string{
			"Write down the current process for {name} in one page and mark the steps that most often go wrong.",
			"Pick one measurable target for {name} for the next quarter and review it monthly.",
		},
	},
}

var categoryByKey = func() map[string]*category {
	m := make(map[string]*category, len(categories))
	for i := range categories {
		m[categories[i].key] = &categories[i]
	}
	return m
}()

// detectCategory picks the category for a dimension: the mapped domain when
// there is one, else the first extra category whose pattern matches the
// name, else generic.
func detectCategory(name string, domain DomainInfo) *category {
	if domain.Key != "" {
		if c, ok := categoryByKey[domain.Key]; ok {
			return c
		}
	}
	for i := range categories {
		c := &categories[i]
		if c.match != nil && c.match.MatchString(name) {
			return c
		}
	}
	return categoryByKey[CategoryGeneric]
}

// CategoryFor reports the category key chosen for a dimension name.
func CategoryFor(name string) string {
	return detectCategory(name, MapDomain(name, "")).key
}
