package narrative

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Domain keys for the six business domains a dimension name can map to.
const (
	DomainSegmentation = "segmentation"
	DomainRevenue      = "revenue"
	DomainFit          = "fit"
	DomainGrowth       = "growth"
	DomainPersona      = "persona"
	DomainJourney      = "journey"
)

// domainRule describes one business domain: how to recognize it from a
// dimension name, which words in an answer corroborate it, and two canned
// strength statements.
type domainRule struct {
	key       string
	label     string
	match     *regexp.Regexp
	keywords  []string
	templates [2]string
}

// domainRules is ordered; the first rule whose pattern matches the
// dimension name wins.
var domainRules = []domainRule{
	{
		key:      DomainSegmentation,
		label:    "segmentation and tiering",
		match:    regexp.MustCompile(`(?i)segment|tier`),
		keywords: []string{"segment", "tier", "cohort", "vertical", "firmographic", "icp", "account list", "named accounts"},
		templates: [2]string{
			"Segments are defined tightly enough that teams can act on them without re-litigating which accounts belong where.",
			"Tier boundaries reflect real differences in deal economics rather than arbitrary size cut-offs.",
		},
	},
	{
		key:      DomainRevenue,
		label:    "revenue model and pricing",
		match:    regexp.MustCompile(`(?i)revenue|pric|monetiz|\barpu\b|\bacv\b|\barr\b`),
		keywords: []string{"arr", "mrr", "acv", "pricing", "price", "margin", "upsell", "expansion", "revenue", "discount"},
		templates: [2]string{
			"Pricing decisions are tied to how customers actually realize value, which protects margin as the business grows.",
			"Revenue levers are understood well enough to forecast the effect of packaging or price changes.",
		},
	},
	{
		key:      DomainFit,
		label:    "fit and qualification",
		match:    regexp.MustCompile(`(?i)\bfit\b|qualif|icp`),
		keywords: []string{"icp", "qualification", "qualify", "bant", "meddic", "disqualify", "fit score", "lead score"},
		templates: [2]string{
			"Qualification criteria screen out poor-fit opportunities before they consume sales capacity.",
			"Fit is judged against an explicit profile instead of individual rep instinct.",
		},
	},
	{
		key:      DomainGrowth,
		label:    "growth potential",
		match:    regexp.MustCompile(`(?i)growth|potential|expan|scal`),
		keywords: []string{"expansion", "upsell", "cross-sell", "tam", "pipeline", "growth", "whitespace", "net retention"},
		templates: [2]string{
			"Growth bets are sized against addressable whitespace rather than last year's run rate.",
			"Expansion potential is tracked per account, so upside is visible before renewal conversations start.",
		},
	},
	{
		key:      DomainPersona,
		label:    "personas and audience",
		match:    regexp.MustCompile(`(?i)persona|audience|buyer`),
		keywords: []string{"persona", "buyer", "decision maker", "champion", "interview", "pain point", "jobs to be done", "user research"},
		templates: [2]string{
			"Personas are grounded in direct customer conversations rather than assumed job titles.",
			"Messaging differs by buyer role, which shows the audience model is actually used.",
		},
	},
	{
		key:      DomainJourney,
		label:    "customer journey and funnel",
		match:    regexp.MustCompile(`(?i)journey|funnel|lifecycle|onboard|conversion`),
		keywords: []string{"funnel", "stage", "conversion", "onboarding", "activation", "drop-off", "handoff", "churn"},
		templates: [2]string{
			"Funnel stages have clear entry and exit definitions, so conversion rates mean the same thing to every team.",
			"Handoffs between journey stages are explicit, which limits where prospects fall through the cracks.",
		},
	},
}

// DomainInfo is the result of mapping a dimension to a business domain.
// An empty Key means no domain matched and callers fall back to generic
// wording.
type DomainInfo struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Hits      []string `json:"hits"`
	Templates []string `json:"templates"`
}

// MapDomain selects the best-matching domain for a dimension name and scans
// the answer text for that domain's keywords.
func MapDomain(dimension, text string) DomainInfo {
	info := DomainInfo{Hits: []string{}, Templates: []string{}}
	rule, ok := matchDomain(dimension)
	if !ok {
		return info
	}
	info.Key = rule.key
	info.Label = rule.label
	info.Templates = append(info.Templates, rule.templates[0], rule.templates[1])

	lower := strings.ToLower(text)
	for _, kw := range rule.keywords {
		if containsWordPrefix(lower, kw) {
			info.Hits = append(info.Hits, kw)
		}
	}
	return info
}

func matchDomain(dimension string) (domainRule, bool) {
	for _, r := range domainRules {
		if r.match.MatchString(dimension) {
			return r, true
		}
	}
	return domainRule{}, false
}

// containsWordPrefix reports whether kw occurs in s starting at a word
// boundary, so "tier" matches "tiering" but "arr" does not match "carry".
func containsWordPrefix(s, kw string) bool {
	for i := 0; i <= len(s)-len(kw); {
		j := strings.Index(s[i:], kw)
		if j < 0 {
			return false
		}
		at := i + j
		if at == 0 {
			return true
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return true
		}
		i = at + 1
	}
	return false
}
