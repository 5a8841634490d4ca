package narrative

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/scorecard/internal/model"
)

type cadenceRule struct {
	cadence model.Cadence
	re      *regexp.Regexp
}

// Order matters: the first matching cadence wins.
var cadenceRules = []cadenceRule{
	{model.CadenceWeekly, regexp.MustCompile(`(?i)\b(?:bi-?weekly|weekly|every (?:other )?week|each week|per week|every monday|every friday)\b`)},
	{model.CadenceMonthly, regexp.MustCompile(`(?i)\b(?:monthly|every month|each month|per month|once a month)\b`)},
	{model.CadenceQuarterly, regexp.MustCompile(`(?i)\b(?:quarterly|every quarter|each quarter|per quarter|qbrs?)\b`)},
}

type ownerRule struct {
	owner model.Ownership
	re    *regexp.Regexp
}

// Priority order for ownership detection.
var ownerRules = []ownerRule{
	{model.OwnerSalesOps, regexp.MustCompile(`(?i)\b(?:rev\s?ops|revenue operations|sales ops|sales operations)\b`)},
	{model.OwnerProduct, regexp.MustCompile(`(?i)\b(?:product (?:team|manager|managers|management|org|lead|leads|owner)|pm team)\b`)},
	{model.OwnerMarketing, regexp.MustCompile(`(?i)\b(?:marketing|demand gen|demand generation)\b`)},
	{model.OwnerCS, regexp.MustCompile(`(?i)\b(?:customer success|cs team|csms?|account management)\b`)},
	{model.OwnerExec, regexp.MustCompile(`(?i)\b(?:ceo|cfo|coo|cro|cmo|founders?|executives?|exec team|leadership team|vp of \w+)\b`)},
}

var (
	standardizationRE = regexp.MustCompile(`(?i)\b(?:rubrics?|sops?|playbooks?|criteria|gates?|scorecards?|checklists?|standardi[sz]ed)\b`)
	crossFunctionRE   = regexp.MustCompile(`(?i)\b(?:cross[- ]functional(?:ly)?|across teams|between (?:sales|marketing|product|finance|cs) and (?:sales|marketing|product|finance|cs)|jointly|shared (?:ownership|goals|kpis?|metrics)|together with)\b`)
	docSignalRE       = regexp.MustCompile(`(?i)\b(?:documented|documentation|docs|wiki|confluence|written down|runbooks?|handbook)\b`)
)

// knownTools is the fixed vocabulary of tool names recognized in answers.
var knownTools = []string{
	"salesforce", "hubspot", "gong", "clari", "salesloft", "marketo", "pardot",
	"tableau", "looker", "amplitude", "mixpanel", "zendesk", "gainsight",
	"intercom", "jira", "airtable", "zoominfo", "pendo", "chargebee",
	"stripe", "snowflake", "dbt", "asana",
}

var toolREs = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(knownTools))
	for i, t := range knownTools {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return res
}()

// DetectSignals classifies cadence, ownership, standardization, tooling,
// cross-functional language, clarity, and documentation signals in text.
func DetectSignals(text string) model.QualitativeSignals {
	sig := model.QualitativeSignals{
		Cadence:   model.CadenceNone,
		Ownership: model.OwnerNone,
		Tooling:   []string{},
		Clarity:   ClarityFromLength(text),
	}
	if strings.TrimSpace(text) == "" {
		return sig
	}

	for _, r := range cadenceRules {
		if r.re.MatchString(text) {
			sig.Cadence = r.cadence
			break
		}
	}
	for _, r := range ownerRules {
		if r.re.MatchString(text) {
			sig.Ownership = r.owner
			break
		}
	}

	sig.Standardization = standardizationRE.MatchString(text)
	sig.CrossFunction = crossFunctionRE.MatchString(text)
	sig.DocSignals = docSignalRE.MatchString(text)

	// Casers keep state, so each call gets its own.
	caser := cases.Title(language.English)
	for i, re := range toolREs {
		if re.MatchString(text) {
			sig.Tooling = append(sig.Tooling, caser.String(knownTools[i]))
		}
	}
	return sig
}

// SignalCount counts the process signals present, used by the scoring
// adjustment for free-text answers.
func SignalCount(sig model.QualitativeSignals, facts model.ExtractedFacts) int {
	n := 0
	if sig.Cadence != model.CadenceNone && sig.Cadence != "" {
		n++
	}
	if sig.Standardization {
		n++
	}
	if len(sig.Tooling) > 0 {
		n++
	}
	if HasQuantifiedEvidence(facts) {
		n++
	}
	if sig.Ownership != model.OwnerNone && sig.Ownership != "" {
		n++
	}
	if sig.CrossFunction {
		n++
	}
	return n
}
