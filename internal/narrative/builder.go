package narrative

import (
	"strings"

	"github.com/sells-group/scorecard/internal/model"
)

// DimensionInput is everything the builder looks at for one dimension.
type DimensionInput struct {
	Name    string
	Score   float64
	Facts   model.ExtractedFacts
	Signals model.QualitativeSignals
	Domain  DomainInfo
}

// Narrative is the generated text for one dimension.
type Narrative struct {
	Band         string
	Category     string
	Feedback     string
	Strengths    []string
	Improvements []string
}

// Inspect runs fact extraction, signal detection and domain mapping over a
// single answer.
func Inspect(dimension, text string) DimensionInput {
	return DimensionInput{
		Name:    dimension,
		Facts:   ExtractFacts(text),
		Signals: DetectSignals(text),
		Domain:  MapDomain(dimension, text),
	}
}

// Improvement openers. Symptom relies on these prefixes, so keep the two in
// step when wording changes.
const (
	improveKPIs     = "Instrument 2-3 KPIs for {name} ({kpis}) and baseline them before the next review."
	improveRubric   = "Publish a one-page rubric or SOP for {name} so the work is done the same way every time."
	improveCadence  = "Establish a weekly review of {name} so issues surface within days rather than quarters."
	improveOwner    = "Assign a single-threaded owner for {name} (suggested: {role}) with authority to change the process."
	improveTooling  = "Support {name} with {tooling} so progress is visible without manual reporting."
	nudgeAtScale    = "Operationalize {name} at scale by building what works into onboarding and quarterly planning."
	nudgeFirstFix   = "Ship the first fix for {name} within 30 days and re-score to confirm it moved the result."
	genericSymptom  = "execution gaps in {name}"
	noDetailMessage = "No detail was provided, so this reflects a neutral baseline."
)

var symptomRules = []struct {
	prefix  string
	symptom string
}{
	{"Instrument 2-3 KPIs", "a lack of instrumented KPIs for {name}"},
	{"Publish a one-page rubric", "no shared rubric or SOP for {name}"},
	{"Establish a weekly review", "an infrequent review cadence for {name}"},
	{"Assign a single-threaded owner", "unclear ownership of {name}"},
	{"Support ", "limited tool support for {name}"},
	{"Operationalize ", "practices in {name} that are not yet repeatable at scale"},
	{"Ship the first fix", "unaddressed execution gaps in {name}"},
}

// Symptom restates an improvement as the problem it addresses, e.g.
// "a lack of instrumented KPIs for Segment Tiering".
func Symptom(improvement, name string) string {
	for _, r := range symptomRules {
		if strings.HasPrefix(improvement, r.prefix) {
			return fill(r.symptom, map[string]string{"name": name})
		}
	}
	return fill(genericSymptom, map[string]string{"name": name})
}

// BuildDimension produces feedback, strengths, and improvements for one
// dimension. Output depends only on the input.
func BuildDimension(in DimensionInput) Narrative {
	band := DimensionBand(in.Score)
	cat := detectCategory(in.Name, in.Domain)
	evidence, hasEvidence := ChooseSignal(in.Facts)

	vars := map[string]string{
		"name":     in.Name,
		"cadence":  string(in.Signals.Cadence),
		"evidence": evidence,
		"tools":    joinList(in.Signals.Tooling),
		"owner":    ownerLabel(in.Signals.Ownership),
		"hits":     joinList(in.Domain.Hits),
		"kpis":     cat.kpis,
		"tooling":  cat.tooling,
		"role":     cat.owner,
	}

	return Narrative{
		Band:         band,
		Category:     cat.key,
		Feedback:     feedback(in, band, evidence, hasEvidence),
		Strengths:    strengths(in, cat, vars, hasEvidence),
		Improvements: improvements(in, cat, band, vars, hasEvidence),
	}
}

func strengths(in DimensionInput, cat *category, vars map[string]string, hasEvidence bool) []string {
	sig := in.Signals
	t := cat.strengths
	var out []string
	add := func(cond bool, tmpl string) {
		if cond && tmpl != "" {
			out = append(out, fill(tmpl, vars))
		}
	}

	add(hasEvidence, t.evidence)
	add(sig.Standardization, t.standard)
	add(hasCadence(sig), t.cadence)
	add(len(sig.Tooling) > 0, t.tooling)
	add(len(in.Domain.Hits) > 0, t.hits)
	add(hasOwner(sig), t.owner)
	add(sig.CrossFunction, t.crossFunction)
	add(sig.DocSignals, t.docs)
	if in.Score >= 70 && len(in.Domain.Hits) > 0 {
		out = append(out, in.Domain.Templates...)
	}

	out = dedupe(out)
	if len(out) == 0 && in.Score >= 55 {
		out = []string{fill(cat.filler, vars)}
	}
	return capList(out, strengthCap(in.Score))
}

func improvements(in DimensionInput, cat *category, band string, vars map[string]string, hasEvidence bool) []string {
	sig := in.Signals
	high := isHighBand(band)
	var out []string
	add := func(cond bool, tmpl string) {
		if cond {
			out = append(out, fill(tmpl, vars))
		}
	}

	add(!hasEvidence, improveKPIs)
	add(!sig.Standardization, improveRubric)
	add(!hasCadence(sig) || (high && sig.Cadence != model.CadenceWeekly), improveCadence)
	add(!hasOwner(sig), improveOwner)
	add(len(sig.Tooling) == 0, improveTooling)

	actions := 1
	if in.Score < 70 {
		actions = 2
	}
	for _, a := range cat.actions[:actions] {
		add(true, a)
	}

	if high {
		add(true, nudgeAtScale)
	} else {
		add(true, nudgeFirstFix)
	}
	return capList(dedupe(out), improvementCap(band))
}

func feedback(in DimensionInput, band, evidence string, hasEvidence bool) string {
	var b strings.Builder
	switch band {
	case BandExceptional:
		b.WriteString(in.Name + " is a standout capability that others can learn from.")
	case BandStrong:
		b.WriteString(in.Name + " is working well and is close to best practice.")
	case BandDeveloping:
		b.WriteString(in.Name + " has a workable foundation but is not yet applied consistently.")
	default:
		b.WriteString(in.Name + " is a critical gap that is likely holding back adjacent work.")
	}

	b.WriteString(" ")
	switch {
	case hasEvidence:
		b.WriteString("The answer cites " + evidence + ", which gives this assessment a measurable anchor.")
	case in.Facts.Snippet != "":
		b.WriteString(`The answer describes the approach as "` + in.Facts.Snippet + `" but does not quantify results.`)
	default:
		b.WriteString(noDetailMessage)
		return b.String()
	}

	b.WriteString(" ")
	switch band {
	case BandExceptional:
		b.WriteString("The priority now is protecting this as the team scales.")
	case BandStrong:
		b.WriteString("Adding " + missingPiece(in.Signals, hasEvidence) + " would move it into the top band.")
	case BandDeveloping:
		b.WriteString("Formalizing ownership and cadence is the fastest path to consistency.")
	default:
		b.WriteString("Treat this as a first-30-days priority.")
	}
	return b.String()
}

func missingPiece(sig model.QualitativeSignals, hasEvidence bool) string {
	switch {
	case !sig.Standardization:
		return "a documented rubric"
	case sig.Cadence != model.CadenceWeekly:
		return "a weekly review cadence"
	case !hasOwner(sig):
		return "a clear owner"
	case len(sig.Tooling) == 0:
		return "tool support"
	case !hasEvidence:
		return "tracked metrics"
	default:
		return "cross-functional reach"
	}
}

func hasCadence(sig model.QualitativeSignals) bool {
	return sig.Cadence != "" && sig.Cadence != model.CadenceNone
}

func hasOwner(sig model.QualitativeSignals) bool {
	return sig.Ownership != "" && sig.Ownership != model.OwnerNone
}

func ownerLabel(o model.Ownership) string {
	switch o {
	case model.OwnerSalesOps:
		return "Sales Ops"
	case model.OwnerProduct:
		return "The product team"
	case model.OwnerMarketing:
		return "Marketing"
	case model.OwnerCS:
		return "Customer Success"
	case model.OwnerExec:
		return "The executive team"
	default:
		return ""
	}
}

// fill substitutes {key} placeholders.
func fill(tmpl string, vars map[string]string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// joinList renders ["a","b","c"] as "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// dedupe drops case-insensitive repeats, keeping first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		k := strings.ToLower(strings.TrimSpace(s))
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
