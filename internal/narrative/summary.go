package narrative

import (
	"html"
	"sort"
	"strings"

	"github.com/sells-group/scorecard/internal/model"
)

// Section headers of the executive summary.
const (
	SectionOverall  = "Overall Assessment"
	SectionWorking  = "What's Working"
	SectionFocus    = "Priority Focus Areas"
	SectionPathFwd  = "Strategic Path Forward"
	workingLimit    = 4
	focusLimit      = 4
	pathLimit       = 3
	focusThreshold  = 70
	callToAction    = "Working through the focus areas below in order is the fastest way to turn this assessment into measurable progress."
	noDimensionsMsg = "No dimensions were scored for this assessment."
)

// SummaryInput is the request-scoped detail the composer works from.
type SummaryInput struct {
	Block        int
	OverallScore float64
	Dimensions   []model.DimensionScore
	UseCases     []model.UseCase
}

// ComposeSummary renders the executive summary as an HTML fragment. Sections
// with nothing to say are left out.
func ComposeSummary(in SummaryInput) string {
	byScoreDesc := sortedDimensions(in.Dimensions, true)
	byScoreAsc := sortedDimensions(in.Dimensions, false)

	var b strings.Builder
	b.WriteString(`<div class="executive-summary">`)

	b.WriteString("<h3>" + SectionOverall + "</h3><p>")
	b.WriteString(html.EscapeString(overallParagraph(in, byScoreDesc, byScoreAsc)))
	b.WriteString("</p>")

	var strong, weak []model.DimensionScore
	for _, d := range byScoreDesc {
		if d.Score >= focusThreshold {
			strong = append(strong, d)
		}
	}
	for _, d := range byScoreAsc {
		if d.Score < focusThreshold {
			weak = append(weak, d)
		}
	}

	if items := roundRobin(strong, func(d model.DimensionScore) []string { return d.Strengths }, workingLimit, true); len(items) > 0 {
		writeList(&b, SectionWorking, "ul", items)
	}
	if items := roundRobin(weak, func(d model.DimensionScore) []string { return d.Improvements }, focusLimit, true); len(items) > 0 {
		writeList(&b, SectionFocus, "ul", items)
	}
	if items := roundRobin(byScoreAsc, func(d model.DimensionScore) []string { return d.Improvements }, pathLimit, false); len(items) > 0 {
		writeList(&b, SectionPathFwd, "ol", items)
		if v := IndustryValidation(in.UseCases, in.OverallScore); v != "" {
			b.WriteString(`<p class="industry-validation">` + html.EscapeString(v) + "</p>")
		}
	}

	b.WriteString("</div>")
	return b.String()
}

func overallParagraph(in SummaryInput, desc, asc []model.DimensionScore) string {
	if len(desc) == 0 {
		return noDimensionsMsg + " " + AgentContext(in.Block, in.OverallScore)
	}

	var opening string
	if len(desc) == 1 {
		opening = "The clearest strength is in " + desc[0].Name + "."
	} else {
		opening = "The clearest strengths are in " + desc[0].Name + " and " + desc[1].Name + "."
	}
	if len(desc[0].Strengths) > 0 {
		opening = strings.TrimSuffix(opening, ".") + `, led by this observation: "` + desc[0].Strengths[0] + `"`
	}

	bottleneck := asc[0]
	for _, d := range asc {
		if d.Score < focusThreshold {
			bottleneck = d
			break
		}
	}
	symptom := Symptom("", bottleneck.Name)
	if len(bottleneck.Improvements) > 0 {
		symptom = Symptom(bottleneck.Improvements[0], bottleneck.Name)
	}

	return strings.Join([]string{
		opening,
		AgentContext(in.Block, in.OverallScore),
		"The main bottleneck is " + symptom + ".",
		callToAction,
	}, " ")
}

// IndustryValidation picks a use-case sentence whose field suits the score:
// key insight for high scores, results for mid scores, definition otherwise.
func IndustryValidation(useCases []model.UseCase, score float64) string {
	pick := func(u model.UseCase) string {
		switch {
		case score >= 80:
			return u.KeyInsight
		case score >= 60:
			return u.Results
		default:
			return u.Definition
		}
	}
	fallback := func(u model.UseCase) string {
		for _, s := range []string{u.KeyInsight, u.Results, u.Definition} {
			if strings.TrimSpace(s) != "" {
				return s
			}
		}
		return ""
	}

	for _, u := range useCases {
		if s := strings.TrimSpace(pick(u)); s != "" {
			return validationSentence(u.Company, s)
		}
	}
	for _, u := range useCases {
		if s := strings.TrimSpace(fallback(u)); s != "" {
			return validationSentence(u.Company, s)
		}
	}
	return ""
}

func validationSentence(company, text string) string {
	if company == "" {
		return "Industry validation: " + text
	}
	return "Industry validation from " + company + ": " + text
}

type bullet struct {
	dimension string
	text      string
}

// roundRobin takes the first item of each dimension, then the second, and
// so on until limit is reached. Duplicates are skipped case-insensitively.
func roundRobin(dims []model.DimensionScore, items func(model.DimensionScore) []string, limit int, labelled bool) []bullet {
	var out []bullet
	seen := map[string]struct{}{}
	for round := 0; len(out) < limit; round++ {
		progressed := false
		for _, d := range dims {
			list := items(d)
			if round >= len(list) {
				continue
			}
			progressed = true
			k := strings.ToLower(list[round])
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			b := bullet{text: list[round]}
			if labelled {
				b.dimension = d.Name
			}
			out = append(out, b)
			if len(out) == limit {
				break
			}
		}
		if !progressed {
			break
		}
	}
	return out
}

func writeList(b *strings.Builder, header, tag string, items []bullet) {
	b.WriteString("<h3>" + header + "</h3><" + tag + ">")
	for _, it := range items {
		b.WriteString("<li>")
		if it.dimension != "" {
			b.WriteString("<strong>" + html.EscapeString(it.dimension) + ":</strong> ")
		}
		b.WriteString(html.EscapeString(it.text))
		b.WriteString("</li>")
	}
	b.WriteString("</" + tag + ">")
}

// sortedDimensions returns a copy ordered by score; ties keep input order.
func sortedDimensions(dims []model.DimensionScore, desc bool) []model.DimensionScore {
	out := make([]model.DimensionScore, len(dims))
	copy(out, dims)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Score > out[j].Score
		}
		return out[i].Score < out[j].Score
	})
	return out
}
