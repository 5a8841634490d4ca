// Package scoring maps survey responses to per-dimension scores and a
// weighted overall score.
package scoring

import (
	"encoding/json"
	"math"

	"github.com/sells-group/scorecard/internal/model"
	"github.com/sells-group/scorecard/internal/narrative"
)

const (
	// NeutralScore is assigned when a response is missing or not scorable.
	NeutralScore = 50
	// EmptyOverallScore is the overall score when no weight is configured.
	EmptyOverallScore = 75

	likertMax         = 5
	likertScale       = 20
	signalBonus       = 4
	maxEvidenceAdjust = 20
)

// DimensionResult is the scoring detail for one dimension. It carries the
// inspected text forward to the narrative builder so nothing is shared
// between requests.
type DimensionResult struct {
	Dimension   model.Dimension
	ResponseKey string
	Text        string
	Score       float64
	Input       narrative.DimensionInput
}

// Result is the output of one scoring pass.
type Result struct {
	Dimensions []DimensionResult
	Overall    float64
}

// Score runs the scoring loop over dims.
func Score(dims []model.Dimension, responses model.SurveyResponses) Result {
	res := Result{Dimensions: make([]DimensionResult, 0, len(dims))}

	var weighted, total float64
	for i, dim := range dims {
		key, value, _ := Lookup(i, dim, responses)
		text, _ := value.(string)

		in := narrative.Inspect(dim.Name, text)
		score := math.Round(ScoreValue(value))
		in.Score = score

		res.Dimensions = append(res.Dimensions, DimensionResult{
			Dimension:   dim,
			ResponseKey: key,
			Text:        text,
			Score:       score,
			Input:       in,
		})

		w := dim.EffectiveWeight()
		weighted += score * w
		total += w
	}

	res.Overall = Overall(weighted, total)
	return res
}

// Overall is the weighted mean, or EmptyOverallScore when total is zero.
func Overall(weighted, total float64) float64 {
	if total <= 0 {
		return EmptyOverallScore
	}
	return math.Round(weighted / total)
}

// ScoreValue converts one response to 0-100. Numbers up to 5 are Likert
// answers scaled by 20, larger numbers are clamped to 100, text uses the
// length proxy plus an evidence adjustment, and anything else is neutral.
func ScoreValue(v any) float64 {
	switch t := v.(type) {
	case string:
		return TextScore(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return TextScore(t.String())
		}
		return numericScore(f)
	case float64:
		return numericScore(t)
	case float32:
		return numericScore(float64(t))
	case int:
		return numericScore(float64(t))
	case int64:
		return numericScore(float64(t))
	case int32:
		return numericScore(float64(t))
	default:
		return NeutralScore
	}
}

func numericScore(f float64) float64 {
	if math.IsNaN(f) {
		return NeutralScore
	}
	if f <= likertMax {
		return math.Max(0, f*likertScale)
	}
	return math.Min(100, f)
}

// TextScore scores a free-text answer: the length proxy plus 4 points per
// process signal found, with the adjustment capped at 20 and the total at 100.
func TextScore(text string) float64 {
	base := narrative.LengthProxyScore(text)
	n := narrative.SignalCount(narrative.DetectSignals(text), narrative.ExtractFacts(text))
	adjust := math.Min(maxEvidenceAdjust, float64(n*signalBonus))
	return math.Min(100, base+adjust)
}
