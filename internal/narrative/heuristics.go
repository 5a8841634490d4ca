// Package narrative turns free-text survey answers into per-dimension
// strengths, improvements, and an executive summary.
//
// The analysis is deterministic pattern matching and templating. Nothing in
// this package infers meaning; it looks for tokens and phrases and fills in
// wording selected by score band and domain.
package narrative

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/scorecard/internal/model"
)

// Length thresholds for the clarity estimate.
const (
	clarityHighChars = 300
	clarityMedChars  = 150
)

// ClarityFromLength estimates clarity purely from answer length. It is a
// crude proxy and the only place the thresholds live.
func ClarityFromLength(text string) model.Clarity {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	switch {
	case n >= clarityHighChars:
		return model.ClarityHigh
	case n >= clarityMedChars:
		return model.ClarityMed
	default:
		return model.ClarityLow
	}
}

// LengthProxyScore scores a free-text answer as 50 + length/10, capped at 100.
// An empty answer scores exactly 50. scoring.TextScore adds the evidence
// adjustment from SignalCount on top of this base.
func LengthProxyScore(text string) float64 {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	return math.Min(100, 50+float64(n)/10)
}
