package narrative

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/sells-group/scorecard/internal/model"
)

const snippetMaxRunes = 180

var (
	percentRE  = regexp.MustCompile(`\d+(?:,\d{3})*(?:\.\d+)?\s?%`)
	currencyRE = regexp.MustCompile(`(?i)(?:[$€£]\s?|\b(?:USD|EUR|GBP|CAD|AUD)\s?)\d+(?:,\d{3})*(?:\.\d+)?(?:\s?[KMB]\b)?`)
	numberRE   = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d+)?\b`)
	dateREs    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bQ[1-4](?:\s?(?:FY\s?)?'?\d{2,4})?\b`),
		regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
		regexp.MustCompile(`(?i)\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,4}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`),
	}
	magnitudeRE = regexp.MustCompile(`(?i)[KMB]$`)
	nonNumeric  = regexp.MustCompile(`[^\d.]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// ExtractFacts pulls percentages, currency amounts, bare numbers, and
// date-like tokens out of text. Empty text yields empty lists.
func ExtractFacts(text string) model.ExtractedFacts {
	facts := model.ExtractedFacts{
		Percents: []string{},
		Currency: []string{},
		Numbers:  []string{},
		Dates:    []string{},
	}
	if strings.TrimSpace(text) == "" {
		return facts
	}

	facts.Percents = appendMatches(facts.Percents, percentRE.FindAllString(text, -1))
	facts.Currency = appendMatches(facts.Currency, currencyRE.FindAllString(text, -1))

	for _, re := range dateREs {
		facts.Dates = appendMatches(facts.Dates, re.FindAllString(text, -1))
	}

	// Blank out percent, currency, and date tokens so their digits are not
	// reported again as bare numbers.
	rest := percentRE.ReplaceAllString(text, " ")
	rest = currencyRE.ReplaceAllString(rest, " ")
	for _, re := range dateREs {
		rest = re.ReplaceAllString(rest, " ")
	}
	facts.Numbers = appendMatches(facts.Numbers, numberRE.FindAllString(rest, -1))

	facts.Snippet = Snippet(text)
	return facts
}

// Snippet collapses whitespace and truncates text for use as a quote.
func Snippet(text string) string {
	s := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if utf8.RuneCountInString(s) <= snippetMaxRunes {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:snippetMaxRunes])) + "…"
}

// ChooseSignal picks the one quantitative token worth surfacing as evidence:
// a percent in [1,100], else a currency amount with a K/M/B suffix or a value
// of at least 100, else a bare number of at least 10. Noise such as a stray
// "$1" is rejected.
func ChooseSignal(f model.ExtractedFacts) (string, bool) {
	for _, p := range f.Percents {
		if v, ok := parseAmount(p); ok && v >= 1 && v <= 100 {
			return strings.TrimSpace(p), true
		}
	}
	for _, c := range f.Currency {
		c = strings.TrimSpace(c)
		if magnitudeRE.MatchString(c) {
			return c, true
		}
		if v, ok := parseAmount(c); ok && v >= 100 {
			return c, true
		}
	}
	for _, n := range f.Numbers {
		if v, ok := parseAmount(n); ok && v >= 10 {
			return n, true
		}
	}
	return "", false
}

// HasQuantifiedEvidence reports whether ChooseSignal finds anything.
func HasQuantifiedEvidence(f model.ExtractedFacts) bool {
	_, ok := ChooseSignal(f)
	return ok
}

func parseAmount(token string) (float64, bool) {
	digits := nonNumeric.ReplaceAllString(token, "")
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func appendMatches(dst, matches []string) []string {
	for _, m := range matches {
		if m = strings.TrimSpace(m); m != "" {
			dst = append(dst, m)
		}
	}
	return dst
}
