package scoring

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/sells-group/scorecard/internal/model"
)

// Lookup locates the response for the i-th dimension. Fallbacks, in order:
// "q<i+1>" or "<i+1>", the dimension name, its slug, the i-th non-empty
// response in natural key order, and finally the first response. ok is
// false only when there are no responses at all.
func Lookup(i int, dim model.Dimension, responses model.SurveyResponses) (key string, value any, ok bool) {
	if len(responses) == 0 {
		return "", nil, false
	}

	candidates := []string{
		fmt.Sprintf("q%d", i+1),
		strconv.Itoa(i + 1),
		dim.Name,
		Slug(dim.Name),
	}
	for _, k := range candidates {
		if k == "" {
			continue
		}
		if v, found := responses[k]; found {
			return k, v, true
		}
	}

	keys := sortedKeys(responses)
	n := 0
	for _, k := range keys {
		if isEmpty(responses[k]) {
			continue
		}
		if n == i {
			return k, responses[k], true
		}
		n++
	}

	return keys[0], responses[keys[0]], true
}

// Slug lowercases a name and joins its words with underscores:
// "Segment Tiering" becomes "segment_tiering".
func Slug(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
			sep = false
			continue
		}
		sep = true
	}
	return b.String()
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

// sortedKeys orders keys so that "q2" sorts before "q10".
func sortedKeys(m model.SurveyResponses) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return naturalLess(keys[i], keys[j]) })
	return keys
}

func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		ca, restA := chunk(a)
		cb, restB := chunk(b)
		if ca != cb {
			na, errA := strconv.Atoi(ca)
			nb, errB := strconv.Atoi(cb)
			if errA == nil && errB == nil && na != nb {
				return na < nb
			}
			return ca < cb
		}
		a, b = restA, restB
	}
	return len(a) < len(b)
}

// chunk splits off the leading run of digits or non-digits.
func chunk(s string) (string, string) {
	digit := s[0] >= '0' && s[0] <= '9'
	i := 1
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') == digit {
		i++
	}
	return s[:i], s[i:]
}
