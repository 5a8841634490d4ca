package registry

import (
	"strconv"
	"strings"
)

// ParseID splits a "<block>-<index>" id such as "3-1". Both parts must be
// positive integers.
func ParseID(id string) (block, index int, ok bool) {
	b, i, found := strings.Cut(strings.TrimSpace(id), "-")
	if !found {
		return 0, 0, false
	}
	block, err := strconv.Atoi(b)
	if err != nil || block <= 0 {
		return 0, 0, false
	}
	index, err = strconv.Atoi(i)
	if err != nil || index <= 0 {
		return 0, 0, false
	}
	return block, index, true
}
