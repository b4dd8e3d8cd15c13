package share

import "sort"

// SortedStrings is a sorted, de-duplicated string list for binary search lookups.
type SortedStrings []string

func NewSortedStrings(a ...string) SortedStrings {
	s := append(SortedStrings(nil), a...)
	sort.Strings(s)

	out := s[:0]
	for _, v := range s {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

func (a SortedStrings) Contains(x string) bool {
	idx := sort.SearchStrings(a, x)
	if idx >= len(a) {
		return false
	}

	return a[idx] == x
}
