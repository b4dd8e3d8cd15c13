package damage

import (
	"sort"

	"wcl_check/wow"
)

// Window is an inclusive [Start, End] timestamp interval in milliseconds.
type Window struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// WindowIndex holds the sorted, non-overlapping uptime windows of each toggleable buff.
type WindowIndex map[wow.Buff][]Window

// Add inserts a window keeping the list ordered by start. Overlapping windows are merged.
func (x *WindowIndex) Add(buff wow.Buff, start, end int64) {
	if end < start {
		start, end = end, start
	}
	if *x == nil {
		*x = make(WindowIndex)
	}

	ws := (*x)[buff]
	i := sort.Search(len(ws), func(i int) bool { return ws[i].Start > start })

	ws = append(ws, Window{})
	copy(ws[i+1:], ws[i:])
	ws[i] = Window{Start: start, End: end}

	merged := ws[:0]
	for _, w := range ws {
		if n := len(merged); n > 0 && w.Start <= merged[n-1].End {
			if w.End > merged[n-1].End {
				merged[n-1].End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	(*x)[buff] = merged
}

// Contains reports whether ts falls inside any window of buff.
func (x WindowIndex) Contains(buff wow.Buff, ts int64) bool {
	ws := x[buff]
	i := sort.Search(len(ws), func(i int) bool { return ws[i].End >= ts })
	return i < len(ws) && ws[i].Start <= ts
}

func (x WindowIndex) Windows(buff wow.Buff) []Window {
	return x[buff]
}

// Uptime is the summed length of the windows of buff in milliseconds.
func (x WindowIndex) Uptime(buff wow.Buff) int64 {
	var sum int64
	for _, w := range x[buff] {
		sum += w.End - w.Start
	}
	return sum
}
