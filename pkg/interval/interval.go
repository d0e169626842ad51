// Package interval implements half-open [Start, End) intervals over
// minutes-of-day and the set operations the availability engine is built on.
//
// All operations are pure and total: empty input produces empty output,
// malformed (empty) intervals are ignored rather than rejected.
package interval

import "sort"

// Interval is a half-open interval [Start, End) in minutes from midnight.
// The end instant is excluded, so an interval ending at 600 (10:00) and one
// starting at 600 do not overlap.
type Interval struct {
	Start int
	End   int
}

// MinutesPerDay is the upper bound for a minutes-of-day value.
const MinutesPerDay = 24 * 60

// New returns the interval [start, end).
func New(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// IsEmpty reports whether the interval contains no instants.
func (iv Interval) IsEmpty() bool {
	return iv.End <= iv.Start
}

// Duration returns the length of the interval in minutes (0 if empty).
func (iv Interval) Duration() int {
	if iv.IsEmpty() {
		return 0
	}
	return iv.End - iv.Start
}

// Overlaps reports whether the two intervals share at least one instant.
// Half-open semantics: touching intervals do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.IsEmpty() || other.IsEmpty() {
		return false
	}
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether other lies fully inside iv.
// An empty other is contained in nothing.
func (iv Interval) Contains(other Interval) bool {
	if iv.IsEmpty() || other.IsEmpty() {
		return false
	}
	return iv.Start <= other.Start && other.End <= iv.End
}

// ContainsInstant reports whether the instant m lies inside the interval.
func (iv Interval) ContainsInstant(m int) bool {
	return iv.Start <= m && m < iv.End
}

// Intersect returns the overlapping part of the two intervals.
// The result is empty when they do not overlap.
func (iv Interval) Intersect(other Interval) Interval {
	start := iv.Start
	if other.Start > start {
		start = other.Start
	}
	end := iv.End
	if other.End < end {
		end = other.End
	}
	if end < start {
		return Interval{Start: start, End: start}
	}
	return Interval{Start: start, End: end}
}

// Clamp limits the interval to [lo, hi].
func (iv Interval) Clamp(lo, hi int) Interval {
	return iv.Intersect(Interval{Start: lo, End: hi})
}

// Merge coalesces overlapping and touching intervals into an ordered,
// disjoint set. Empty intervals are dropped. The input is not modified.
func Merge(intervals []Interval) []Interval {
	in := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			in = append(in, iv)
		}
	}
	if len(in) == 0 {
		return []Interval{}
	}

	sort.Slice(in, func(i, j int) bool {
		if in[i].Start != in[j].Start {
			return in[i].Start < in[j].Start
		}
		return in[i].End < in[j].End
	})

	out := []Interval{in[0]}
	for _, iv := range in[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			// Overlapping or touching: extend the current run.
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Subtract returns the ordered parts of window not covered by any removal.
// Removals may be unsorted and overlapping; they are coalesced first.
// Removals outside the window are no-ops.
func Subtract(window Interval, removals []Interval) []Interval {
	if window.IsEmpty() {
		return []Interval{}
	}

	out := []Interval{}
	cursor := window.Start

	for _, rm := range Merge(removals) {
		if rm.End <= cursor {
			continue
		}
		if rm.Start >= window.End {
			break
		}
		if rm.Start > cursor {
			out = append(out, Interval{Start: cursor, End: rm.Start})
		}
		cursor = rm.End
	}

	if cursor < window.End {
		out = append(out, Interval{Start: cursor, End: window.End})
	}
	return out
}
