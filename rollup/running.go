package rollup

import "sort"

// Running pairs an input row with the running total of its partition up to
// and including that row.
type Running[R any] struct {
	Row   R
	Total float64
}

// RunningSum computes a per-partition running sum: rows are grouped by the
// partition key, ordered within each partition by the order key, and summed
// cumulatively. The total resets to zero at every partition boundary.
//
// A nil field is no measurement and contributes nothing, so the total
// carries forward unchanged through gaps. Rows are never dropped: a row
// whose every predecessor is nil still appears, with the total so far.
//
// Input order does not affect the result. Rows are sorted by
// (partition, order) before scanning; ties keep input order, so feeding
// duplicate keys yields a deterministic if meaningless total.
func RunningSum[R any](rows []R, partition func(R) string, order func(R) string, field func(R) *float64) []Running[R] {
	sorted := make([]R, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := partition(sorted[i]), partition(sorted[j])
		if pi != pj {
			return pi < pj
		}
		return order(sorted[i]) < order(sorted[j])
	})

	out := make([]Running[R], 0, len(sorted))

	var current string
	var total float64
	first := true
	for _, row := range sorted {
		p := partition(row)
		if first || p != current {
			current = p
			total = 0
			first = false
		}
		if v := field(row); v != nil {
			total += *v
		}
		out = append(out, Running[R]{Row: row, Total: total})
	}

	return out
}
