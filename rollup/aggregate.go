package rollup

// GroupMax returns the per-group maximum of field, grouping rows by key.
// Nil fields are skipped; a group whose every row is nil maps to nil
// rather than disappearing, so callers can tell "no data" from "no group".
// The returned pointers are copies, never aliases into the input rows.
func GroupMax[R any, K comparable](rows []R, key func(R) K, field func(R) *float64) map[K]*float64 {
	out := make(map[K]*float64)
	for _, row := range rows {
		k := key(row)
		v := field(row)
		if v == nil {
			if _, ok := out[k]; !ok {
				out[k] = nil
			}
			continue
		}
		cur := out[k]
		if cur == nil || *v > *cur {
			val := *v
			out[k] = &val
		}
	}
	return out
}

// Sum returns the null-skipping sum of field across all rows, or nil when
// every field is nil or rows is empty.
func Sum[R any](rows []R, field func(R) *float64) *float64 {
	var sum *float64
	for _, row := range rows {
		v := field(row)
		if v == nil {
			continue
		}
		if sum == nil {
			val := *v
			sum = &val
			continue
		}
		*sum += *v
	}
	return sum
}

// GroupSum is GroupMax's summing sibling with the same null contract:
// nil fields contribute nothing and an all-nil group sums to nil.
func GroupSum[R any, K comparable](rows []R, key func(R) K, field func(R) *float64) map[K]*float64 {
	out := make(map[K]*float64)
	for _, row := range rows {
		k := key(row)
		v := field(row)
		if v == nil {
			if _, ok := out[k]; !ok {
				out[k] = nil
			}
			continue
		}
		cur := out[k]
		if cur == nil {
			val := *v
			out[k] = &val
			continue
		}
		*cur += *v
	}
	return out
}
