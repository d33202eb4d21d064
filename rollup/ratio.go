package rollup

// PercentOf returns num/den expressed as a percentage, or nil when the
// ratio is undefined. A nil numerator or denominator means no measurement;
// a zero denominator would divide by zero. Neither case is an error, the
// metric simply does not exist for that row.
func PercentOf(num, den *float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	pct := *num / *den * 100
	return &pct
}
