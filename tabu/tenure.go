package tabu

// InsertTenure is the adaptive tenure for an element entering a set of
// cardinality card: 1 + floor(base/100 * card).
//
// base is a percentage; a larger set keeps recently inserted elements
// forbidden for longer.
func InsertTenure(base float64, card int) int {
	return 1 + int(base/100*float64(card))
}

// RemoveTenure is the adaptive tenure for an element leaving a set of
// cardinality card out of n elements: 1 + floor(base/100 * (n - card)).
func RemoveTenure(base float64, n, card int) int {
	return 1 + int(base/100*float64(n-card))
}
