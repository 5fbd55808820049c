package symbolic

// PickVertex chooses one concrete vertex per color of the set: for every
// color that has at least one vertex in s, the result contains exactly the
// lexicographically smallest such vertex (variable 0 weighs most, false
// before true). The choice is deterministic for a given set; callers must
// not rely on which vertex is picked beyond that.
func (s *Set) PickVertex() *Set {
	res := s
	for i := 0; i < s.g.n; i++ {
		low := res.Intersect(s.g.Lit(i, false))
		// Colors that still have a candidate with variable i false keep only
		// those candidates; the rest keep their (necessarily true) branch.
		lowColors := low.Colors()
		high := res.Intersect(s.g.Lit(i, true)).Minus(lowColors)
		res = low.Union(high)
	}
	return res
}
