package domain

import "sort"

// run is a maximal block of identical faces.
type run struct {
	face  Face
	start int
	n     int
}

func (r run) end() int { return r.start + r.n - 1 }

// scanRuns computes, for every position, the length of the run of identical
// faces starting there, and returns the maximal runs in order.
func scanRuns(s Snapshot) []run {
	n := s.Len()
	if n == 0 {
		return nil
	}
	lengths := make([]int, n)
	lengths[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		if s.faces[i] == s.faces[i+1] {
			lengths[i] = lengths[i+1] + 1
		} else {
			lengths[i] = 1
		}
	}
	var runs []run
	for i := 0; i < n; i += lengths[i] {
		runs = append(runs, run{face: s.faces[i], start: i, n: lengths[i]})
	}
	return runs
}

// longestRun returns the longest run whose face satisfies want. Ties keep the earliest.
func longestRun(runs []run, want Face) (run, bool) {
	best := run{}
	found := false
	for _, r := range runs {
		if !want.Matches(r.face) {
			continue
		}
		if !found || r.n > best.n {
			best = r
			found = true
		}
	}
	return best, found
}

// MatchPatterns returns every catalog pattern the snapshot satisfies. An empty
// snapshot or catalog yields an empty list.
//
// Consecutive{k} entries are reported once per threshold, anchored on the
// longest qualifying run. Results list attack patterns before defense
// patterns, then by descending bonus, then by PatternType order.
func MatchPatterns(s Snapshot, c *Catalog) []MatchedPattern {
	if s.Len() == 0 || c.Len() == 0 {
		return nil
	}
	n := s.Len()
	runs := scanRuns(s)

	type key struct {
		t    PatternType
		face Face
	}
	seen := make(map[key]bool)
	var out []MatchedPattern
	for _, p := range c.entries {
		k := key{p.Type, p.Face}
		if seen[k] {
			continue
		}
		var m MatchedPattern
		ok := false
		switch {
		case p.Type.RunLength() > 0:
			if r, found := longestRun(runs, p.Face); found && r.n >= p.Type.RunLength() {
				m = MatchedPattern{Pattern: p, Start: r.start, End: r.end()}
				ok = true
			}
		case p.Type == AllOfOne:
			if len(runs) == 1 && p.Face.Matches(runs[0].face) {
				m = MatchedPattern{Pattern: p, Start: 0, End: n - 1}
				m.Length = n
				ok = true
			}
		case p.Type == Alternating:
			if n >= 2 && len(runs) == n {
				m = MatchedPattern{Pattern: p, Start: 0, End: n - 1}
				m.Length = n
				ok = true
			}
		}
		if !ok {
			continue
		}
		seen[k] = true
		m.Indices = span(m.Start, m.End)
		out = append(out, m)
	}
	sortMatches(out)
	return out
}

// MatchWithFallback is MatchPatterns with a guaranteed non-empty result for a
// non-empty snapshot. When nothing matches it offers the catalog fallback, or
// a degraded basic action scaled linearly by the longest run when the catalog
// has none.
func MatchWithFallback(s Snapshot, c *Catalog) ([]MatchedPattern, error) {
	if s.Len() == 0 {
		return nil, ErrEmptyPatternSet
	}
	if out := MatchPatterns(s, c); len(out) > 0 {
		return out, nil
	}
	end := s.Len() - 1
	if fb, ok := c.Fallback(); ok {
		return []MatchedPattern{{Pattern: fb, Start: 0, End: end, Indices: span(0, end)}}, nil
	}
	return []MatchedPattern{DegradedBasic(s)}, nil
}

// DegradedBasic builds the emergency basic action: bonus is twice the longest
// run, attacking when that run shows heads.
func DegradedBasic(s Snapshot) MatchedPattern {
	r, _ := longestRun(scanRuns(s), Any)
	return MatchedPattern{
		Pattern: Pattern{
			ID:       "degraded-basic",
			Name:     "Desperate Action",
			Type:     Basic,
			Face:     r.face,
			Length:   r.n,
			IsAttack: r.face == Head,
			Bonus:    2 * r.n,
		},
		Start:   r.start,
		End:     r.end(),
		Indices: span(r.start, r.end()),
	}
}

// FindMatch returns the offered pattern with the given ID.
func FindMatch(offered []MatchedPattern, id string) (MatchedPattern, bool) {
	for _, m := range offered {
		if m.ID == id {
			return m, true
		}
	}
	return MatchedPattern{}, false
}

// MatchIDs lists the IDs of offered patterns in order.
func MatchIDs(offered []MatchedPattern) []string {
	ids := make([]string, len(offered))
	for i, m := range offered {
		ids[i] = m.ID
	}
	return ids
}

func sortMatches(out []MatchedPattern) {
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsAttack != b.IsAttack {
			return a.IsAttack
		}
		if a.Bonus != b.Bonus {
			return a.Bonus > b.Bonus
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Face != b.Face {
			return a.Face < b.Face
		}
		return a.ID < b.ID
	})
}
