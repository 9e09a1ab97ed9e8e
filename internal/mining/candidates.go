package mining

import "sort"

// GenerateCandidates applies the Apriori join-and-prune step to the
// admitted size-(k-1) patterns, producing the size-k candidates whose
// every size-(k-1) subset is itself a frequent pattern from the previous
// level. frequent must contain only patterns of size k-1, each with Types
// already sorted ascending.
func GenerateCandidates(frequent []Pattern, k int) []Pattern {
	if len(frequent) == 0 {
		return nil
	}

	frequentKey := make(map[string]struct{}, len(frequent))
	for _, p := range frequent {
		frequentKey[p.Key()] = struct{}{}
	}

	sorted := append([]Pattern(nil), frequent...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key() < sorted[j].Key()
	})

	seen := make(map[string]struct{})
	var out []Pattern

	prefixLen := k - 2
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			p1, p2 := sorted[i], sorted[j]
			if !samePrefix(p1.Types, p2.Types, prefixLen) {
				continue
			}
			last1, last2 := p1.Types[prefixLen], p2.Types[prefixLen]
			if last1 == last2 {
				continue
			}
			// sorted is ordered by Key() string, not numerically, so the
			// pair's last types may arrive in either order.
			if last1 > last2 {
				last1, last2 = last2, last1
			}

			joined := make([]TypeID, 0, k)
			joined = append(joined, p1.Types[:prefixLen]...)
			joined = append(joined, last1, last2)
			candidate := Pattern{Types: joined}

			key := candidate.Key()
			if _, dup := seen[key]; dup {
				continue
			}

			if !closureHolds(candidate, frequentKey) {
				continue
			}

			seen[key] = struct{}{}
			out = append(out, candidate)
		}
	}

	return out
}

func samePrefix(a, b []TypeID, n int) bool {
	if len(a) < n || len(b) < n {
		return false
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// closureHolds reports whether every size-(k-1) subset of candidate's
// types is present in frequentKey, the Apriori anti-monotonicity check.
func closureHolds(candidate Pattern, frequentKey map[string]struct{}) bool {
	types := candidate.Types
	for omit := 0; omit < len(types); omit++ {
		subset := make([]TypeID, 0, len(types)-1)
		for i, t := range types {
			if i != omit {
				subset = append(subset, t)
			}
		}
		key := Pattern{Types: subset}.Key()
		if _, ok := frequentKey[key]; !ok {
			return false
		}
	}
	return true
}
