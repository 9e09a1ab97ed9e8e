package mining

// EvaluatePrevalence computes the participation ratio of every type in
// pattern given its witnessing instances, and the pattern's participation
// index: the minimum ratio across all member types.
func EvaluatePrevalence(ti *TypeIndex, pattern Pattern, instances []PatternInstance) (pi float64, ratios []ParticipationRatio) {
	types := pattern.Types
	participants := make([]map[int]struct{}, len(types))
	for i := range types {
		participants[i] = make(map[int]struct{})
	}
	for _, inst := range instances {
		for i, id := range inst {
			participants[i][id] = struct{}{}
		}
	}

	ratios = make([]ParticipationRatio, len(types))
	pi = 1
	for i, t := range types {
		r := ratio(len(participants[i]), ti.Population(t))
		ratios[i] = ParticipationRatio{Type: t, Ratio: r}
		if r < pi {
			pi = r
		}
	}
	return pi, ratios
}
