package mining

// MineSize2Patterns evaluates every unordered type pair against the
// neighbor graph and returns one ParticipationRatio-backed evaluation per
// pair, admitting those whose participation index meets minPrevalence.
// Every pair is recorded in the returned diagnostics table regardless of
// whether it is admitted, mirroring the original's write-once
// participation_ratios bookkeeping (see DESIGN.md).
func MineSize2Patterns(ti *TypeIndex, ng *NeighborGraph, minPrevalence float64) (admitted []AdmittedPattern, allRatios map[string][2]ParticipationRatio) {
	n := ti.NumTypes()
	allRatios = make(map[string][2]ParticipationRatio)

	for t1 := TypeID(0); int(t1) < n; t1++ {
		for t2 := t1 + 1; int(t2) < n; t2++ {
			pattern := Pattern{Types: []TypeID{t1, t2}}

			var instances []PatternInstance
			participants1 := make(map[int]struct{})
			participants2 := make(map[int]struct{})

			pop1 := ti.Population(t1)
			for local := 0; local < pop1; local++ {
				a := ti.ID(t1, local)
				neighbors := ng.Neighbors(a, t2)
				for _, b := range neighbors {
					instances = append(instances, PatternInstance{a, b})
					participants1[a] = struct{}{}
					participants2[b] = struct{}{}
				}
			}

			pop2 := ti.Population(t2)
			pi1 := ratio(len(participants1), pop1)
			pi2 := ratio(len(participants2), pop2)
			pi := min2(pi1, pi2)

			allRatios[pattern.Key()] = [2]ParticipationRatio{
				{Type: t1, Ratio: pi1},
				{Type: t2, Ratio: pi2},
			}

			if len(instances) == 0 {
				continue
			}
			if pi >= minPrevalence {
				admitted = append(admitted, AdmittedPattern{
					Pattern:            pattern,
					ParticipationIndex: pi,
					Instances:          instances,
				})
			}
		}
	}

	return admitted, allRatios
}

func ratio(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
