package cluster

import "sort"

// SuggestK ranks candidates by rank-sum across the three indices
// (silhouette and Calinski–Harabasz descending, Davies–Bouldin ascending)
// and returns the count with the lowest sum, preferring the smaller count
// on ties. It is advisory only; the sweep output stays the source of truth.
// Returns 0 when no candidate has a successful seed.
func SuggestK(results []CandidateResult) int {
	var usable []CandidateResult
	for _, r := range results {
		if r.SeedsSucceeded > 0 {
			usable = append(usable, r)
		}
	}
	if len(usable) == 0 {
		return 0
	}

	rankSum := make(map[int]int, len(usable))
	addRanks := func(better func(a, b CandidateResult) bool) {
		ordered := append([]CandidateResult(nil), usable...)
		sort.SliceStable(ordered, func(i, j int) bool { return better(ordered[i], ordered[j]) })
		for rank, r := range ordered {
			rankSum[r.K] += rank
		}
	}
	addRanks(func(a, b CandidateResult) bool { return a.SilhouetteMean > b.SilhouetteMean })
	addRanks(func(a, b CandidateResult) bool { return a.CalinskiHarabaszMean > b.CalinskiHarabaszMean })
	addRanks(func(a, b CandidateResult) bool { return a.DaviesBouldinMean < b.DaviesBouldinMean })

	best, bestSum := 0, int(^uint(0)>>1)
	for _, r := range usable {
		if s := rankSum[r.K]; s < bestSum || (s == bestSum && r.K < best) {
			best, bestSum = r.K, s
		}
	}
	return best
}
