package rfm

import (
	"errors"
	"math"
	"sort"

	"rfm-segment/pkg/models"
)

// WinsorQuantile is the clipping threshold applied to Monetary and
// Frequency before ranking.
const WinsorQuantile = 0.99

// ErrEmptyPopulation is returned when scoring is attempted on zero
// customers; percentile ranks are undefined there.
var ErrEmptyPopulation = errors.New("cannot score an empty customer population")

// Score computes the population p99 thresholds once, winsorizes Monetary and
// Frequency, derives RecencyInv and assigns the three 1..5 quintile scores.
// The input slice is not mutated. Scores are relative to this population
// only: a single customer (or a dimension where every value is equal) scores
// 5, which is the documented degenerate behavior, not an error.
func Score(customers []models.Customer) ([]models.Customer, error) {
	n := len(customers)
	if n == 0 {
		return nil, ErrEmptyPopulation
	}

	out := append([]models.Customer(nil), customers...)

	monetary := make([]float64, n)
	frequency := make([]float64, n)
	for i, c := range out {
		monetary[i] = c.Monetary
		frequency[i] = float64(c.Frequency)
	}
	mHi := quantile(monetary, WinsorQuantile)
	fHi := quantile(frequency, WinsorQuantile)

	recencyInv := make([]float64, n)
	for i := range out {
		out[i].MonetaryClip = math.Min(out[i].Monetary, mHi)
		out[i].FrequencyClip = math.Min(float64(out[i].Frequency), fHi)
		// Smaller recency → bigger transformed value, so the same
		// "higher rank = higher bucket" rule serves all three scores.
		out[i].RecencyInv = 1 / (float64(out[i].RecencyDays) + 1)
		monetary[i] = out[i].MonetaryClip
		frequency[i] = out[i].FrequencyClip
		recencyInv[i] = out[i].RecencyInv
	}

	rScores := quintileScores(recencyInv)
	fScores := quintileScores(frequency)
	mScores := quintileScores(monetary)
	for i := range out {
		out[i].RScore = rScores[i]
		out[i].FScore = fScores[i]
		out[i].MScore = mScores[i]
	}
	return out, nil
}

// quintileScores maps each value to a 1..5 bucket via its average-tie
// percentile rank: equal values share the mean of the ranks they would
// occupy, so ties always land in the same bucket.
func quintileScores(vals []float64) []int {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })

	scores := make([]int, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && vals[idx[j+1]] == vals[idx[i]] {
			j++
		}
		pct := (float64(i+1) + float64(j+1)) / 2 / float64(n)
		b := int(math.Ceil(pct * 5))
		if b < 1 {
			b = 1
		}
		if b > 5 {
			b = 5
		}
		for k := i; k <= j; k++ {
			scores[idx[k]] = b
		}
		i = j + 1
	}
	return scores
}

// quantile interpolates linearly between order statistics (the pandas
// default), so the winsorization threshold matches the reference pipeline.
func quantile(vals []float64, q float64) float64 {
	s := append([]float64(nil), vals...)
	sort.Float64s(s)
	pos := q * float64(len(s)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return s[lo]
	}
	frac := pos - float64(lo)
	return s[lo]*(1-frac) + s[hi]*frac
}
