package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const (
	defaultNInit   = 10
	defaultMaxIter = 300
)

// FitResult is one converged k-means run.
type FitResult struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// Fit runs k-means with k-means++ initialization, restarted nInit times on
// the same seeded source, keeping the lowest-inertia solution. The rand
// state is private to the call, so identical (X, k, seed) inputs always
// reproduce the same assignment.
func Fit(X [][]float64, k int, seed int64) (FitResult, error) {
	n := len(X)
	if k < 1 || k > n {
		return FitResult{}, fmt.Errorf("kmeans: k=%d outside [1, %d]", k, n)
	}
	rng := rand.New(rand.NewSource(seed))

	best := FitResult{Inertia: math.Inf(1)}
	for run := 0; run < defaultNInit; run++ {
		res := lloyd(X, kmeansPlusPlus(X, k, rng))
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

// kmeansPlusPlus seeds centroids proportionally to squared distance from
// the nearest already-chosen centroid.
func kmeansPlusPlus(X [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(X)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(X[rng.Intn(n)]))

	d2 := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i, x := range X {
			d2[i] = math.Inf(1)
			for _, c := range centroids {
				if d := sqDist(x, c); d < d2[i] {
					d2[i] = d
				}
			}
			total += d2[i]
		}
		if total == 0 {
			// All remaining points coincide with a centroid; pick any.
			centroids = append(centroids, clone(X[rng.Intn(n)]))
			continue
		}
		target := rng.Float64() * total
		var cum float64
		pick := n - 1
		for i, d := range d2 {
			cum += d
			if cum >= target {
				pick = i
				break
			}
		}
		centroids = append(centroids, clone(X[pick]))
	}
	return centroids
}

// lloyd iterates assign/update until labels stop changing or maxIter is
// reached. Emptied clusters are reseeded with the point farthest from its
// centroid.
func lloyd(X [][]float64, centroids [][]float64) FitResult {
	n, k, dim := len(X), len(centroids), len(X[0])
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	counts := make([]int, k)
	sums := make([][]float64, k)
	for j := range sums {
		sums[j] = make([]float64, dim)
	}

	for iter := 0; iter < defaultMaxIter; iter++ {
		changed := false
		for i, x := range X {
			bestJ, bestD := 0, math.Inf(1)
			for j, c := range centroids {
				if d := sqDist(x, c); d < bestD {
					bestJ, bestD = j, d
				}
			}
			if labels[i] != bestJ {
				labels[i] = bestJ
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		for j := range sums {
			counts[j] = 0
			for d := range sums[j] {
				sums[j][d] = 0
			}
		}
		for i, x := range X {
			counts[labels[i]]++
			floats.Add(sums[labels[i]], x)
		}
		for j := range centroids {
			if counts[j] == 0 {
				centroids[j] = clone(X[farthestPoint(X, labels, centroids)])
				continue
			}
			for d := range centroids[j] {
				centroids[j][d] = sums[j][d] / float64(counts[j])
			}
		}
	}

	var inertia float64
	for i, x := range X {
		inertia += sqDist(x, centroids[labels[i]])
	}
	return FitResult{Labels: labels, Centroids: centroids, Inertia: inertia}
}

func farthestPoint(X [][]float64, labels []int, centroids [][]float64) int {
	worst, worstD := 0, -1.0
	for i, x := range X {
		if d := sqDist(x, centroids[labels[i]]); d > worstD {
			worst, worstD = i, d
		}
	}
	return worst
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

func clone(x []float64) []float64 {
	return append([]float64(nil), x...)
}
