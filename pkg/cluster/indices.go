package cluster

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Internal validity indices, computed on one run's label assignment.
// Each returns an error instead of a meaningless number when the
// assignment is degenerate for that index.

var errDegenerateLabels = errors.New("index undefined: need 2 <= clusters <= points-1")

// Silhouette is the mean over all points of (b-a)/max(a,b), where a is the
// mean intra-cluster distance and b the mean distance to the nearest other
// cluster.
func Silhouette(X [][]float64, labels []int) (float64, error) {
	n := len(X)
	k := countClusters(labels)
	if k < 2 || k >= n {
		return 0, errDegenerateLabels
	}

	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}

	var total float64
	dists := make([]float64, k)
	for i, x := range X {
		for j := range dists {
			dists[j] = 0
		}
		for j, y := range X {
			if i == j {
				continue
			}
			dists[labels[j]] += floats.Distance(x, y, 2)
		}

		own := labels[i]
		var a float64
		if sizes[own] > 1 {
			a = dists[own] / float64(sizes[own]-1)
		}
		b := math.Inf(1)
		for c, sum := range dists {
			if c == own || sizes[c] == 0 {
				continue
			}
			if mean := sum / float64(sizes[c]); mean < b {
				b = mean
			}
		}

		// A singleton cluster contributes 0 (sklearn convention).
		if sizes[own] > 1 {
			total += (b - a) / math.Max(a, b)
		}
	}
	return total / float64(n), nil
}

// DaviesBouldin averages, per cluster, the worst-case ratio of summed
// within-cluster scatters to between-centroid distance. Lower is better.
func DaviesBouldin(X [][]float64, labels []int) (float64, error) {
	n := len(X)
	k := countClusters(labels)
	if k < 2 || k > n {
		return 0, errDegenerateLabels
	}

	centroids, sizes := centroidsOf(X, labels, k)
	scatter := make([]float64, k)
	for i, x := range X {
		scatter[labels[i]] += floats.Distance(x, centroids[labels[i]], 2)
	}
	for c := range scatter {
		if sizes[c] == 0 {
			return 0, errDegenerateLabels
		}
		scatter[c] /= float64(sizes[c])
	}

	var total float64
	for i := 0; i < k; i++ {
		worst := 0.0
		for j := 0; j < k; j++ {
			if i == j {
				continue
			}
			d := floats.Distance(centroids[i], centroids[j], 2)
			if d == 0 {
				return 0, errors.New("davies-bouldin undefined: coincident centroids")
			}
			if r := (scatter[i] + scatter[j]) / d; r > worst {
				worst = r
			}
		}
		total += worst
	}
	return total / float64(k), nil
}

// CalinskiHarabasz is the between/within dispersion ratio scaled by degrees
// of freedom. Higher is better.
func CalinskiHarabasz(X [][]float64, labels []int) (float64, error) {
	n := len(X)
	k := countClusters(labels)
	if k < 2 || k >= n {
		return 0, errDegenerateLabels
	}

	dim := len(X[0])
	overall := make([]float64, dim)
	for _, x := range X {
		floats.Add(overall, x)
	}
	floats.Scale(1/float64(n), overall)

	centroids, sizes := centroidsOf(X, labels, k)
	var between, within float64
	for c := 0; c < k; c++ {
		if sizes[c] == 0 {
			return 0, errDegenerateLabels
		}
		d := floats.Distance(centroids[c], overall, 2)
		between += float64(sizes[c]) * d * d
	}
	for i, x := range X {
		d := floats.Distance(x, centroids[labels[i]], 2)
		within += d * d
	}
	if within == 0 {
		return 0, errors.New("calinski-harabasz undefined: zero within-cluster dispersion")
	}
	return (between / float64(k-1)) / (within / float64(n-k)), nil
}

func countClusters(labels []int) int {
	max := -1
	for _, l := range labels {
		if l > max {
			max = l
		}
	}
	return max + 1
}

func centroidsOf(X [][]float64, labels []int, k int) ([][]float64, []int) {
	dim := len(X[0])
	centroids := make([][]float64, k)
	for c := range centroids {
		centroids[c] = make([]float64, dim)
	}
	sizes := make([]int, k)
	for i, x := range X {
		floats.Add(centroids[labels[i]], x)
		sizes[labels[i]]++
	}
	for c := range centroids {
		if sizes[c] > 0 {
			floats.Scale(1/float64(sizes[c]), centroids[c])
		}
	}
	return centroids, sizes
}
