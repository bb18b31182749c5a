package cluster

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"rfm-segment/pkg/models"
)

// FeatureColumns are the clustering features, in matrix column order.
var FeatureColumns = []string{"RecencyDays", "Frequency", "Monetary"}

// FeatureMatrix extracts the clustering features, one row per customer.
func FeatureMatrix(customers []models.Customer) [][]float64 {
	X := make([][]float64, len(customers))
	for i, c := range customers {
		X[i] = []float64{float64(c.RecencyDays), float64(c.Frequency), c.Monetary}
	}
	return X
}

// Standardize z-scores every column, fit on the matrix being evaluated.
// Without this, Monetary would dominate every distance computation. A
// zero-variance column is centered but left unscaled.
func Standardize(X [][]float64) [][]float64 {
	if len(X) == 0 {
		return nil
	}
	rows, cols := len(X), len(X[0])
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = X[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		for i := 0; i < rows; i++ {
			out[i][j] = (X[i][j] - mean) / std
		}
	}
	return out
}
