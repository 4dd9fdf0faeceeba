package core

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Model is a fitted two-parameter least-squares line y = Intercept + Slope*x.
type Model struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// Predict evaluates the fitted line at x.
func (m Model) Predict(x float64) float64 { return m.Intercept + m.Slope*x }

// PredictAll evaluates the fitted line at every x.
func (m Model) PredictAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.Predict(x)
	}
	return out
}

// FitOLS fits y on x by ordinary least squares.
func FitOLS(x, y []float64) (Model, error) {
	if len(x) != len(y) {
		return Model{}, fmt.Errorf("ols: length mismatch, %d x values vs %d y values", len(x), len(y))
	}
	if len(x) < 2 {
		return Model{}, fmt.Errorf("ols: need at least 2 points, have %d", len(x))
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Model{Intercept: alpha, Slope: beta}, nil
}
