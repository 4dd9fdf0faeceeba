package core

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"lifepanel/pkg/domain"
)

// FoldScore is one fold's holdout result.
type FoldScore struct {
	Fold      int     `json:"fold"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
	Score     float64 `json:"score"`
	Model     Model   `json:"model"`
}

// CrossValidate runs leave-one-fold-out evaluation: for each fold j it fits
// mean life expectancy on log10 mean GDP over the other folds, predicts the
// holdout, and scores it as variance(predictions) / variance(actuals).
//
// The score is a variance ratio, not 1 - SSres/SStot; it can exceed 1 and
// that is intentional, to stay comparable with earlier reported results.
// A holdout with fewer
// than 2 countries has no variance and fails with DegenerateFoldError.
// Scores are returned in fold order.
func CrossValidate(aggregates []domain.CountryAggregate, folds domain.FoldAssignment) ([]FoldScore, error) {
	scores := make([]FoldScore, 0, folds.Folds)
	for j := 1; j <= folds.Folds; j++ {
		var trainX, trainY, testX, testY []float64
		for _, agg := range aggregates {
			if folds.ByCountry[agg.Country] == j {
				testX = append(testX, agg.Log10GDP)
				testY = append(testY, agg.MeanLifeExpectancy)
			} else {
				trainX = append(trainX, agg.Log10GDP)
				trainY = append(trainY, agg.MeanLifeExpectancy)
			}
		}
		if len(testY) < 2 {
			return nil, &domain.DegenerateFoldError{Fold: j, Size: len(testY)}
		}
		model, err := FitOLS(trainX, trainY)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", j, err)
		}
		predictions := model.PredictAll(testX)
		scores = append(scores, FoldScore{
			Fold:      j,
			TrainSize: len(trainY),
			TestSize:  len(testY),
			Score:     stat.Variance(predictions, nil) / stat.Variance(testY, nil),
			Model:     model,
		})
	}
	return scores, nil
}

// MeanScore averages the per-fold holdout scores.
func MeanScore(scores []FoldScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	xs := make([]float64, len(scores))
	for i, s := range scores {
		xs[i] = s.Score
	}
	return stat.Mean(xs, nil)
}
