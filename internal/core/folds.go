package core

import (
	"math/rand"

	"lifepanel/pkg/domain"
)

// AssignFolds partitions the regression sample into k = floor(N / minFoldSize)
// random folds by shuffling the 1..k cycle repeated to length N with a
// seeded generator, so fold sizes differ by at
// most one and the same seed reproduces the same assignment. Fails with
// InsufficientData when fewer than minFoldSize countries are available.
func AssignFolds(aggregates []domain.CountryAggregate, minFoldSize int, seed int64) (domain.FoldAssignment, error) {
	if minFoldSize <= 0 {
		minFoldSize = 10
	}
	n := len(aggregates)
	k := n / minFoldSize
	if k < 1 {
		return domain.FoldAssignment{}, &domain.InsufficientDataError{Countries: n, MinFoldSize: minFoldSize}
	}
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i%k + 1
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	byCountry := make(map[string]int, n)
	for i, agg := range aggregates {
		byCountry[agg.Country] = ids[i]
	}
	return domain.FoldAssignment{Folds: k, ByCountry: byCountry}, nil
}
