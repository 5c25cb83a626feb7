// Package recommend ranks an eligible set of colleges with a weighted
// composite of min-max normalized attributes and picks the best one.
package recommend

import (
	"errors"

	"github.com/jonathan/college-advisor/internal/eligibility"
	"github.com/jonathan/college-advisor/internal/types"
)

// Weights for the composite score. They sum to 1.0.
const (
	averagePackageWeight = 0.4
	ratingWeight         = 0.1
	highestPackageWeight = 0.2
	cutoffWeight         = 0.3
)

// ErrNoEligibleSet is returned when selection is attempted without a
// non-empty eligible set to score.
var ErrNoEligibleSet = errors.New("no eligible colleges available")

// Ranked is one scored college from the eligible set.
type Ranked struct {
	College   types.CollegeRecord
	Composite float64
}

// Recommendation is the outcome of scoring an eligible set.
type Recommendation struct {
	Best   Ranked
	Ranked []Ranked
}

// SelectBest scores every college in the set and returns the one with the
// maximum composite score. Ties keep the first college encountered. Scoring
// works on the set as given and never mutates it; calling SelectBest twice
// on the same set yields the same winner.
func SelectBest(set *types.EligibleSet) (*Recommendation, error) {
	if set.Empty() {
		return nil, ErrNoEligibleSet
	}

	n := len(set.Colleges)
	avgPackages := make([]float64, n)
	ratings := make([]float64, n)
	highPackages := make([]float64, n)
	cutoffs := make([]float64, n)
	for i, college := range set.Colleges {
		avgPackages[i] = college.Placements.AveragePackage
		ratings[i] = college.Rating
		highPackages[i] = college.Placements.HighestPackage
		// Colleges enter the set only with a reference-year cutoff present.
		cutoffs[i], _ = college.CutoffFor(eligibility.ReferenceYear)
	}

	normAvg := normalize(avgPackages)
	normRating := normalize(ratings)
	normHigh := normalize(highPackages)
	normCutoff := normalize(cutoffs)

	rec := &Recommendation{Ranked: make([]Ranked, n)}
	bestIdx := 0
	for i := range set.Colleges {
		// A lower cutoff is more favorable to the seeker, so its
		// normalized value enters the composite inverted.
		composite := averagePackageWeight*normAvg[i] +
			ratingWeight*normRating[i] +
			highestPackageWeight*normHigh[i] +
			cutoffWeight*(1-normCutoff[i])

		rec.Ranked[i] = Ranked{College: set.Colleges[i], Composite: composite}
		if composite > rec.Ranked[bestIdx].Composite {
			bestIdx = i
		}
	}

	rec.Best = rec.Ranked[bestIdx]
	return rec, nil
}

// normalize maps values onto [0,1] with min-max scaling over the slice. When
// all values are equal there is no spread to scale by, and every value maps
// to the neutral constant 0.
func normalize(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	out := make([]float64, len(values))
	if hi == lo {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / (hi - lo)
	}
	return out
}
