// Package valuation applies independent intrinsic-value models to parsed
// fundamentals and blends them into a recommendation.
package valuation

import (
	"math"

	"github.com/valorlabs/valor/internal/models"
)

// Inputs collects everything the model table may draw on. Unknown fields
// cause the models that require them to be skipped, never zero-filled.
type Inputs struct {
	Snapshot  models.FundamentalSnapshot
	History   models.HistoryStats
	Sentiment float64 // bounded [-1, 1]
}

// Growth returns the clamped growth rate shared by the models: the
// historical CAGR when known, a conservative default otherwise.
func (in Inputs) Growth() float64 {
	return clamp(in.History.CAGR.Or(defaultGrowth), minGrowth, maxGrowth)
}

const (
	defaultGrowth = 0.05
	minGrowth     = -0.02
	maxGrowth     = 0.18

	ownerEarningsYears    = 5
	ownerEarningsDiscount = 0.10
	ownerTerminalMultiple = 12.0
)

// Model names, in stable table order
const (
	ModelGraham        = "graham"
	ModelEarningsPower = "earnings_power"
	ModelOwnerEarnings = "owner_earnings"
	ModelBookAnchor    = "book_anchor"
)

// modelSpec declares one valuation model: its requirements and formula.
// Skip/include decisions live here, not scattered through the engine.
type modelSpec struct {
	name     string
	required func(Inputs) bool
	compute  func(Inputs) float64
}

var modelTable = []modelSpec{
	{
		name:     ModelGraham,
		required: func(in Inputs) bool { return in.Snapshot.EPS.Positive() },
		compute: func(in Inputs) float64 {
			// Graham's revised formula: EPS x (8.5 + 2g), g in percent
			return in.Snapshot.EPS.Value * (8.5 + 2.0*in.Growth()*100.0)
		},
	},
	{
		name:     ModelEarningsPower,
		required: func(in Inputs) bool { return in.Snapshot.EPS.Positive() },
		compute: func(in Inputs) float64 {
			fairPE := 12.0 + 6.0*in.Growth() + 4.0*clamp(in.Sentiment, -0.2, 0.25)
			return in.Snapshot.EPS.Value * clamp(fairPE, 8.0, 24.0)
		},
	},
	{
		name:     ModelOwnerEarnings,
		required: func(in Inputs) bool { return in.Snapshot.EPS.Positive() },
		compute: func(in Inputs) float64 {
			// Five-year PV of earnings grown conservatively, plus a
			// terminal multiple, both discounted at a fixed rate.
			growth := clamp(in.Growth(), 0.0, 0.12)
			oe := in.Snapshot.EPS.Value
			pv := 0.0
			for year := 1; year <= ownerEarningsYears; year++ {
				oe *= 1.0 + growth
				pv += oe / math.Pow(1.0+ownerEarningsDiscount, float64(year))
			}
			terminal := oe * ownerTerminalMultiple / math.Pow(1.0+ownerEarningsDiscount, ownerEarningsYears)
			return pv + terminal
		},
	},
	{
		name:     ModelBookAnchor,
		required: func(in Inputs) bool { return in.Snapshot.BVPS.Positive() },
		compute: func(in Inputs) float64 {
			fairPB := 1.4
			if in.Snapshot.ROE.Known {
				fairPB += clamp((in.Snapshot.ROE.Value-0.10)*5.0, -0.4, 0.8)
			}
			fairPB += clamp(in.Sentiment*0.2, -0.2, 0.2)
			return in.Snapshot.BVPS.Value * clamp(fairPB, 0.7, 3.0)
		},
	},
}

// Compute runs every model whose required inputs are available. Zero
// included models is a valid, empty result.
func Compute(in Inputs) models.ValuationResult {
	result := models.ValuationResult{GrowthUsed: in.Growth()}

	for _, spec := range modelTable {
		if !spec.required(in) {
			continue
		}
		value := spec.compute(in)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		result.Models = append(result.Models, models.ModelValue{Name: spec.name, Value: value})
	}

	result.GrahamNumber = GrahamNumber(in.Snapshot.EPS, in.Snapshot.BVPS)
	return result
}

// GrahamNumber is the classic conservative estimate sqrt(22.5 x EPS x BVPS).
// Both inputs must be known and positive, otherwise unknown.
func GrahamNumber(eps, bvps models.Field) models.Field {
	if !eps.Positive() || !bvps.Positive() {
		return models.Unknown()
	}
	return models.NewField(math.Sqrt(22.5 * eps.Value * bvps.Value))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
