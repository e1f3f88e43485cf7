package valuation

import (
	"github.com/valorlabs/valor/internal/models"
)

// DefaultModelWeights is the blending table applied when no weights are
// configured. Weights are renormalized over the models that actually ran.
var DefaultModelWeights = map[string]float64{
	ModelGraham:        0.25,
	ModelEarningsPower: 0.25,
	ModelOwnerEarnings: 0.35,
	ModelBookAnchor:    0.15,
}

// Composite weighting of the recommendation signal. Valuation dominates;
// sentiment is a secondary nudge that can only shift borderline cases.
const (
	marginWeight    = 0.65
	qualityWeight   = 0.25
	sentimentWeight = 0.10
)

// Label cut points on the composite score
const (
	strongBuyCut = 0.20
	buyCut       = 0.08
	holdFloor    = -0.05
	reduceFloor  = -0.15
)

// Dashboard composite weighting. The mental-model axes carry most of the
// non-margin signal, so a weak moat or risk profile can demote a cheap
// stock.
const (
	dashboardMarginWeight         = 0.45
	dashboardMoatWeight           = 0.12
	dashboardQualityWeight        = 0.15
	dashboardPredictabilityWeight = 0.12
	dashboardManagementWeight     = 0.08
	dashboardRiskWeight           = 0.05
	dashboardSentimentWeight      = 0.03
)

// Dashboard label cut points. Stricter than the compact cuts: the
// dashboard demands a wider margin before calling a buy.
const (
	dashboardStrongBuyCut = 0.28
	dashboardBuyCut       = 0.12
	dashboardHoldFloor    = -0.04
	dashboardReduceFloor  = -0.15
)

// Blend combines the model estimates with price, quality and sentiment
// into a Recommendation. An empty ValuationResult or unusable price
// yields insufficient_data with no numeric margin. Blend is pure:
// identical inputs produce identical output.
func Blend(result models.ValuationResult, price models.Field, quality, sentiment float64, weights map[string]float64) models.Recommendation {
	rec := models.Recommendation{
		Label:        models.LabelInsufficientData,
		QualityScore: quality,
	}

	intrinsic, ok := intrinsicValue(result, price, weights)
	if !ok {
		return rec
	}

	margin := (intrinsic - price.Value) / price.Value
	composite := margin*marginWeight + quality*qualityWeight + sentiment*sentimentWeight

	rec.IntrinsicValue = models.NewField(intrinsic)
	rec.MarginOfSafety = models.NewField(margin)
	rec.Composite = models.NewField(composite)
	rec.Label = labelFor(composite)
	return rec
}

// BlendDashboard is the dashboard-depth blend: the margin of safety is
// weighed against every mental-model scorecard axis, not just the compact
// quality measure. Same insufficient_data behavior and purity as Blend.
func BlendDashboard(result models.ValuationResult, price models.Field, card models.Scorecard, quality, sentiment float64, weights map[string]float64) models.Recommendation {
	rec := models.Recommendation{
		Label:        models.LabelInsufficientData,
		QualityScore: quality,
	}

	intrinsic, ok := intrinsicValue(result, price, weights)
	if !ok {
		return rec
	}

	margin := (intrinsic - price.Value) / price.Value
	composite := margin*dashboardMarginWeight +
		card.Moat*dashboardMoatWeight +
		card.Quality*dashboardQualityWeight +
		card.Predictability*dashboardPredictabilityWeight +
		card.Management*dashboardManagementWeight +
		card.Risk*dashboardRiskWeight +
		sentiment*dashboardSentimentWeight

	rec.IntrinsicValue = models.NewField(intrinsic)
	rec.MarginOfSafety = models.NewField(margin)
	rec.Composite = models.NewField(composite)
	rec.Label = dashboardLabelFor(composite)
	return rec
}

// intrinsicValue is the weighted mean of the models that ran, with the
// weight table renormalized over them. ok is false when no model ran or
// the price is unusable.
func intrinsicValue(result models.ValuationResult, price models.Field, weights map[string]float64) (float64, bool) {
	if result.Empty() || !price.Positive() {
		return 0, false
	}

	if len(weights) == 0 {
		weights = DefaultModelWeights
	}

	weighted, totalWeight := 0.0, 0.0
	for _, m := range result.Models {
		w, ok := weights[m.Name]
		if !ok {
			w = 1.0 // unweighted when the table has no entry
		}
		weighted += m.Value * w
		totalWeight += w
	}
	if totalWeight <= 0 {
		return 0, false
	}

	return weighted / totalWeight, true
}

func labelFor(composite float64) string {
	switch {
	case composite >= strongBuyCut:
		return models.LabelStrongBuy
	case composite >= buyCut:
		return models.LabelBuy
	case composite > holdFloor:
		return models.LabelHold
	case composite > reduceFloor:
		return models.LabelReduce
	default:
		return models.LabelSell
	}
}

func dashboardLabelFor(composite float64) string {
	switch {
	case composite >= dashboardStrongBuyCut:
		return models.LabelStrongBuy
	case composite >= dashboardBuyCut:
		return models.LabelBuy
	case composite > dashboardHoldFloor:
		return models.LabelHold
	case composite > dashboardReduceFloor:
		return models.LabelReduce
	default:
		return models.LabelSell
	}
}
