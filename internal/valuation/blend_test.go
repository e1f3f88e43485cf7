package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valorlabs/valor/internal/models"
)

func TestBlendInsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		result models.ValuationResult
		price  models.Field
	}{
		{name: "no models ran", result: models.ValuationResult{}, price: models.NewField(100)},
		{name: "unknown price", result: singleModel(ModelGraham, 120), price: models.Unknown()},
		{name: "zero price", result: singleModel(ModelGraham, 120), price: models.NewField(0)},
		{name: "negative price", result: singleModel(ModelGraham, 120), price: models.NewField(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Blend(tt.result, tt.price, 0.2, 0.1, nil)
			assert.Equal(t, models.LabelInsufficientData, rec.Label)
			assert.False(t, rec.IntrinsicValue.Known)
			assert.False(t, rec.MarginOfSafety.Known)
			assert.False(t, rec.Composite.Known)
		})
	}
}

func singleModel(name string, value float64) models.ValuationResult {
	return models.ValuationResult{Models: []models.ModelValue{{Name: name, Value: value}}}
}

func TestBlendWeightRenormalization(t *testing.T) {
	// Only graham (.25) and book_anchor (.15) ran; intrinsic is their
	// renormalized weighted mean, not dragged down by absent models.
	result := models.ValuationResult{Models: []models.ModelValue{
		{Name: ModelGraham, Value: 100},
		{Name: ModelBookAnchor, Value: 60},
	}}
	rec := Blend(result, models.NewField(70), 0.0, 0.0, nil)

	require.True(t, rec.IntrinsicValue.Known)
	// (100*.25 + 60*.15) / .40 = 85
	assert.InDelta(t, 85.0, rec.IntrinsicValue.Value, 0.001)
	assert.InDelta(t, (85.0-70.0)/70.0, rec.MarginOfSafety.Value, 0.001)
}

func TestBlendCompositeAndLabels(t *testing.T) {
	tests := []struct {
		name      string
		intrinsic float64
		price     float64
		quality   float64
		sentiment float64
		label     string
	}{
		{name: "deep discount strong buy", intrinsic: 150, price: 100, quality: 0.2, sentiment: 0.3, label: models.LabelStrongBuy},
		{name: "modest discount buy", intrinsic: 115, price: 100, quality: 0.1, sentiment: 0.0, label: models.LabelBuy},
		{name: "fair value hold", intrinsic: 100, price: 100, quality: 0.0, sentiment: 0.0, label: models.LabelHold},
		{name: "overvalued reduce", intrinsic: 85, price: 100, quality: 0.0, sentiment: 0.0, label: models.LabelReduce},
		{name: "deeply overvalued sell", intrinsic: 60, price: 100, quality: -0.1, sentiment: -0.5, label: models.LabelSell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := singleModel(ModelGraham, tt.intrinsic)
			rec := Blend(result, models.NewField(tt.price), tt.quality, tt.sentiment, nil)

			require.True(t, rec.Composite.Known)
			margin := (tt.intrinsic - tt.price) / tt.price
			expected := margin*0.65 + tt.quality*0.25 + tt.sentiment*0.10
			assert.InDelta(t, expected, rec.Composite.Value, 0.0001)
			assert.Equal(t, tt.label, rec.Label)
		})
	}
}

func TestBlendLabelCutPoints(t *testing.T) {
	tests := []struct {
		composite float64
		label     string
	}{
		{composite: 0.20, label: models.LabelStrongBuy},
		{composite: 0.19, label: models.LabelBuy},
		{composite: 0.08, label: models.LabelBuy},
		{composite: 0.07, label: models.LabelHold},
		{composite: -0.04, label: models.LabelHold},
		{composite: -0.05, label: models.LabelReduce},
		{composite: -0.15, label: models.LabelSell},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, labelFor(tt.composite), "composite %.2f", tt.composite)
	}
}

func TestBlendUnlistedModelGetsUnitWeight(t *testing.T) {
	result := models.ValuationResult{Models: []models.ModelValue{
		{Name: "experimental", Value: 80},
		{Name: ModelGraham, Value: 80},
	}}
	rec := Blend(result, models.NewField(80), 0.0, 0.0, map[string]float64{ModelGraham: 0.5})

	require.True(t, rec.IntrinsicValue.Known)
	assert.InDelta(t, 80.0, rec.IntrinsicValue.Value, 0.001)
	assert.Equal(t, models.LabelHold, rec.Label)
}

func TestBlendPure(t *testing.T) {
	result := models.ValuationResult{Models: []models.ModelValue{
		{Name: ModelGraham, Value: 130},
		{Name: ModelOwnerEarnings, Value: 110},
	}}
	price := models.NewField(95)

	first := Blend(result, price, 0.15, -0.1, nil)
	second := Blend(result, price, 0.15, -0.1, nil)
	assert.Equal(t, first, second)
}

func TestBlendDashboardScorecardDrivesLabel(t *testing.T) {
	// 50% margin of safety, but every mental-model axis at its floor:
	// the dashboard blend must demote to sell where the compact blend
	// would call strong_buy.
	result := singleModel(ModelGraham, 150)
	price := models.NewField(100)
	worst := models.Scorecard{Moat: -1, Quality: -1, Predictability: -1, Management: -1, Risk: -1}

	compact := Blend(result, price, 0.0, 0.0, nil)
	dashboard := BlendDashboard(result, price, worst, 0.0, 0.0, nil)

	assert.Equal(t, models.LabelStrongBuy, compact.Label)
	assert.Equal(t, models.LabelSell, dashboard.Label)

	// 0.5*0.45 - (0.12+0.15+0.12+0.08+0.05)
	require.True(t, dashboard.Composite.Known)
	assert.InDelta(t, -0.295, dashboard.Composite.Value, 0.0001)

	// margin and intrinsic are shared with the compact blend
	assert.Equal(t, compact.IntrinsicValue, dashboard.IntrinsicValue)
	assert.Equal(t, compact.MarginOfSafety, dashboard.MarginOfSafety)
}

func TestBlendDashboardComposite(t *testing.T) {
	result := singleModel(ModelGraham, 110)
	price := models.NewField(100)
	card := models.Scorecard{Moat: 0.5, Quality: 0.4, Predictability: 0.3, Management: 0.2, Risk: 0.1}

	rec := BlendDashboard(result, price, card, 0.15, 0.2, nil)

	require.True(t, rec.Composite.Known)
	expected := 0.1*0.45 + 0.5*0.12 + 0.4*0.15 + 0.3*0.12 + 0.2*0.08 + 0.1*0.05 + 0.2*0.03
	assert.InDelta(t, expected, rec.Composite.Value, 0.0001)
	assert.Equal(t, models.LabelBuy, rec.Label)
	assert.InDelta(t, 0.15, rec.QualityScore, 0.0001)
}

func TestBlendDashboardLabelCutPoints(t *testing.T) {
	tests := []struct {
		composite float64
		label     string
	}{
		{composite: 0.28, label: models.LabelStrongBuy},
		{composite: 0.27, label: models.LabelBuy},
		{composite: 0.12, label: models.LabelBuy},
		{composite: 0.11, label: models.LabelHold},
		{composite: -0.03, label: models.LabelHold},
		{composite: -0.04, label: models.LabelReduce},
		{composite: -0.15, label: models.LabelSell},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.label, dashboardLabelFor(tt.composite), "composite %.2f", tt.composite)
	}
}

func TestBlendDashboardInsufficientData(t *testing.T) {
	card := models.Scorecard{Moat: 1, Quality: 1, Predictability: 1, Management: 1, Risk: 1}

	rec := BlendDashboard(models.ValuationResult{}, models.NewField(100), card, 0.2, 0.5, nil)
	assert.Equal(t, models.LabelInsufficientData, rec.Label)
	assert.False(t, rec.Composite.Known)

	rec = BlendDashboard(singleModel(ModelGraham, 120), models.Unknown(), card, 0.2, 0.5, nil)
	assert.Equal(t, models.LabelInsufficientData, rec.Label)
}

func TestBlendQualityPreserved(t *testing.T) {
	rec := Blend(models.ValuationResult{}, models.Unknown(), 0.33, 0.0, nil)
	assert.Equal(t, models.LabelInsufficientData, rec.Label)
	assert.InDelta(t, 0.33, rec.QualityScore, 0.0001)
}
