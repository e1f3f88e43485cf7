package valuation

import (
	"github.com/valorlabs/valor/internal/models"
)

// ToScore linearly rescales v from [low, high] onto [-1, 1], clamped.
func ToScore(v, low, high float64) float64 {
	if high <= low {
		return 0.0
	}
	scaled := (v - low) / (high - low)
	return clamp(scaled*2.0-1.0, -1.0, 1.0)
}

// ComputeScorecard derives the mental-model scores from fundamentals,
// history statistics and news signals. Unknown inputs contribute nothing
// to their score rather than dragging it down.
func ComputeScorecard(in Inputs, sentiment models.SentimentResult) models.Scorecard {
	s := in.Snapshot
	h := in.History

	return models.Scorecard{
		Moat:           scoreMoat(s),
		Quality:        scoreQuality(s),
		Predictability: scorePredictability(h),
		Management:     scoreManagement(s, sentiment.Score),
		Risk:           scoreRisk(s, h, sentiment.RedFlagHits),
	}
}

func scoreMoat(s models.FundamentalSnapshot) float64 {
	score := 0.0
	if s.GrossMargin.Known {
		score += ToScore(s.GrossMargin.Value, 0.20, 0.60) * 0.30
	}
	if s.OperatingMargin.Known {
		score += ToScore(s.OperatingMargin.Value, 0.07, 0.30) * 0.35
	}
	if s.ROE.Known {
		score += ToScore(s.ROE.Value, 0.08, 0.25) * 0.35
	}
	return clamp(score, -1.0, 1.0)
}

func scoreQuality(s models.FundamentalSnapshot) float64 {
	score := 0.0
	if s.ROE.Known {
		score += ToScore(s.ROE.Value, 0.08, 0.22) * 0.30
	}
	if s.ROIC.Known {
		score += ToScore(s.ROIC.Value, 0.07, 0.20) * 0.30
	}
	if s.DebtToEquity.Known {
		score += ToScore(1.5-s.DebtToEquity.Value, 0.0, 1.3) * 0.20
	}
	if s.CurrentRatio.Known {
		score += ToScore(s.CurrentRatio.Value, 1.0, 2.2) * 0.10
	}
	if s.InterestCoverage.Known {
		score += ToScore(s.InterestCoverage.Value, 2.0, 10.0) * 0.10
	}
	return clamp(score, -1.0, 1.0)
}

func scorePredictability(h models.HistoryStats) float64 {
	score := 0.0
	if h.CAGR.Known {
		score += ToScore(h.CAGR.Value, 0.02, 0.15) * 0.35
	}
	if h.MaxDrawdown.Known {
		score += ToScore(-h.MaxDrawdown.Value, 0.15, 0.55) * 0.25
	}
	if h.Volatility.Known {
		score += ToScore(0.20-h.Volatility.Value, -0.05, 0.16) * 0.20
	}
	if h.PositiveMonthRatio.Known {
		score += ToScore(h.PositiveMonthRatio.Value, 0.45, 0.70) * 0.20
	}
	return clamp(score, -1.0, 1.0)
}

func scoreManagement(s models.FundamentalSnapshot, sentiment float64) float64 {
	score := 0.0
	if s.ROIC.Known {
		score += ToScore(s.ROIC.Value, 0.07, 0.18) * 0.40
	}
	if s.DividendYield.Known {
		score += ToScore(s.DividendYield.Value, 0.0, 0.04) * 0.10
	}
	if s.DebtToEquity.Known {
		score += ToScore(1.2-s.DebtToEquity.Value, 0.0, 1.0) * 0.25
	}
	score += sentiment * 0.25
	return clamp(score, -1.0, 1.0)
}

func scoreRisk(s models.FundamentalSnapshot, h models.HistoryStats, redFlags int) float64 {
	score := 0.0
	if redFlags > 0 {
		score -= clamp(float64(redFlags)/30.0, 0.0, 0.4)
	}
	if s.DebtToEquity.Known {
		score += ToScore(1.4-s.DebtToEquity.Value, -0.8, 1.2) * 0.35
	}
	if h.MaxDrawdown.Known {
		score += ToScore(-h.MaxDrawdown.Value, 0.10, 0.55) * 0.25
	}
	return clamp(score, -1.0, 1.0)
}

// QualityScore is the compact quality measure used by the recommendation
// composite, bounded [-0.5, 0.5].
func QualityScore(s models.FundamentalSnapshot) float64 {
	score := 0.0
	if s.ROE.Known {
		score += clamp((s.ROE.Value-0.10)*1.5, -0.2, 0.25)
	}
	if s.DebtToEquity.Known {
		score += clamp((1.0-s.DebtToEquity.Value)*0.12, -0.2, 0.2)
	}
	if s.PE.Positive() {
		score += clamp((18.0-s.PE.Value)*0.01, -0.12, 0.12)
	}
	if s.PB.Positive() {
		score += clamp((2.0-s.PB.Value)*0.04, -0.08, 0.08)
	}
	if s.DividendYield.Known {
		score += clamp(s.DividendYield.Value*0.5, 0.0, 0.05)
	}
	return clamp(score, -0.5, 0.5)
}
