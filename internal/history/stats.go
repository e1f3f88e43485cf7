// Package history computes trend and volatility statistics from price bars
package history

import (
	"math"

	"github.com/valorlabs/valor/internal/models"
)

// MinMonths is the minimum usable monthly closes required before any
// statistic is reported. Below this every field is unknown.
const MinMonths = 24

// Compute derives CAGR, max drawdown, monthly volatility and the
// positive-month ratio from chronological monthly bars. Non-positive
// closes are dropped before computing.
func Compute(bars []models.EODBar) models.HistoryStats {
	closes := make([]float64, 0, len(bars))
	for _, bar := range bars {
		if bar.Close > 0 && !math.IsNaN(bar.Close) && !math.IsInf(bar.Close, 0) {
			closes = append(closes, bar.Close)
		}
	}

	stats := models.HistoryStats{Months: len(closes)}
	if len(closes) < MinMonths {
		return stats
	}

	stats.CAGR = cagr(closes)
	stats.MaxDrawdown = models.NewField(maxDrawdown(closes))

	returns, positive := monthlyReturns(closes)
	if len(returns) > 0 {
		stats.Volatility = models.NewField(pstdev(returns))
		stats.PositiveMonthRatio = models.NewField(float64(positive) / float64(len(returns)))
	}

	return stats
}

// cagr computes the compound annual growth rate over the series span,
// treating each close as one month.
func cagr(closes []float64) models.Field {
	first := closes[0]
	last := closes[len(closes)-1]
	if first <= 0 || last <= 0 {
		return models.Unknown()
	}
	years := float64(len(closes)) / 12.0
	return models.NewField(math.Pow(last/first, 1.0/years) - 1.0)
}

// maxDrawdown returns the deepest peak-to-trough decline, <= 0.
func maxDrawdown(closes []float64) float64 {
	peak := closes[0]
	worst := 0.0
	for _, price := range closes {
		if price > peak {
			peak = price
		}
		if peak > 0 {
			dd := (price - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

// monthlyReturns computes month-over-month returns and the count of
// positive months.
func monthlyReturns(closes []float64) ([]float64, int) {
	returns := make([]float64, 0, len(closes)-1)
	positive := 0
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev <= 0 {
			continue
		}
		ret := closes[i]/prev - 1.0
		returns = append(returns, ret)
		if ret > 0 {
			positive++
		}
	}
	return returns, positive
}

// pstdev is the population standard deviation.
func pstdev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
