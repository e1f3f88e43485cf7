package models

import (
	"time"
)

// FundamentalSnapshot holds the fixed set of parsed financial fields for
// one ticker. Ratio-like fields (ROE, margins, dividend yield) are stored
// as fractions, not percentages. Read-only after parsing.
type FundamentalSnapshot struct {
	EPS              Field `json:"eps"`
	BVPS             Field `json:"bvps"`
	PE               Field `json:"pe"`
	PB               Field `json:"pb"`
	ROE              Field `json:"roe"`
	ROIC             Field `json:"roic"`
	GrossMargin      Field `json:"gross_margin"`
	OperatingMargin  Field `json:"operating_margin"`
	NetMargin        Field `json:"net_margin"`
	DebtToEquity     Field `json:"debt_to_equity"`
	CurrentRatio     Field `json:"current_ratio"`
	InterestCoverage Field `json:"interest_coverage"`
	DividendYield    Field `json:"dividend_yield"`
}

// SentimentResult is the output of keyword sentiment scoring over a news set
type SentimentResult struct {
	Score        float64 `json:"score"` // bounded [-1, 1]
	ItemsScored  int     `json:"items_scored"`
	PositiveHits int     `json:"positive_hits"`
	NegativeHits int     `json:"negative_hits"`
	RedFlagHits  int     `json:"red_flag_hits"`
}

// ModelValue is one valuation model's intrinsic value estimate
type ModelValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ValuationResult is the set of per-model estimates for models whose
// required inputs were available. Enumeration order is stable (the
// engine's table order). Empty is a valid result.
type ValuationResult struct {
	Models []ModelValue `json:"models"`
	// GrahamNumber is the classic sqrt(22.5*EPS*BVPS) reference figure,
	// reported alongside the blended models when computable.
	GrahamNumber Field `json:"graham_number"`
	// GrowthUsed is the clamped growth input shared by the models.
	GrowthUsed float64 `json:"growth_used"`
}

// Value returns the named model's estimate, unknown when the model was skipped.
func (v ValuationResult) Value(name string) Field {
	for _, m := range v.Models {
		if m.Name == name {
			return NewField(m.Value)
		}
	}
	return Unknown()
}

// Empty reports whether every model was skipped.
func (v ValuationResult) Empty() bool {
	return len(v.Models) == 0
}

// Scorecard holds the Munger-style mental-model scores, each in [-1, 1]
type Scorecard struct {
	Moat           float64 `json:"moat"`
	Quality        float64 `json:"quality"`
	Predictability float64 `json:"predictability"`
	Management     float64 `json:"management"`
	Risk           float64 `json:"risk"`
}

// Recommendation labels, from most to least favourable
const (
	LabelStrongBuy        = "strong_buy"
	LabelBuy              = "buy"
	LabelHold             = "hold"
	LabelReduce           = "reduce"
	LabelSell             = "sell"
	LabelInsufficientData = "insufficient_data"
)

// Recommendation is the blended output for one ticker. IntrinsicValue and
// MarginOfSafety are unknown when no valuation model could run.
type Recommendation struct {
	IntrinsicValue Field   `json:"intrinsic_value"`
	MarginOfSafety Field   `json:"margin_of_safety"` // (intrinsic - price) / price
	Composite      Field   `json:"composite"`
	Label          string  `json:"label"`
	QualityScore   float64 `json:"quality_score"` // [-0.5, 0.5]
}

// TickerReport is the full result of one pipeline run. Derived, never persisted.
type TickerReport struct {
	ID             string              `json:"id"`
	Ticker         string              `json:"ticker"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Price          Field               `json:"price"`
	PriceSource    string              `json:"price_source,omitempty"`
	Snapshot       FundamentalSnapshot `json:"snapshot"`
	History        HistoryStats        `json:"history"`
	Sentiment      SentimentResult     `json:"sentiment"`
	Valuation      ValuationResult     `json:"valuation"`
	Scorecard      Scorecard           `json:"scorecard"`
	Recommendation Recommendation      `json:"recommendation"`
	NewsCount      int                 `json:"news_count"`
}
