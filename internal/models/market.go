// Package models defines data structures for Valor
package models

import (
	"time"
)

// Quote holds a last-price snapshot from a market data source
type Quote struct {
	Ticker        string    `json:"ticker"`
	Last          float64   `json:"last"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	PreviousClose float64   `json:"previous_close"`
	Bid           float64   `json:"bid"`
	Ask           float64   `json:"ask"`
	Volume        int64     `json:"volume"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source,omitempty"` // "eodhd" or "yahoo"
}

// Price returns the first finite positive candidate price in preference
// order: last, close, previous close, bid, ask. Returns an unknown Field
// when no candidate qualifies.
func (q *Quote) Price() Field {
	if q == nil {
		return Unknown()
	}
	for _, candidate := range []float64{q.Last, q.Close, q.PreviousClose, q.Bid, q.Ask} {
		if f := NewField(candidate); f.Known && f.Value > 0 {
			return f
		}
	}
	return Unknown()
}

// EODBar represents a single period's price data, chronological ascending
// when held in a series.
type EODBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// NewsItem represents a news article headline with optional body text
type NewsItem struct {
	Title       string    `json:"title"`
	Content     string    `json:"content,omitempty"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// FundamentalsPayload is the semi-structured fundamentals document returned
// by a vendor, before field-name normalization. Keys and nesting vary by
// vendor; the parser flattens and normalizes it.
type FundamentalsPayload struct {
	// Raw holds a decoded JSON document (nested maps of section -> field -> value).
	Raw map[string]any `json:"raw,omitempty"`
	// XML holds an IB-style ReportSnapshot XML document.
	XML string `json:"xml,omitempty"`
}

// HistoryStats holds trend and volatility statistics derived from a
// monthly close series. All fields are unknown when the series is too
// short (< 24 usable closes).
type HistoryStats struct {
	CAGR               Field `json:"cagr"`
	MaxDrawdown        Field `json:"max_drawdown"` // peak-to-trough, <= 0
	Volatility         Field `json:"volatility"`   // population stdev of monthly returns
	PositiveMonthRatio Field `json:"positive_month_ratio"`
	Months             int   `json:"months"` // usable closes in the series
}
