// Package interfaces defines client and service contracts for Valor
package interfaces

import (
	"context"
	"time"

	"github.com/valorlabs/valor/internal/models"
)

// MarketDataClient provides access to the primary market data vendor.
// Every operation may return partial or missing data; callers treat a
// failed call as unknown input, never as a fatal condition.
type MarketDataClient interface {
	// GetQuote retrieves a last-price snapshot
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)

	// GetFundamentals retrieves the raw fundamentals document
	GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalsPayload, error)

	// GetHistory retrieves price bars, chronological ascending
	GetHistory(ctx context.Context, ticker string, opts ...HistoryOption) ([]models.EODBar, error)

	// GetNews retrieves recent headlines with optional article bodies
	GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error)
}

// QuoteFallbackClient provides a secondary last-price source used when the
// primary vendor fails or returns stale data.
type QuoteFallbackClient interface {
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)
}

// HistoryOption configures history requests
type HistoryOption func(*HistoryParams)

// HistoryParams holds history query parameters
type HistoryParams struct {
	From   time.Time
	To     time.Time
	Period string // d=daily, w=weekly, m=monthly
}

// WithDateRange sets the date range for a history query
func WithDateRange(from, to time.Time) HistoryOption {
	return func(p *HistoryParams) {
		p.From = from
		p.To = to
	}
}

// WithPeriod sets the bar period for a history query
func WithPeriod(period string) HistoryOption {
	return func(p *HistoryParams) {
		p.Period = period
	}
}
