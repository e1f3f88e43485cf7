package interfaces

import (
	"context"

	"github.com/valorlabs/valor/internal/models"
)

// QuoteService resolves a usable last price with automatic fallback
type QuoteService interface {
	// GetQuote retrieves a quote from the primary vendor, falling back to
	// the secondary source when the primary result is unusable or stale.
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)
}

// AnalyzeService runs the single-ticker valuation pipeline
type AnalyzeService interface {
	// Analyze fetches all inputs for the ticker and produces a report.
	// Fetch failures degrade to unknown inputs; the worst outcome is a
	// report with an insufficient_data recommendation.
	Analyze(ctx context.Context, ticker string, opts models.AnalyzeOptions) (*models.TickerReport, error)
}
