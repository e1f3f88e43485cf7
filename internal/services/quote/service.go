// Package quote provides a last-price service with automatic fallback
package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/valorlabs/valor/internal/common"
	"github.com/valorlabs/valor/internal/interfaces"
	"github.com/valorlabs/valor/internal/models"
)

// StalenessThreshold is the age beyond which a primary-vendor quote is
// considered stale enough to attempt the fallback source. Generous enough
// to tolerate normal end-of-day delay without flapping between sources.
var StalenessThreshold = 24 * time.Hour

// Service implements QuoteService with a primary vendor and an optional
// fallback source.
type Service struct {
	primary  interfaces.MarketDataClient
	fallback interfaces.QuoteFallbackClient
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates a new quote service.
// fallback may be nil, fallback is then skipped.
func NewService(primary interfaces.MarketDataClient, fallback interfaces.QuoteFallbackClient, logger *common.Logger) *Service {
	return &Service{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// GetQuote retrieves a quote from the primary vendor, falling back when
// the primary fails, returns no usable price, or is stale.
func (s *Service) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	primaryQuote, primaryErr := s.primary.GetQuote(ctx, ticker)

	usable := primaryErr == nil && primaryQuote != nil && primaryQuote.Price().Known
	if usable && !s.isStale(primaryQuote.Timestamp) {
		return primaryQuote, nil
	}

	if s.fallback == nil {
		if primaryErr != nil {
			return nil, primaryErr
		}
		if !usable {
			return nil, fmt.Errorf("no usable price for %s", ticker)
		}
		return primaryQuote, nil // stale but the only source we have
	}

	s.logger.Info().
		Str("ticker", ticker).
		Bool("primary_failed", primaryErr != nil).
		Msg("Attempting fallback quote source")

	fallbackQuote, fallbackErr := s.fallback.GetQuote(ctx, ticker)
	if fallbackErr != nil || fallbackQuote == nil || !fallbackQuote.Price().Known {
		s.logger.Warn().Err(fallbackErr).Str("ticker", ticker).Msg("Fallback quote failed")
		// Return whatever the primary produced, or propagate its error
		if usable {
			return primaryQuote, nil
		}
		if primaryErr != nil {
			return nil, primaryErr
		}
		return nil, fmt.Errorf("no usable price for %s", ticker)
	}

	s.logger.Info().
		Str("ticker", ticker).
		Str("source", fallbackQuote.Source).
		Float64("price", fallbackQuote.Price().Value).
		Msg("Fallback quote succeeded")

	return fallbackQuote, nil
}

// isStale returns true when the quote timestamp is older than StalenessThreshold.
func (s *Service) isStale(ts time.Time) bool {
	if ts.IsZero() {
		return true
	}
	return s.now().Sub(ts) > StalenessThreshold
}

// Ensure Service implements QuoteService
var _ interfaces.QuoteService = (*Service)(nil)
