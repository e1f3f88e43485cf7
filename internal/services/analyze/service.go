// Package analyze orchestrates the single-ticker valuation pipeline:
// fetch, parse, score, value, blend. One pass per ticker, no state
// retained between runs.
package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/valorlabs/valor/internal/common"
	"github.com/valorlabs/valor/internal/fundamentals"
	"github.com/valorlabs/valor/internal/history"
	"github.com/valorlabs/valor/internal/interfaces"
	"github.com/valorlabs/valor/internal/models"
	"github.com/valorlabs/valor/internal/sentiment"
	"github.com/valorlabs/valor/internal/valuation"
)

// Service implements AnalyzeService
type Service struct {
	quotes       interfaces.QuoteService
	market       interfaces.MarketDataClient
	modelWeights map[string]float64
	logger       *common.Logger
	now          func() time.Time
}

// NewService creates a new analyze service. modelWeights may be nil to
// use the engine defaults.
func NewService(quotes interfaces.QuoteService, market interfaces.MarketDataClient, modelWeights map[string]float64, logger *common.Logger) *Service {
	return &Service{
		quotes:       quotes,
		market:       market,
		modelWeights: modelWeights,
		logger:       logger,
		now:          time.Now,
	}
}

// Analyze runs the pipeline for one ticker. Every fetch is optional: a
// failure is logged and the corresponding inputs stay unknown. The only
// errors returned are an empty ticker and context cancellation; anything
// softer degrades to an insufficient_data recommendation.
func (s *Service) Analyze(ctx context.Context, ticker string, opts models.AnalyzeOptions) (*models.TickerReport, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker is required")
	}
	opts = opts.Clamp()

	report := &models.TickerReport{
		ID:          uuid.NewString(),
		Ticker:      ticker,
		GeneratedAt: s.now(),
	}

	// Price
	if q, err := s.quotes.GetQuote(ctx, ticker); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Quote unavailable, proceeding without price")
	} else {
		report.Price = q.Price()
		report.PriceSource = q.Source
	}

	// Fundamentals
	if payload, err := s.market.GetFundamentals(ctx, ticker); err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("Fundamentals unavailable, fields stay unknown")
	} else {
		report.Snapshot = fundamentals.Parse(payload)
	}

	// History: monthly bars across the requested span
	from := s.now().AddDate(-opts.Years, 0, 0)
	bars, err := s.market.GetHistory(ctx, ticker,
		interfaces.WithPeriod("m"),
		interfaces.WithDateRange(from, s.now()),
	)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("History unavailable, trend stats stay unknown")
	}
	report.History = history.Compute(bars)

	// News
	news, err := s.market.GetNews(ctx, ticker, opts.NewsItems)
	if err != nil {
		s.logger.Warn().Str("ticker", ticker).Err(err).Msg("News unavailable, sentiment neutral")
	}
	report.NewsCount = len(news)
	report.Sentiment = sentiment.Score(news)

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Valuation and blend: pure computation from here on
	inputs := valuation.Inputs{
		Snapshot:  report.Snapshot,
		History:   report.History,
		Sentiment: report.Sentiment.Score,
	}
	report.Valuation = valuation.Compute(inputs)

	quality := valuation.QualityScore(report.Snapshot)
	if opts.Scorecard {
		report.Scorecard = valuation.ComputeScorecard(inputs, report.Sentiment)
		report.Recommendation = valuation.BlendDashboard(report.Valuation, report.Price, report.Scorecard, quality, report.Sentiment.Score, s.modelWeights)
	} else {
		report.Recommendation = valuation.Blend(report.Valuation, report.Price, quality, report.Sentiment.Score, s.modelWeights)
	}

	s.logger.Info().
		Str("ticker", ticker).
		Int("models", len(report.Valuation.Models)).
		Str("label", report.Recommendation.Label).
		Msg("Analysis complete")

	return report, nil
}

// Ensure Service implements AnalyzeService
var _ interfaces.AnalyzeService = (*Service)(nil)
