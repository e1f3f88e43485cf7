package analyze

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valorlabs/valor/internal/common"
	"github.com/valorlabs/valor/internal/interfaces"
	"github.com/valorlabs/valor/internal/models"
	"github.com/valorlabs/valor/internal/valuation"
)

type fakeQuotes struct {
	quote *models.Quote
	err   error
}

func (f *fakeQuotes) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	return f.quote, f.err
}

type fakeMarket struct {
	fundamentals *models.FundamentalsPayload
	fundErr      error
	bars         []models.EODBar
	histErr      error
	news         []models.NewsItem
	newsErr      error

	newsLimit  int
	histParams interfaces.HistoryParams
	histCalled bool
}

func (f *fakeMarket) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	return nil, errors.New("not used")
}

func (f *fakeMarket) GetFundamentals(ctx context.Context, ticker string) (*models.FundamentalsPayload, error) {
	return f.fundamentals, f.fundErr
}

func (f *fakeMarket) GetHistory(ctx context.Context, ticker string, opts ...interfaces.HistoryOption) ([]models.EODBar, error) {
	f.histCalled = true
	for _, opt := range opts {
		opt(&f.histParams)
	}
	return f.bars, f.histErr
}

func (f *fakeMarket) GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error) {
	f.newsLimit = limit
	return f.news, f.newsErr
}

func monthlyBars(n int, start float64, monthlyGrowth float64) []models.EODBar {
	bars := make([]models.EODBar, n)
	price := start
	base := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.EODBar{Date: base.AddDate(0, i, 0), Close: price}
		price *= 1 + monthlyGrowth
	}
	return bars
}

func newTestService(quotes *fakeQuotes, market *fakeMarket) *Service {
	return NewService(quotes, market, nil, common.NewSilentLogger())
}

func TestAnalyzeEmptyTicker(t *testing.T) {
	svc := newTestService(&fakeQuotes{}, &fakeMarket{})
	report, err := svc.Analyze(context.Background(), "", models.AnalyzeOptions{})
	require.Error(t, err)
	assert.Nil(t, report)
}

func TestAnalyzeFullPipeline(t *testing.T) {
	quotes := &fakeQuotes{quote: &models.Quote{
		Ticker: "AAPL", Last: 100, Timestamp: time.Now(), Source: "eodhd",
	}}
	market := &fakeMarket{
		fundamentals: &models.FundamentalsPayload{Raw: map[string]any{
			"EPS":               6.0,
			"BookValuePerShare": 45.0,
			"TTMROEPCT":         22.0,
		}},
		bars: monthlyBars(60, 50, 0.01),
		news: []models.NewsItem{
			{Title: "Record profit and strong growth"},
			{Title: "Earnings beat expectations"},
		},
	}
	svc := newTestService(quotes, market)

	report, err := svc.Analyze(context.Background(), "AAPL", models.AnalyzeOptions{})

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "AAPL", report.Ticker)
	assert.False(t, report.GeneratedAt.IsZero())

	require.True(t, report.Price.Known)
	assert.InDelta(t, 100, report.Price.Value, 0.001)
	assert.Equal(t, "eodhd", report.PriceSource)

	require.True(t, report.Snapshot.EPS.Known)
	assert.InDelta(t, 6.0, report.Snapshot.EPS.Value, 0.001)
	require.True(t, report.Snapshot.ROE.Known)
	assert.InDelta(t, 0.22, report.Snapshot.ROE.Value, 0.001, "whole percent normalized")

	assert.True(t, report.History.CAGR.Known)
	assert.Equal(t, 60, report.History.Months)

	assert.Equal(t, 2, report.NewsCount)
	assert.InDelta(t, 1.0, report.Sentiment.Score, 0.001)

	assert.Len(t, report.Valuation.Models, 4)
	assert.True(t, report.Valuation.GrahamNumber.Known)
	assert.NotEqual(t, models.LabelInsufficientData, report.Recommendation.Label)
	assert.True(t, report.Recommendation.MarginOfSafety.Known)
}

func TestAnalyzeHistoryRequest(t *testing.T) {
	market := &fakeMarket{bars: monthlyBars(36, 80, 0)}
	svc := newTestService(&fakeQuotes{err: errors.New("down")}, market)

	_, err := svc.Analyze(context.Background(), "MSFT", models.AnalyzeOptions{Years: 7, NewsItems: 5})

	require.NoError(t, err)
	require.True(t, market.histCalled)
	assert.Equal(t, "m", market.histParams.Period)
	span := market.histParams.To.Sub(market.histParams.From)
	assert.InDelta(t, 7*365, span.Hours()/24, 5, "date range covers the requested years")
	assert.Equal(t, 5, market.newsLimit)
}

func TestAnalyzeOptionDefaults(t *testing.T) {
	market := &fakeMarket{}
	svc := newTestService(&fakeQuotes{err: errors.New("down")}, market)

	_, err := svc.Analyze(context.Background(), "MSFT", models.AnalyzeOptions{})

	require.NoError(t, err)
	assert.Equal(t, 12, market.newsLimit, "news limit defaults when unset")
}

func TestAnalyzeAllFetchesFail(t *testing.T) {
	quotes := &fakeQuotes{err: errors.New("quote down")}
	market := &fakeMarket{
		fundErr: errors.New("fundamentals down"),
		histErr: errors.New("history down"),
		newsErr: errors.New("news down"),
	}
	svc := newTestService(quotes, market)

	report, err := svc.Analyze(context.Background(), "AAPL", models.AnalyzeOptions{})

	require.NoError(t, err, "fetch failures degrade, never abort")
	require.NotNil(t, report)
	assert.False(t, report.Price.Known)
	assert.False(t, report.Snapshot.EPS.Known)
	assert.False(t, report.History.CAGR.Known)
	assert.Equal(t, 0.0, report.Sentiment.Score)
	assert.True(t, report.Valuation.Empty())
	assert.Equal(t, models.LabelInsufficientData, report.Recommendation.Label)
	assert.False(t, report.Recommendation.MarginOfSafety.Known)
}

func TestAnalyzePartialFundamentals(t *testing.T) {
	quotes := &fakeQuotes{quote: &models.Quote{Ticker: "BRK", Last: 50, Timestamp: time.Now()}}
	market := &fakeMarket{
		// BVPS only: the book anchor model still runs
		fundamentals: &models.FundamentalsPayload{Raw: map[string]any{"QBVPS": 40.0}},
	}
	svc := newTestService(quotes, market)

	report, err := svc.Analyze(context.Background(), "BRK", models.AnalyzeOptions{})

	require.NoError(t, err)
	require.Len(t, report.Valuation.Models, 1)
	assert.Equal(t, valuation.ModelBookAnchor, report.Valuation.Models[0].Name)
	assert.NotEqual(t, models.LabelInsufficientData, report.Recommendation.Label)
}

func TestAnalyzeScorecardOnlyWhenRequested(t *testing.T) {
	quotes := &fakeQuotes{quote: &models.Quote{Ticker: "AAPL", Last: 100, Timestamp: time.Now()}}
	payload := &models.FundamentalsPayload{Raw: map[string]any{
		"EPS":       6.0,
		"TTMROEPCT": 25.0,
	}}

	withCard, err := newTestService(quotes, &fakeMarket{fundamentals: payload}).
		Analyze(context.Background(), "AAPL", models.AnalyzeOptions{Scorecard: true})
	require.NoError(t, err)
	assert.NotEqual(t, 0.0, withCard.Scorecard.Quality)

	withoutCard, err := newTestService(quotes, &fakeMarket{fundamentals: payload}).
		Analyze(context.Background(), "AAPL", models.AnalyzeOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.Scorecard{}, withoutCard.Scorecard)
}

func TestAnalyzeDashboardBlendUsesScorecard(t *testing.T) {
	quotes := &fakeQuotes{quote: &models.Quote{Ticker: "AAPL", Last: 100, Timestamp: time.Now()}}
	payload := &models.FundamentalsPayload{Raw: map[string]any{
		"EPS":               6.0,
		"BookValuePerShare": 45.0,
		"TTMROEPCT":         25.0,
		"TotalDebtToEquity": 0.4,
	}}

	dashboard, err := newTestService(quotes, &fakeMarket{fundamentals: payload}).
		Analyze(context.Background(), "AAPL", models.AnalyzeOptions{Scorecard: true})
	require.NoError(t, err)

	compact, err := newTestService(quotes, &fakeMarket{fundamentals: payload}).
		Analyze(context.Background(), "AAPL", models.AnalyzeOptions{})
	require.NoError(t, err)

	require.True(t, dashboard.Recommendation.Composite.Known)
	require.True(t, compact.Recommendation.Composite.Known)
	assert.NotEqual(t, compact.Recommendation.Composite.Value, dashboard.Recommendation.Composite.Value,
		"dashboard composite weighs the scorecard axes")

	quality := valuation.QualityScore(dashboard.Snapshot)
	expected := valuation.BlendDashboard(dashboard.Valuation, dashboard.Price, dashboard.Scorecard, quality, dashboard.Sentiment.Score, nil)
	assert.Equal(t, expected, dashboard.Recommendation)

	// the compact run still uses the compact blend
	expectedCompact := valuation.Blend(compact.Valuation, compact.Price, quality, compact.Sentiment.Score, nil)
	assert.Equal(t, expectedCompact, compact.Recommendation)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	quotes := &fakeQuotes{err: ctx.Err()}
	svc := newTestService(quotes, &fakeMarket{})

	report, err := svc.Analyze(ctx, "AAPL", models.AnalyzeOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}
