// Package yahoo provides a fallback last-price client backed by the
// public Yahoo Finance quote API.
package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/piquette/finance-go/quote"

	"github.com/valorlabs/valor/internal/common"
	"github.com/valorlabs/valor/internal/interfaces"
	"github.com/valorlabs/valor/internal/models"
)

// Client implements the QuoteFallbackClient interface
type Client struct {
	logger *common.Logger
}

// NewClient creates a new Yahoo fallback client
func NewClient(logger *common.Logger) *Client {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Client{logger: logger}
}

// GetQuote retrieves a last-price snapshot. The finance-go quote API has
// no context support; the ctx error is checked before the call so a
// cancelled pipeline doesn't issue a pointless request.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := quote.Get(ticker)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote for %s: %w", ticker, err)
	}
	if q == nil {
		return nil, fmt.Errorf("yahoo quote for %s: empty response", ticker)
	}

	c.logger.Debug().Str("ticker", ticker).Float64("price", q.RegularMarketPrice).Msg("Yahoo quote")

	return &models.Quote{
		Ticker:        ticker,
		Last:          q.RegularMarketPrice,
		Open:          q.RegularMarketOpen,
		High:          q.RegularMarketDayHigh,
		Low:           q.RegularMarketDayLow,
		Close:         q.RegularMarketPrice,
		PreviousClose: q.RegularMarketPreviousClose,
		Bid:           q.Bid,
		Ask:           q.Ask,
		Volume:        int64(q.RegularMarketVolume),
		Timestamp:     time.Unix(int64(q.RegularMarketTime), 0).UTC(),
		Source:        "yahoo",
	}, nil
}

// Ensure Client implements QuoteFallbackClient
var _ interfaces.QuoteFallbackClient = (*Client)(nil)
