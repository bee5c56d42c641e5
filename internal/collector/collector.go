package collector

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/options"
	"github.com/shopspring/decimal"

	"github.com/kosuri18/stock-screener/pkg/types"
)

// Defaults for the collection window and retry policy.
const (
	DefaultHistoryDays = 365
	DefaultMaxRetries  = 3
	DefaultNewsLimit   = 10
)

// ErrNoData reports an empty price series for a ticker.
var ErrNoData = errors.New("no market data returned")

// Collector fetches price history, the options chain and recent headlines
// for a ticker from Yahoo Finance.
type Collector struct {
	historyDays int
	maxRetries  uint64
	news        *newsClient
}

// New creates a collector. Non-positive arguments fall back to defaults.
func New(historyDays, maxRetries, newsLimit int) *Collector {
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if newsLimit <= 0 {
		newsLimit = DefaultNewsLimit
	}
	return &Collector{
		historyDays: historyDays,
		maxRetries:  uint64(maxRetries),
		news:        newNewsClient(newsLimit),
	}
}

// Collect gathers everything the pipeline needs for one ticker. Price
// history is mandatory; options and news are best effort since thinly
// traded tickers may have neither.
func (c *Collector) Collect(ticker string) (*types.MarketData, error) {
	bars, err := c.fetchBars(ticker)
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", ticker, err)
	}

	md := &types.MarketData{
		Ticker: ticker,
		Bars:   bars,
	}

	if chain, err := c.fetchOptions(ticker); err != nil {
		log.Printf("No options chain for %s: %v", ticker, err)
	} else {
		md.Options = chain
	}

	if news, err := c.news.fetch(ticker); err != nil {
		log.Printf("No news for %s: %v", ticker, err)
	} else {
		md.News = news
	}

	return md, nil
}

// fetchBars pulls daily candles for the configured window, retrying
// transient failures with exponential backoff.
func (c *Collector) fetchBars(ticker string) ([]types.Bar, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -c.historyDays)

	var bars []types.Bar
	operation := func() error {
		params := &chart.Params{
			Symbol:   ticker,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)
		fetched := make([]types.Bar, 0, c.historyDays)
		for iter.Next() {
			b := iter.Bar()
			fetched = append(fetched, types.Bar{
				Open:      price(b.Open),
				High:      price(b.High),
				Low:       price(b.Low),
				Close:     price(b.Close),
				Volume:    float64(b.Volume),
				Timestamp: time.Unix(int64(b.Timestamp), 0),
			})
		}
		if err := iter.Err(); err != nil {
			return err
		}
		bars = fetched
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries)); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return bars, nil
}

// fetchOptions pulls the full straddle chain and splits it into calls and
// puts.
func (c *Collector) fetchOptions(ticker string) (*types.OptionChain, error) {
	chainOut := &types.OptionChain{Underlying: ticker}

	operation := func() error {
		iter := options.GetStraddle(ticker)
		calls := make([]types.OptionContract, 0, 64)
		puts := make([]types.OptionContract, 0, 64)

		for iter.Next() {
			s := iter.Straddle()
			if s.Call != nil {
				calls = append(calls, contractFrom(s.Call))
			}
			if s.Put != nil {
				puts = append(puts, contractFrom(s.Put))
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}

		chainOut.Calls = calls
		chainOut.Puts = puts
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries)); err != nil {
		return nil, err
	}
	if len(chainOut.Calls) == 0 && len(chainOut.Puts) == 0 {
		return nil, ErrNoData
	}
	return chainOut, nil
}

// price converts a quote decimal to float64, dropping exactness. Chart
// responses use decimals to avoid float drift on the wire.
func price(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func contractFrom(c *finance.Contract) types.OptionContract {
	return types.OptionContract{
		Symbol:            c.Symbol,
		Strike:            c.Strike,
		LastPrice:         c.LastPrice,
		Bid:               c.Bid,
		Ask:               c.Ask,
		Volume:            c.Volume,
		OpenInterest:      c.OpenInterest,
		ImpliedVolatility: c.ImpliedVolatility,
		Expiration:        time.Unix(int64(c.Expiration), 0),
	}
}
