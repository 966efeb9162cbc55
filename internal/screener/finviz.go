package screener

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"TrinityScanner/internal/model"
)

// Finviz serves 20 result rows per page.
const finvizPageSize = 20

// Hard cap on pages per exchange; the under-ceiling new-high list is
// normally a fraction of this.
const maxPages = 50

// FinvizFeed scrapes the Finviz screener for new 52-week highs under the
// configured price ceiling.
type FinvizFeed struct {
	BaseURL      string
	Client       *http.Client
	Exchanges    []string
	PriceCeiling int
	limiter      *rate.Limiter
	log          zerolog.Logger
}

// NewFinvizFeed creates a feed covering the given exchanges.
func NewFinvizFeed(exchanges []string, priceCeiling int, proxyURL string, log zerolog.Logger) *FinvizFeed {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FinvizFeed{
		BaseURL: "https://finviz.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Exchanges:    exchanges,
		PriceCeiling: priceCeiling,
		limiter:      rate.NewLimiter(rate.Limit(1), 1),
		log:          log.With().Str("component", "screener").Logger(),
	}
}

func (f *FinvizFeed) Name() string { return "finviz" }

// FetchNewHighs walks every configured exchange. A whole-exchange fetch
// failure aborts the scan; malformed rows are skipped and reported.
func (f *FinvizFeed) FetchNewHighs(ctx context.Context) ([]model.Quote, []RowOutcome, error) {
	var quotes []model.Quote
	var skipped []RowOutcome
	for _, exch := range f.Exchanges {
		qs, outcomes, err := f.fetchExchange(ctx, exch)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch %s new highs: %w", exch, err)
		}
		quotes = append(quotes, qs...)
		skipped = append(skipped, outcomes...)
	}
	f.log.Info().Int("tickers", len(quotes)).Int("skipped_rows", len(skipped)).Msg("screener fetch complete")
	return quotes, skipped, nil
}

func (f *FinvizFeed) fetchExchange(ctx context.Context, exchange string) ([]model.Quote, []RowOutcome, error) {
	var quotes []model.Quote
	var skipped []RowOutcome
	for page := 0; page < maxPages; page++ {
		u := fmt.Sprintf("%s/screener.ashx?v=111&s=ta_newhigh&f=exch_%s,sh_price_u%d&o=-price&r=%d",
			f.BaseURL, exchangeCode(exchange), f.PriceCeiling, 1+page*finvizPageSize)

		qs, outcomes, err := f.fetchPage(ctx, u, exchange)
		if err != nil {
			return nil, nil, err
		}
		quotes = append(quotes, qs...)
		skipped = append(skipped, outcomes...)
		if len(qs)+len(outcomes) == 0 {
			break
		}
	}
	return quotes, skipped, nil
}

func (f *FinvizFeed) fetchPage(ctx context.Context, u, exchange string) ([]model.Quote, []RowOutcome, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("finviz fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("finviz read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("finviz: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("finviz parse: %w", err)
	}

	var quotes []model.Quote
	var skipped []RowOutcome
	doc.Find(`tr[valign="top"]`).Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= 8 {
			return // layout row, not a result
		}
		ticker := strings.TrimSpace(cells.Eq(1).Text())
		priceText := strings.TrimSpace(cells.Eq(8).Text())
		price, err := strconv.ParseFloat(priceText, 64)
		if err != nil || ticker == "" {
			skipped = append(skipped, RowOutcome{
				Exchange: exchange,
				Row:      i + 1,
				Reason:   fmt.Sprintf("bad row: ticker=%q price=%q", ticker, priceText),
			})
			return
		}
		quotes = append(quotes, model.Quote{Ticker: ticker, Price: price})
	})
	return quotes, skipped, nil
}

// exchangeCode maps a config exchange name to its Finviz filter code.
func exchangeCode(name string) string {
	switch strings.ToLower(name) {
	case "nasdaq":
		return "nasd"
	case "nyse":
		return "nyse"
	case "amex":
		return "amex"
	default:
		return strings.ToLower(name)
	}
}
