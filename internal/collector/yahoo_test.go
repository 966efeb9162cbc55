package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chartBody = `{"chart":{"result":[{
	"timestamp":[1700000000,1700086400,1700172800,1700259200,1700345600],
	"indicators":{"quote":[{
		"open":[10,null,12,13,14],
		"high":[10.5,null,12.5,13.5,14.5],
		"low":[9.5,null,11.5,12.5,13.5],
		"close":[10.2,null,12.2,13.2,14.2],
		"volume":[1000,null,3000,4000,5000]
	}]}
}],"error":null}}`

const summaryBody = `{"quoteSummary":{"result":[{
	"price":{"longName":"Acme Corp"},
	"financialData":{
		"targetMeanPrice":{"raw":30},
		"debtToEquity":{"raw":150},
		"currentRatio":{"raw":2.1},
		"revenueGrowth":{"raw":0.25},
		"earningsGrowth":{"raw":0.4}
	},
	"defaultKeyStatistics":{"priceToBook":{"raw":3.2}},
	"summaryDetail":{"trailingPE":{"raw":18.5},"marketCap":{"raw":1200000000}}
}],"error":null}}`

func testFetcher(t *testing.T, handler http.HandlerFunc) *YahooFetcher {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	return f
}

func TestFetchDailyBars_SkipsNullBars(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"))
		w.Write([]byte(chartBody))
	})

	bars, err := f.FetchDailyBars(context.Background(), "ABCD", 30)
	require.NoError(t, err)
	require.Len(t, bars, 4, "the null holiday bar is dropped")
	assert.Equal(t, 10.2, bars[0].Close)
	assert.Equal(t, 14.2, bars[len(bars)-1].Close)
}

func TestFetchDailyBars_TrimsToRequestedCount(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody))
	})

	bars, err := f.FetchDailyBars(context.Background(), "ABCD", 2)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 13.2, bars[0].Close, "trim keeps the most recent bars")
}

func TestFetchQuote_LastClose(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody))
	})

	price, err := f.FetchQuote(context.Background(), "ABCD")
	require.NoError(t, err)
	assert.Equal(t, 14.2, price)
}

func TestFetchDailyBars_EmptyResultIsNoData(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	})

	_, err := f.FetchDailyBars(context.Background(), "GONE", 30)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestFetchDailyBars_NotFoundIsNoData(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := f.FetchDailyBars(context.Background(), "GONE", 30)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestFetchFundamentals_MapsFields(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"))
		w.Write([]byte(summaryBody))
	})

	fund, err := f.FetchFundamentals(context.Background(), "ABCD")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", fund.Name)
	assert.Equal(t, 30.0, fund.AnalystTarget)
	assert.Equal(t, 18.5, fund.PE)
	assert.Equal(t, 3.2, fund.PriceToBook)
	assert.InDelta(t, 1.5, fund.DebtToEquity, 1e-9, "percent figure normalized to a ratio")
	assert.InDelta(t, 25.0, fund.RevenueGrowthPct, 1e-9)
	assert.InDelta(t, 40.0, fund.EarningsGrowthPct, 1e-9)
}

func TestFetchFundamentals_MissingFieldsStayZero(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{"price":{"longName":"Bare Inc"}}],"error":null}}`))
	})

	fund, err := f.FetchFundamentals(context.Background(), "BARE")
	require.NoError(t, err)
	assert.Equal(t, "Bare Inc", fund.Name)
	assert.Zero(t, fund.AnalystTarget)
	assert.Zero(t, fund.PE)
}

func TestFetchFundamentals_EmptyResultIsNoData(t *testing.T) {
	f := testFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[],"error":null}}`))
	})

	_, err := f.FetchFundamentals(context.Background(), "GONE")
	assert.True(t, errors.Is(err, ErrNoData))
}
