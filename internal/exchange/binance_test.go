package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBinance(srv *httptest.Server) *Binance {
	b := NewBinance("USDT")
	b.baseURL = srv.URL
	b.client = srv.Client()
	return b
}

func TestBinancePairsFiltersStatusAndQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/exchangeInfo", r.URL.Path)
		w.Write([]byte(`{"symbols":[
			{"symbol":"BTCUSDT","status":"TRADING","baseAsset":"BTC","quoteAsset":"USDT"},
			{"symbol":"ETHBTC","status":"TRADING","baseAsset":"ETH","quoteAsset":"BTC"},
			{"symbol":"OLDUSDT","status":"BREAK","baseAsset":"OLD","quoteAsset":"USDT"}
		]}`))
	}))
	defer srv.Close()

	pairs, err := newTestBinance(srv).Pairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "BTCUSDT", pairs[0].Symbol)
	assert.Equal(t, "BTC", pairs[0].Base)
	assert.Equal(t, "USDT", pairs[0].Quote)
}

func TestBinancePricesFiltersAndDropsBadValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/ticker/price", r.URL.Path)
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","price":"65000.10"},
			{"symbol":"ETHUSDT","price":"0"},
			{"symbol":"SOLUSDT","price":"150.5"}
		]`))
	}))
	defer srv.Close()

	prices, err := newTestBinance(srv).Prices(context.Background(), []string{"BTCUSDT", "ETHUSDT"})
	require.NoError(t, err)

	// SOLUSDT was not requested; ETHUSDT's zero price is dropped.
	require.Len(t, prices, 1)
	assert.InDelta(t, 65000.10, prices["BTCUSDT"], 1e-9)
}

func TestBinanceTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/ticker/24hr", r.URL.Path)
		w.Write([]byte(`[
			{"symbol":"BTCUSDT","lastPrice":"65000","quoteVolume":"1200000.5"}
		]`))
	}))
	defer srv.Close()

	tickers, err := newTestBinance(srv).Tickers(context.Background(), []string{"BTCUSDT"})
	require.NoError(t, err)
	require.Contains(t, tickers, "BTCUSDT")
	assert.InDelta(t, 65000, tickers["BTCUSDT"].Last, 1e-9)
	assert.InDelta(t, 1200000.5, tickers["BTCUSDT"].QuoteVolume, 1e-9)
}

func TestBinanceOrderBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/depth", r.URL.Path)
		require.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"bids":[["64990","1.5"],["64980","2"]],"asks":[["65010","0.7"]]}`))
	}))
	defer srv.Close()

	book, err := newTestBinance(srv).OrderBook(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 1)
	assert.InDelta(t, 64990, book.Bids[0].Price, 1e-9)
	assert.InDelta(t, 65010, book.Asks[0].Price, 1e-9)

	assert.InDelta(t, 64990, book.BestBid(), 1e-9)
	assert.InDelta(t, 65010, book.BestAsk(), 1e-9)
}

func TestBinanceOrderBookEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bids":[],"asks":[]}`))
	}))
	defer srv.Close()

	_, err := newTestBinance(srv).OrderBook(context.Background(), "BTCUSDT")
	require.Error(t, err)
}
