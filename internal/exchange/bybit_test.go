package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBybit(srv *httptest.Server) *Bybit {
	b := NewBybit("USDT")
	b.baseURL = srv.URL
	b.client = srv.Client()
	return b
}

func TestBybitPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v5/market/instruments-info", r.URL.Path)
		require.Equal(t, "spot", r.URL.Query().Get("category"))
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[
			{"symbol":"BTCUSDT","baseCoin":"BTC","quoteCoin":"USDT","status":"Trading"},
			{"symbol":"OLDUSDT","baseCoin":"OLD","quoteCoin":"USDT","status":"Closed"}
		]}}`))
	}))
	defer srv.Close()

	pairs, err := newTestBybit(srv).Pairs(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "BTCUSDT", pairs[0].Symbol)
}

func TestBybitEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"retCode":10001,"retMsg":"params error","result":{}}`))
	}))
	defer srv.Close()

	_, err := newTestBybit(srv).Pairs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retCode 10001")
	assert.Contains(t, err.Error(), "params error")
}

func TestBybitTickersUseTurnover(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v5/market/tickers", r.URL.Path)
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"list":[
			{"symbol":"BTCUSDT","lastPrice":"65000","turnover24h":"1500000"}
		]}}`))
	}))
	defer srv.Close()

	tickers, err := newTestBybit(srv).Tickers(context.Background(), []string{"BTCUSDT"})
	require.NoError(t, err)
	require.Contains(t, tickers, "BTCUSDT")
	assert.InDelta(t, 65000, tickers["BTCUSDT"].Last, 1e-9)
	assert.InDelta(t, 1500000, tickers["BTCUSDT"].QuoteVolume, 1e-9)
}

func TestBybitOrderBook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v5/market/orderbook", r.URL.Path)
		require.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"s":"BTCUSDT","b":[["64990","1"]],"a":[["65010","2"]]}}`))
	}))
	defer srv.Close()

	book, err := newTestBybit(srv).OrderBook(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.InDelta(t, 64990, book.BestBid(), 1e-9)
	assert.InDelta(t, 65010, book.BestAsk(), 1e-9)
}
