package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"arbscan/internal/domain"
)

// requestTimeout is the shared per-request budget for all venue calls.
// There is no separate per-venue timeout; a slow venue bounds scan latency
// by this value.
const requestTimeout = 8 * time.Second

// newHTTPClient returns the default client used by all adapters.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// getJSON performs a GET request against url and decodes the JSON response
// body into dst. Non-2xx responses are returned as errors with a bounded
// body excerpt.
func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("get %s: unexpected status %d: %s", url, resp.StatusCode, string(excerpt))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// parsePrice parses a venue's string-encoded number and reports whether it
// is a usable positive finite value. Callers drop unusable values silently
// rather than failing the whole batch.
func parsePrice(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// parseLevels converts raw [price, amount] string tuples into price levels,
// dropping entries that are not strictly positive. The venue's native level
// order is preserved.
func parseLevels(raw [][]string) []domain.PriceLevel {
	levels := make([]domain.PriceLevel, 0, len(raw))
	for _, entry := range raw {
		if len(entry) < 2 {
			continue
		}
		price, ok := parsePrice(entry[0])
		if !ok {
			continue
		}
		amount, ok := parsePrice(entry[1])
		if !ok {
			continue
		}
		levels = append(levels, domain.PriceLevel{Price: price, Amount: amount})
	}
	return levels
}

// symbolSet builds a membership set for batched-call filtering.
func symbolSet(symbols []string) map[string]bool {
	set := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		set[s] = true
	}
	return set
}
