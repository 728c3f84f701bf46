package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"RoboAdvisor/internal/httpclient"
	"RoboAdvisor/internal/model"
)

// ErrRateLimited is returned when Alpha Vantage answers with a throttling note
// instead of data.
var ErrRateLimited = errors.New("alphavantage: request rate limit reached")

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage daily series API.
type AlphaVantageFetcher struct {
	BaseURL    string
	APIKey     string
	OutputSize string // "compact" (100 days) or "full"
	Client     *http.Client
}

// NewAlphaVantageFetcher creates a new fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, outputSize, proxyURL string) *AlphaVantageFetcher {
	if outputSize == "" {
		outputSize = "compact"
	}
	return &AlphaVantageFetcher{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		OutputSize: outputSize,
		Client:     httpclient.New(proxyURL),
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alphavantage" }

// avDaily is the TIME_SERIES_DAILY response shape.
type avDaily struct {
	MetaData struct {
		Symbol        string `json:"2. Symbol"`
		LastRefreshed string `json:"3. Last Refreshed"`
	} `json:"Meta Data"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
}

func (f *AlphaVantageFetcher) FetchDaily(ctx context.Context, symbol string) (*model.RawSeries, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("outputsize", f.OutputSize)
	q.Set("apikey", f.APIKey)
	endpoint := f.BaseURL + "/query?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alphavantage read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed avDaily
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if parsed.ErrorMessage != "" {
		return nil, &model.SymbolNotFoundError{Symbol: symbol, Message: parsed.ErrorMessage}
	}
	if parsed.TimeSeries == nil {
		if msg := firstNonEmpty(parsed.Note, parsed.Information); msg != "" {
			return nil, fmt.Errorf("%w: %s", ErrRateLimited, msg)
		}
		return nil, fmt.Errorf("alphavantage: response has no daily time series")
	}

	raw := &model.RawSeries{
		Symbol:        symbol,
		LastRefreshed: parsed.MetaData.LastRefreshed,
		Bars:          make(map[string]model.RawBar, len(parsed.TimeSeries)),
	}
	for date, rec := range parsed.TimeSeries {
		raw.Bars[date] = model.RawBar(rec)
	}
	return raw, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
