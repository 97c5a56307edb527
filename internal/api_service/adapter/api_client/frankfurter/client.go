// Package frankfurter fetches historical reference rates from the
// Frankfurter API (https://www.frankfurter.app).
package frankfurter

import (
	"context"
	"encoding/json"
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/pkg/errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	ResultOK          = "ok"
	ResultError       = "error"
	ResultTimeout     = "timeout"
	ResultBadStatus   = "bad_status"
	ResultBadResponse = "bad_response"
)

// Observer receives the outcome of every provider request.
type Observer interface {
	ObserveProviderRequest(result string, elapsed time.Duration)
}

type HTTPClient struct {
	client   *http.Client
	baseURL  string
	timeout  time.Duration
	observer Observer
}

type Option func(c *HTTPClient)

func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		c.client = client
	}
}

func WithObserver(o Observer) Option {
	return func(c *HTTPClient) {
		c.observer = o
	}
}

func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type response struct {
	Amount    float64                       `json:"amount"`
	Base      string                        `json:"base"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Rates     map[string]map[string]float64 `json:"rates"`
}

// FetchRates requests every target in one call. All failures are reported as
// entities.ErrProviderUnavailable; nothing is retried.
func (c *HTTPClient) FetchRates(ctx context.Context, base string, targets []string, r entities.DateRange) (map[string]map[string]float64, error) {
	const op = "frankfurter.FetchRates"

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := time.Now()

	rates, result, err := c.fetch(ctx, base, targets, r)
	if c.observer != nil {
		c.observer.ObserveProviderRequest(result, time.Since(started))
	}
	if err != nil {
		slog.Warn("rate provider request failed", "op", op, "base", base, "targets", targets, "result", result, "error", err.Error())
		return nil, errors.Wrapf(entities.ErrProviderUnavailable, "%s: %v", op, err)
	}

	return rates, nil
}

func (c *HTTPClient) fetch(ctx context.Context, base string, targets []string, r entities.DateRange) (map[string]map[string]float64, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(base, targets, r), nil)
	if err != nil {
		return nil, ResultError, errors.Wrap(err, "create request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ResultTimeout, errors.Wrap(err, "request timed out")
		}
		return nil, ResultError, errors.Wrap(err, "request")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ResultBadStatus, errors.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ResultTimeout, errors.Wrap(err, "read body timed out")
		}
		return nil, ResultError, errors.Wrap(err, "read body")
	}

	var result response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, ResultBadResponse, errors.Wrap(err, "json unmarshal")
	}
	if result.Rates == nil {
		return nil, ResultBadResponse, errors.New("response has no rates")
	}

	return result.Rates, ResultOK, nil
}

// URL builds GET {base}/{start}..{end}?from={base}&to={t1,t2}.
func (c *HTTPClient) URL(base string, targets []string, r entities.DateRange) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteByte('/')
	b.WriteString(r.StartDate())
	b.WriteString("..")
	b.WriteString(r.EndDate())
	b.WriteString("?from=")
	b.WriteString(url.QueryEscape(base))
	b.WriteString("&to=")

	escaped := make([]string, len(targets))
	for i, t := range targets {
		escaped[i] = url.QueryEscape(t)
	}
	b.WriteString(strings.Join(escaped, ","))

	return b.String()
}
