package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/covidspark/internal/event"
	"github.com/bamsammich/covidspark/internal/series"
	"github.com/bamsammich/covidspark/internal/stats"
)

// DefaultBaseURL is the covidtracking.com v1 API root.
const DefaultBaseURL = "https://api.covidtracking.com/v1/"

// ErrFetchFailed wraps every failure to obtain a non-empty dataset.
var ErrFetchFailed = errors.New("fetch failed")

var paths = map[event.Kind]string{
	event.National: "us/daily.json",
	event.States:   "states/daily.json",
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	// Retries is the number of extra attempts after the first one fails.
	Retries int
	// RetryInterval is the minimum spacing between attempts.
	RetryInterval time.Duration
	Stats         *stats.Collector
	HTTPClient    *http.Client
}

// Client downloads daily datasets. Failed attempts are retried, paced by a
// rate limiter so a flapping endpoint is not hammered.
type Client struct {
	base    *url.URL
	http    *http.Client
	retries int
	stats   *stats.Collector
	spacing time.Duration
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", raw)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	st := cfg.Stats
	if st == nil {
		st = stats.NewCollector()
	}
	spacing := cfg.RetryInterval
	if spacing <= 0 {
		spacing = time.Second
	}
	return &Client{
		base:    base,
		http:    hc,
		retries: max(cfg.Retries, 0),
		stats:   st,
		spacing: spacing,
	}, nil
}

// NewRetryLimiter allows one attempt immediately and then one per interval.
func NewRetryLimiter(interval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Fetch downloads one dataset and returns its records newest first, as
// published. report, if non-nil, is called before every retry.
func (c *Client) Fetch(
	ctx context.Context,
	kind event.Kind,
	report func(event.Event),
) ([]series.DailyRecord, int64, error) {
	path, ok := paths[kind]
	if !ok {
		return nil, 0, fmt.Errorf("%w: unknown dataset %v", ErrFetchFailed, kind)
	}
	target := c.base.JoinPath(path).String()
	limiter := NewRetryLimiter(c.spacing)

	var lastErr error
	for attempt := 1; attempt <= c.retries+1; attempt++ {
		if err := limiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("%w: %s: %w", ErrFetchFailed, kind, err)
		}
		if attempt > 1 {
			c.stats.AddRetries(1)
			if report != nil {
				report(event.Event{
					Type:      event.FetchRetry,
					Kind:      kind,
					Timestamp: time.Now(),
					Attempt:   attempt,
					Error:     lastErr,
				})
			}
		}

		recs, n, err := c.get(ctx, target)
		if err == nil {
			if len(recs) == 0 {
				c.stats.AddFailures(1)
				return nil, n, fmt.Errorf("%w: %s: %w", ErrFetchFailed, kind, series.ErrEmptyDataset)
			}
			c.stats.AddRecords(int64(len(recs)))
			return recs, n, nil
		}

		lastErr = err
		slog.Debug("fetch attempt failed", "dataset", kind.String(), "attempt", attempt, "error", err)
		var perm *permanentError
		if errors.As(err, &perm) || ctx.Err() != nil {
			break
		}
	}

	c.stats.AddFailures(1)
	return nil, 0, fmt.Errorf("%w: %s: %w", ErrFetchFailed, kind, lastErr)
}

// permanentError marks responses that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func (c *Client) get(ctx context.Context, target string) ([]series.DailyRecord, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, &permanentError{err: err}
	}
	req.Header.Set("Accept", "application/json")

	c.stats.AddRequests(1)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("GET %s: %s", target, resp.Status)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, 0, &permanentError{err: statusErr}
		}
		return nil, 0, statusErr
	}

	body := &countingReader{r: resp.Body}
	var recs []series.DailyRecord
	if err := json.NewDecoder(body).Decode(&recs); err != nil {
		c.stats.AddBytes(body.n)
		return nil, body.n, &permanentError{err: fmt.Errorf("decode %s: %w", target, err)}
	}
	c.stats.AddBytes(body.n)
	return recs, body.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}
