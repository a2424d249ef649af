// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package lookup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/astrographus/internal/config"
	"github.com/tomtom215/astrographus/internal/logging"
	"github.com/tomtom215/astrographus/internal/metrics"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

const breakerName = "edsm"

// statusError is a non-200 answer.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

// EDSMClient talks to the EDSM web API. Every request waits on a token
// bucket and passes through a circuit breaker; all transport failures and
// breaker rejections surface as ErrUnavailable.
type EDSMClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
}

// NewEDSMClient creates a client from the lookup configuration.
func NewEDSMClient(cfg *config.LookupConfig) *EDSMClient {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= maxFailures
			if trip {
				logging.Warn().
					Str("breaker", breakerName).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("Opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String(), int(to))
		},

		// Transport failures, 429 and 5xx count against the breaker.
		// Cancellation does not.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var se *statusError
			if errors.As(err, &se) {
				return se.code < 500 && se.code != http.StatusTooManyRequests
			}
			return false
		},
	})

	return &EDSMClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		cb:      cb,
	}
}

// State returns the breaker state.
func (c *EDSMClient) State() gobreaker.State {
	return c.cb.State()
}

// System looks up a system's address and coordinates.
func (c *EDSMClient) System(ctx context.Context, key SystemKey) (*System, error) {
	start := time.Now()
	q := c.keyQuery(key)
	q.Set("showCoordinates", "1")
	q.Set("showId", "1")

	body, err := c.get(ctx, "/api-v1/system", q)
	if err != nil {
		metrics.RecordLookup("system", "unavailable", time.Since(start))
		return nil, err
	}
	if absent(body) {
		metrics.RecordLookup("system", "absent", time.Since(start))
		return nil, nil
	}

	var sys System
	if err := json.Unmarshal(body, &sys); err != nil {
		metrics.RecordLookup("system", "unavailable", time.Since(start))
		return nil, fmt.Errorf("%w: decode system: %v", ErrUnavailable, err)
	}
	metrics.RecordLookup("system", "found", time.Since(start))
	return &sys, nil
}

// Bodies looks up the known bodies of a system. The client never caches,
// so the boolean is always false.
func (c *EDSMClient) Bodies(ctx context.Context, key SystemKey) (*BodyList, bool, error) {
	start := time.Now()
	body, err := c.get(ctx, "/api-system-v1/bodies", c.keyQuery(key))
	if err != nil {
		metrics.RecordLookup("bodies", "unavailable", time.Since(start))
		return nil, false, err
	}
	if absent(body) {
		metrics.RecordLookup("bodies", "absent", time.Since(start))
		return nil, false, nil
	}

	var resp struct {
		Name      string `json:"name"`
		ID64      int64  `json:"id64"`
		BodyCount int    `json:"bodyCount"`
		Bodies    []Body `json:"bodies"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		metrics.RecordLookup("bodies", "unavailable", time.Since(start))
		return nil, false, fmt.Errorf("%w: decode bodies: %v", ErrUnavailable, err)
	}

	list := &BodyList{
		System:    SystemKey{Name: resp.Name, Address: resp.ID64},
		BodyCount: resp.BodyCount,
		Bodies:    resp.Bodies,
	}
	if list.System.Name == "" {
		list.System.Name = key.Name
	}
	if list.System.Address == 0 {
		list.System.Address = key.Address
	}
	metrics.RecordLookup("bodies", "found", time.Since(start))
	return list, false, nil
}

func (c *EDSMClient) keyQuery(key SystemKey) url.Values {
	q := url.Values{}
	if key.Address != 0 {
		q.Set("systemId64", strconv.FormatInt(key.Address, 10))
	} else {
		q.Set("systemName", key.Name)
	}
	return q
}

// get performs one rate-limited, breaker-protected GET.
func (c *EDSMClient) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), http.NoBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			if len(data) > 256 {
				data = data[:256]
			}
			return nil, &statusError{code: resp.StatusCode, body: string(data)}
		}
		return data, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Ctx(ctx).Debug().Str("path", path).Msg("Lookup rejected by open circuit")
		} else {
			logging.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("Lookup request failed")
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return body, nil
}

// absent reports whether the service answered "unknown system", which it
// does with an empty array or object.
func absent(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || bytes.Equal(b, []byte("[]")) || bytes.Equal(b, []byte("{}"))
}
