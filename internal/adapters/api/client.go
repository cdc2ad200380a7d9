// Package api is the HTTP client for the challenge backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/codearena/internal/domain/model"
	"github.com/okian/codearena/pkg/logger"
	"github.com/okian/codearena/pkg/metrics"
)

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 4 << 10

// Endpoint labels used for logs and metrics.
const (
	EndpointProblems    = "problems"
	EndpointProblem     = "problem"
	EndpointRun         = "run"
	EndpointSubmit      = "submit"
	EndpointLeaderboard = "leaderboard"
)

// RunRequest is the POST /run body.
type RunRequest struct {
	ProblemID string `json:"problem_id"`
	Code      string `json:"code"`
}

// SubmitRequest is the POST /submit body.
type SubmitRequest struct {
	UserID    string `json:"user_id"`
	ProblemID string `json:"problem_id"`
	Code      string `json:"code"`
}

type problemsResponse struct {
	Problems []string `json:"problems"`
}

type leaderboardResponse struct {
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

// Client talks JSON to the backend. It never retries.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	logger    logger.Logger
	requestID func() string
}

// New creates a client rooted at baseURL, e.g. http://127.0.0.1:8000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
		logger:    logger.Nop(),
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// ListProblems returns the problem ids known to the backend.
func (c *Client) ListProblems(ctx context.Context) ([]string, error) {
	var out problemsResponse
	if err := c.do(ctx, EndpointProblems, http.MethodGet, "/problems", nil, &out); err != nil {
		return nil, err
	}
	if out.Problems == nil {
		return []string{}, nil
	}
	return out.Problems, nil
}

// GetProblem returns the public tests and test counts for id.
func (c *Client) GetProblem(ctx context.Context, id string) (model.ProblemDetail, error) {
	var out model.ProblemDetail
	err := c.do(ctx, EndpointProblem, http.MethodGet, "/problem/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Run executes code against the public tests.
func (c *Client) Run(ctx context.Context, req RunRequest) (model.RunResult, error) {
	var out model.RunResult
	err := c.do(ctx, EndpointRun, http.MethodPost, "/run", req, &out)
	return out, err
}

// Submit grades code against every test.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (model.Grade, error) {
	var out model.SubmitResult
	if err := c.do(ctx, EndpointSubmit, http.MethodPost, "/submit", req, &out); err != nil {
		return model.Grade{}, err
	}
	return out.Grade, nil
}

// Leaderboard returns the ranked entries as ordered by the backend.
func (c *Client) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var out leaderboardResponse
	if err := c.do(ctx, EndpointLeaderboard, http.MethodGet, "/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	if out.Leaderboard == nil {
		return []model.LeaderboardEntry{}, nil
	}
	return out.Leaderboard, nil
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			metrics.RecordAPIError(endpoint, "encode")
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		metrics.RecordAPIError(endpoint, "transport")
		return fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	rid := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", rid)

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordAPIRequest(endpoint, method, "error", elapsed)
		metrics.RecordAPIError(endpoint, "transport")
		c.logger.Warn(ctx, "request failed",
			logger.String("endpoint", endpoint),
			logger.String("request_id", rid),
			logger.Error(err))
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Debug(ctx, "failed to close response body", logger.Error(cerr))
		}
	}()

	status := strconv.Itoa(resp.StatusCode)
	metrics.RecordAPIRequest(endpoint, method, status, elapsed)
	c.logger.Debug(ctx, "request completed",
		logger.String("endpoint", endpoint),
		logger.String("method", method),
		logger.String("status", status),
		logger.String("request_id", rid),
		logger.Float64("latency_ms", elapsed))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordAPIError(endpoint, "status")
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		metrics.RecordAPIError(endpoint, "decode")
		return fmt.Errorf("%w: %s: %v", ErrDecode, endpoint, err)
	}
	return nil
}
