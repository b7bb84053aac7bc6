package esign

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// ErrEnvelopeNotFound indicates the provider doesn't know the envelope.
var ErrEnvelopeNotFound = errors.New("envelope not found")

// TooManyRequestsError represents rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations against the e-signature provider.
type Client interface {
	// Send dispatches a signing request and returns the provider envelope.
	Send(ctx context.Context, recipientName, recipientEmail, subject string) (*model.Envelope, error)
	// Status queries the current state of an envelope.
	Status(ctx context.Context, envelopeID string) (*model.Envelope, error)
}

// HTTPClient implements Client via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// sendRequest mirrors the JSON payload the provider accepts.
type sendRequest struct {
	RecipientName  string `json:"recipient_name"`
	RecipientEmail string `json:"recipient_email"`
	Subject        string `json:"subject"`
}

// envelopeResponse mirrors the JSON payload the provider returns.
type envelopeResponse struct {
	EnvelopeID string `json:"envelope_id"`
	State      string `json:"state"`
}

// NewHTTPClient creates HTTP e-signature client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse esign url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("esign url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts a signing request. An Idempotency-Key header guards against
// duplicate envelopes when a dispatch is retried.
func (c *HTTPClient) Send(ctx context.Context, recipientName, recipientEmail, subject string) (*model.Envelope, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/envelopes")

	payload, err := json.Marshal(sendRequest{
		RecipientName:  recipientName,
		RecipientEmail: recipientEmail,
		Subject:        subject,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return c.decodeEnvelope(resp.Body)
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("esign send failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("esign error: %s", resp.Status)
	}
}

// Status queries the provider for envelope state.
func (c *HTTPClient) Status(ctx context.Context, envelopeID string) (*model.Envelope, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/envelopes/", envelopeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return c.decodeEnvelope(resp.Body)
	case http.StatusNoContent, http.StatusNotFound:
		return nil, ErrEnvelopeNotFound
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("esign status failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("esign error: %s", resp.Status)
	}
}

func (c *HTTPClient) decodeEnvelope(r io.Reader) (*model.Envelope, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var data envelopeResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &model.Envelope{ID: data.EnvelopeID, State: model.EnvelopeState(data.State)}, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
