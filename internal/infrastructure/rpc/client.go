package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/ilmi2809/tubeseai/internal/pkg/logging"
	"github.com/ilmi2809/tubeseai/internal/pkg/metrics"
)

// ErrTransport marks failures where the remote call did not complete:
// timeouts, refused connections, non-2xx responses, malformed bodies.
var ErrTransport = errors.New("rpc: transport failure")

// RemoteError is an application-level failure reported by the peer. The call
// itself completed; the peer rejected the operation.
type RemoteError struct {
	Peer      string
	Operation string
	Errors    []ErrorMessage
}

func (e *RemoteError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("rpc: %s %s failed", e.Peer, e.Operation)
	}
	return e.Errors[0].Message
}

// Code returns the first error's code, empty when the peer sent none.
func (e *RemoteError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}

// HasCode reports whether err is a RemoteError carrying the given code.
func HasCode(err error, code string) bool {
	var remote *RemoteError
	return errors.As(err, &remote) && remote.Code() == code
}

const defaultTimeout = 5 * time.Second

// Client posts RPC envelopes to one peer service.
type Client struct {
	peer    string
	baseURL string
	http    *http.Client
	metrics *metrics.Remote
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithMetrics(m *metrics.Remote) Option {
	return func(c *Client) { c.metrics = m }
}

func NewClient(peer, baseURL string, opts ...Option) *Client {
	c := &Client{
		peer:    peer,
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call invokes a named operation on the peer and decodes the data payload
// into out (which may be nil when the caller only cares about success).
// Application-level failures come back as *RemoteError; everything else is
// wrapped with ErrTransport.
func (c *Client) Call(ctx context.Context, operation string, variables any, out any) error {
	start := time.Now()
	err := c.call(ctx, operation, variables, out)
	c.observe(operation, time.Since(start), err)
	return err
}

func (c *Client) call(ctx context.Context, operation string, variables any, out any) error {
	var vars json.RawMessage
	if variables != nil {
		encoded, err := json.Marshal(variables)
		if err != nil {
			return fmt.Errorf("rpc: encode variables: %w", err)
		}
		vars = encoded
	}

	body, err := json.Marshal(Request{Operation: operation, Variables: vars})
	if err != nil {
		return fmt.Errorf("rpc: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		logging.FromContext(ctx).Warn("remote_call_failed",
			zap.String("peer", c.peer),
			zap.String("operation", operation),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s returned status %d", ErrTransport, c.peer, operation, resp.StatusCode)
	}

	var envelope Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}

	if len(envelope.Errors) > 0 {
		return &RemoteError{Peer: c.peer, Operation: operation, Errors: envelope.Errors}
	}

	if out != nil {
		if envelope.Data == nil {
			return fmt.Errorf("%w: %s %s returned no data", ErrTransport, c.peer, operation)
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %v", ErrTransport, err)
		}
	}
	return nil
}

func (c *Client) observe(operation string, elapsed time.Duration, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	switch {
	case errors.Is(err, ErrTransport):
		outcome = "transport_error"
	case err != nil:
		outcome = "remote_error"
	}
	c.metrics.Calls.WithLabelValues(c.peer, operation, outcome).Inc()
	c.metrics.Duration.WithLabelValues(c.peer, operation).Observe(elapsed.Seconds())
}
