package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/taskboard/platform/internal/errors"
	"github.com/taskboard/platform/internal/httputil"
	"github.com/taskboard/platform/internal/logging"
	"github.com/taskboard/platform/internal/metrics"
)

// Client sends commands to one backend service. It propagates the trace ID
// and resolved caller identity from the context and re-hydrates wire faults
// into ServiceErrors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	target     string
	metrics    *metrics.Metrics
}

// ClientConfig configures a command client.
type ClientConfig struct {
	// Target names the destination service for metrics and errors.
	Target string
	// BaseURL is the destination service root, e.g. http://localhost:8081.
	BaseURL string
	// Timeout bounds each call. The original design had none; this is a
	// defensive deadline so a dead peer cannot hang a handler forever.
	Timeout time.Duration
	Metrics *metrics.Metrics
}

// NewClient creates a command client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		target:     cfg.Target,
		metrics:    cfg.Metrics,
	}
}

// Call sends cmd with the given payload and decodes the result into out.
// A nil out discards the response body.
func (c *Client) Call(ctx context.Context, cmd Command, payload, out interface{}) error {
	start := time.Now()
	err := c.call(ctx, cmd, payload, out)
	if c.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "fault"
		}
		c.metrics.RecordRPCCall(c.target, string(cmd), outcome, time.Since(start))
	}
	return err
}

func (c *Client) call(ctx context.Context, cmd Command, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Internal(fmt.Sprintf("marshal %s payload", cmd), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc/"+string(cmd), bytes.NewReader(body))
	if err != nil {
		return errors.Internal(fmt.Sprintf("build %s request", cmd), err)
	}
	req.Header.Set("Content-Type", "application/json")

	if traceID := logging.GetTraceID(ctx); traceID != "" {
		req.Header.Set(TraceIDHeader, traceID)
	}
	if userID := logging.GetUserID(ctx); userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Unreachable peers surface as generic failures, indistinguishable
		// from business 500s at the gateway.
		return errors.Internal(fmt.Sprintf("%s service unreachable", c.target), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeFault(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Internal(fmt.Sprintf("decode %s response", cmd), err)
	}
	return nil
}

func (c *Client) decodeFault(resp *http.Response) error {
	data, _, err := httputil.ReadAllWithLimit(resp.Body, 64<<10)
	if err != nil {
		return errors.Internal(fmt.Sprintf("read %s fault", c.target), err)
	}

	var fault Fault
	if err := json.Unmarshal(data, &fault); err != nil || fault.Status == 0 {
		return errors.Internal(fmt.Sprintf("%s returned status %d", c.target, resp.StatusCode), nil)
	}
	se := errors.FromStatus(fault.Status, fault.Message)
	se.Fields = fault.Errors
	return se
}
