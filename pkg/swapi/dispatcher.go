package swapi

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// Transport executes operations against a SWAPI backend. Implementations
// must be safe for concurrent use.
type Transport interface {
	Execute(ctx context.Context, op Operation) (*Response, error)
	Name() string
}

// Client dispatches operations over a single Transport. It is constructed
// once at startup and shared read-only by every caller.
type Client struct {
	transport Transport
}

func NewClient(transport Transport) *Client {
	return &Client{transport: transport}
}

// NewHTTPClient returns the http.Client used by the transports, bounded by timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func (c *Client) Transport() Transport {
	return c.transport
}

// Dispatch binds op to the client's transport without performing any I/O.
func (c *Client) Dispatch(op Operation) *PendingCall {
	return &PendingCall{op: op, transport: c.transport}
}

// PendingCall is a deferred network call. It can be executed once.
type PendingCall struct {
	op        Operation
	transport Transport
	executed  atomic.Bool
}

func (p *PendingCall) Operation() Operation {
	return p.op
}

func (p *PendingCall) Execute(ctx context.Context) (*Response, error) {
	if !p.executed.CompareAndSwap(false, true) {
		return nil, ErrAlreadyExecuted
	}
	resp, err := p.transport.Execute(ctx, p.op)
	if err != nil {
		return nil, fmt.Errorf("%s via %s: %w", p.op, p.transport.Name(), err)
	}
	return resp, nil
}
