// Package daemon is a typed client for the Nerva daemon RPC interface,
// covering both the /json_rpc method catalog and the daemon's plain HTTP
// endpoints.
package daemon

import (
	"context"

	"github.com/nerva-project/go-nerva/rpc"
)

// DefaultPort is the mainnet daemon RPC port.
const DefaultPort = 17566

// Client talks to a single daemon. Safe for concurrent use; concurrent
// calls are correlated by per-call request ids and carry no ordering
// guarantee relative to each other.
type Client struct {
	rpc *rpc.Client
}

// NewClient builds a daemon client. cfg.Port defaults to DefaultPort.
func NewClient(cfg rpc.Config) (*Client, error) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	rc, err := rpc.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{rpc: rc}, nil
}

// call is the single JSON-RPC dispatch path every typed method goes
// through: encode params, run the exchange, decode the result into T
// enforcing the required keys.
func call[T any](ctx context.Context, c *Client, method string, params any, required ...string) (*T, error) {
	var out T
	if err := c.rpc.CallResult(ctx, method, params, &out, required...); err != nil {
		return nil, err
	}
	return &out, nil
}

// callOther is the equivalent dispatch path for the plain endpoints.
func callOther[T any](ctx context.Context, c *Client, endpoint string, params any, required ...string) (*T, error) {
	var out T
	if err := c.rpc.CallOther(ctx, endpoint, params, &out, required...); err != nil {
		return nil, err
	}
	return &out, nil
}
