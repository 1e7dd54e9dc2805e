// Package wallet is a typed client for the Nerva wallet RPC server
// (nerva-wallet-rpc). The wallet server has no conventional port, so
// Config.Port is required.
package wallet

import (
	"context"

	"github.com/nerva-project/go-nerva/rpc"
)

// Client talks to a single wallet RPC server.
type Client struct {
	rpc *rpc.Client
}

// NewClient builds a wallet client from cfg. Unlike the daemon there is
// no default port; cfg.Port must be set.
func NewClient(cfg rpc.Config) (*Client, error) {
	rc, err := rpc.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{rpc: rc}, nil
}

func call[T any](ctx context.Context, c *Client, method string, params any, required ...string) (*T, error) {
	var out T
	if err := c.rpc.CallResult(ctx, method, params, &out, required...); err != nil {
		return nil, err
	}
	return &out, nil
}
