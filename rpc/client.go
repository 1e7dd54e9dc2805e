package rpc

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/nerva-project/go-nerva/internal/digest"
)

// DefaultTimeout is the per-call deadline applied when neither the config
// nor the caller's context provides one.
const DefaultTimeout = 10 * time.Second

// Config describes the endpoint a client talks to. It is consumed at
// construction and never mutated afterwards.
type Config struct {
	// Host of the RPC process. Required.
	Host string
	// Port of the RPC process. Required; the daemon and wallet packages
	// fill in their well-known defaults.
	Port int
	// TLS selects https as the scheme.
	TLS bool
	// SkipTLSVerify disables certificate validation when TLS is set.
	SkipTLSVerify bool
	// Username and Password enable digest authentication when both set.
	Username string
	Password string
	// Timeout is the per-call deadline. Defaults to DefaultTimeout.
	Timeout time.Duration
	// HTTP overrides the transport. Defaults to an *http.Client built
	// from the fields above.
	HTTP HTTP
	// Logger receives debug traces of calls and auth retries. Defaults
	// to a no-op logger.
	Logger *zerolog.Logger
}

// Client is the JSON-RPC engine bound to a single endpoint. Its only
// mutable state is the request-id counter and the digest session, both
// safe for concurrent use; everything else is fixed at construction.
type Client struct {
	http    HTTP
	base    string
	timeout time.Duration
	log     zerolog.Logger
	sess    *digest.Session

	id atomic.Uint64
}

// New builds a client for the endpoint described by cfg.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, errors.New("rpc: host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, errors.Errorf("rpc: invalid port %d", cfg.Port)
	}

	scheme := "http"
	if cfg.TLS {
		scheme = "https"
	}

	c := &Client{
		http:    cfg.HTTP,
		base:    scheme + "://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		timeout: cfg.Timeout,
		log:     zerolog.Nop(),
	}
	if c.timeout == 0 {
		c.timeout = DefaultTimeout
	}
	if cfg.Logger != nil {
		c.log = *cfg.Logger
	}
	if c.http == nil {
		transport := http.DefaultTransport
		if cfg.TLS && cfg.SkipTLSVerify {
			t := http.DefaultTransport.(*http.Transport).Clone()
			t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
			transport = t
		}
		c.http = &http.Client{Transport: transport}
	}
	if cfg.Username != "" || cfg.Password != "" {
		c.sess = digest.NewSession(cfg.Username, cfg.Password)
	}
	return c, nil
}

// Call performs one JSON-RPC exchange on /json_rpc and returns the raw
// result object.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := c.id.Add(1)
	body, err := json.Marshal(Request{Version: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		return nil, &ValidationError{Method: method, Reason: "unencodable parameters", Err: err}
	}

	start := time.Now()
	raw, err := c.post(ctx, "/json_rpc", body)
	if err != nil {
		return nil, err
	}
	result, err := decodeResponse(raw, id)
	c.log.Debug().
		Str("method", method).
		Uint64("id", id).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("json-rpc call")
	return result, err
}

// CallResult performs Call and decodes the result into out, enforcing the
// presence of the required top-level keys.
func (c *Client) CallResult(ctx context.Context, method string, params, out any, required ...string) error {
	raw, err := c.Call(ctx, method, params)
	if err != nil {
		return err
	}
	return DecodeResult(raw, out, required...)
}

// CallOther posts to one of the daemon's plain endpoints (no JSON-RPC
// envelope; the response object is the result itself) and decodes it into
// out.
func (c *Client) CallOther(ctx context.Context, endpoint string, params, out any, required ...string) error {
	body := []byte("{}")
	if params != nil {
		var err error
		body, err = json.Marshal(params)
		if err != nil {
			return &ValidationError{Method: endpoint, Reason: "unencodable parameters", Err: err}
		}
	}

	start := time.Now()
	raw, err := c.post(ctx, "/"+endpoint, body)
	if err != nil {
		return err
	}
	err = DecodeResult(raw, out, required...)
	c.log.Debug().
		Str("endpoint", endpoint).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("endpoint call")
	return err
}

// post runs one HTTP POST with the single digest challenge/retry cycle.
func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var auth string
	if c.sess != nil && c.sess.Active() {
		// A cancelled request must not consume a nonce-count value.
		if err := ctx.Err(); err != nil {
			return nil, classifyTransport(err)
		}
		auth, _ = c.sess.Authorize(http.MethodPost, path)
	}

	status, header, raw, err := c.send(ctx, path, body, auth)
	if err != nil {
		return nil, classifyTransport(err)
	}

	if status == http.StatusUnauthorized {
		if c.sess == nil {
			return nil, &AuthError{Kind: KindCredentialsRequired}
		}
		chal, perr := digest.ParseChallenge(header.Get("WWW-Authenticate"))
		if perr != nil {
			return nil, &AuthError{Kind: KindUnsupportedChallenge, Err: perr}
		}
		c.sess.Accept(chal)
		if err := ctx.Err(); err != nil {
			return nil, classifyTransport(err)
		}
		auth, _ = c.sess.Authorize(http.MethodPost, path)
		c.log.Debug().Str("path", path).Msg("retrying with digest authorization")

		status, _, raw, err = c.send(ctx, path, body, auth)
		if err != nil {
			return nil, classifyTransport(err)
		}
		if status == http.StatusUnauthorized {
			c.sess.Reset()
			return nil, &AuthError{Kind: KindInvalidCredentials}
		}
	}

	if status < 200 || status > 299 {
		return nil, &TransportError{Kind: KindUnexpectedStatus, Status: status}
	}
	return raw, nil
}

func (c *Client) send(ctx context.Context, path string, body []byte, auth string) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, errors.Wrap(err, "read response")
	}
	return resp.StatusCode, resp.Header, raw, nil
}

// classifyTransport maps a network failure onto the TransportError
// taxonomy.
func classifyTransport(err error) *TransportError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TransportError{Kind: KindTimeout, Err: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &TransportError{Kind: KindConnectionRefused, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Kind: KindTimeout, Err: err}
	}

	var certErr *tls.CertificateVerificationError
	var recErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &recErr) {
		return &TransportError{Kind: KindTLSFailure, Err: err}
	}

	return &TransportError{Kind: KindNetwork, Err: err}
}
