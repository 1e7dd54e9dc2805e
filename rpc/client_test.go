package rpc_test

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerva-project/go-nerva/rpc"
)

func newClient(t *testing.T, handler http.Handler, mod func(*rpc.Config)) *rpc.Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	cfg := configFor(t, ts)
	if mod != nil {
		mod(&cfg)
	}
	c, err := rpc.New(cfg)
	require.NoError(t, err)
	return c
}

func configFor(t *testing.T, ts *httptest.Server) rpc.Config {
	t.Helper()
	host, portStr, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return rpc.Config{Host: host, Port: port}
}

// echoHandler answers every /json_rpc request with the given result,
// correlating by the request's own id.
func echoHandler(result string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID uint64 `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := rpc.New(rpc.Config{Port: 18566})
	assert.Error(t, err)

	_, err = rpc.New(rpc.Config{Host: "localhost"})
	assert.Error(t, err)

	_, err = rpc.New(rpc.Config{Host: "localhost", Port: 70000})
	assert.Error(t, err)
}

func TestCallSuccess(t *testing.T) {
	var gotMethod string
	var gotContentType string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotMethod = req.Method
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":{"count":993163,"status":"OK"}}`, req.ID)
	}), nil)

	var out struct {
		Count uint64 `json:"count"`
	}
	err := c.CallResult(context.Background(), "get_block_count", nil, &out, "count")
	require.NoError(t, err)
	assert.Equal(t, uint64(993163), out.Count)
	assert.Equal(t, "get_block_count", gotMethod)
	assert.Equal(t, "application/json", gotContentType)
}

func TestCallRPCError(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID uint64 `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"Method not found"}}`, req.ID)
	}), nil)

	_, err := c.Call(context.Background(), "no_such_method", nil)
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, rpc.ErrCodeMethodNotFound, rpcErr.Code)
	assert.True(t, rpcErr.IsMethodNotFound())
	assert.False(t, rpcErr.IsInvalidParams())
}

func TestCallIDMismatch(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":9999,"result":{}}`)
	}), nil)

	_, err := c.Call(context.Background(), "get_info", nil)
	var protoErr *rpc.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, rpc.KindIDMismatch, protoErr.Kind)
}

func TestCallMalformedEnvelope(t *testing.T) {
	cases := map[string]string{
		"not json":        `this is not json`,
		"wrong version":   `{"jsonrpc":"1.0","id":1,"result":{}}`,
		"missing version": `{"id":1,"result":{}}`,
		"missing id":      `{"jsonrpc":"2.0","result":{}}`,
		"result and error": `{"jsonrpc":"2.0","id":1,"result":{},` +
			`"error":{"code":-32603,"message":"Internal error"}}`,
		"neither": `{"jsonrpc":"2.0","id":1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}), nil)

			_, err := c.Call(context.Background(), "get_info", nil)
			var protoErr *rpc.ProtocolError
			require.ErrorAs(t, err, &protoErr)
			assert.Equal(t, rpc.KindMalformed, protoErr.Kind)
		})
	}
}

func TestCallUnexpectedStatus(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}), nil)

	_, err := c.Call(context.Background(), "get_info", nil)
	var tErr *rpc.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, rpc.KindUnexpectedStatus, tErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, tErr.Status)
}

func TestCallConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	cfg := configFor(t, ts)
	ts.Close()

	c, err := rpc.New(cfg)
	require.NoError(t, err)

	_, err = c.Call(context.Background(), "get_info", nil)
	var tErr *rpc.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, rpc.KindConnectionRefused, tErr.Kind)
	assert.False(t, tErr.Timeout())
}

func TestCallTimeout(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}), func(cfg *rpc.Config) {
		cfg.Timeout = 50 * time.Millisecond
	})

	_, err := c.Call(context.Background(), "get_info", nil)
	var tErr *rpc.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, rpc.KindTimeout, tErr.Kind)
	assert.True(t, tErr.Timeout())
}

func TestCallContextDeadlineWins(t *testing.T) {
	// A deadline already on the context takes precedence over the
	// configured timeout.
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}), func(cfg *rpc.Config) {
		cfg.Timeout = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Call(ctx, "get_info", nil)
	var tErr *rpc.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, rpc.KindTimeout, tErr.Kind)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallOther(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_height", r.URL.Path)
		fmt.Fprint(w, `{"height":1234567,"status":"OK","untrusted":false}`)
	}), nil)

	var out struct {
		Height uint64 `json:"height"`
		Status string `json:"status"`
	}
	err := c.CallOther(context.Background(), "get_height", nil, &out, "height")
	require.NoError(t, err)
	assert.Equal(t, uint64(1234567), out.Height)
	assert.Equal(t, "OK", out.Status)
}

func TestCallOtherMissingRequiredKey(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK"}`)
	}), nil)

	var out struct{}
	err := c.CallOther(context.Background(), "get_height", nil, &out, "height")
	var protoErr *rpc.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, rpc.KindUnexpectedShape, protoErr.Kind)
	assert.Contains(t, protoErr.Error(), "height")
}

func TestDecodeResult(t *testing.T) {
	var out struct {
		Height uint64 `json:"height"`
	}
	err := rpc.DecodeResult([]byte(`{"height":7}`), &out, "height")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), out.Height)

	err = rpc.DecodeResult([]byte(`not json`), &out)
	var protoErr *rpc.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, rpc.KindMalformed, protoErr.Kind)

	// Present key with the wrong type is a shape error, not a zero value.
	err = rpc.DecodeResult([]byte(`{"height":"tall"}`), &out, "height")
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, rpc.KindUnexpectedShape, protoErr.Kind)
}

func TestValidateParams(t *testing.T) {
	type params struct {
		Hash string `json:"hash" validate:"required,len=64,hexadecimal"`
	}
	err := rpc.ValidateParams("get_block_header_by_hash", params{Hash: "zz"})
	var vErr *rpc.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "get_block_header_by_hash", vErr.Method)

	err = rpc.ValidateParams("get_block_header_by_hash", params{Hash: strings.Repeat("a", 64)})
	assert.NoError(t, err)
}

// digestServer guards a JSON-RPC handler behind MD5 digest auth and
// records every request it sees.
type digestServer struct {
	realm    string
	username string
	password string

	mu    sync.Mutex
	nonce string

	requests atomic.Int32
	ncSeen   sync.Map // nc hex string -> struct{}
	pairSeen sync.Map // nonce:nc -> struct{}, a repeat is a replay
}

func newDigestServer(username, password string) *digestServer {
	return &digestServer{
		realm:    "nerva-rpc",
		username: username,
		password: password,
		nonce:    "a1b2c3d4e5f6",
	}
}

func (s *digestServer) rotateNonce(nonce string) {
	s.mu.Lock()
	s.nonce = nonce
	s.mu.Unlock()
}

func (s *digestServer) currentNonce() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nonce
}

func md5hex(in string) string {
	sum := md5.Sum([]byte(in))
	return hex.EncodeToString(sum[:])
}

func parseAuthParams(header string) map[string]string {
	rest, ok := strings.CutPrefix(header, "Digest ")
	if !ok {
		return nil
	}
	params := make(map[string]string)
	for _, part := range strings.Split(rest, ", ") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		params[k] = strings.Trim(v, `"`)
	}
	return params
}

func (s *digestServer) authorized(r *http.Request) bool {
	p := parseAuthParams(r.Header.Get("Authorization"))
	if p == nil {
		return false
	}
	nonce := s.currentNonce()
	if p["nonce"] != nonce || p["qop"] != "auth" {
		return false
	}
	if p["username"] != s.username {
		return false
	}
	s.ncSeen.Store(p["nc"], struct{}{})
	if _, dup := s.pairSeen.LoadOrStore(nonce+":"+p["nc"], struct{}{}); dup {
		return false
	}
	ha1 := md5hex(s.username + ":" + s.realm + ":" + s.password)
	ha2 := md5hex("POST:" + p["uri"])
	want := md5hex(ha1 + ":" + nonce + ":" + p["nc"] + ":" + p["cnonce"] + ":auth:" + ha2)
	return p["response"] == want
}

func (s *digestServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)
	if !s.authorized(r) {
		w.Header().Set("WWW-Authenticate",
			fmt.Sprintf(`Digest realm="%s", nonce="%s", qop="auth", algorithm=MD5`, s.realm, s.currentNonce()))
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	echoHandler(`{"status":"OK"}`)(w, r)
}

func TestDigestAuthFlow(t *testing.T) {
	srv := newDigestServer("user", "pass")
	c := newClient(t, srv, func(cfg *rpc.Config) {
		cfg.Username = "user"
		cfg.Password = "pass"
	})

	_, err := c.Call(context.Background(), "get_info", nil)
	require.NoError(t, err)
	// Exactly one challenge round trip plus the authorized retry.
	assert.Equal(t, int32(2), srv.requests.Load())

	// The negotiated session carries over: no new challenge.
	_, err = c.Call(context.Background(), "get_info", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), srv.requests.Load())

	_, ok := srv.ncSeen.Load("00000001")
	assert.True(t, ok)
	_, ok = srv.ncSeen.Load("00000002")
	assert.True(t, ok)
}

func TestDigestConcurrentNegotiation(t *testing.T) {
	// Two calls racing on a fresh client both receive the initial
	// challenge; the session must hand them distinct nc values, not
	// rewind the counter on the second install. The server treats a
	// repeated (nonce, nc) pair as a replay and rejects it.
	srv := newDigestServer("user", "pass")
	c := newClient(t, srv, func(cfg *rpc.Config) {
		cfg.Username = "user"
		cfg.Password = "pass"
	})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Call(context.Background(), "get_info", nil)
		}(i)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}

func TestDigestStaleNonceRenegotiates(t *testing.T) {
	srv := newDigestServer("user", "pass")
	c := newClient(t, srv, func(cfg *rpc.Config) {
		cfg.Username = "user"
		cfg.Password = "pass"
	})

	_, err := c.Call(context.Background(), "get_info", nil)
	require.NoError(t, err)

	// The server invalidates the nonce; the next call is rejected once
	// and succeeds on the retry with the fresh challenge.
	srv.rotateNonce("ffeeddccbbaa")
	_, err = c.Call(context.Background(), "get_info", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(4), srv.requests.Load())
}

func TestDigestExpiredContextConsumesNoNonce(t *testing.T) {
	srv := newDigestServer("user", "pass")
	c := newClient(t, srv, func(cfg *rpc.Config) {
		cfg.Username = "user"
		cfg.Password = "pass"
	})

	_, err := c.Call(context.Background(), "get_info", nil)
	require.NoError(t, err)
	primed := srv.requests.Load()

	// A call whose deadline already passed fails as a timeout before
	// anything reaches the wire or advances the nonce counter.
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	_, err = c.Call(ctx, "get_info", nil)
	var tErr *rpc.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, rpc.KindTimeout, tErr.Kind)
	assert.Equal(t, primed, srv.requests.Load())

	// The next call proves nothing was consumed: it carries the very
	// next nonce-count value and needs no renegotiation.
	_, err = c.Call(context.Background(), "get_info", nil)
	require.NoError(t, err)
	assert.Equal(t, primed+1, srv.requests.Load())
	_, ok := srv.ncSeen.Load("00000002")
	assert.True(t, ok)
	_, ok = srv.ncSeen.Load("00000003")
	assert.False(t, ok)
}

func TestDigestInvalidCredentials(t *testing.T) {
	srv := newDigestServer("user", "pass")
	c := newClient(t, srv, func(cfg *rpc.Config) {
		cfg.Username = "user"
		cfg.Password = "wrong"
	})

	_, err := c.Call(context.Background(), "get_info", nil)
	var authErr *rpc.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, rpc.KindInvalidCredentials, authErr.Kind)
	// One challenge, one failed retry; never a loop.
	assert.Equal(t, int32(2), srv.requests.Load())
}

func TestDigestCredentialsRequired(t *testing.T) {
	srv := newDigestServer("user", "pass")
	c := newClient(t, srv, nil)

	_, err := c.Call(context.Background(), "get_info", nil)
	var authErr *rpc.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, rpc.KindCredentialsRequired, authErr.Kind)
	assert.Equal(t, int32(1), srv.requests.Load())
}

func TestDigestUnsupportedChallenge(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("WWW-Authenticate", `Basic realm="nerva-rpc"`)
		w.WriteHeader(http.StatusUnauthorized)
	}), func(cfg *rpc.Config) {
		cfg.Username = "user"
		cfg.Password = "pass"
	})

	_, err := c.Call(context.Background(), "get_info", nil)
	var authErr *rpc.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, rpc.KindUnsupportedChallenge, authErr.Kind)
}

func TestDigestConcurrentNonceCounts(t *testing.T) {
	srv := newDigestServer("user", "pass")
	c := newClient(t, srv, func(cfg *rpc.Config) {
		cfg.Username = "user"
		cfg.Password = "pass"
	})

	// Prime the session so the concurrent calls share one challenge.
	_, err := c.Call(context.Background(), "get_info", nil)
	require.NoError(t, err)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Call(context.Background(), "get_info", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "call %d", i)
	}
	var distinct int
	srv.ncSeen.Range(func(_, _ any) bool {
		distinct++
		return true
	})
	assert.Equal(t, n+1, distinct)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := error(&rpc.TransportError{Kind: rpc.KindNetwork, Err: cause})
	assert.ErrorIs(t, err, cause)

	err = &rpc.ProtocolError{Kind: rpc.KindMalformed, Err: cause}
	assert.ErrorIs(t, err, cause)

	err = &rpc.AuthError{Kind: rpc.KindUnsupportedChallenge, Err: cause}
	assert.ErrorIs(t, err, cause)
}
