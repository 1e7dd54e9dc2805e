// Package digest implements the client side of HTTP digest access
// authentication (RFC 7616) as used by the Monero-family RPC daemons.
//
// A Session is owned by exactly one rpc client. It caches the server
// challenge and advances the nonce counter under a mutex so concurrent
// requests never reuse an identical nonce value.
package digest

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotDigest            = errors.New("digest: challenge is not a digest challenge")
	ErrMissingParams        = errors.New("digest: challenge lacks realm or nonce")
	ErrUnsupportedAlgorithm = errors.New("digest: unsupported algorithm")
	ErrUnsupportedQOP       = errors.New("digest: unsupported qop")
	ErrNoChallenge          = errors.New("digest: no challenge negotiated")
)

// Challenge holds the parameters of a WWW-Authenticate digest challenge.
type Challenge struct {
	Realm     string
	Nonce     string
	Opaque    string
	Algorithm string // "", "MD5" or "SHA-256"
	QOP       string // "" or "auth"
	Stale     bool
}

// ParseChallenge parses the value of a WWW-Authenticate header. Only the
// digest scheme with the MD5 or SHA-256 algorithm and qop "auth" (or no
// qop) is accepted.
func ParseChallenge(header string) (*Challenge, error) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(header), " ")
	if !strings.EqualFold(scheme, "Digest") {
		return nil, ErrNotDigest
	}

	c := new(Challenge)
	for rest != "" {
		var k, v string
		rest, k, v = splitParam(rest)
		if k == "" {
			break
		}
		switch strings.ToLower(k) {
		case "realm":
			c.Realm = v
		case "nonce":
			c.Nonce = v
		case "opaque":
			c.Opaque = v
		case "algorithm":
			c.Algorithm = v
		case "qop":
			c.QOP = v
		case "stale":
			c.Stale = strings.EqualFold(v, "true")
		}
	}

	if c.Realm == "" || c.Nonce == "" {
		return nil, ErrMissingParams
	}
	switch strings.ToUpper(c.Algorithm) {
	case "", "MD5", "SHA-256":
	default:
		return nil, errors.Wrap(ErrUnsupportedAlgorithm, c.Algorithm)
	}
	if c.QOP != "" && !hasQOP(c.QOP, "auth") {
		return nil, errors.Wrap(ErrUnsupportedQOP, c.QOP)
	}
	return c, nil
}

// splitParam consumes one key=value pair from a comma-separated parameter
// list, unquoting the value if needed.
func splitParam(s string) (rest, key, value string) {
	s = strings.TrimLeft(s, " \t,")
	if s == "" {
		return "", "", ""
	}
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", "", ""
	}
	key = strings.TrimSpace(s[:eq])
	s = s[eq+1:]
	if strings.HasPrefix(s, `"`) {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return "", key, s[1:]
		}
		return s[end+2:], key, s[1 : end+1]
	}
	end := strings.IndexByte(s, ',')
	if end < 0 {
		return "", key, strings.TrimSpace(s)
	}
	return s[end+1:], key, strings.TrimSpace(s[:end])
}

func hasQOP(list, want string) bool {
	for _, q := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(q), want) {
			return true
		}
	}
	return false
}

// Session is the challenge state negotiated with one server. The zero
// value is not usable; use NewSession.
type Session struct {
	username string
	password string

	mu     sync.Mutex
	chal   *Challenge
	cnonce string
	nc     uint32
}

// NewSession returns a session for the given credentials. The session
// holds no challenge until Accept is called.
func NewSession(username, password string) *Session {
	return &Session{username: username, password: password}
}

// Active reports whether a challenge has been negotiated.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chal != nil
}

// Accept installs a fresh challenge, resetting the nonce counter and
// generating a new client nonce. A previous challenge, if any, is
// discarded. Concurrent first requests can each carry back the same
// server nonce; reinstalling an unchanged nonce must not rewind the
// counter, or two requests would go out with an identical nc value.
func (s *Session) Accept(c *Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chal != nil && s.chal.Nonce == c.Nonce {
		s.chal = c
		return
	}
	s.chal = c
	s.cnonce = strings.ReplaceAll(uuid.NewString(), "-", "")
	s.nc = 0
}

// Reset drops the cached challenge so the next request is sent
// unauthenticated.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chal = nil
	s.nc = 0
}

// NonceCount returns the current value of the nonce counter.
func (s *Session) NonceCount() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nc
}

// Authorize computes the Authorization header value for one request,
// consuming the next nonce-count value. Call it only for a request that
// will actually be sent.
func (s *Session) Authorize(method, uri string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chal == nil {
		return "", ErrNoChallenge
	}
	s.nc++
	return authorize(s.chal, s.username, s.password, method, uri, s.cnonce, s.nc), nil
}

func authorize(c *Challenge, username, password, method, uri, cnonce string, nc uint32) string {
	h := hasher(c.Algorithm)
	ha1 := h(username + ":" + c.Realm + ":" + password)
	ha2 := h(method + ":" + uri)

	var response string
	var b strings.Builder
	fmt.Fprintf(&b, `Digest username="%s", realm="%s", nonce="%s", uri="%s"`,
		username, c.Realm, c.Nonce, uri)
	if c.QOP != "" {
		ncHex := fmt.Sprintf("%08x", nc)
		response = h(ha1 + ":" + c.Nonce + ":" + ncHex + ":" + cnonce + ":auth:" + ha2)
		fmt.Fprintf(&b, `, qop=auth, nc=%s, cnonce="%s"`, ncHex, cnonce)
	} else {
		response = h(ha1 + ":" + c.Nonce + ":" + ha2)
	}
	fmt.Fprintf(&b, `, response="%s"`, response)
	if c.Algorithm != "" {
		fmt.Fprintf(&b, `, algorithm=%s`, c.Algorithm)
	}
	if c.Opaque != "" {
		fmt.Fprintf(&b, `, opaque="%s"`, c.Opaque)
	}
	return b.String()
}

func hasher(algorithm string) func(string) string {
	var newHash func() hash.Hash
	switch strings.ToUpper(algorithm) {
	case "SHA-256":
		newHash = sha256.New
	default:
		newHash = md5.New
	}
	return func(s string) string {
		h := newHash()
		h.Write([]byte(s))
		return hex.EncodeToString(h.Sum(nil))
	}
}
