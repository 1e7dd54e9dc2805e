package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChallenge(t *testing.T) {
	chal, err := ParseChallenge(`Digest realm="monero-rpc", nonce="dcd98b7102dd2f0e8b11d0f600bfb0c093", qop="auth", algorithm=MD5, opaque="5ccc069c403ebaf9f0171e9517f40e41"`)
	require.NoError(t, err)
	assert.Equal(t, "monero-rpc", chal.Realm)
	assert.Equal(t, "dcd98b7102dd2f0e8b11d0f600bfb0c093", chal.Nonce)
	assert.Equal(t, "auth", chal.QOP)
	assert.Equal(t, "MD5", chal.Algorithm)
	assert.Equal(t, "5ccc069c403ebaf9f0171e9517f40e41", chal.Opaque)
	assert.False(t, chal.Stale)
}

func TestParseChallengeSHA256(t *testing.T) {
	chal, err := ParseChallenge(`Digest realm="r", nonce="n", qop="auth", algorithm=SHA-256, stale=true`)
	require.NoError(t, err)
	assert.Equal(t, "SHA-256", chal.Algorithm)
	assert.True(t, chal.Stale)
}

func TestParseChallengeQuotedComma(t *testing.T) {
	chal, err := ParseChallenge(`Digest realm="a, b", nonce="n"`)
	require.NoError(t, err)
	assert.Equal(t, "a, b", chal.Realm)
}

func TestParseChallengeRejects(t *testing.T) {
	cases := map[string]struct {
		header string
		want   error
	}{
		"basic scheme":  {`Basic realm="r"`, ErrNotDigest},
		"empty":         {``, ErrNotDigest},
		"no nonce":      {`Digest realm="r"`, ErrMissingParams},
		"no realm":      {`Digest nonce="n"`, ErrMissingParams},
		"bad algorithm": {`Digest realm="r", nonce="n", algorithm=MD5-sess`, ErrUnsupportedAlgorithm},
		"bad qop":       {`Digest realm="r", nonce="n", qop="auth-int"`, ErrUnsupportedQOP},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseChallenge(tc.header)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// Vector from RFC 2617 section 3.5.
func TestAuthorizeRFCVector(t *testing.T) {
	chal := &Challenge{
		Realm: "testrealm@host.com",
		Nonce: "dcd98b7102dd2f0e8b11d0f600bfb0c093",
		QOP:   "auth",
	}
	header := authorize(chal, "Mufasa", "Circle Of Life", "GET", "/dir/index.html", "0a4f113b", 1)
	assert.Contains(t, header, `response="6629fae49393a05397450978507c4ef1"`)
	assert.Contains(t, header, `nc=00000001`)
	assert.Contains(t, header, `username="Mufasa"`)
	assert.Contains(t, header, `uri="/dir/index.html"`)
	assert.Contains(t, header, `qop=auth`)
}

func TestAuthorizeNoQOP(t *testing.T) {
	chal := &Challenge{Realm: "r", Nonce: "n"}
	header := authorize(chal, "u", "p", "POST", "/json_rpc", "", 0)
	assert.NotContains(t, header, "nc=")
	assert.NotContains(t, header, "cnonce=")
	assert.Contains(t, header, `response="`)
}

func TestSessionNonceCount(t *testing.T) {
	s := NewSession("u", "p")
	assert.False(t, s.Active())

	_, err := s.Authorize("POST", "/json_rpc")
	assert.ErrorIs(t, err, ErrNoChallenge)

	s.Accept(&Challenge{Realm: "r", Nonce: "n", QOP: "auth"})
	assert.True(t, s.Active())

	h1, err := s.Authorize("POST", "/json_rpc")
	require.NoError(t, err)
	assert.Contains(t, h1, "nc=00000001")

	h2, err := s.Authorize("POST", "/json_rpc")
	require.NoError(t, err)
	assert.Contains(t, h2, "nc=00000002")
	assert.Equal(t, uint32(2), s.NonceCount())

	// A fresh challenge restarts the counter with a new client nonce.
	s.Accept(&Challenge{Realm: "r", Nonce: "n2", QOP: "auth"})
	h3, err := s.Authorize("POST", "/json_rpc")
	require.NoError(t, err)
	assert.Contains(t, h3, "nc=00000001")

	s.Reset()
	assert.False(t, s.Active())
}

func TestAcceptSameNoncePreservesCounter(t *testing.T) {
	s := NewSession("u", "p")
	s.Accept(&Challenge{Realm: "r", Nonce: "n", QOP: "auth"})

	h1, err := s.Authorize("POST", "/json_rpc")
	require.NoError(t, err)
	assert.Contains(t, h1, "nc=00000001")

	// Reinstalling a challenge with the same server nonce must not
	// rewind the counter, or the next request replays nc=00000001.
	s.Accept(&Challenge{Realm: "r", Nonce: "n", QOP: "auth"})
	h2, err := s.Authorize("POST", "/json_rpc")
	require.NoError(t, err)
	assert.Contains(t, h2, "nc=00000002")
}
