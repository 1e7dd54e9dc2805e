// Package nerva provides typed Go clients for the JSON-RPC interfaces of
// the Nerva daemon (nervad) and the Nerva wallet (nerva-wallet-rpc).
//
// The daemon and wallet subpackages expose one method per RPC method; the
// rpc subpackage carries the shared request/response engine and the error
// taxonomy callers branch on.
package nerva

import (
	"crypto/rand"
	"encoding/hex"
)

// Version is the library version.
const Version = "1.0.0"

// NewPaymentID returns a random 64-character hex payment id suitable for
// identifying a transaction.
func NewPaymentID() string {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
