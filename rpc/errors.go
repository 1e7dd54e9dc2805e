package rpc

import (
	"encoding/json"
	"fmt"
)

// Well-known JSON-RPC 2.0 error codes, plus the generic daemon failure
// code shared by the Monero family.
const (
	ErrCodeParse          = -32700
	ErrCodeInvalidRequest = -32600
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternal       = -32603
	ErrCodeWrongParam     = -1
)

// Error is a method-level failure reported by the daemon itself, carrying
// the original code so callers can branch on it.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// IsMethodNotFound reports whether err is a daemon error with the
// method-not-found code.
func (e *Error) IsMethodNotFound() bool { return e.Code == ErrCodeMethodNotFound }

// IsInvalidParams reports whether err is a daemon error with the
// invalid-params code.
func (e *Error) IsInvalidParams() bool { return e.Code == ErrCodeInvalidParams }

// ValidationError is a parameter problem caught locally, before any
// network call is made.
type ValidationError struct {
	Method string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: invalid parameters: %s: %v", e.Method, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: invalid parameters: %s", e.Method, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// TransportKind classifies transport-level failures.
type TransportKind int

const (
	KindConnectionRefused TransportKind = iota + 1
	KindTimeout
	KindTLSFailure
	KindUnexpectedStatus
	KindNetwork
)

func (k TransportKind) String() string {
	switch k {
	case KindConnectionRefused:
		return "connection refused"
	case KindTimeout:
		return "timeout"
	case KindTLSFailure:
		return "tls failure"
	case KindUnexpectedStatus:
		return "unexpected status"
	case KindNetwork:
		return "network failure"
	default:
		return "unknown"
	}
}

// TransportError is a network or HTTP-level failure. Status is set only
// for KindUnexpectedStatus.
type TransportError struct {
	Kind   TransportKind
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Kind == KindUnexpectedStatus {
		return fmt.Sprintf("transport: unexpected status %d", e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("transport: %s", e.Kind)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure may be retried as transient.
func (e *TransportError) Timeout() bool { return e.Kind == KindTimeout }

// AuthKind classifies digest-authentication failures.
type AuthKind int

const (
	KindUnsupportedChallenge AuthKind = iota + 1
	KindInvalidCredentials
	KindCredentialsRequired
)

func (k AuthKind) String() string {
	switch k {
	case KindUnsupportedChallenge:
		return "unsupported challenge"
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindCredentialsRequired:
		return "credentials required"
	default:
		return "unknown"
	}
}

// AuthError is a digest-authentication negotiation failure.
type AuthError struct {
	Kind AuthKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("auth: %s", e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }

// ProtocolKind classifies responses that violate the JSON-RPC contract.
type ProtocolKind int

const (
	KindMalformed ProtocolKind = iota + 1
	KindIDMismatch
	KindUnexpectedShape
)

func (k ProtocolKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed response"
	case KindIDMismatch:
		return "id mismatch"
	case KindUnexpectedShape:
		return "unexpected result shape"
	default:
		return "unknown"
	}
}

// ProtocolError means the daemon's response violates the JSON-RPC
// contract: a daemon version mismatch or a bug, never recovered silently.
type ProtocolError struct {
	Kind   ProtocolKind
	Detail string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("protocol: %s: %s", e.Kind, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("protocol: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("protocol: %s", e.Kind)
}

func (e *ProtocolError) Unwrap() error { return e.Err }
