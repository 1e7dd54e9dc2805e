// Package rpc implements the JSON-RPC 2.0 engine shared by the daemon and
// wallet clients: envelope encoding and decoding, the authenticated HTTP
// transport, and the error taxonomy callers branch on.
package rpc

import (
	"encoding/json"
	"net/http"
)

// HTTP performs the actual network round trip. *http.Client satisfies it.
type HTTP interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request is a JSON-RPC 2.0 request envelope. Optional parameters are
// omitted, not sent as null: request structs use pointer fields with
// omitempty so absent values never reach the wire.
type Request struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response envelope. Version and ID are
// pointers so a missing field is distinguishable from a zero value.
type Response struct {
	Version *string         `json:"jsonrpc"`
	ID      *uint64         `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// decodeResponse checks the envelope of a /json_rpc reply and returns the
// raw result, the daemon's error, or a ProtocolError.
func decodeResponse(body []byte, want uint64) (json.RawMessage, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ProtocolError{Kind: KindMalformed, Err: err}
	}
	if resp.Version == nil || *resp.Version != "2.0" {
		return nil, &ProtocolError{Kind: KindMalformed, Detail: "missing or wrong jsonrpc version"}
	}
	if resp.ID == nil {
		return nil, &ProtocolError{Kind: KindMalformed, Detail: "missing id"}
	}
	if *resp.ID != want {
		return nil, &ProtocolError{
			Kind:   KindIDMismatch,
			Detail: "response does not correlate with request",
		}
	}
	if (resp.Result == nil) == (resp.Error == nil) {
		return nil, &ProtocolError{Kind: KindMalformed, Detail: "response must carry exactly one of result or error"}
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Result, nil
}

// DecodeResult unmarshals a result object into out after checking that
// every required top-level key is present. A missing required key is a
// ProtocolError with KindUnexpectedShape, never a silent zero value.
func DecodeResult(raw json.RawMessage, out any, required ...string) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return &ProtocolError{Kind: KindMalformed, Err: err}
	}
	for _, k := range required {
		if _, ok := keys[k]; !ok {
			return &ProtocolError{Kind: KindUnexpectedShape, Detail: "result lacks " + k}
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ProtocolError{Kind: KindUnexpectedShape, Err: err}
	}
	return nil
}
