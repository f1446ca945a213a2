// Package rpc implements the query/mutation wire shape the storefront
// services speak to each other: a named operation plus a variables map,
// answered by either a data payload or a list of error messages.
package rpc

import "encoding/json"

// Request is the envelope posted to a peer's /rpc endpoint.
type Request struct {
	Operation string          `json:"operation"`
	Variables json.RawMessage `json:"variables,omitempty"`
}

// Response carries either Data or a non-empty Errors list, never both.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []ErrorMessage  `json:"errors,omitempty"`
}

// ErrorMessage is one application-level failure. Code is a stable,
// machine-readable discriminator; Message is for humans.
type ErrorMessage struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Stable error codes carried on the wire.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidState      = "INVALID_STATE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnsupported       = "UNSUPPORTED"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL"
)
