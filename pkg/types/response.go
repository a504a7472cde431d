// Package types holds the wire envelopes every MedStock endpoint answers
// with: {"data": ...} on success, {"error": {...}} on failure.
package types

// SuccessEnvelope wraps a successful response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Details carries structured
// context such as the available stock on a rejected sale.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps a failed response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
