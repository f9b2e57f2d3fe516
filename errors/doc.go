// Package errors provides the structured AppError type with machine-readable
// codes, retryable detection and HTTP status mapping.
package errors
