// Package llm defines the provider-agnostic request shape for the generative
// backend. A request is a system instruction plus an ordered list of parts;
// the first part is always the assembled prompt text.
package llm

import (
	"context"
	"errors"
)

// Part is one atomic unit of request content. The union is closed: the only
// implementations are TextPart and BinaryPart, and consumers switch
// exhaustively over both.
type Part interface {
	isPart()
}

// TextPart carries literal text.
type TextPart struct {
	Text string
}

// BinaryPart carries base64-encoded bytes with a declared mime type.
type BinaryPart struct {
	Data     string
	MimeType string
}

func (TextPart) isPart()   {}
func (BinaryPart) isPart() {}

// Request is one backend-ready analysis request.
type Request struct {
	SystemInstruction string
	Parts             []Part
}

// Client abstracts the generative backend. Generate blocks until the backend
// returns text or fails; there is no streaming and no cancellation beyond ctx.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var (
	// ErrEmptyResponse is returned when the backend answers without any
	// usable text.
	ErrEmptyResponse = errors.New("backend returned no text")

	// ErrNotConfigured is returned by the placeholder client when no API
	// credential was present at startup.
	ErrNotConfigured = errors.New("backend client not configured")
)

// PlaceholderClient stands in when no credential is configured. Every call
// fails before any network I/O.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}
