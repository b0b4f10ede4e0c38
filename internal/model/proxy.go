// Package model defines shared types for the proxy.
package model

import (
	"context"
	"net/http"
	"net/url"
)

// ProxyRequest represents a client request to be forwarded upstream.
// All fields are request-scoped; nothing here outlives one invocation.
type ProxyRequest struct {
	Ctx    context.Context
	Method string
	Path   string
	Header http.Header

	// ContentType is the content type reported by the server front end,
	// used when no Content-Type header survived filtering.
	ContentType string

	// RemoteAddr is the caller's network address (host only, no port).
	RemoteAddr string

	// RawBody holds the unparsed inbound body bytes for content types the
	// front end did not parse as a form.
	RawBody []byte

	// Form holds parsed form fields for urlencoded and multipart bodies.
	Form url.Values

	// Uploads maps a multipart field name to the files received under it.
	Uploads map[string][]FileUpload
}

// UpstreamResponse is the upstream reply as captured by the invoker: the raw
// header block and body live in one combined buffer, split at HeaderSize.
type UpstreamResponse struct {
	StatusCode int
	Combined   []byte
	HeaderSize int
}
