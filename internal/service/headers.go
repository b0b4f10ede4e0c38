package service

import (
	"net/http"
	"sort"
	"strings"

	"onehop-proxy/internal/model"
)

// authorizationSources are checked in priority order when the outbound set
// has no Authorization header yet. The redirect and module variants cover
// front ends that rename the header while rewriting requests.
var authorizationSources = []string{
	"Authorization",
	"Redirect-Http-Authorization",
	"X-Http-Authorization",
}

// filterHeaders computes the outbound header list from the inbound headers
// plus policy. It cannot fail; a missing source value becomes an empty
// string field rather than an error.
func (s *ProxyService) filterHeaders(pr *model.ProxyRequest) *model.HeaderList {
	out := &model.HeaderList{}

	// Inbound http.Header is a map, so iterate over sorted keys for a
	// deterministic outbound order. All values of a kept key survive.
	names := make([]string, 0, len(pr.Header))
	for name := range pr.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if s.excluded[strings.ToLower(name)] {
			continue
		}
		for _, v := range pr.Header[name] {
			out.Add(name, v)
		}
	}

	// The front end may report a content type out-of-band even when the
	// header set lacks one.
	if _, ok := out.Get("Content-Type"); !ok && pr.ContentType != "" && !s.excluded["content-type"] {
		out.Add("Content-Type", pr.ContentType)
	}

	// A multipart content type must not survive the hop: the transport
	// generates its own boundary-bearing Content-Type for the re-encoded
	// field set.
	if ct, ok := out.Get("Content-Type"); ok && strings.Contains(ct, "multipart/form-data") {
		out.Del("Content-Type")
	}

	if s.cfg.Upstream.ForwardIP {
		xff := pr.Header.Get("X-Forwarded-For")
		if xff == "" {
			xff = pr.RemoteAddr
		}
		// Last value wins; no trust-chaining of client-supplied entries.
		out.Set("X-Forwarded-For", xff)
	}

	// The Authorization key always exists in the outbound set, even when
	// every source is absent and the value is empty.
	if _, ok := out.Get("Authorization"); !ok {
		out.Set("Authorization", resolveAuthorization(pr.Header))
	}

	return out
}

// resolveAuthorization returns the first non-empty authorization source, or
// the empty string when none is present.
func resolveAuthorization(h http.Header) string {
	for _, name := range authorizationSources {
		if v := h.Get(name); v != "" {
			return v
		}
	}
	return ""
}
