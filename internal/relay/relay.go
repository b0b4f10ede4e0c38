// Package relay reconstructs the caller-facing response from the combined
// upstream buffer.
package relay

import (
	"strings"

	"onehop-proxy/internal/model"
)

// droppedHeaders are parsed from the upstream header block but never
// re-emitted: the downstream connection negotiates its own framing.
var droppedHeaders = map[string]bool{
	"transfer-encoding": true,
	"connection":        true,
}

// Result is the response to emit to the caller: status verbatim, headers in
// parse order with duplicates preserved, body bytes untouched.
type Result struct {
	StatusCode int
	Headers    []model.HeaderPair
	Body       []byte
}

// Parse splits the combined buffer at the reported header-size offset and
// parses the header block into name/value pairs. Each line is split on the
// first colon with surrounding whitespace trimmed; lines without a colon
// (the status line included) are skipped silently.
func Parse(ur *model.UpstreamResponse) Result {
	off := ur.HeaderSize
	if off < 0 {
		off = 0
	}
	if off > len(ur.Combined) {
		off = len(ur.Combined)
	}

	var pairs []model.HeaderPair
	for _, line := range strings.Split(string(ur.Combined[:off]), "\n") {
		line = strings.TrimRight(line, "\r")
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if name == "" || droppedHeaders[strings.ToLower(name)] {
			continue
		}
		pairs = append(pairs, model.HeaderPair{Name: name, Value: value})
	}

	return Result{
		StatusCode: ur.StatusCode,
		Headers:    pairs,
		Body:       ur.Combined[off:],
	}
}
