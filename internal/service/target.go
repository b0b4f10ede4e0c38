package service

import "strings"

// resolveTarget derives the outbound URL from the inbound path.
//
// The inbound path is split on "/", the mount prefix's segments are dropped
// by count, and the remainder is joined back with "/" and concatenated onto
// the configured target URL as-is. There is deliberately no escaping,
// normalization or validation here: whether base and remainder join into a
// well-formed URL is a deployment-time concern (the target URL carries the
// trailing slash). An inbound path shorter than the mount prefix degrades to
// the bare target URL.
func (s *ProxyService) resolveTarget(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return s.cfg.Upstream.TargetURL
	}
	segments := strings.Split(trimmed, "/")
	if len(segments) <= s.prefixSegments {
		return s.cfg.Upstream.TargetURL
	}
	return s.cfg.Upstream.TargetURL + strings.Join(segments[s.prefixSegments:], "/")
}

// countSegments returns the number of path segments in a mount path.
func countSegments(mountPath string) int {
	trimmed := strings.Trim(mountPath, "/")
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "/"))
}
