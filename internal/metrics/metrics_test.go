package metrics

import "testing"

func TestNew_RegistersCollectors(t *testing.T) {
	m := New()

	m.RequestsTotal.WithLabelValues("GET", "200", "/relay").Inc()
	m.UpstreamResponses.WithLabelValues("GET", "200").Inc()
	m.UpstreamDuration.WithLabelValues("GET").Observe(0.01)

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	want := map[string]bool{
		"onehop_proxy_http_requests_total":               false,
		"onehop_proxy_upstream_responses_total":          false,
		"onehop_proxy_upstream_request_duration_seconds": false,
	}
	for _, f := range families {
		if _, ok := want[f.GetName()]; ok {
			want[f.GetName()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("metric %q not gathered", name)
		}
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GET", "GET"},
		{"POST", "POST"},
		{"DELETE", "DELETE"},
		{"XYZZY", "other"},
		{"get", "other"},
	}

	for _, tt := range tests {
		if got := NormalizeMethod(tt.in); got != tt.want {
			t.Errorf("NormalizeMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePath(t *testing.T) {
	prefixes := []string{"/relay", "/healthz", "/status", "/metrics"}

	tests := []struct {
		in   string
		want string
	}{
		{"/relay", "/relay"},
		{"/relay/v1/users", "/relay"},
		{"/healthz", "/healthz"},
		{"/relayother", "other"},
		{"/nope", "other"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.in, prefixes); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
