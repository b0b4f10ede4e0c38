// Package client provides the outbound HTTP client for the upstream origin.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httputil"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"onehop-proxy/internal/config"
	"onehop-proxy/internal/metrics"
	"onehop-proxy/internal/model"
)

// UpstreamClient issues the single outbound call per inbound request.
// Redirects are followed transparently by the underlying http.Client.
type UpstreamClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	userAgent  string
}

// NewUpstreamClient creates an UpstreamClient with connection pooling and the
// configured call timeout. The metrics parameter is optional; pass nil to
// disable upstream metrics recording.
func NewUpstreamClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *UpstreamClient {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Upstream.IdleConnections,
		MaxIdleConnsPerHost: cfg.Upstream.IdleConnections,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	return &UpstreamClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger:    logger.With("component", "upstream_client"),
		metrics:   m,
		userAgent: cfg.Upstream.UserAgent,
	}
}

// Do executes one synchronous HTTP call and captures the raw response header
// block alongside the fully read body in a single combined buffer, reporting
// the header/body split offset. When redirects were followed, the buffer
// holds the final response only.
//
// A transport-level failure is returned unwrapped: its message is the
// caller-visible error text.
func (c *UpstreamClient) Do(ctx context.Context, method, url string, headers *model.HeaderList, payload model.Payload) (*model.UpstreamResponse, error) {
	body, contentType, err := encodePayload(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header = headers.HTTPHeader()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("upstream request", "method", method, "url", url)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()

	labelMethod := metrics.NormalizeMethod(method)

	if err != nil {
		if c.metrics != nil {
			c.metrics.UpstreamDuration.WithLabelValues(labelMethod).Observe(duration)
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if c.metrics != nil {
		status := strconv.Itoa(resp.StatusCode)
		c.metrics.UpstreamDuration.WithLabelValues(labelMethod).Observe(duration)
		c.metrics.UpstreamResponses.WithLabelValues(labelMethod, status).Inc()
	}

	head, err := httputil.DumpResponse(resp, false)
	if err != nil {
		return nil, fmt.Errorf("capture response header block: %w", err)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	return &model.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Combined:   append(head, b...),
		HeaderSize: len(head),
	}, nil
}

// encodePayload renders a payload as the request body reader. For multipart
// payloads it also returns the boundary-bearing content type the transport
// must send.
func encodePayload(p model.Payload) (io.Reader, string, error) {
	switch p.Kind {
	case model.PayloadRaw:
		return bytes.NewReader(p.Raw), "", nil
	case model.PayloadURLEncoded:
		return strings.NewReader(p.Encoded), "", nil
	case model.PayloadMultipart:
		return encodeMultipart(p)
	default:
		return http.NoBody, "", nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(p model.Payload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range p.Plain {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", f.Name, err)
		}
	}

	for _, f := range p.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Name), quoteEscaper.Replace(f.Filename)))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %q: %w", f.Name, err)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("open upload %q: %w", f.Name, err)
		}
		_, err = io.Copy(part, rc)
		_ = rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("copy upload %q: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finish multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
