// Package service implements the request transformation pipeline: target
// resolution, header filtering, body translation and the upstream call.
package service

import (
	"log/slog"

	"onehop-proxy/internal/client"
	"onehop-proxy/internal/config"
	"onehop-proxy/internal/diag"
	"onehop-proxy/internal/model"
)

// ProxyService turns one inbound request into one outbound upstream call.
// It holds no mutable state; concurrent requests are fully independent.
type ProxyService struct {
	client *client.UpstreamClient
	cfg    *config.Config
	logger *slog.Logger
	errlog *diag.ErrorLog

	excluded       map[string]bool
	prefixSegments int
}

// NewProxyService creates a ProxyService.
func NewProxyService(c *client.UpstreamClient, cfg *config.Config, logger *slog.Logger, errlog *diag.ErrorLog) *ProxyService {
	excluded := make(map[string]bool, len(cfg.Upstream.ExcludedHeaders))
	for _, name := range cfg.Upstream.ExcludedHeaders {
		excluded[name] = true
	}

	return &ProxyService{
		client:         c,
		cfg:            cfg,
		logger:         logger.With("component", "proxy_service"),
		errlog:         errlog,
		excluded:       excluded,
		prefixSegments: countSegments(cfg.Server.MountPath),
	}
}

// Forward runs the pipeline and issues the upstream call synchronously.
// A transport failure is recorded in the error log and returned as-is so the
// handler can surface the transport's own message in the 502 body.
func (s *ProxyService) Forward(pr *model.ProxyRequest) (*model.UpstreamResponse, error) {
	target := s.resolveTarget(pr.Path)
	headers := s.filterHeaders(pr)
	payload := translatePayload(pr)

	s.logger.Debug("forwarding request",
		"method", pr.Method,
		"target", target,
		"payload_kind", payload.Kind,
	)

	resp, err := s.client.Do(pr.Ctx, pr.Method, target, headers, payload)
	if err != nil {
		s.errlog.TransportFailure(pr.Method, target, err)
		return nil, err
	}
	return resp, nil
}
