package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"onehop-proxy/internal/model"
	"onehop-proxy/internal/relay"
	"onehop-proxy/internal/service"
)

// ProxyHandler forwards inbound requests through the transformation pipeline.
type ProxyHandler struct {
	service *service.ProxyService
	logger  *slog.Logger
}

// NewProxyHandler creates a ProxyHandler.
func NewProxyHandler(svc *service.ProxyService, logger *slog.Logger) *ProxyHandler {
	return &ProxyHandler{
		service: svc,
		logger:  logger.With("component", "proxy_handler"),
	}
}

// Handle runs one inbound request through the pipeline and emits the relayed
// upstream response. A transport failure is the only caller-visible error:
// it becomes a 502 with the transport's message in the JSON body.
func (h *ProxyHandler) Handle(c echo.Context) error {
	req := c.Request()

	pr, cleanup, err := buildProxyRequest(c)
	// Multipart temp storage is released on every exit path, the 502
	// included.
	defer cleanup()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body").SetInternal(err)
	}

	resp, err := h.service.Forward(pr)
	if err != nil {
		h.logger.Error("upstream transport failure",
			"err", err,
			"method", req.Method,
			"path", req.URL.Path,
		)
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "Failed to proxy request: " + err.Error(),
		})
	}

	res := relay.Parse(resp)

	hdr := c.Response().Header()
	for _, p := range res.Headers {
		hdr.Add(p.Name, p.Value)
	}
	c.Response().WriteHeader(res.StatusCode)

	if _, err := c.Response().Write(res.Body); err != nil {
		// Status and headers are already on the wire; the caller sees a
		// truncated body. Log and move on.
		h.logger.Error("writing response body", "err", err, "path", req.URL.Path)
	}

	return nil
}

// buildProxyRequest assembles the pipeline input from the inbound request.
// The returned cleanup releases any multipart temp storage and is always
// safe to call.
func buildProxyRequest(c echo.Context) (*model.ProxyRequest, func(), error) {
	req := c.Request()
	cleanup := func() {}

	pr := &model.ProxyRequest{
		Ctx:         req.Context(),
		Method:      req.Method,
		Path:        req.URL.Path,
		Header:      req.Header,
		ContentType: req.Header.Get(echo.HeaderContentType),
		RemoteAddr:  remoteHost(req.RemoteAddr),
	}

	if !service.HasBody(req.Method) {
		return pr, cleanup, nil
	}

	switch {
	case strings.Contains(pr.ContentType, "multipart/form-data"):
		form, err := c.MultipartForm()
		if err != nil {
			return nil, cleanup, fmt.Errorf("parse multipart form: %w", err)
		}
		cleanup = func() { _ = form.RemoveAll() }
		pr.Form = url.Values(form.Value)
		pr.Uploads = make(map[string][]model.FileUpload, len(form.File))
		for name, headers := range form.File {
			uploads := make([]model.FileUpload, 0, len(headers))
			for _, fh := range headers {
				uploads = append(uploads, model.FileUpload{
					Filename:    fh.Filename,
					ContentType: fh.Header.Get(echo.HeaderContentType),
					Size:        fh.Size,
					Status:      model.UploadOK,
					Open: func() (io.ReadCloser, error) {
						f, err := fh.Open()
						return f, err
					},
				})
			}
			pr.Uploads[name] = uploads
		}
	case strings.Contains(pr.ContentType, "application/x-www-form-urlencoded"):
		if err := req.ParseForm(); err != nil {
			return nil, cleanup, fmt.Errorf("parse form: %w", err)
		}
		pr.Form = req.PostForm
	default:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, cleanup, fmt.Errorf("read request body: %w", err)
		}
		pr.RawBody = body
	}

	return pr, cleanup, nil
}

// remoteHost strips the port from a net.Addr-style "host:port" string.
func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
