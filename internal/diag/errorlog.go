// Package diag provides the append-only transport-failure log sink.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"onehop-proxy/internal/config"
)

// timestampLayout is an ISO-like local timestamp without zone offset.
const timestampLayout = "2006-01-02 15:04:05"

// ErrorLog appends one fixed-format line per upstream transport failure.
// Writes are fire-and-forget: errors from the sink are swallowed so the
// request path can never block or fail on diagnostics.
type ErrorLog struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// New creates an ErrorLog writing to the configured rolling file, or to
// stderr when no path is configured.
func New(cfg *config.Config) *ErrorLog {
	var w io.Writer = os.Stderr
	if cfg.ErrorLog.Path != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.ErrorLog.Path,
			MaxSize:    cfg.ErrorLog.MaxSizeMB,
			MaxBackups: cfg.ErrorLog.MaxBackups,
		}
	}
	return NewWithWriter(w)
}

// NewWithWriter creates an ErrorLog writing to an arbitrary sink.
func NewWithWriter(w io.Writer) *ErrorLog {
	return &ErrorLog{w: w, now: time.Now}
}

// TransportFailure records a failed upstream call. The line format is kept
// stable for existing log tooling that greps these entries.
func (l *ErrorLog) TransportFailure(method, url string, err error) {
	line := fmt.Sprintf("[%s] cURL Error for [%s] %s\n%s\n",
		l.now().Format(timestampLayout), method, url, err)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, line)
}
