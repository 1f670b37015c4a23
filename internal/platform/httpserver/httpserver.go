package httpserver

import (
	"net/http"
	"time"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
)

// New builds the server for the mirror's read-only surface. Only the header
// read is timed out here; response latency is bounded by the request context
// each handler already carries.
func New(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	timeout := cfg.ReadHeaderTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: timeout,
	}
}
