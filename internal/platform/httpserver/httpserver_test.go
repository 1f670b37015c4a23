package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
)

func TestNewAppliesConfig(t *testing.T) {
	handler := http.NewServeMux()
	srv := New(config.HTTPConfig{Addr: ":9090", ReadHeaderTimeout: 2 * time.Second}, handler)

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 2*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, http.Handler(handler), srv.Handler)
}

func TestNewDefaultsHeaderTimeout(t *testing.T) {
	srv := New(config.HTTPConfig{Addr: ":9090"}, nil)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
}
