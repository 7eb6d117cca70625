package service

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vocdoni/ecc-elgamal-sandbox/api"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	"github.com/vocdoni/ecc-elgamal-sandbox/storage"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// APIService represents a service that manages the HTTP API server.
type APIService struct {
	storage    *storage.Storage
	api        *api.API
	mu         sync.Mutex
	cancel     context.CancelFunc
	host       string
	port       int
	maxModulus int64
}

// NewAPI creates a new APIService instance. A maxModulus of 0 uses
// api.DefaultMaxModulus. The storage is owned by the caller, it is not
// closed when the service stops.
func NewAPI(storage *storage.Storage, host string, port int, maxModulus int64) *APIService {
	return &APIService{
		storage:    storage,
		host:       host,
		port:       port,
		maxModulus: maxModulus,
	}
}

// Start begins the API server. It returns an error if the service
// is already running or if it fails to start. The server is stopped when
// ctx is cancelled or Stop is called.
func (as *APIService) Start(ctx context.Context) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.cancel != nil {
		return errors.New("service already running")
	}

	ctx, cancel := context.WithCancel(ctx)

	// Create API instance with existing storage
	a, err := api.New(&api.APIConfig{
		Host:       as.host,
		Port:       as.port,
		Storage:    as.storage,
		MaxModulus: as.maxModulus,
	})
	if err != nil {
		cancel()
		return errors.Wrap(err, "failed to start API server")
	}
	as.api, as.cancel = a, cancel

	go func() {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		if err := a.Shutdown(sctx); err != nil {
			log.Warnw("failed to shutdown API server", "error", err.Error())
		}
	}()
	return nil
}

// Stop halts the API server.
func (as *APIService) Stop() {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.cancel != nil {
		as.cancel()
		as.cancel = nil
	}
}

// HostPort returns the host and port of the API server. Once started, the
// port is the one actually bound, which differs from the configured one when
// that was 0.
func (as *APIService) HostPort() (string, int) {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.api != nil && as.cancel != nil {
		if addr, ok := as.api.Addr().(*net.TCPAddr); ok {
			return as.host, addr.Port
		}
	}
	return as.host, as.port
}
