package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/log"
	stg "github.com/vocdoni/ecc-elgamal-sandbox/storage"
)

// DefaultMaxModulus is the largest prime accepted by POST /curves when the
// configuration does not set one. Enumeration and generator search grow
// quadratically with p, so the HTTP surface stays well below ecc.MaxModulus.
const DefaultMaxModulus = 1024

// APIConfig type represents the configuration for the API HTTP server.
// It includes the host, port, the storage instance and the largest modulus
// accepted when building curves.
type APIConfig struct {
	Host       string
	Port       int
	Storage    *stg.Storage
	MaxModulus int64
}

// API type represents the API HTTP server of the curve sandbox.
type API struct {
	router     *chi.Mux
	server     *http.Server
	listener   net.Listener
	storage    *stg.Storage
	maxModulus int64

	groupsMu sync.RWMutex
	groups   map[string]*ecc.Group
}

// New creates a new API instance with the given configuration, binds the
// listening socket and serves the HTTP API in the background. Port 0 picks
// a free port, see Addr.
func New(conf *APIConfig) (*API, error) {
	a, err := newAPI(conf)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to start the API server")
	}
	a.listener = ln
	a.server = &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infow("Starting API server", "host", conf.Host, "addr", ln.Addr().String())
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw(err, "API server stopped")
		}
	}()
	return a, nil
}

// Addr returns the address the server is listening on, or nil if the API
// was not started with New.
func (a *API) Addr() net.Addr {
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// Shutdown gracefully stops the HTTP server.
func (a *API) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// newAPI builds the API and its router without listening.
func newAPI(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, errors.New("missing API configuration")
	}
	if conf.Storage == nil {
		return nil, errors.New("missing storage instance")
	}
	maxModulus := conf.MaxModulus
	if maxModulus == 0 {
		maxModulus = DefaultMaxModulus
	}
	if maxModulus < 3 || maxModulus > ecc.MaxModulus {
		return nil, errors.Newf("max modulus %d out of range [3, %d]", maxModulus, ecc.MaxModulus)
	}
	a := &API{
		storage:    conf.Storage,
		maxModulus: maxModulus,
		groups:     make(map[string]*ecc.Group),
	}

	// Initialize router
	a.initRouter()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Infow("register handler", "endpoint", ConstraintsEndpoint, "method", "POST")
	a.router.Post(ConstraintsEndpoint, a.constraints)
	log.Infow("register handler", "endpoint", CurvesEndpoint, "method", "POST")
	a.router.Post(CurvesEndpoint, a.newCurve)
	log.Infow("register handler", "endpoint", CurvesEndpoint, "method", "GET")
	a.router.Get(CurvesEndpoint, a.listCurves)
	log.Infow("register handler", "endpoint", CurveEndpoint, "method", "GET")
	a.router.Get(CurveEndpoint, a.curve)
	log.Infow("register handler", "endpoint", KeysEndpoint, "method", "POST")
	a.router.Post(KeysEndpoint, a.newKey)
	log.Infow("register handler", "endpoint", KeysEndpoint, "method", "GET")
	a.router.Get(KeysEndpoint, a.listKeys)
	log.Infow("register handler", "endpoint", KeyEndpoint, "method", "GET")
	a.router.Get(KeyEndpoint, a.key)
	log.Infow("register handler", "endpoint", EncryptEndpoint, "method", "POST")
	a.router.Post(EncryptEndpoint, a.encrypt)
	log.Infow("register handler", "endpoint", DecryptEndpoint, "method", "POST")
	a.router.Post(DecryptEndpoint, a.decrypt)
	log.Infow("register handler", "endpoint", AddEndpoint, "method", "POST")
	a.router.Post(AddEndpoint, a.add)
	log.Infow("register handler", "endpoint", MultEndpoint, "method", "POST")
	a.router.Post(MultEndpoint, a.mult)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	// Register the API handlers
	a.registerHandlers()
}
