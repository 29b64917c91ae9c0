package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"faktur/internal/cache"
	applog "faktur/internal/log"
	"faktur/internal/middleware/ratelimit"
	"faktur/internal/middleware/security"
	"faktur/internal/middleware/trace"
	"faktur/internal/services"
	"faktur/internal/store"
)

// Server exposes the invoice sync API.
type Server struct {
	http.Server
	service *services.CollectionService

	rateLimiter *ratelimit.Limiter
	detector    *security.Detector
	tracer      *trace.Middleware

	// LRU cache for GET responses, invalidated on collection writes
	collectionCache *cache.LRUCache[store.Collection]
	cacheManager    *cache.Manager

	started      time.Time
	shutdownOnce sync.Once
}

// Option configures optional server behavior.
type Option func(*Server)

// WithTrustedProxies extends the networks whose forwarded-IP headers are
// honored when extracting the client IP. Invalid CIDRs are skipped with a
// warning; they were already rejected by config validation.
func WithTrustedProxies(cidrs []string) Option {
	return func(s *Server) {
		for _, cidr := range cidrs {
			if err := s.detector.AddTrustedProxy(cidr); err != nil {
				applog.Default(applog.ComponentHTTP).Warn("Skipping trusted proxy",
					applog.FieldError, err)
			}
		}
	}
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, service *services.CollectionService, opts ...Option) *Server {
	mux := http.NewServeMux()

	detector := security.NewDetector()
	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfig())

	collCache := cache.NewLRUCache[store.Collection](500, 5*time.Minute)
	manager := cache.NewManager()
	manager.Register(collCache)
	manager.StartCleanup(10 * time.Minute)

	s := &Server{
		service:         service,
		rateLimiter:     limiter,
		detector:        detector,
		tracer:          trace.NewMiddleware(detector.ExtractClientIP),
		collectionCache: collCache,
		cacheManager:    manager,
		started:         time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux.HandleFunc("/api/invoices", s.handleInvoices)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/healthz", handleLiveness)
	mux.HandleFunc("/readyz", handleReadiness)

	cors := security.NewCORSMiddleware(security.DefaultCORSConfig())
	withLogger := applog.Middleware(applog.Default(applog.ComponentHTTP))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.tracer.Middleware(withLogger(s.screen(cors.Middleware(mux)))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// screen flags requests matching known attack patterns. Detection is
// advisory: the request is counted and logged, never blocked.
func (s *Server) screen(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			ctx := r.Context()
			applog.FromContext(ctx).WarnContext(ctx, "Suspicious request detected",
				applog.FieldRequestID, trace.GetRequestID(ctx),
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldClientIP, s.detector.ExtractClientIP(r))
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	// Ensure shutdown logic runs only once
	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.Stop()
		}

		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleLiveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReadiness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
