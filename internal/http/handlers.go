package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	applog "faktur/internal/log"
	"faktur/internal/store"
)

// handleInvoices dispatches the collection endpoint by method. Preflight
// OPTIONS requests are answered by the CORS middleware before reaching here.
func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePull(w, r)
	case http.MethodPost:
		s.handlePush(w, r)
	default:
		MethodNotAllowedError("GET, POST, OPTIONS").Write(w)
	}
}

// handlePush replaces a device's remote collection with the pushed one.
func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	clientIP := s.detector.ExtractClientIP(r)
	if !s.rateLimiter.Allow(clientIP) {
		logger.WarnContext(ctx, "Rate limit exceeded", applog.FieldClientIP, clientIP)
		TooManyRequestsError().Write(w)
		return
	}

	req, err := ParsePushRequest(r)
	if err != nil {
		if !errors.Is(err, ErrInvalidData) {
			logger.ErrorContext(ctx, "Push parse error", applog.FieldError, err)
		}
		BadRequestError("Invalid data").Write(w)
		return
	}

	col := store.Collection{
		DeviceID: req.DeviceID,
		Invoices: req.Invoices,
	}
	if err := s.service.Put(ctx, col); err != nil {
		logger.ErrorContext(ctx, "Collection put error",
			applog.FieldError, err,
			applog.FieldDeviceID, req.DeviceID,
			applog.FieldRecords, len(req.Invoices))
		InternalServerError().Write(w)
		return
	}

	// The cached copy is stale after a write
	s.collectionCache.Delete(req.DeviceID)

	logger.InfoContext(ctx, "Collection stored",
		applog.FieldDeviceID, req.DeviceID,
		applog.FieldRecords, len(req.Invoices))

	SuccessResponse().Write(w)
}

// handlePull returns a device's remote collection.
func (s *Server) handlePull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	deviceID := ParseDeviceParam(r)
	if deviceID == "" {
		BadRequestError("Device ID required").Write(w)
		return
	}

	if col, found := s.collectionCache.Get(deviceID); found {
		logger.DebugContext(ctx, "Collection cache hit", applog.FieldDeviceID, deviceID)
		NewJSONResponse().Payload(col).Write(w)
		return
	}

	col, err := s.service.Get(ctx, deviceID)
	if err != nil {
		logger.ErrorContext(ctx, "Collection get error",
			applog.FieldError, err,
			applog.FieldDeviceID, deviceID)
		InternalServerError().Write(w)
		return
	}

	s.collectionCache.Set(deviceID, col)

	NewJSONResponse().Payload(col).Write(w)
}

// handleHealth reports service health for remote sync clients.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET, OPTIONS").Write(w)
		return
	}

	NewJSONResponse().Payload(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	}).Write(w)
}

// handleMetrics exposes application and security counters in Prometheus
// text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		MethodNotAllowedError("GET, OPTIONS").Write(w)
		return
	}

	traceMetrics := s.tracer.GetMetrics()
	securityMetrics := s.detector.GetMetrics()
	activeClients := s.rateLimiter.ActiveClients()
	cacheEntries := s.collectionCache.Size()
	uptime := time.Since(s.started)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "# HELP http_requests_total Total number of HTTP requests\n")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\n")
	fmt.Fprintf(w, "http_requests_total %d\n\n", traceMetrics.TotalRequests)

	fmt.Fprintf(w, "# HELP http_response_time_microseconds Last observed response time\n")
	fmt.Fprintf(w, "# TYPE http_response_time_microseconds gauge\n")
	fmt.Fprintf(w, "http_response_time_microseconds %d\n\n", traceMetrics.AverageResponseTime)

	fmt.Fprintf(w, "# HELP suspicious_requests_total Total suspicious requests detected\n")
	fmt.Fprintf(w, "# TYPE suspicious_requests_total counter\n")
	fmt.Fprintf(w, "suspicious_requests_total %d\n\n", securityMetrics.SuspiciousRequests)

	fmt.Fprintf(w, "# HELP invalid_ip_attempts_total Total requests with an unparseable client IP\n")
	fmt.Fprintf(w, "# TYPE invalid_ip_attempts_total counter\n")
	fmt.Fprintf(w, "invalid_ip_attempts_total %d\n\n", securityMetrics.InvalidIPAttempts)

	fmt.Fprintf(w, "# HELP active_rate_limit_clients Currently tracked rate limit clients\n")
	fmt.Fprintf(w, "# TYPE active_rate_limit_clients gauge\n")
	fmt.Fprintf(w, "active_rate_limit_clients %d\n\n", activeClients)

	fmt.Fprintf(w, "# HELP cache_entries Current cache entries\n")
	fmt.Fprintf(w, "# TYPE cache_entries gauge\n")
	fmt.Fprintf(w, "cache_entries{type=\"collections\"} %d\n\n", cacheEntries)

	fmt.Fprintf(w, "# HELP uptime_seconds Application uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE uptime_seconds gauge\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", uptime.Seconds())
}
