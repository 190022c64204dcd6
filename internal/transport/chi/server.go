package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storeguard/internal/domain"
	domarticle "github.com/kailas-cloud/storeguard/internal/domain/article"
	"github.com/kailas-cloud/storeguard/internal/domain/credential"
	domorder "github.com/kailas-cloud/storeguard/internal/domain/order"
	"github.com/kailas-cloud/storeguard/internal/domain/payload"
	logpkg "github.com/kailas-cloud/storeguard/internal/logger"
	"github.com/kailas-cloud/storeguard/internal/metrics"
	articleuc "github.com/kailas-cloud/storeguard/internal/usecase/article"
	authuc "github.com/kailas-cloud/storeguard/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/storeguard/internal/usecase/health"
	orderuc "github.com/kailas-cloud/storeguard/internal/usecase/order"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// errorHandler tries to handle a domain error. Returns the written code and true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) (ErrorResponseCode, bool)

// Server serves the storefront API on a chi router.
type Server struct {
	auth          *authuc.Service
	orders        *orderuc.Service
	articles      *articleuc.Service
	health        *healthuc.Service
	challenge     string
	maxBodyBytes  int64
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer wires the use cases into HTTP handlers. challenge is the
// WWW-Authenticate value sent when a backend refuses our credentials.
func NewServer(
	auth *authuc.Service,
	orders *orderuc.Service,
	articles *articleuc.Service,
	health *healthuc.Service,
	challenge string,
	maxBodyBytes int64,
	logger *zap.Logger,
) *Server {
	if challenge == "" {
		challenge = `Basic realm="` + credential.DefaultRealm + `"`
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		auth:         auth,
		orders:       orders,
		articles:     articles,
		health:       health,
		challenge:    challenge,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		payloadTooLargeHandler,
		forbiddenOperatorHandler,
		sentinelHandler(domain.ErrInvalidPayload, http.StatusBadRequest, ErrorResponseCodeBadRequest),
		sentinelHandler(domain.ErrQueryTooBroad, http.StatusUnprocessableEntity, ErrorResponseCodeQueryTooBroad),
		sentinelHandler(domain.ErrForbiddenPattern,
			http.StatusUnprocessableEntity, ErrorResponseCodeForbiddenPattern),
		sentinelHandler(domain.ErrInvalidPagination,
			http.StatusUnprocessableEntity, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidOrder, http.StatusUnprocessableEntity, ErrorResponseCodeValidationFailed),
		s.unauthorizedHandler,
		sentinelHandler(domain.ErrMisconfigured, http.StatusInternalServerError, ErrorResponseCodeMisconfigured),
		sentinelHandler(domain.ErrGatewayTimeout, http.StatusGatewayTimeout, ErrorResponseCodeGatewayTimeout),
		sentinelHandler(domain.ErrBadGateway, http.StatusBadGateway, ErrorResponseCodeBadGateway),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Post("/login", s.Login)
	r.Get("/orders", s.ListOrders)
	r.Post("/orders", s.CreateOrder)
	r.Get("/articles", s.SearchArticles)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorResponseCodeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponseCodeMethodNotAllowed, "method not allowed")
	})
}

// Login handles POST /login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	p, err := s.readPayload(w, r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	u, err := s.auth.Login(r.Context(), p)
	if err != nil {
		if errors.Is(err, authuc.ErrBadCredentials) {
			s.reject(r, ErrorResponseCodeUnauthorized, err)
			writeError(w, http.StatusUnauthorized, ErrorResponseCodeUnauthorized, "Bad creds")
			return
		}
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Msg: "ok", User: u.Username, Role: u.Role})
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	params, err := bindListOrdersParams(r)
	if err != nil {
		s.handleBindError(w, r, err)
		return
	}

	listing, err := s.orders.List(r.Context(), params.Page, params.Size)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]Order, 0, len(listing.Orders))
	for _, o := range listing.Orders {
		items = append(items, orderToResponse(o))
	}
	writeJSON(w, http.StatusOK, OrderListResponse{
		Items: items,
		Total: listing.Total,
		Page:  listing.Page.Number(),
		Size:  listing.Page.Size(),
	})
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	p, err := s.readPayload(w, r)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	o, err := s.orders.Create(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, orderToResponse(o))
}

// SearchArticles handles GET /articles.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchArticlesParams(r)
	if err != nil {
		s.handleBindError(w, r, err)
		return
	}

	var raw string
	if params.Q != nil {
		raw = *params.Q
	}

	res, err := s.articles.Search(r.Context(), raw, params.Page, params.Size)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, articleResultToResponse(res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) readPayload(w http.ResponseWriter, r *http.Request) (payload.Payload, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	defer func() { _ = body.Close() }()
	return payload.Decode(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrForbiddenOperator,
		domain.ErrInvalidPayload,
		domain.ErrQueryTooBroad,
		domain.ErrForbiddenPattern,
		domain.ErrInvalidPagination,
		domain.ErrInvalidOrder,
		domain.ErrUnauthorized,
		domain.ErrMisconfigured,
		domain.ErrGatewayTimeout,
		domain.ErrBadGateway,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) (ErrorResponseCode, bool) {
		if !errors.Is(err, sentinel) {
			return "", false
		}
		writeError(w, status, code, msg)
		return code, true
	}
}

// payloadTooLargeHandler runs before the invalid payload handler: an oversized
// body surfaces from the decoder wrapped in domain.ErrInvalidPayload.
func payloadTooLargeHandler(w http.ResponseWriter, err error, _ string) (ErrorResponseCode, bool) {
	var tooLarge *http.MaxBytesError
	if !errors.As(err, &tooLarge) {
		return "", false
	}
	writeError(w, http.StatusRequestEntityTooLarge, ErrorResponseCodePayloadTooLarge, "request body too large")
	return ErrorResponseCodePayloadTooLarge, true
}

func forbiddenOperatorHandler(w http.ResponseWriter, err error, msg string) (ErrorResponseCode, bool) {
	if !errors.Is(err, domain.ErrForbiddenOperator) {
		return "", false
	}
	resp := ErrorResponse{Code: ErrorResponseCodeForbiddenOperator, Message: msg}
	var ve *payload.ViolationError
	if errors.As(err, &ve) {
		resp.Path = ve.Path
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return ErrorResponseCodeForbiddenOperator, true
}

func (s *Server) unauthorizedHandler(w http.ResponseWriter, err error, msg string) (ErrorResponseCode, bool) {
	if !errors.Is(err, domain.ErrUnauthorized) {
		return "", false
	}
	challenge := s.challenge
	var ue *credential.UnauthorizedError
	if errors.As(err, &ue) && ue.Challenge != "" {
		challenge = ue.Challenge
	}
	w.Header().Set("WWW-Authenticate", challenge)
	writeError(w, http.StatusUnauthorized, ErrorResponseCodeUnauthorized, msg)
	return ErrorResponseCodeUnauthorized, true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		code, ok := h(w, err, msg)
		if !ok {
			continue
		}
		if isUpstreamFailure(code, err) {
			logpkg.FromContext(r.Context()).Error("upstream failure",
				zap.String("code", string(code)), zap.Error(err))
		} else {
			s.reject(r, code, err)
		}
		return
	}
	logpkg.FromContext(r.Context()).Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func (s *Server) handleBindError(w http.ResponseWriter, r *http.Request, err error) {
	s.reject(r, ErrorResponseCodeBadRequest, err)
	writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "invalid request")
}

// reject counts and logs a refused request.
func (s *Server) reject(r *http.Request, code ErrorResponseCode, err error) {
	metrics.RejectionsTotal.WithLabelValues(string(code)).Inc()
	logpkg.FromContext(r.Context()).Warn("request rejected",
		logpkg.Reason(string(code)), zap.Error(err))
}

// isUpstreamFailure reports whether the error is ours rather than the caller's.
// An unauthorized error that does not come from checking the caller's own
// credentials means a backend refused the service account.
func isUpstreamFailure(code ErrorResponseCode, err error) bool {
	switch code {
	case ErrorResponseCodeMisconfigured, ErrorResponseCodeGatewayTimeout, ErrorResponseCodeBadGateway:
		return true
	case ErrorResponseCodeUnauthorized:
		var ue *credential.UnauthorizedError
		return !errors.As(err, &ue) && !errors.Is(err, authuc.ErrBadCredentials)
	default:
		return false
	}
}

func orderToResponse(o domorder.Order) Order {
	resp := Order{
		ID:       o.ID(),
		Product:  o.Product(),
		Quantity: o.Quantity(),
		User:     o.Username(),
		Price:    o.Price(),
	}
	if t := o.CreatedAt(); !t.IsZero() {
		resp.CreatedAt = &t
	}
	return resp
}

func articleResultToResponse(res domarticle.Result) ArticleSearchResponse {
	items := make([]ArticleHit, 0, len(res.Hits))
	for _, h := range res.Hits {
		items = append(items, ArticleHit{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	return ArticleSearchResponse{
		Items:    items,
		Total:    res.Total,
		MaxScore: res.MaxScore,
		TookMs:   res.TookMillis,
		Page:     res.Page,
		Size:     res.Size,
	}
}
