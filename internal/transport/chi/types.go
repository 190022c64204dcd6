package chi

import (
	"encoding/json"
	"time"
)

// ErrorResponseCode is the machine-readable error code of an ErrorResponse.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeForbiddenOperator ErrorResponseCode = "forbidden_operator"
	ErrorResponseCodeQueryTooBroad     ErrorResponseCode = "query_too_broad"
	ErrorResponseCodeForbiddenPattern  ErrorResponseCode = "forbidden_pattern"
	ErrorResponseCodeValidationFailed  ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnauthorized      ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound          ErrorResponseCode = "not_found"
	ErrorResponseCodeMethodNotAllowed  ErrorResponseCode = "method_not_allowed"
	ErrorResponseCodePayloadTooLarge   ErrorResponseCode = "payload_too_large"
	ErrorResponseCodeMisconfigured     ErrorResponseCode = "misconfigured"
	ErrorResponseCodeGatewayTimeout    ErrorResponseCode = "gateway_timeout"
	ErrorResponseCodeBadGateway        ErrorResponseCode = "bad_gateway"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
	// Path locates the offending payload field, when known.
	Path string `json:"path,omitempty"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Msg  string `json:"msg"`
	User string `json:"user"`
	Role string `json:"role,omitempty"`
}

// Order is the wire form of an order.
type Order struct {
	ID        string     `json:"id"`
	Product   string     `json:"product"`
	Quantity  int64      `json:"quantity"`
	User      string     `json:"user"`
	Price     *float64   `json:"price,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// OrderListResponse is returned by GET /orders.
type OrderListResponse struct {
	Items []Order `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Size  int     `json:"size"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ListOrdersParams are the query parameters of GET /orders.
type ListOrdersParams struct {
	Page *int `form:"page,omitempty" json:"page,omitempty"`
	Size *int `form:"size,omitempty" json:"size,omitempty"`
}

// SearchArticlesParams are the query parameters of GET /articles.
type SearchArticlesParams struct {
	Q    *string `form:"q,omitempty" json:"q,omitempty"`
	Page *int    `form:"page,omitempty" json:"page,omitempty"`
	Size *int    `form:"size,omitempty" json:"size,omitempty"`
}

// ArticleHit is one article in a search response.
type ArticleHit struct {
	ID     string          `json:"id"`
	Score  float64         `json:"score"`
	Source json.RawMessage `json:"source"`
}

// ArticleSearchResponse is returned by GET /articles.
type ArticleSearchResponse struct {
	Items    []ArticleHit `json:"items"`
	Total    int64        `json:"total"`
	MaxScore float64      `json:"max_score"`
	TookMs   int64        `json:"took_ms"`
	Page     int          `json:"page"`
	Size     int          `json:"size"`
}
