package logger

import (
	"context"

	"go.uber.org/zap"
)

// Field keys shared by the request log, rejection logs and backend logs so
// one request can be followed across them.
const (
	KeyRequestID = "request_id"
	KeyUser      = "user"
	KeyReason    = "reason"
	KeyDriver    = "driver"
	KeyIndex     = "index"
	KeyCacheKey  = "key"
)

// RequestID tags a line with the X-Request-ID of the request.
func RequestID(id string) zap.Field { return zap.String(KeyRequestID, id) }

// User tags a line with the Basic-auth user verified for the request.
func User(name string) zap.Field { return zap.String(KeyUser, name) }

// Reason tags a rejection with its error code (forbidden_field, unauthorized, ...).
func Reason(code string) zap.Field { return zap.String(KeyReason, code) }

// Driver tags a search backend line with elasticsearch or opensearch.
func Driver(name string) zap.Field { return zap.String(KeyDriver, name) }

// Index tags a search backend line with the article index.
func Index(name string) zap.Field { return zap.String(KeyIndex, name) }

// CacheKey tags a search cache line.
func CacheKey(key string) zap.Field { return zap.String(KeyCacheKey, key) }

// WithUser stores the context logger tagged with the verified user.
func WithUser(ctx context.Context, name string) context.Context {
	return WithFields(ctx, User(name))
}
