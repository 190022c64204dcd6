// Package query prepares free-text search input for a Lucene-style query string backend.
package query

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/storeguard/internal/domain"
	"github.com/kailas-cloud/storeguard/internal/domain/page"
)

// Wildcard matches every document and is never forwarded.
const Wildcard = "*"

// Article search pagination defaults.
const (
	DefaultSize = 10
	MaxSize     = 50
)

// DefaultLimits returns the article search pagination bounds.
func DefaultLimits() page.Limits {
	return page.Limits{DefaultSize: DefaultSize, MaxSize: MaxSize}
}

// forbiddenPatterns are rejected outright: parent-path traversal, markup, statement separators.
var forbiddenPatterns = []string{"..", "<", ">", ";"}

// escaper prefixes every query-string metacharacter with a backslash in one pass.
var escaper = strings.NewReplacer(
	`+`, `\+`,
	`-`, `\-`,
	`!`, `\!`,
	`(`, `\(`,
	`)`, `\)`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`^`, `\^`,
	`"`, `\"`,
	`~`, `\~`,
	`*`, `\*`,
	`?`, `\?`,
	`:`, `\:`,
	`\`, `\\`,
	`/`, `\/`,
)

// Escape backslash-escapes the reserved characters + - ! ( ) { } [ ] ^ " ~ * ? : \ /.
// Escape is not idempotent: escaping its own output escapes the backslashes again.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Prepare rejects broad or blocklisted input and returns the escaped query text.
func Prepare(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == Wildcard {
		return "", fmt.Errorf("query %q: %w", raw, domain.ErrQueryTooBroad)
	}
	for _, p := range forbiddenPatterns {
		if strings.Contains(raw, p) {
			return "", fmt.Errorf("query contains %q: %w", p, domain.ErrForbiddenPattern)
		}
	}
	return Escape(raw), nil
}

// Query is a sanitized search request.
type Query struct {
	raw       string
	sanitized string
	page      page.Page
}

// New prepares raw and attaches the validated page.
func New(raw string, pg page.Page) (Query, error) {
	sanitized, err := Prepare(raw)
	if err != nil {
		return Query{}, err
	}
	return Query{raw: raw, sanitized: sanitized, page: pg}, nil
}

// Raw returns the input as received.
func (q Query) Raw() string { return q.raw }

// Text returns the escaped query text sent to the backend.
func (q Query) Text() string { return q.sanitized }

// Page returns the requested page.
func (q Query) Page() page.Page { return q.page }

// Offset returns the backend "from" parameter.
func (q Query) Offset() int { return q.page.Offset() }

// Limit returns the backend "size" parameter.
func (q Query) Limit() int { return q.page.Limit() }
