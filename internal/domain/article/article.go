// Package article holds the result of an article full-text search.
package article

import "encoding/json"

// Hit is one matching article. Source is the stored document as returned by the backend.
type Hit struct {
	ID     string          `json:"id"`
	Score  float64         `json:"score"`
	Source json.RawMessage `json:"source"`
}

// Result is a page of search hits.
type Result struct {
	Total      int64   `json:"total"`
	MaxScore   float64 `json:"max_score"`
	TookMillis int64   `json:"took_ms"`
	Hits       []Hit   `json:"hits"`
	Page       int     `json:"page"`
	Size       int     `json:"size"`
}
