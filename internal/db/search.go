package db

import (
	"encoding/json"
	"fmt"
	"io"
)

// SearchQuery is the input for a query-string search.
// Query must already be escaped; drivers forward it verbatim as the "q" parameter.
type SearchQuery struct {
	Index string
	Query string
	From  int
	Size  int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total    int64
	MaxScore float64
	Took     int64
	Hits     []SearchHit
}

// SearchHit is a single document hit.
type SearchHit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}

// searchResponse is the _search body shared by Elasticsearch and OpenSearch.
type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			ID     string          `json:"_id"`
			Score  *float64        `json:"_score"`
			Source json.RawMessage `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// DecodeSearchResponse parses a _search response body.
func DecodeSearchResponse(r io.Reader) (*SearchResult, error) {
	var resp searchResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, &Error{Op: OpSearch, Err: fmt.Errorf("%w: decode body: %w", ErrBackendResponse, err)}
	}

	out := &SearchResult{
		Total: resp.Hits.Total.Value,
		Took:  resp.Took,
		Hits:  make([]SearchHit, 0, len(resp.Hits.Hits)),
	}
	if resp.Hits.MaxScore != nil {
		out.MaxScore = *resp.Hits.MaxScore
	}
	for _, h := range resp.Hits.Hits {
		hit := SearchHit{ID: h.ID, Source: h.Source}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}
