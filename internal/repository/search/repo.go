package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/storeguard/internal/db"
	"github.com/kailas-cloud/storeguard/internal/domain/article"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
	"github.com/kailas-cloud/storeguard/internal/repository/dberr"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/article.Repository.
type Repo struct {
	store store
	index string
}

// New creates a search repository over the given index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Search runs an already sanitized query. Backend failures are translated to
// domain.ErrUnauthorized, domain.ErrGatewayTimeout or domain.ErrBadGateway.
func (r *Repo) Search(ctx context.Context, q query.Query) (article.Result, error) {
	sr, err := r.store.Search(ctx, &db.SearchQuery{
		Index: r.index,
		Query: q.Text(),
		From:  q.Offset(),
		Size:  q.Limit(),
	})
	if err != nil {
		return article.Result{}, fmt.Errorf("search %s: %w", r.index, dberr.Translate(err))
	}
	return toResult(sr, q), nil
}

func toResult(sr *db.SearchResult, q query.Query) article.Result {
	res := article.Result{
		Page: q.Page().Number(),
		Size: q.Page().Size(),
		Hits: []article.Hit{},
	}
	if sr == nil {
		return res
	}

	res.Total = sr.Total
	res.MaxScore = sr.MaxScore
	res.TookMillis = sr.Took
	for _, h := range sr.Hits {
		res.Hits = append(res.Hits, article.Hit{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	return res
}
