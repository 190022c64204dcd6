package searchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/storeguard/internal/db"
	"github.com/kailas-cloud/storeguard/internal/domain"
	"github.com/kailas-cloud/storeguard/internal/domain/article"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
	logpkg "github.com/kailas-cloud/storeguard/internal/logger"
)

var cacheKeyPrefix = domain.KeyPrefix + "search_cache:"

// store is the consumer interface for the search cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// searcher is the decorated article search.
type searcher interface {
	Search(ctx context.Context, q query.Query) (article.Result, error)
}

// CachedSearcher caches article search pages in a key-value store.
type CachedSearcher struct {
	inner      searcher
	store      store
	index      string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner searcher,
	s store,
	index string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSearcher {
	return &CachedSearcher{
		inner:      inner,
		store:      s,
		index:      index,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns a cached page or calls the inner searcher.
// Errors are never cached; cache store failures degrade to a miss.
func (c *CachedSearcher) Search(ctx context.Context, q query.Query) (article.Result, error) {
	key := c.cacheKey(q)

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	res, err := c.inner.Search(ctx, q)
	if err != nil {
		return article.Result{}, fmt.Errorf("cached search: %w", err)
	}

	c.putToCache(ctx, key, res)
	return res, nil
}

func (c *CachedSearcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the index, sanitized text and window; the raw text never reaches the store.
func (c *CachedSearcher) cacheKey(q query.Query) string {
	h := sha256.New()
	h.Write([]byte(c.index))
	h.Write([]byte{0})
	h.Write([]byte(q.Text()))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(q.Offset())))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(q.Limit())))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedSearcher) getFromCache(ctx context.Context, key string) (article.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached search result", logpkg.CacheKey(key), zap.Error(err))
		}
		return article.Result{}, false
	}
	if len(data) == 0 {
		return article.Result{}, false
	}

	var res article.Result
	if err := json.Unmarshal(data, &res); err != nil {
		c.logger.Warn("Failed to parse cached search result", logpkg.CacheKey(key), zap.Error(err))
		return article.Result{}, false
	}
	if res.Hits == nil {
		res.Hits = []article.Hit{}
	}
	return res, true
}

func (c *CachedSearcher) putToCache(ctx context.Context, key string, res article.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		c.logger.Warn("Failed to encode search result", logpkg.CacheKey(key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache search result", logpkg.CacheKey(key), zap.Error(err))
	}
}
