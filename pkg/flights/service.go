package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/metrics"
)

// searchTimeout bounds a coalesced upstream search, including the rate limiter wait
const searchTimeout = 30 * time.Second

// Searcher performs upstream searches
type Searcher interface {
	Search(ctx context.Context, q Query) (*Result, error)
}

// Service fronts the flight API with a rate limit, request coalescing and a cache
type Service struct {
	upstream Searcher
	cache    *Cache
	limiter  *rate.Limiter
	group    singleflight.Group
	metrics  *metrics.Metrics
}

// NewService creates a service allowing ratePerSecond upstream calls.
// A nil upstream leaves the service unconfigured.
func NewService(upstream Searcher, cache *Cache, ratePerSecond float64, mx *metrics.Metrics) *Service {
	burst := int(ratePerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Service{
		upstream: upstream,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		metrics:  mx,
	}
}

func (s *Service) Enabled() bool {
	return s != nil && s.upstream != nil
}

// Search returns offers for q, serving from cache when possible
func (s *Service) Search(ctx context.Context, q Query) (*Result, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	key := q.Key()

	if s.cache != nil {
		cached, err := s.cache.Get(key)
		if err != nil {
			logger.Warn("flight cache read failed", zap.Error(err))
		}
		if cached != nil {
			cached.Cached = true
			s.metrics.FlightSearch(metrics.SearchCache)
			return cached, nil
		}
	}

	flight := s.group.DoChan(key, func() (interface{}, error) {
		// the flight outlives any single caller; each caller waits on its own context below
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), searchTimeout)
		defer cancel()

		if err := s.limiter.Wait(fctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		r, err := s.upstream.Search(fctx, q)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(key, r); err != nil {
				logger.Warn("flight cache write failed", zap.Error(err))
			}
		}
		return r, nil
	})

	var (
		v      interface{}
		err    error
		shared bool
	)
	select {
	case res := <-flight:
		v, err, shared = res.Val, res.Err, res.Shared
	case <-ctx.Done():
		err = fmt.Errorf("%w: %w", ErrUpstream, ctx.Err())
	}
	if err != nil {
		s.metrics.FlightSearch(metrics.SearchError)
		if !errors.Is(err, ErrInvalidSearch) {
			logger.Error("flight search failed", zap.String("query", key), zap.Error(err))
		}
		return nil, err
	}
	s.metrics.FlightSearch(metrics.SearchUpstream)

	// callers sharing a flight must not mutate the same value
	r := *v.(*Result)
	if shared {
		logger.Debug("flight search coalesced", zap.String("query", key))
	}
	return &r, nil
}
