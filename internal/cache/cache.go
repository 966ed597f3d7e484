// Package cache stores computed projections keyed by their input parameters.
// The engine is pure, so a cached result is interchangeable with a fresh one.
package cache

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/rpgo/investment-calculator/internal/config"
	"github.com/rpgo/investment-calculator/internal/domain"
	"go.uber.org/zap"
)

// Cache is a byte-oriented key/value store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

// Nop never stores anything; used when caching is disabled.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (Nop) Set(context.Context, string, []byte) error  { return nil }

// Key hashes a canonical binary encoding of params. Floats are encoded by
// their bit patterns so 0.07 and 0.070000001 never collide by formatting.
func Key(params domain.InvestmentParameters) string {
	buf := make([]byte, 0, 48)
	buf = append(buf, string(params.ContributionFrequency)...)
	buf = append(buf, 0)
	for _, v := range []float64{params.ContributionAmount, params.NominalAnnualRate, params.AnnualInflationRate, params.Years} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return fmt.Sprintf("projection:%016x", xxhash.Sum64(buf))
}

// New builds the cache selected by settings.
func New(ctx context.Context, settings config.CacheSettings, logger *zap.Logger) (Cache, error) {
	switch settings.Backend {
	case "", "memory":
		return NewMemoryCache(settings.TTL), nil
	case "none":
		return Nop{}, nil
	case "redis":
		return NewRedisCache(ctx, RedisOptions{
			Addr:         settings.RedisAddr,
			Password:     settings.RedisPassword,
			DB:           settings.RedisDB,
			TTL:          settings.TTL,
			ConnectTries: settings.ConnectTries,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", settings.Backend)
	}
}

// Projections is a typed view over a Cache. Cache failures are logged and
// reported as misses; they never fail the caller.
type Projections struct {
	cache  Cache
	logger *zap.Logger
}

// NewProjections wraps c. A nil logger disables logging.
func NewProjections(c Cache, logger *zap.Logger) *Projections {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projections{cache: c, logger: logger}
}

// Get returns the cached result for params, if any.
func (p *Projections) Get(ctx context.Context, params domain.InvestmentParameters) (*domain.ProjectionResult, bool) {
	key := Key(params)
	data, ok := p.cache.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var result domain.ProjectionResult
	if err := json.Unmarshal(data, &result); err != nil {
		p.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &result, true
}

// Put stores result under params.
func (p *Projections) Put(ctx context.Context, params domain.InvestmentParameters, result *domain.ProjectionResult) {
	key := Key(params)
	data, err := json.Marshal(result)
	if err != nil {
		p.logger.Warn("projection not cacheable", zap.String("key", key), zap.Error(err))
		return
	}
	if err := p.cache.Set(ctx, key, data); err != nil {
		p.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
