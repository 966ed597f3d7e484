package cache

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rpgo/investment-calculator/internal/calculation"
	"github.com/rpgo/investment-calculator/internal/config"
	"github.com/rpgo/investment-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func baseParams() domain.InvestmentParameters {
	return domain.InvestmentParameters{
		ContributionAmount:    1000,
		ContributionFrequency: domain.Monthly,
		NominalAnnualRate:     0.07,
		AnnualInflationRate:   0.03,
		Years:                 1,
	}
}

func TestKeyStable(t *testing.T) {
	k1 := Key(baseParams())
	k2 := Key(baseParams())
	assert.Equal(t, k1, k2)
	assert.True(t, strings.HasPrefix(k1, "projection:"))
	assert.Len(t, k1, len("projection:")+16)
}

func TestKeyDistinguishesEveryField(t *testing.T) {
	mods := map[string]func(*domain.InvestmentParameters){
		"amount":    func(p *domain.InvestmentParameters) { p.ContributionAmount = 1000.01 },
		"frequency": func(p *domain.InvestmentParameters) { p.ContributionFrequency = domain.Weekly },
		"nominal":   func(p *domain.InvestmentParameters) { p.NominalAnnualRate = 0.0700001 },
		"inflation": func(p *domain.InvestmentParameters) { p.AnnualInflationRate = 0.02 },
		"years":     func(p *domain.InvestmentParameters) { p.Years = 1.5 },
	}
	base := Key(baseParams())
	seen := map[string]string{base: "base"}
	for name, mod := range mods {
		p := baseParams()
		mod(&p)
		k := Key(p)
		prev, dup := seen[k]
		assert.False(t, dup, "%s collides with %s", name, prev)
		seen[k] = name
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	value := []byte("hello")
	require.NoError(t, c.Set(ctx, "k", value))
	value[0] = 'j' // caller mutation must not leak into the cache

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "hello", string(got))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	now = now.Add(59 * time.Second)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is evicted on read")
}

func TestMemoryCacheSweepRemovesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	defer c.Close()
	c.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, c.Set(ctx, Key(domain.InvestmentParameters{ContributionAmount: float64(i)}), []byte("v")))
	}
	now = now.Add(time.Minute)
	require.NoError(t, c.Set(ctx, "fresh", []byte("v")))
	require.Equal(t, 1001, c.Len(), "nothing is swept before the sweeper runs")

	c.sweep()
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(ctx, "fresh")
	assert.True(t, ok)
}

func TestMemoryCacheSweeperRuns(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(5 * time.Millisecond)
	defer c.Close()

	for i := 0; i < 100; i++ {
		require.NoError(t, c.Set(ctx, Key(domain.InvestmentParameters{Years: float64(i)}), []byte("v")))
	}
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryCacheMaxEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(0)
	c.now = func() time.Time { return now }
	c.maxEntries = 3

	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, c.Set(ctx, k, []byte(k)))
	}
	assert.Equal(t, 3, c.Len())
	_, ok := c.Get(ctx, "d")
	assert.True(t, ok, "the newest entry is kept")

	// overwriting an existing key never evicts
	require.NoError(t, c.Set(ctx, "d", []byte("d2")))
	assert.Equal(t, 3, c.Len())
}

func TestMemoryCacheMaxEntriesPrefersExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Hour)
	defer c.Close()
	c.now = func() time.Time { return now }
	c.maxEntries = 2

	require.NoError(t, c.Set(ctx, "old", []byte("v")))
	now = now.Add(30 * time.Minute)
	require.NoError(t, c.Set(ctx, "newer", []byte("v")))
	now = now.Add(40 * time.Minute) // "old" expired, "newer" still live
	require.NoError(t, c.Set(ctx, "newest", []byte("v")))

	_, ok := c.Get(ctx, "newer")
	assert.True(t, ok)
	_, ok = c.Get(ctx, "newest")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryCacheCloseIsIdempotent(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	require.NoError(t, c.Close())
	assert.NotPanics(t, func() { _ = c.Close() })
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour)
	defer c.Close()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key(domain.InvestmentParameters{ContributionAmount: float64(i % 4), ContributionFrequency: domain.Monthly})
			_ = c.Set(ctx, key, []byte{byte(i)})
			_, _ = c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, c.Len())
}

func TestProjectionsRoundTripMatchesFreshResult(t *testing.T) {
	ctx := context.Background()
	p := NewProjections(NewMemoryCache(0), nil)
	params := baseParams()

	_, ok := p.Get(ctx, params)
	assert.False(t, ok)

	fresh, err := calculation.ComputeProjection(params)
	require.NoError(t, err)
	p.Put(ctx, params, fresh)

	cached, ok := p.Get(ctx, params)
	require.True(t, ok)
	assert.Equal(t, fresh, cached)
}

func TestProjectionsDiscardsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	mem := NewMemoryCache(0)
	p := NewProjections(mem, zap.New(core))

	require.NoError(t, mem.Set(ctx, Key(baseParams()), []byte("{not json")))
	_, ok := p.Get(ctx, baseParams())
	assert.False(t, ok)
	assert.Equal(t, 1, logs.FilterMessage("discarding undecodable cache entry").Len())
}

func TestProjectionsSkipsNonFiniteResults(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	mem := NewMemoryCache(0)
	p := NewProjections(mem, zap.New(core))

	p.Put(ctx, baseParams(), &domain.ProjectionResult{FutureValueNominal: math.Inf(1)})
	assert.Equal(t, 0, mem.Len())
	assert.Equal(t, 1, logs.FilterMessage("projection not cacheable").Len())
}

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	var c Cache = Nop{}
	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewSelectsBackend(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, config.CacheSettings{Backend: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	c, err = New(ctx, config.CacheSettings{Backend: "none"}, nil)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, c)

	_, err = New(ctx, config.CacheSettings{Backend: "memcached"}, nil)
	assert.Error(t, err)
}

func TestNewRedisCacheGivesUpWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1", ConnectTries: 3}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis at 127.0.0.1:1")
}
