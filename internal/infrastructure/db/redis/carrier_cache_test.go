package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/carrier-rating/internal/api/metrics"
	"github.com/99minutos/carrier-rating/internal/core/domain"
)

// countingRepo is a CarrierRepository fake. When gate is set, profile loads
// signal started and then block until gate is closed or their context ends.
type countingRepo struct {
	profileCalls atomic.Int32
	cardCalls    atomic.Int32
	cards        []domain.RateCard

	gate    chan struct{}
	started chan struct{}
	once    sync.Once
}

func (r *countingRepo) GetCarrierProfile(ctx context.Context, id string) (*domain.CarrierProfile, error) {
	r.profileCalls.Add(1)
	if r.gate != nil {
		r.once.Do(func() { close(r.started) })
		select {
		case <-r.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if id != "acme" {
		return nil, domain.ErrCarrierNotFound
	}
	return &domain.CarrierProfile{ID: id, Name: "Acme Freight", Enabled: true}, nil
}

func (r *countingRepo) ListRateCards(_ context.Context, _ string) ([]domain.RateCard, error) {
	r.cardCalls.Add(1)
	return r.cards, nil
}

func (r *countingRepo) GetEligibilityRules(_ context.Context, id string) (*domain.EligibilityRuleSet, error) {
	return &domain.EligibilityRuleSet{CarrierID: id}, nil
}

func (r *countingRepo) ListCarriers(_ context.Context) ([]domain.CarrierProfile, error) {
	return []domain.CarrierProfile{{ID: "acme"}}, nil
}

func gatedRepo() *countingRepo {
	return &countingRepo{gate: make(chan struct{}), started: make(chan struct{})}
}

func newTestCache(t *testing.T, inner *countingRepo) (*CachedCarrierRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCachedCarrierRepository(inner, client, time.Minute, zerolog.Nop()), mr
}

func lookups(kind, result string) float64 {
	return testutil.ToFloat64(metrics.CacheLookupsTotal.WithLabelValues(kind, result))
}

// ── Read-through ──────────────────────────────────────────────────────────────

func TestCachedCarrierRepository_MissThenHit(t *testing.T) {
	inner := &countingRepo{}
	cache, mr := newTestCache(t, inner)
	ctx := context.Background()

	missesBefore, hitsBefore := lookups("carrier", "miss"), lookups("carrier", "hit")

	first, err := cache.GetCarrierProfile(ctx, "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.GetCarrierProfile(ctx, "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Name != "Acme Freight" || *second != *first {
		t.Errorf("cached profile differs: %+v vs %+v", second, first)
	}
	if n := inner.profileCalls.Load(); n != 1 {
		t.Errorf("store calls = %d, want 1", n)
	}
	if d := lookups("carrier", "miss") - missesBefore; d != 1 {
		t.Errorf("miss delta = %v, want 1", d)
	}
	if d := lookups("carrier", "hit") - hitsBefore; d != 1 {
		t.Errorf("hit delta = %v, want 1", d)
	}

	if !mr.Exists(carrierKey("acme")) {
		t.Fatal("profile was not stored")
	}
	if ttl := mr.TTL(carrierKey("acme")); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}
}

func TestCachedCarrierRepository_RateCardsRoundTrip(t *testing.T) {
	maxWeight := 500.0
	fuel := 12.5
	inner := &countingRepo{cards: []domain.RateCard{{
		ID:                   "rc-1",
		RateStructure:        domain.StructureSkidBased,
		MaxWeight:            &maxWeight,
		FuelSurchargePercent: &fuel,
		SkidRates:            []domain.SkidRate{{SkidCount: 1, Rate: 180}, {SkidCount: 2, Rate: 320}},
		CreatedAt:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}}}
	cache, _ := newTestCache(t, inner)

	for range 3 {
		cards, err := cache.ListRateCards(context.Background(), "acme")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		c := cards[0]
		if len(cards) != 1 || *c.MaxWeight != 500 || *c.FuelSurchargePercent != 12.5 || len(c.SkidRates) != 2 || !c.CreatedAt.Equal(inner.cards[0].CreatedAt) {
			t.Fatalf("rate cards did not survive the cache: %+v", cards)
		}
	}
	if n := inner.cardCalls.Load(); n != 1 {
		t.Errorf("store calls = %d, want 1", n)
	}
}

func TestCachedCarrierRepository_ErrorsAreNotCached(t *testing.T) {
	inner := &countingRepo{}
	cache, mr := newTestCache(t, inner)

	for range 2 {
		if _, err := cache.GetCarrierProfile(context.Background(), "ghost"); !errors.Is(err, domain.ErrCarrierNotFound) {
			t.Fatalf("expected ErrCarrierNotFound, got %v", err)
		}
	}
	if inner.profileCalls.Load() != 2 {
		t.Errorf("a failed load must not be cached")
	}
	if mr.Exists(carrierKey("ghost")) {
		t.Error("nothing should be stored for a missing carrier")
	}
}

func TestCachedCarrierRepository_ReplacesUndecodableEntry(t *testing.T) {
	inner := &countingRepo{}
	cache, mr := newTestCache(t, inner)
	if err := mr.Set(carrierKey("acme"), "{not json"); err != nil {
		t.Fatal(err)
	}

	p, err := cache.GetCarrierProfile(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "acme" || inner.profileCalls.Load() != 1 {
		t.Fatalf("expected a store load, got %+v (calls=%d)", p, inner.profileCalls.Load())
	}

	raw, _ := mr.Get(carrierKey("acme"))
	var stored domain.CarrierProfile
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored.ID != "acme" {
		t.Errorf("entry was not rewritten: %q", raw)
	}
}

func TestCachedCarrierRepository_Invalidate(t *testing.T) {
	inner := &countingRepo{}
	cache, mr := newTestCache(t, inner)
	ctx := context.Background()

	_, _ = cache.GetCarrierProfile(ctx, "acme")
	_, _ = cache.ListRateCards(ctx, "acme")
	_, _ = cache.GetEligibilityRules(ctx, "acme")

	if err := cache.Invalidate(ctx, "acme"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{carrierKey("acme"), rateCardsKey("acme"), rulesKey("acme")} {
		if mr.Exists(key) {
			t.Errorf("%s survived invalidation", key)
		}
	}

	_, _ = cache.GetCarrierProfile(ctx, "acme")
	if n := inner.profileCalls.Load(); n != 2 {
		t.Errorf("store calls = %d, want a reload after invalidation", n)
	}
}

// ── Shared loads ──────────────────────────────────────────────────────────────

func TestCachedCarrierRepository_ConcurrentMissesShareOneLoad(t *testing.T) {
	inner := gatedRepo()
	cache, _ := newTestCache(t, inner)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.GetCarrierProfile(context.Background(), "acme")
			errs <- err
		}()
	}

	<-inner.started
	// Give the remaining callers time to miss Redis and join the in-flight load.
	time.Sleep(100 * time.Millisecond)
	close(inner.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if n := inner.profileCalls.Load(); n != 1 {
		t.Errorf("store calls = %d, want 1", n)
	}
}

func TestCachedCarrierRepository_CancelledCallerDoesNotFailOthers(t *testing.T) {
	inner := gatedRepo()
	cache, mr := newTestCache(t, inner)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cache.GetCarrierProfile(firstCtx, "acme")
		firstErr <- err
	}()

	<-inner.started
	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("first caller: expected context.Canceled, got %v", err)
	}

	// The load is still blocked on the gate, so this caller joins it.
	secondErr := make(chan error, 1)
	var second *domain.CarrierProfile
	go func() {
		p, err := cache.GetCarrierProfile(context.Background(), "acme")
		second = p
		secondErr <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(inner.gate)

	if err := <-secondErr; err != nil {
		t.Fatalf("second caller failed because the first one went away: %v", err)
	}
	if second.ID != "acme" {
		t.Errorf("second caller got %+v", second)
	}
	if n := inner.profileCalls.Load(); n != 1 {
		t.Errorf("store calls = %d, want the shared load only", n)
	}
	if !mr.Exists(carrierKey("acme")) {
		t.Error("shared load should still populate the cache")
	}
}

func TestCachedCarrierRepository_SharedLoadIsBounded(t *testing.T) {
	inner := gatedRepo()
	cache, _ := newTestCache(t, inner)
	cache.loadTimeout = 20 * time.Millisecond

	_, err := cache.GetCarrierProfile(context.Background(), "acme")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded from the load timeout, got %v", err)
	}
}

// ── Degraded mode ─────────────────────────────────────────────────────────────

func TestCachedCarrierRepository_DegradesWhenRedisFails(t *testing.T) {
	inner := &countingRepo{}
	cache, mr := newTestCache(t, inner)
	mr.SetError("LOADING Redis is loading the dataset in memory")

	for range 2 {
		p, err := cache.GetCarrierProfile(context.Background(), "acme")
		if err != nil {
			t.Fatalf("redis errors must not surface: %v", err)
		}
		if p.Name != "Acme Freight" {
			t.Errorf("Name = %q", p.Name)
		}
	}
	if n := inner.profileCalls.Load(); n != 2 {
		t.Errorf("store calls = %d, want every call to reach the store", n)
	}
}

func TestCachedCarrierRepository_DefaultTTL(t *testing.T) {
	cache := NewCachedCarrierRepository(&countingRepo{}, redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), 0, zerolog.Nop())
	if cache.ttl != defaultCacheTTL || cache.loadTimeout != defaultLoadTimeout {
		t.Errorf("ttl = %v, loadTimeout = %v", cache.ttl, cache.loadTimeout)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := rateCardsKey("acme"); got != "rating:rate_cards:acme" {
		t.Errorf("rateCardsKey = %q", got)
	}
	if carrierKey("a") == rulesKey("a") {
		t.Error("keys for different kinds must not collide")
	}
}
