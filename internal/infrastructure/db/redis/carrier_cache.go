package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/99minutos/carrier-rating/internal/api/metrics"
	"github.com/99minutos/carrier-rating/internal/core/domain"
	"github.com/99minutos/carrier-rating/internal/core/ports"
)

const (
	defaultCacheTTL    = 5 * time.Minute
	defaultLoadTimeout = 10 * time.Second
	keyPrefix          = "rating:"
)

// CachedCarrierRepository is a read-through cache in front of another
// CarrierRepository. Concurrent misses for the same key share one backend
// fetch. A Redis failure degrades to a direct fetch; it is never returned.
type CachedCarrierRepository struct {
	next   ports.CarrierRepository
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	log    zerolog.Logger
	// loadTimeout bounds a shared backend load, which outlives any single caller.
	loadTimeout time.Duration
}

// NewCachedCarrierRepository wraps next. A non-positive ttl uses defaultCacheTTL.
func NewCachedCarrierRepository(next ports.CarrierRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedCarrierRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedCarrierRepository{next: next, client: client, ttl: ttl, log: log, loadTimeout: defaultLoadTimeout}
}

func (c *CachedCarrierRepository) GetCarrierProfile(ctx context.Context, carrierID string) (*domain.CarrierProfile, error) {
	var out domain.CarrierProfile
	err := c.fetch(ctx, "carrier", carrierKey(carrierID), &out, func(ctx context.Context) (any, error) {
		return c.next.GetCarrierProfile(ctx, carrierID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *CachedCarrierRepository) ListRateCards(ctx context.Context, carrierID string) ([]domain.RateCard, error) {
	var out []domain.RateCard
	err := c.fetch(ctx, "rate_cards", rateCardsKey(carrierID), &out, func(ctx context.Context) (any, error) {
		return c.next.ListRateCards(ctx, carrierID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CachedCarrierRepository) GetEligibilityRules(ctx context.Context, carrierID string) (*domain.EligibilityRuleSet, error) {
	var out domain.EligibilityRuleSet
	err := c.fetch(ctx, "eligibility", rulesKey(carrierID), &out, func(ctx context.Context) (any, error) {
		return c.next.GetEligibilityRules(ctx, carrierID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCarriers is not cached; shopping needs the current carrier roster.
func (c *CachedCarrierRepository) ListCarriers(ctx context.Context) ([]domain.CarrierProfile, error) {
	return c.next.ListCarriers(ctx)
}

// Invalidate drops every cached entry for a carrier.
func (c *CachedCarrierRepository) Invalidate(ctx context.Context, carrierID string) error {
	return c.client.Del(ctx, carrierKey(carrierID), rateCardsKey(carrierID), rulesKey(carrierID)).Err()
}

// fetch serves key from Redis, or loads it once via load and stores the JSON
// encoding. dst receives the decoded value in both cases.
func (c *CachedCarrierRepository) fetch(ctx context.Context, kind, key string, dst any, load func(context.Context) (any, error)) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if jerr := json.Unmarshal(raw, dst); jerr == nil {
			metrics.CacheLookupsTotal.WithLabelValues(kind, "hit").Inc()
			return nil
		}
		c.log.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("cache read failed, loading from store")
	}
	metrics.CacheLookupsTotal.WithLabelValues(kind, "miss").Inc()

	// The load is shared by every caller waiting on key, so it runs detached
	// from the first caller's cancellation. Each caller still gives up on its
	// own context.
	ch := c.group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		val, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", kind, err)
		}
		if serr := c.client.Set(loadCtx, key, payload, c.ttl).Err(); serr != nil {
			c.log.Warn().Err(serr).Str("key", key).Msg("cache write failed")
		}
		return payload, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return res.Err
		}
		return json.Unmarshal(res.Val.([]byte), dst)
	}
}

func carrierKey(id string) string   { return keyPrefix + "carrier:" + id }
func rateCardsKey(id string) string { return keyPrefix + "rate_cards:" + id }
func rulesKey(id string) string     { return keyPrefix + "eligibility:" + id }
