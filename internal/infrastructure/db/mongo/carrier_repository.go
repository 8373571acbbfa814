package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const (
	collectionCarriers    = "carriers"
	collectionRateCards   = "rate_cards"
	collectionEligibility = "eligibility_rules"
)

// CarrierRepository implements ports.CarrierRepository on MongoDB.
type CarrierRepository struct {
	carriers  *mongo.Collection
	rateCards *mongo.Collection
	rules     *mongo.Collection
}

func NewCarrierRepository(db *mongo.Database) *CarrierRepository {
	return &CarrierRepository{
		carriers:  db.Collection(collectionCarriers),
		rateCards: db.Collection(collectionRateCards),
		rules:     db.Collection(collectionEligibility),
	}
}

type mongoCarrier struct {
	ID      string `bson:"_id"`
	Name    string `bson:"name"`
	LogoURL string `bson:"logo_url,omitempty"`
	Enabled *bool  `bson:"enabled,omitempty"`
}

func (c mongoCarrier) toDomain() domain.CarrierProfile {
	return domain.CarrierProfile{
		ID:      c.ID,
		Name:    c.Name,
		LogoURL: c.LogoURL,
		Enabled: c.Enabled == nil || *c.Enabled,
	}
}

type mongoWeightRule struct {
	MinWeight  *float64 `bson:"min_weight,omitempty"`
	MaxWeight  *float64 `bson:"max_weight,omitempty"`
	WeightUnit string   `bson:"weight_unit"`
	Enabled    *bool    `bson:"enabled,omitempty"`
}

type mongoDimensionRule struct {
	MaxLength     *float64 `bson:"max_length,omitempty"`
	MaxWidth      *float64 `bson:"max_width,omitempty"`
	MaxHeight     *float64 `bson:"max_height,omitempty"`
	DimensionUnit string   `bson:"dimension_unit"`
	Enabled       *bool    `bson:"enabled,omitempty"`
}

type mongoRuleSet struct {
	CarrierID      string               `bson:"carrier_id"`
	WeightRules    []mongoWeightRule    `bson:"weight_rules"`
	DimensionRules []mongoDimensionRule `bson:"dimension_rules"`
}

// toDomain treats rules without an enabled flag as enabled.
func (r mongoRuleSet) toDomain() *domain.EligibilityRuleSet {
	out := &domain.EligibilityRuleSet{
		CarrierID:      r.CarrierID,
		WeightRules:    make([]domain.WeightRule, 0, len(r.WeightRules)),
		DimensionRules: make([]domain.DimensionRule, 0, len(r.DimensionRules)),
	}
	for _, w := range r.WeightRules {
		out.WeightRules = append(out.WeightRules, domain.WeightRule{
			MinWeight:  w.MinWeight,
			MaxWeight:  w.MaxWeight,
			WeightUnit: w.WeightUnit,
			Enabled:    w.Enabled == nil || *w.Enabled,
		})
	}
	for _, d := range r.DimensionRules {
		out.DimensionRules = append(out.DimensionRules, domain.DimensionRule{
			MaxLength:     d.MaxLength,
			MaxWidth:      d.MaxWidth,
			MaxHeight:     d.MaxHeight,
			DimensionUnit: d.DimensionUnit,
			Enabled:       d.Enabled == nil || *d.Enabled,
		})
	}
	return out
}

// enabledFilter matches documents whose enabled flag is absent or true.
var enabledFilter = bson.M{"enabled": bson.M{"$ne": false}}

// GetCarrierProfile retrieves a carrier by id.
func (r *CarrierRepository) GetCarrierProfile(ctx context.Context, carrierID string) (*domain.CarrierProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c mongoCarrier
	if err := r.carriers.FindOne(ctx, bson.M{"_id": carrierID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarrierNotFound
		}
		return nil, fmt.Errorf("find carrier: %w", err)
	}
	profile := c.toDomain()
	return &profile, nil
}

// ListRateCards returns the carrier's enabled rate cards in insertion order.
func (r *CarrierRepository) ListRateCards(ctx context.Context, carrierID string) ([]domain.RateCard, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"carrier_id": carrierID, "enabled": enabledFilter["enabled"]}
	cur, err := r.rateCards.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find rate cards: %w", err)
	}
	defer cur.Close(ctx)

	cards := make([]domain.RateCard, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rate card: %w", err)
		}
		card := decodeRateCard(doc)
		if !card.Enabled {
			continue
		}
		if card.CarrierID == "" {
			card.CarrierID = carrierID
		}
		cards = append(cards, card)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate rate cards: %w", err)
	}
	return cards, nil
}

// GetEligibilityRules returns the carrier's rule set, or an empty one.
func (r *CarrierRepository) GetEligibilityRules(ctx context.Context, carrierID string) (*domain.EligibilityRuleSet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rs mongoRuleSet
	if err := r.rules.FindOne(ctx, bson.M{"carrier_id": carrierID}).Decode(&rs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &domain.EligibilityRuleSet{CarrierID: carrierID}, nil
		}
		return nil, fmt.Errorf("find eligibility rules: %w", err)
	}
	return rs.toDomain(), nil
}

// ListCarriers returns every enabled carrier sorted by id.
func (r *CarrierRepository) ListCarriers(ctx context.Context) ([]domain.CarrierProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.carriers.Find(ctx, enabledFilter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find carriers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCarrier
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode carriers: %w", err)
	}
	out := make([]domain.CarrierProfile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// EnsureIndexes creates the indexes the rating lookups rely on.
func (r *CarrierRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.rateCards.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "carrier_id", Value: 1}, {Key: "enabled", Value: 1}},
	}); err != nil {
		return fmt.Errorf("rate card index: %w", err)
	}
	if _, err := r.rules.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "carrier_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("eligibility index: %w", err)
	}
	return nil
}
