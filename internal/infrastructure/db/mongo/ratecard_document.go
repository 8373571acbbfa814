package mongo

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

// Rate card documents were written by several generations of the admin tooling,
// so one concept can live under different field names. Each resolver below owns
// the priority order for one concept; the first key present wins.

var (
	keysCarrierID     = []string{"carrier_id", "carrierId"}
	keysName          = []string{"name", "display_name", "displayName"}
	keysStructure     = []string{"rate_structure", "rateStructure", "structure", "type"}
	keysCurrency      = []string{"currency", "currency_code", "currencyCode"}
	keysServiceLevel  = []string{"service_level", "serviceLevel", "service"}
	keysMaxWeight     = []string{"max_weight", "maxWeight"}
	keysCreatedAt     = []string{"created_at", "createdAt"}
	keysTransitTime   = []string{"transit_time", "transitTime"}
	keysEnabled       = []string{"enabled", "active", "is_active"}
	keysFuelPercent   = []string{"fuel_surcharge_percent", "fuelSurchargePercent", "fuel_surcharge", "fuelSurcharge"}
	keysDimRate       = []string{"dim_weight_rate", "dimWeightRate"}
	keysMinimumCharge = []string{"minimum_charge", "minimumCharge", "min_charge"}
	keysFlatRate      = []string{"flat_rate", "flatRate", "rate", "price"}
	keysEntryRate     = []string{"rate", "price", "amount", "charge"}

	keysSkidRates    = []string{"skid_rates", "skidRates"}
	keysSkidCount    = []string{"skid_count", "skidCount", "skids", "count"}
	keysWeightBreaks = []string{"weight_breaks", "weightBreaks"}
	keysBreakMin     = []string{"min_weight", "minWeight", "min"}
	keysBreakMax     = []string{"max_weight", "maxWeight", "max"}
	keysRatePerLb    = []string{"rate_per_lb", "ratePerLb", "rate_per_unit", "rate"}
	keysDistFactor   = []string{"distance_factor", "distanceFactor"}
	keysZoneRates    = []string{"zone_rates", "zoneRates", "zone_matrix", "zoneMatrix"}
	keysOriginZone   = []string{"origin_zone", "originZone", "from"}
	keysDestZone     = []string{"destination_zone", "destinationZone", "to"}
	keysRouteKey     = []string{"route_key", "routeKey", "route"}

	keysHybrid       = []string{"hybrid", "hybrid_rates", "hybridRates"}
	keysBaseRate     = []string{"base_rate", "baseRate"}
	keysSkidRate     = []string{"skid_rate", "skidRate"}
	keysWeightRate   = []string{"weight_rate", "weightRate"}
	keysDistanceRate = []string{"distance_rate", "distanceRate"}
)

// decodeRateCard maps a raw rate card document onto the domain type.
func decodeRateCard(doc bson.M) domain.RateCard {
	card := domain.RateCard{
		ID:                   documentID(doc["_id"]),
		CarrierID:            stringField(doc, keysCarrierID...),
		Name:                 stringField(doc, keysName...),
		RateStructure:        domain.ParseRateStructure(stringField(doc, keysStructure...)),
		Currency:             strings.ToUpper(stringField(doc, keysCurrency...)),
		ServiceLevel:         stringField(doc, keysServiceLevel...),
		MaxWeight:            numberPtr(doc, keysMaxWeight...),
		TransitTime:          stringField(doc, keysTransitTime...),
		Enabled:              resolveEnabled(doc),
		CreatedAt:            timeField(doc, keysCreatedAt...),
		FuelSurchargePercent: resolveFuelSurchargePercent(doc),
		DimWeightRate:        numberPtr(doc, keysDimRate...),
		MinimumCharge:        numberPtr(doc, keysMinimumCharge...),
		FlatRate:             resolveFlatRate(doc),
		Hybrid:               resolveHybridRates(doc),
	}

	for _, d := range documents(doc, keysSkidRates...) {
		card.SkidRates = append(card.SkidRates, domain.SkidRate{
			SkidCount: int(number(d, keysSkidCount...)),
			Rate:      resolveEntryRate(d),
		})
	}
	for _, d := range documents(doc, keysWeightBreaks...) {
		card.WeightBreaks = append(card.WeightBreaks, domain.WeightBreak{
			MinWeight:      number(d, keysBreakMin...),
			MaxWeight:      number(d, keysBreakMax...),
			RatePerLb:      number(d, keysRatePerLb...),
			MinimumCharge:  number(d, keysMinimumCharge...),
			DistanceFactor: number(d, keysDistFactor...),
		})
	}
	for _, d := range documents(doc, keysZoneRates...) {
		card.ZoneRates = append(card.ZoneRates, domain.ZoneRate{
			OriginZone:      strings.ToUpper(stringField(d, keysOriginZone...)),
			DestinationZone: strings.ToUpper(stringField(d, keysDestZone...)),
			RouteKey:        strings.ToUpper(stringField(d, keysRouteKey...)),
			Rate:            resolveEntryRate(d),
		})
	}
	return card
}

// resolveFuelSurchargePercent returns nil when no fuel field exists so the
// strategy can apply its own default.
func resolveFuelSurchargePercent(doc bson.M) *float64 {
	return numberPtr(doc, keysFuelPercent...)
}

func resolveFlatRate(doc bson.M) *float64 {
	return numberPtr(doc, keysFlatRate...)
}

// resolveEntryRate is the price of one table row (skid, zone pair).
func resolveEntryRate(doc bson.M) float64 {
	return number(doc, keysEntryRate...)
}

// resolveHybridRates reads the hybrid components from a nested document when
// present, otherwise from the card itself.
func resolveHybridRates(doc bson.M) domain.HybridRates {
	src := doc
	if nested, ok := document(doc, keysHybrid...); ok {
		src = nested
	}
	return domain.HybridRates{
		BaseRate:     numberPtr(src, keysBaseRate...),
		SkidRate:     numberPtr(src, keysSkidRate...),
		WeightRate:   numberPtr(src, keysWeightRate...),
		DistanceRate: numberPtr(src, keysDistanceRate...),
	}
}

// resolveEnabled treats a missing flag as enabled.
func resolveEnabled(doc bson.M) bool {
	for _, k := range keysEnabled {
		if v, ok := doc[k]; ok && v != nil {
			if b, ok := v.(bool); ok {
				return b
			}
		}
	}
	return true
}

// --- generic field helpers ---

func lookup(doc bson.M, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := doc[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(doc bson.M, keys ...string) string {
	v, ok := lookup(doc, keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case primitive.ObjectID:
		return s.Hex()
	}
	return ""
}

func number(doc bson.M, keys ...string) float64 {
	if p := numberPtr(doc, keys...); p != nil {
		return *p
	}
	return 0
}

// numberPtr coerces any numeric BSON representation. Unparseable values are
// treated as absent.
func numberPtr(doc bson.M, keys ...string) *float64 {
	for _, k := range keys {
		v, ok := doc[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := toFloat(v); ok {
			return &f
		}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

func timeField(doc bson.M, keys ...string) time.Time {
	v, ok := lookup(doc, keys...)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	case int64:
		return unixToTime(t)
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func document(doc bson.M, keys ...string) (bson.M, bool) {
	v, ok := lookup(doc, keys...)
	if !ok {
		return nil, false
	}
	return asDocument(v)
}

func asDocument(v any) (bson.M, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case map[string]any:
		return bson.M(d), true
	case bson.D:
		return d.Map(), true
	}
	return nil, false
}

func documents(doc bson.M, keys ...string) []bson.M {
	v, ok := lookup(doc, keys...)
	if !ok {
		return nil
	}
	var items []any
	switch a := v.(type) {
	case bson.A:
		items = a
	case []any:
		items = a
	default:
		return nil
	}
	out := make([]bson.M, 0, len(items))
	for _, item := range items {
		if d, ok := asDocument(item); ok {
			out = append(out, d)
		}
	}
	return out
}

func documentID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	}
	return ""
}
