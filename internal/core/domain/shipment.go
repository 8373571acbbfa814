package domain

// UnitSystem selects the measurement system of a shipment's packages.
type UnitSystem string

const (
	UnitImperial UnitSystem = "imperial"
	UnitMetric   UnitSystem = "metric"
)

// IsMetric reports whether weights are kg and lengths are cm.
func (u UnitSystem) IsMetric() bool {
	return u == UnitMetric
}

// WeightUnit returns the label used for weights in this unit system.
func (u UnitSystem) WeightUnit() string {
	if u.IsMetric() {
		return "kg"
	}
	return "lbs"
}

// LengthUnit returns the label used for lengths in this unit system.
func (u UnitSystem) LengthUnit() string {
	if u.IsMetric() {
		return "cm"
	}
	return "in"
}

// Shipment types and service levels the engine treats specially.
const (
	ShipmentTypeCourier = "courier"
	ShipmentTypeLTL     = "ltl"

	ServiceLevelStandard = "standard"
	ServiceLevelExpress  = "express"
)

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Address represents a physical location. Province holds a province or state code.
type Address struct {
	Address     string       `json:"address,omitempty" bson:"address,omitempty"`
	City        string       `json:"city,omitempty" bson:"city,omitempty"`
	PostalCode  string       `json:"postal_code,omitempty" bson:"postal_code,omitempty"`
	Province    string       `json:"province,omitempty" bson:"province,omitempty"`
	Country     string       `json:"country,omitempty" bson:"country,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

// Package is one line of a shipment. Quantity identical pieces share the same size.
type Package struct {
	Weight   float64 `json:"weight"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
}

// ShipmentDescription is the input to a rate calculation.
type ShipmentDescription struct {
	Packages           []Package  `json:"packages"`
	Origin             Address    `json:"origin"`
	Destination        Address    `json:"destination"`
	UnitSystem         UnitSystem `json:"unit_system"`
	ServiceLevel       string     `json:"service_level"`
	ShipmentType       string     `json:"shipment_type"`
	AdditionalServices []string   `json:"additional_services,omitempty"`
}

// Route classifies a shipment by origin and destination zone.
type Route struct {
	OriginZone      string `json:"origin_zone"`
	DestinationZone string `json:"destination_zone"`
	RouteKey        string `json:"route_key"`
}

// ShipmentMetrics are the physical facts derived from a ShipmentDescription.
type ShipmentMetrics struct {
	TotalWeight       float64    `json:"total_weight"`
	DimensionalWeight float64    `json:"dimensional_weight"`
	ChargeableWeight  float64    `json:"chargeable_weight"`
	TotalVolume       float64    `json:"total_volume"`
	SkidEquivalents   int        `json:"skid_equivalents"`
	MaxLength         float64    `json:"max_length"`
	MaxWidth          float64    `json:"max_width"`
	MaxHeight         float64    `json:"max_height"`
	TotalPieces       int        `json:"total_pieces"`
	Distance          int        `json:"distance"`
	Route             Route      `json:"route"`
	DimFactor         float64    `json:"dim_factor"`
	UnitSystem        UnitSystem `json:"unit_system"`
}
