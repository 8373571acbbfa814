package handler

import (
	"time"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type coordinatesRequest struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type addressRequest struct {
	Address     string              `json:"address"`
	City        string              `json:"city"`
	PostalCode  string              `json:"postal_code"  validate:"max=16"`
	Province    string              `json:"province"     validate:"max=8"`
	Country     string              `json:"country"      validate:"omitempty,len=2"`
	Coordinates *coordinatesRequest `json:"coordinates"  validate:"omitempty"`
}

type packageRequest struct {
	Weight   float64 `json:"weight"   validate:"gte=0"`
	Length   float64 `json:"length"   validate:"gte=0"`
	Width    float64 `json:"width"    validate:"gte=0"`
	Height   float64 `json:"height"   validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

type shipmentRequest struct {
	Packages           []packageRequest `json:"packages"            validate:"required,min=1,dive"`
	Origin             addressRequest   `json:"origin"`
	Destination        addressRequest   `json:"destination"`
	UnitSystem         string           `json:"unit_system"         validate:"omitempty,oneof=imperial metric"`
	ServiceLevel       string           `json:"service_level"       validate:"max=32"`
	ShipmentType       string           `json:"shipment_type"       validate:"omitempty,oneof=courier ltl"`
	AdditionalServices []string         `json:"additional_services" validate:"max=20"`
}

type shopRequest struct {
	shipmentRequest
	// CarrierIDs restricts shopping to these carriers; empty means all enabled carriers.
	CarrierIDs []string `json:"carrier_ids" validate:"max=50,dive,required"`
}

// --- Response types ---

type rateResponse struct {
	QuoteID string `json:"quote_id"`
	*domain.RateQuote
}

type shopEntry struct {
	CarrierID string            `json:"carrier_id"`
	Quote     *domain.RateQuote `json:"quote,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type shopResponse struct {
	QuoteID      string      `json:"quote_id"`
	CalculatedAt time.Time   `json:"calculated_at"`
	Quotes       []shopEntry `json:"quotes"`
	// Cheapest is the eligible carrier with the lowest final total. It is
	// omitted when the priced quotes are in more than one currency.
	Cheapest string `json:"cheapest_carrier_id,omitempty"`
}
