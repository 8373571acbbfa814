package domain

import "time"

// Breakdown line codes.
const (
	CodeFreight     = "FRT"
	CodeFuel        = "FSC"
	CodeAccessorial = "ACC"
	CodeBase        = "BASE"
	CodeSkid        = "SKD"
	CodeWeight      = "WGT"
	CodeDistance    = "DST"
)

// RateBreakdownLine is one itemised charge. Cost is the carrier's own cost and is
// informational only.
type RateBreakdownLine struct {
	Code       string  `json:"code"`
	ChargeName string  `json:"charge_name"`
	Cost       float64 `json:"cost"`
	Charge     float64 `json:"charge"`
	Currency   string  `json:"currency"`
	Source     string  `json:"source"`
}

// RateCalculationResult is the priced outcome for one carrier.
type RateCalculationResult struct {
	RateBreakdown           []RateBreakdownLine `json:"rate_breakdown"`
	BaseTotal               float64             `json:"base_total"`
	AdditionalServicesTotal float64             `json:"additional_services_total"`
	FinalTotal              float64             `json:"final_total"`
	TransitTime             string              `json:"transit_time"`
	Notes                   string              `json:"notes,omitempty"`
}

// RateQuote is the engine's response for one carrier. Result is nil when the
// carrier is ineligible, in which case Reasons explains why.
type RateQuote struct {
	Carrier      CarrierProfile         `json:"carrier"`
	Eligible     bool                   `json:"eligible"`
	Reasons      []string               `json:"reasons,omitempty"`
	RateCard     *RateCardRef           `json:"rate_card,omitempty"`
	Metrics      ShipmentMetrics        `json:"metrics"`
	Result       *RateCalculationResult `json:"result,omitempty"`
	CalculatedAt time.Time              `json:"calculated_at"`
}

// CarrierQuote is one entry of a multi-carrier shopping response. Exactly one of
// Quote and Err is set.
type CarrierQuote struct {
	CarrierID string
	Quote     *RateQuote
	Err       error
}
