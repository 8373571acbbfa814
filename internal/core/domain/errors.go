package domain

import (
	"errors"
	"fmt"
)

var ErrCarrierNotFound = errors.New("carrier not found")
var ErrNoApplicableRateCard = errors.New("no applicable rate card")

// ErrInvalidRateCard is the parent of every rate card configuration error.
var ErrInvalidRateCard = errors.New("invalid rate card configuration")

var (
	ErrMissingSkidRates      = fmt.Errorf("%w: no skid rates configured", ErrInvalidRateCard)
	ErrMissingWeightBreaks   = fmt.Errorf("%w: no weight breaks configured", ErrInvalidRateCard)
	ErrNoMatchingWeightBreak = fmt.Errorf("%w: no weight break covers the chargeable weight", ErrInvalidRateCard)
	ErrMissingZoneMatrix     = fmt.Errorf("%w: no zone rates configured", ErrInvalidRateCard)
	ErrZoneRateNotFound      = fmt.Errorf("%w: no zone rate for route", ErrInvalidRateCard)
)

// IsConfigurationError reports whether err stems from carrier configuration
// rather than from infrastructure.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidRateCard) || errors.Is(err, ErrNoApplicableRateCard)
}
