package handler

import (
	"errors"
	"strings"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

// --- Request → domain ---

func toShipment(req shipmentRequest) domain.ShipmentDescription {
	packages := make([]domain.Package, 0, len(req.Packages))
	for _, p := range req.Packages {
		packages = append(packages, domain.Package{
			Weight:   p.Weight,
			Length:   p.Length,
			Width:    p.Width,
			Height:   p.Height,
			Quantity: p.Quantity,
		})
	}

	unit := domain.UnitImperial
	if strings.EqualFold(req.UnitSystem, string(domain.UnitMetric)) {
		unit = domain.UnitMetric
	}

	return domain.ShipmentDescription{
		Packages:           packages,
		Origin:             toAddress(req.Origin),
		Destination:        toAddress(req.Destination),
		UnitSystem:         unit,
		ServiceLevel:       strings.TrimSpace(req.ServiceLevel),
		ShipmentType:       strings.ToLower(strings.TrimSpace(req.ShipmentType)),
		AdditionalServices: req.AdditionalServices,
	}
}

func toAddress(a addressRequest) domain.Address {
	addr := domain.Address{
		Address:    a.Address,
		City:       a.City,
		PostalCode: strings.TrimSpace(a.PostalCode),
		Province:   strings.ToUpper(strings.TrimSpace(a.Province)),
		Country:    strings.ToUpper(a.Country),
	}
	if a.Coordinates != nil {
		addr.Coordinates = &domain.Coordinates{Lat: a.Coordinates.Lat, Lng: a.Coordinates.Lng}
	}
	return addr
}

// --- Domain → response ---

// toShopEntries maps shopping results in request order and picks the cheapest
// eligible priced carrier. Totals are only comparable within one currency, so
// no cheapest carrier is named when priced quotes mix currencies.
func toShopEntries(results []domain.CarrierQuote) ([]shopEntry, string) {
	entries := make([]shopEntry, 0, len(results))
	var (
		cheapest, currency string
		best               float64
		mixed              bool
	)
	for _, r := range results {
		entry := shopEntry{CarrierID: r.CarrierID, Quote: r.Quote}
		if r.Err != nil {
			entry.Error = carrierErrorMessage(r.Err)
		}
		entries = append(entries, entry)

		q := r.Quote
		if q == nil || !q.Eligible || q.Result == nil || q.RateCard == nil {
			continue
		}
		switch {
		case cheapest == "":
			currency = q.RateCard.Currency
		case !strings.EqualFold(q.RateCard.Currency, currency):
			mixed = true
			continue
		case q.Result.FinalTotal >= best:
			continue
		}
		cheapest, best = r.CarrierID, q.Result.FinalTotal
	}
	if mixed {
		return entries, ""
	}
	return entries, cheapest
}

// carrierErrorMessage is the client-safe message for one failed carrier in a
// shopping response. Configuration problems are surfaced verbatim so operators
// can fix the carrier's data; anything else stays generic.
func carrierErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrCarrierNotFound):
		return "carrier not found"
	case domain.IsConfigurationError(err):
		return err.Error()
	default:
		return "rate calculation failed"
	}
}
