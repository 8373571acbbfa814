package rating

import (
	"sort"
	"strings"
	"time"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const (
	scoreServiceLevel = 50
	scoreSkidFit      = 30
	scoreWeightFit    = 20
	scoreRecencyMax   = 20

	// Skids that fit a standard 53' trailer.
	truckloadSkids = 26
)

// SelectRateCard picks the best-fit card for a shipment. Cards are first filtered
// by service level; when nothing matches every card competes. Ties keep input
// order.
func SelectRateCard(cards []domain.RateCard, m domain.ShipmentMetrics, s domain.ShipmentDescription, now time.Time) (domain.RateCard, error) {
	if len(cards) == 0 {
		return domain.RateCard{}, domain.ErrNoApplicableRateCard
	}

	candidates := make([]domain.RateCard, 0, len(cards))
	for _, c := range cards {
		if strings.EqualFold(c.ServiceLevel, s.ServiceLevel) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, cards...)
	}

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		scores[i] = scoreRateCard(c, m, s, now)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return candidates[order[0]], nil
}

func scoreRateCard(c domain.RateCard, m domain.ShipmentMetrics, s domain.ShipmentDescription, now time.Time) int {
	score := 0
	if c.ServiceLevel == s.ServiceLevel {
		score += scoreServiceLevel
	}
	if c.RateStructure == domain.StructureSkidBased && m.SkidEquivalents <= truckloadSkids {
		score += scoreSkidFit
	}
	if c.MaxWeight != nil && m.ChargeableWeight <= *c.MaxWeight {
		score += scoreWeightFit
	}
	if !c.CreatedAt.IsZero() {
		ageDays := int(now.Sub(c.CreatedAt).Hours() / 24)
		if ageDays < 0 {
			ageDays = 0
		}
		if bonus := scoreRecencyMax - ageDays; bonus > 0 {
			score += bonus
		}
	}
	return score
}
