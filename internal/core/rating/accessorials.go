package rating

import (
	"strings"

	"github.com/99minutos/carrier-rating/internal/core/domain"
)

const (
	defaultAccessorialFee = 25.0
	sourceAccessorial     = "additional_services"
)

// AdditionalServices prices each requested service code as a flat ACC line and
// returns the lines with their sum. Unknown codes cost the default fee and keep
// their own code as the label.
func AdditionalServices(codes []string, currency string, t Tables) ([]domain.RateBreakdownLine, float64) {
	lines := make([]domain.RateBreakdownLine, 0, len(codes))
	var total float64
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		acc, ok := t.AccessorialFees[strings.ToLower(code)]
		if !ok {
			acc = Accessorial{Label: code, Fee: defaultAccessorialFee}
		}
		l := newLine(domain.CodeAccessorial, acc.Label, acc.Fee, currency, sourceAccessorial)
		lines = append(lines, l)
		total += l.Charge
	}
	return lines, round2(total)
}
