package parsers

import (
	"strings"

	"jepdash/internal/models"
)

// ClassifyEventType labels a title as an exhibition when it mentions
// "exposition" in any case, and as a visit otherwise.
func ClassifyEventType(title string) string {
	if strings.Contains(strings.ToLower(title), "exposition") {
		return models.EventTypeExhibition
	}

	return models.EventTypeVisit
}

// PricingLabel returns the pricing condition, or Free when it is absent.
func PricingLabel(condition string) string {
	if strings.TrimSpace(condition) == "" {
		return models.PricingFree
	}

	return condition
}
