package service

import (
	"strings"

	"shipment-tracker/internal/model"
)

// NoRouting is returned when a shipment has no legs yet.
const NoRouting = "No routing"

const routingSeparator = "-"

// DeriveRouting builds the human-readable route string: the first leg's
// origin followed by every destination, in leg order. The input must
// already be sorted by order ascending. Always recomputed from the full
// leg set, never patched incrementally.
func DeriveRouting(legs []*model.Leg) string {
	if len(legs) == 0 {
		return NoRouting
	}
	parts := make([]string, 0, len(legs)+1)
	parts = append(parts, legs[0].Origin)
	for _, leg := range legs {
		parts = append(parts, leg.Destination)
	}
	return strings.Join(parts, routingSeparator)
}
