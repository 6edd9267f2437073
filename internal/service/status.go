package service

import (
	"fmt"

	"shipment-tracker/internal/model"
)

// DeriveStatus computes the shipment's aggregate status from its legs,
// sorted by order ascending. Rules, first match wins:
//
//  1. no legs → Pending
//  2. last leg Arrived → Arrived
//  3. any leg In Transit → "In Transit (Leg n)", first such leg
//  4. any leg Delayed → "Delayed (Leg n)", first such leg
//  5. any leg Canceled → Canceled
//  6. otherwise Pending
//
// Rule 2 beats rule 3: a shipment whose final leg has arrived reports
// Arrived even when an earlier leg still says In Transit.
func DeriveStatus(legs []*model.Leg) string {
	if len(legs) == 0 {
		return model.LegPending
	}
	if legs[len(legs)-1].Status == model.LegArrived {
		return model.LegArrived
	}
	for _, leg := range legs {
		if leg.Status == model.LegInTransit {
			return fmt.Sprintf("In Transit (Leg %d)", leg.Order)
		}
	}
	for _, leg := range legs {
		if leg.Status == model.LegDelayed {
			return fmt.Sprintf("Delayed (Leg %d)", leg.Order)
		}
	}
	for _, leg := range legs {
		if leg.Status == model.LegCanceled {
			return model.LegCanceled
		}
	}
	return model.LegPending
}
