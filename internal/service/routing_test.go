package service_test

import (
	"testing"

	"shipment-tracker/internal/model"
	"shipment-tracker/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRouting(t *testing.T) {
	t.Run("should return sentinel for no legs", func(t *testing.T) {
		assert.Equal(t, service.NoRouting, service.DeriveRouting(nil))
		assert.Equal(t, service.NoRouting, service.DeriveRouting([]*model.Leg{}))
	})

	t.Run("should use origin and destination of a single leg", func(t *testing.T) {
		legs := []*model.Leg{
			{Order: 1, Origin: "TLV", Destination: "JFK"},
		}
		assert.Equal(t, "TLV-JFK", service.DeriveRouting(legs))
	})

	t.Run("should chain destinations across legs", func(t *testing.T) {
		legs := []*model.Leg{
			{Order: 1, Origin: "TLV", Destination: "JFK"},
			{Order: 2, Origin: "JFK", Destination: "LAX"},
			{Order: 3, Origin: "LAX", Destination: "SFO"},
		}
		assert.Equal(t, "TLV-JFK-LAX-SFO", service.DeriveRouting(legs))
	})

	t.Run("should follow leg order even with gaps in legs", func(t *testing.T) {
		// The ground leg from JFK was never entered; the route string
		// still chains whatever destinations exist.
		legs := []*model.Leg{
			{Order: 1, Origin: "TLV", Destination: "JFK"},
			{Order: 3, Origin: "EWR", Destination: "ORD"},
		}
		assert.Equal(t, "TLV-JFK-ORD", service.DeriveRouting(legs))
	})

	t.Run("should be idempotent", func(t *testing.T) {
		legs := []*model.Leg{
			{Order: 1, Origin: "AMS", Destination: "FRA"},
			{Order: 2, Origin: "FRA", Destination: "DXB"},
		}
		first := service.DeriveRouting(legs)
		second := service.DeriveRouting(legs)
		assert.Equal(t, first, second)
	})
}
