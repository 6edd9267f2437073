package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"shipment-tracker/internal/dto"
	"shipment-tracker/internal/model"
	"shipment-tracker/internal/repository"
)

// Interfaces implemented by the Mongo repositories.
type ShipmentRepository interface {
	Create(ctx context.Context, s *model.Shipment) error
	FindByID(ctx context.Context, id string) (*model.Shipment, error)
	FindAll(ctx context.Context) ([]*model.Shipment, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	AddLegRef(ctx context.Context, id, legID string) error
	AddLegRefs(ctx context.Context, id string, legIDs []string) error
	RemoveLegRef(ctx context.Context, id, legID string) error
	SetLegRefs(ctx context.Context, id string, legIDs []string) error
	SetDerived(ctx context.Context, id, routing, status string, entry model.ChangeLogEntry) error
	AppendChangeLog(ctx context.Context, id string, entry model.ChangeLogEntry) error
}

type LegRepository interface {
	Create(ctx context.Context, leg *model.Leg) error
	FindByID(ctx context.Context, id string) (*model.Leg, error)
	FindByShipment(ctx context.Context, shipmentID string) ([]*model.Leg, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	OrderTaken(ctx context.Context, shipmentID string, order int, excludeID string) (bool, error)
	Delete(ctx context.Context, id string) error
	Reassign(ctx context.Context, fromID, toID string) (int64, error)
}

// Event is what gets published to the notify feed on every mutation.
type Event struct {
	Action      string    `json:"action"`
	ShipmentID  string    `json:"shipmentId"`
	LegID       string    `json:"legId,omitempty"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	Routing     string    `json:"routing,omitempty"`
	Status      string    `json:"status,omitempty"`
	Actor       string    `json:"actor,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Change-log action tags.
const (
	ActionAddedLeg       = "added-leg"
	ActionUpdatedLeg     = "updated-leg"
	ActionDeletedLeg     = "deleted-leg"
	ActionReassignedLegs = "reassigned-legs"
	ActionRepairedLegs   = "repaired-legs"
)

// LegService keeps a shipment's leg-reference list and derived fields
// in step with the legs collection. Multi-step sequences are not
// transactional: a failure after the leg write leaves the shipment
// stale until Repair reconciles it.
type LegService struct {
	shipments ShipmentRepository
	legs      LegRepository
	events    EventPublisher
}

func NewLegService(shipments ShipmentRepository, legs LegRepository, events EventPublisher) *LegService {
	return &LegService{shipments: shipments, legs: legs, events: events}
}

func changeEntry(actor, action, detail string) model.ChangeLogEntry {
	return model.ChangeLogEntry{
		Timestamp: time.Now().UTC(),
		Actor:     actor,
		Action:    action,
		Detail:    detail,
	}
}

// AddLeg creates a leg under an existing shipment and brings the
// shipment's references and derived fields up to date.
func (s *LegService) AddLeg(ctx context.Context, shipmentID string, leg *model.Leg, actor string) (*model.Leg, *dto.ShipmentSummary, error) {
	shipment, err := s.shipments.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, nil, err
	}

	leg.ShipmentID = shipmentID
	if err := s.legs.Create(ctx, leg); err != nil {
		return nil, nil, err
	}

	if err := s.shipments.AddLegRef(ctx, shipmentID, leg.ID); err != nil {
		log.Printf("add leg %s: reference update failed, shipment %s needs repair: %v", leg.ID, shipmentID, err)
		return nil, nil, err
	}

	detail := fmt.Sprintf("Leg %d from %s to %s", leg.Order, leg.Origin, leg.Destination)
	all, routing, status, err := s.refreshDerived(ctx, shipmentID, changeEntry(actor, ActionAddedLeg, detail))
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, Event{
		Action:      ActionAddedLeg,
		ShipmentID:  shipmentID,
		LegID:       leg.ID,
		Origin:      leg.Origin,
		Destination: leg.Destination,
		Routing:     routing,
		Status:      status,
		Actor:       actor,
		Timestamp:   time.Now().UTC(),
	})

	summary := &dto.ShipmentSummary{
		ID:             shipment.ID,
		SerialNumber:   shipment.SerialNumber,
		Routing:        routing,
		ShipmentStatus: status,
		LegCount:       len(all),
	}
	return leg, summary, nil
}

// UpdateLeg applies a partial update and re-derives the owning
// shipment's routing and status.
func (s *LegService) UpdateLeg(ctx context.Context, legID string, req *dto.UpdateLegRequest, actor string) (*model.Leg, error) {
	req.Normalize()

	leg, err := s.legs.FindByID(ctx, legID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Origin != nil {
		fields["origin"] = *req.Origin
	}
	if req.Destination != nil {
		fields["destination"] = *req.Destination
	}
	if req.Order != nil {
		if *req.Order < 1 {
			return nil, fmt.Errorf("%w: leg order must be positive", repository.ErrValidation)
		}
		if *req.Order != leg.Order {
			taken, err := s.legs.OrderTaken(ctx, leg.ShipmentID, *req.Order, legID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, repository.ErrDuplicateOrder
			}
			fields["leg_order"] = *req.Order
		}
	}
	if req.FlightNumber != nil {
		fields["flight_number"] = *req.FlightNumber
	}
	if req.DepartureDate != nil {
		fields["departure_date"] = *req.DepartureDate
	}
	if req.ArrivalDate != nil {
		fields["arrival_date"] = *req.ArrivalDate
	}
	if req.Status != nil {
		if !model.IsValidLegStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown leg status %q", repository.ErrValidation, *req.Status)
		}
		fields["status"] = *req.Status
	}
	if req.AWBNumber != nil {
		fields["awb_number"] = *req.AWBNumber
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if err := s.legs.Update(ctx, legID, fields); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("Leg %d from %s to %s", leg.Order, leg.Origin, leg.Destination)
	_, routing, status, err := s.refreshDerived(ctx, leg.ShipmentID, changeEntry(actor, ActionUpdatedLeg, detail))
	if err != nil {
		return nil, err
	}

	updated, err := s.legs.FindByID(ctx, legID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{
		Action:      ActionUpdatedLeg,
		ShipmentID:  leg.ShipmentID,
		LegID:       legID,
		Origin:      updated.Origin,
		Destination: updated.Destination,
		Routing:     routing,
		Status:      status,
		Actor:       actor,
		Timestamp:   time.Now().UTC(),
	})
	return updated, nil
}

// DeleteLeg removes the leg and its reference, then re-derives.
func (s *LegService) DeleteLeg(ctx context.Context, legID, actor string) error {
	leg, err := s.legs.FindByID(ctx, legID)
	if err != nil {
		return err
	}

	if err := s.legs.Delete(ctx, legID); err != nil {
		return err
	}
	if err := s.shipments.RemoveLegRef(ctx, leg.ShipmentID, legID); err != nil {
		log.Printf("delete leg %s: reference update failed, shipment %s needs repair: %v", legID, leg.ShipmentID, err)
		return err
	}

	detail := fmt.Sprintf("Leg %d from %s to %s", leg.Order, leg.Origin, leg.Destination)
	_, routing, status, err := s.refreshDerived(ctx, leg.ShipmentID, changeEntry(actor, ActionDeletedLeg, detail))
	if err != nil {
		return err
	}

	s.publish(ctx, Event{
		Action:      ActionDeletedLeg,
		ShipmentID:  leg.ShipmentID,
		LegID:       legID,
		Origin:      leg.Origin,
		Destination: leg.Destination,
		Routing:     routing,
		Status:      status,
		Actor:       actor,
		Timestamp:   time.Now().UTC(),
	})
	return nil
}

// Reassign moves every leg owned by fromID (typically a temporary
// pre-persistence id) under toID and re-derives the target. The vacated
// id is not touched.
func (s *LegService) Reassign(ctx context.Context, fromID, toID, actor string) (int64, error) {
	if _, err := s.shipments.FindByID(ctx, toID); err != nil {
		return 0, err
	}

	count, err := s.legs.Reassign(ctx, fromID, toID)
	if err != nil {
		return 0, err
	}

	all, err := s.legs.FindByShipment(ctx, toID)
	if err != nil {
		return count, err
	}
	if err := s.shipments.AddLegRefs(ctx, toID, legIDs(all)); err != nil {
		log.Printf("reassign %s -> %s: reference update failed, target needs repair: %v", fromID, toID, err)
		return count, err
	}

	detail := fmt.Sprintf("%d legs moved from %s", count, fromID)
	_, routing, status, err := s.refreshDerived(ctx, toID, changeEntry(actor, ActionReassignedLegs, detail))
	if err != nil {
		return count, err
	}

	s.publish(ctx, Event{
		Action:     ActionReassignedLegs,
		ShipmentID: toID,
		Routing:    routing,
		Status:     status,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
	})
	return count, nil
}

// Repair rebuilds the shipment's leg-reference list from the legs
// collection, which is authoritative. Idempotent; the corrective action
// for any partial failure above.
func (s *LegService) Repair(ctx context.Context, shipmentID, actor string) (*dto.RepairResponse, error) {
	shipment, err := s.shipments.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	before := len(shipment.LegIDs)

	legs, err := s.legs.FindByShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if err := s.shipments.SetLegRefs(ctx, shipmentID, legIDs(legs)); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("references rebuilt: %d before, %d after", before, len(legs))
	entry := changeEntry(actor, ActionRepairedLegs, detail)
	if err := s.shipments.SetDerived(ctx, shipmentID, DeriveRouting(legs), DeriveStatus(legs), entry); err != nil {
		return nil, err
	}

	return &dto.RepairResponse{Before: before, After: len(legs), Legs: legs}, nil
}

func (s *LegService) GetLegs(ctx context.Context, shipmentID string) ([]*model.Leg, error) {
	return s.legs.FindByShipment(ctx, shipmentID)
}

// refreshDerived re-reads the shipment's legs and persists the
// recomputed routing and status together with the change-log entry.
func (s *LegService) refreshDerived(ctx context.Context, shipmentID string, entry model.ChangeLogEntry) ([]*model.Leg, string, string, error) {
	legs, err := s.legs.FindByShipment(ctx, shipmentID)
	if err != nil {
		return nil, "", "", err
	}
	routing := DeriveRouting(legs)
	status := DeriveStatus(legs)
	if err := s.shipments.SetDerived(ctx, shipmentID, routing, status, entry); err != nil {
		log.Printf("shipment %s: derived-field update failed, repair will reconcile: %v", shipmentID, err)
		return nil, "", "", err
	}
	return legs, routing, status, nil
}

func (s *LegService) publish(ctx context.Context, ev Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		// Best effort; the mutation already succeeded.
		log.Printf("event publish failed for %s on %s: %v", ev.Action, ev.ShipmentID, err)
	}
}

func legIDs(legs []*model.Leg) []string {
	ids := make([]string, 0, len(legs))
	for _, leg := range legs {
		ids = append(ids, leg.ID)
	}
	return ids
}
