package service_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"shipment-tracker/internal/model"
	"shipment-tracker/internal/repository"
)

// In-memory doubles honoring the same contracts as the Mongo
// repositories, including order auto-assignment, uniqueness and
// set-like leg references.

type fakeShipmentRepo struct {
	shipments map[string]*model.Shipment
	seq       int
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: map[string]*model.Shipment{}}
}

func (f *fakeShipmentRepo) Create(ctx context.Context, s *model.Shipment) error {
	if s.CustomerID == "" || s.ShipperName == "" || s.ConsigneeName == "" {
		return fmt.Errorf("%w: customer, shipper and consignee are required", repository.ErrValidation)
	}
	if s.ID == "" {
		f.seq++
		s.ID = fmt.Sprintf("ship-%d", f.seq)
	}
	if s.SerialNumber == "" {
		year := time.Now().Year()
		serials := make([]string, 0, len(f.shipments))
		for _, other := range f.shipments {
			serials = append(serials, other.SerialNumber)
		}
		s.SerialNumber = repository.FormatSerial(year, repository.MaxSerialSeq(serials, year)+1)
	}
	if s.OrderStatus == "" {
		s.OrderStatus = model.OrderPlanned
	}
	if s.ShipmentStatus == "" {
		s.ShipmentStatus = model.LegPending
	}
	if s.LegIDs == nil {
		s.LegIDs = []string{}
	}
	f.shipments[s.ID] = s
	return nil
}

func (f *fakeShipmentRepo) FindByID(ctx context.Context, id string) (*model.Shipment, error) {
	s, ok := f.shipments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeShipmentRepo) FindAll(ctx context.Context) ([]*model.Shipment, error) {
	var out []*model.Shipment
	for _, s := range f.shipments {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeShipmentRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	s, ok := f.shipments[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "order_status":
			s.OrderStatus = v.(string)
		case "customer_id":
			s.CustomerID = v.(string)
		case "shipper_name":
			s.ShipperName = v.(string)
		case "consignee_name":
			s.ConsigneeName = v.(string)
		case "notify_party":
			s.NotifyParty = v.(string)
		case "weight":
			s.Weight = v.(float64)
		case "pieces":
			s.Pieces = v.(int)
		case "dimensions":
			s.Dimensions = v.(string)
		case "invoice_number":
			s.InvoiceNumber = v.(string)
		case "cost":
			s.Cost = v.(float64)
		case "receivables":
			s.Receivables = v.(float64)
		}
	}
	return nil
}

func (f *fakeShipmentRepo) AddLegRef(ctx context.Context, id, legID string) error {
	s, ok := f.shipments[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, existing := range s.LegIDs {
		if existing == legID {
			return nil
		}
	}
	s.LegIDs = append(s.LegIDs, legID)
	return nil
}

func (f *fakeShipmentRepo) AddLegRefs(ctx context.Context, id string, legIDs []string) error {
	for _, legID := range legIDs {
		if err := f.AddLegRef(ctx, id, legID); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeShipmentRepo) RemoveLegRef(ctx context.Context, id, legID string) error {
	s, ok := f.shipments[id]
	if !ok {
		return repository.ErrNotFound
	}
	out := s.LegIDs[:0]
	for _, existing := range s.LegIDs {
		if existing != legID {
			out = append(out, existing)
		}
	}
	s.LegIDs = out
	return nil
}

func (f *fakeShipmentRepo) SetLegRefs(ctx context.Context, id string, legIDs []string) error {
	s, ok := f.shipments[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.LegIDs = legIDs
	return nil
}

func (f *fakeShipmentRepo) SetDerived(ctx context.Context, id, routing, status string, entry model.ChangeLogEntry) error {
	s, ok := f.shipments[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Routing = routing
	s.ShipmentStatus = status
	s.ChangeLog = append(s.ChangeLog, entry)
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeShipmentRepo) AppendChangeLog(ctx context.Context, id string, entry model.ChangeLogEntry) error {
	s, ok := f.shipments[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.ChangeLog = append(s.ChangeLog, entry)
	return nil
}

type fakeLegRepo struct {
	legs map[string]*model.Leg
	seq  int
}

func newFakeLegRepo() *fakeLegRepo {
	return &fakeLegRepo{legs: map[string]*model.Leg{}}
}

func (f *fakeLegRepo) Create(ctx context.Context, leg *model.Leg) error {
	if leg.ShipmentID == "" {
		return fmt.Errorf("%w: shipment id is required", repository.ErrValidation)
	}
	if leg.Origin == "" || leg.Destination == "" {
		return fmt.Errorf("%w: origin and destination are required", repository.ErrValidation)
	}
	if leg.Status == "" {
		leg.Status = model.LegPending
	}
	if leg.Order < 0 {
		return fmt.Errorf("%w: leg order must be positive", repository.ErrValidation)
	}
	if leg.Order == 0 {
		max := 0
		for _, other := range f.legs {
			if other.ShipmentID == leg.ShipmentID && other.Order > max {
				max = other.Order
			}
		}
		leg.Order = max + 1
	} else {
		for _, other := range f.legs {
			if other.ShipmentID == leg.ShipmentID && other.Order == leg.Order {
				return repository.ErrDuplicateOrder
			}
		}
	}
	if leg.ID == "" {
		f.seq++
		leg.ID = fmt.Sprintf("leg-%d", f.seq)
	}
	f.legs[leg.ID] = leg
	return nil
}

func (f *fakeLegRepo) FindByID(ctx context.Context, id string) (*model.Leg, error) {
	leg, ok := f.legs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *leg
	return &cp, nil
}

func (f *fakeLegRepo) FindByShipment(ctx context.Context, shipmentID string) ([]*model.Leg, error) {
	var out []*model.Leg
	for _, leg := range f.legs {
		if leg.ShipmentID == shipmentID {
			cp := *leg
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (f *fakeLegRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	leg, ok := f.legs[id]
	if !ok {
		return repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "origin":
			leg.Origin = v.(string)
		case "destination":
			leg.Destination = v.(string)
		case "leg_order":
			leg.Order = v.(int)
		case "flight_number":
			leg.FlightNumber = v.(string)
		case "departure_date":
			leg.DepartureDate = v.(time.Time)
		case "arrival_date":
			leg.ArrivalDate = v.(time.Time)
		case "status":
			leg.Status = v.(string)
		case "awb_number":
			leg.AWBNumber = v.(string)
		case "notes":
			leg.Notes = v.(string)
		}
	}
	return nil
}

func (f *fakeLegRepo) OrderTaken(ctx context.Context, shipmentID string, order int, excludeID string) (bool, error) {
	for _, leg := range f.legs {
		if leg.ID == excludeID {
			continue
		}
		if leg.ShipmentID == shipmentID && leg.Order == order {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLegRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.legs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.legs, id)
	return nil
}

func (f *fakeLegRepo) Reassign(ctx context.Context, fromID, toID string) (int64, error) {
	var count int64
	for _, leg := range f.legs {
		if leg.ShipmentID == fromID {
			leg.ShipmentID = toID
			count++
		}
	}
	return count, nil
}
