package service

import (
	"context"
	"fmt"

	"shipment-tracker/internal/dto"
	"shipment-tracker/internal/model"
	"shipment-tracker/internal/repository"
)

type ShipmentService struct {
	shipments ShipmentRepository
	legs      LegRepository
}

func NewShipmentService(shipments ShipmentRepository, legs LegRepository) *ShipmentService {
	return &ShipmentService{shipments: shipments, legs: legs}
}

// Create persists the shipment. The repository assigns the serial
// number; the first change-log entry is written here so it carries the
// actor.
func (s *ShipmentService) Create(ctx context.Context, shipment *model.Shipment, actor string) (*model.Shipment, error) {
	shipment.ChangeLog = []model.ChangeLogEntry{
		changeEntry(actor, "created", "Shipment created"),
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Get returns the shipment with its legs resolved, ordered by leg order.
func (s *ShipmentService) Get(ctx context.Context, id string) (*model.Shipment, []*model.Leg, error) {
	shipment, err := s.shipments.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	legs, err := s.legs.FindByShipment(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return shipment, legs, nil
}

func (s *ShipmentService) GetAll(ctx context.Context) ([]*model.Shipment, error) {
	return s.shipments.FindAll(ctx)
}

// Update applies a partial edit of the shipment's own fields. Derived
// fields and leg references are owned by LegService.
func (s *ShipmentService) Update(ctx context.Context, id string, req *dto.UpdateShipmentRequest, actor string) (*model.Shipment, error) {
	fields := map[string]interface{}{}
	if req.OrderStatus != nil {
		if !model.IsValidOrderStatus(*req.OrderStatus) {
			return nil, fmt.Errorf("%w: unknown order status %q", repository.ErrValidation, *req.OrderStatus)
		}
		fields["order_status"] = *req.OrderStatus
	}
	if req.CustomerID != nil {
		fields["customer_id"] = *req.CustomerID
	}
	if req.ShipperName != nil {
		fields["shipper_name"] = *req.ShipperName
	}
	if req.ConsigneeName != nil {
		fields["consignee_name"] = *req.ConsigneeName
	}
	if req.NotifyParty != nil {
		fields["notify_party"] = *req.NotifyParty
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}
	if req.Pieces != nil {
		fields["pieces"] = *req.Pieces
	}
	if req.Dimensions != nil {
		fields["dimensions"] = *req.Dimensions
	}
	if req.InvoiceNumber != nil {
		fields["invoice_number"] = *req.InvoiceNumber
	}
	if req.Cost != nil {
		fields["cost"] = *req.Cost
	}
	if req.Receivables != nil {
		fields["receivables"] = *req.Receivables
	}

	if err := s.shipments.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	if err := s.shipments.AppendChangeLog(ctx, id, changeEntry(actor, "updated", "Shipment fields updated")); err != nil {
		return nil, err
	}
	return s.shipments.FindByID(ctx, id)
}
