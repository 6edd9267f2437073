// dto.go
package dto

import (
	"time"

	"shipment-tracker/internal/model"
)

// CreateShipmentRequest creates a shipment. The serial number is
// assigned server-side when absent.
type CreateShipmentRequest struct {
	SerialNumber  string  `json:"serialNumber"`
	OrderStatus   string  `json:"orderStatus"`
	CustomerID    string  `json:"customerId" binding:"required"`
	ShipperName   string  `json:"shipperName" binding:"required"`
	ConsigneeName string  `json:"consigneeName" binding:"required"`
	NotifyParty   string  `json:"notifyParty"`
	Weight        float64 `json:"weight"`
	Pieces        int     `json:"pieces"`
	Dimensions    string  `json:"dimensions"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Cost          float64 `json:"cost"`
	Receivables   float64 `json:"receivables"`
}

func (r *CreateShipmentRequest) ToModel() *model.Shipment {
	return &model.Shipment{
		SerialNumber:  r.SerialNumber,
		OrderStatus:   r.OrderStatus,
		CustomerID:    r.CustomerID,
		ShipperName:   r.ShipperName,
		ConsigneeName: r.ConsigneeName,
		NotifyParty:   r.NotifyParty,
		Weight:        r.Weight,
		Pieces:        r.Pieces,
		Dimensions:    r.Dimensions,
		InvoiceNumber: r.InvoiceNumber,
		Cost:          r.Cost,
		Receivables:   r.Receivables,
	}
}

type UpdateShipmentRequest struct {
	OrderStatus   *string  `json:"orderStatus"`
	CustomerID    *string  `json:"customerId"`
	ShipperName   *string  `json:"shipperName"`
	ConsigneeName *string  `json:"consigneeName"`
	NotifyParty   *string  `json:"notifyParty"`
	Weight        *float64 `json:"weight"`
	Pieces        *int     `json:"pieces"`
	Dimensions    *string  `json:"dimensions"`
	InvoiceNumber *string  `json:"invoiceNumber"`
	Cost          *float64 `json:"cost"`
	Receivables   *float64 `json:"receivables"`
}

// LegRequest carries leg fields for create and update. The legacy admin
// UI sends "from"/"to"; Normalize folds those into origin/destination so
// the rest of the system only ever sees one naming convention.
type LegRequest struct {
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	From          string    `json:"from"` // legacy alias for origin
	To            string    `json:"to"`   // legacy alias for destination
	Order         int       `json:"legOrder"`
	FlightNumber  string    `json:"flightNumber"`
	DepartureDate time.Time `json:"departureDate"`
	ArrivalDate   time.Time `json:"arrivalDate"`
	Status        string    `json:"status"`
	AWBNumber     string    `json:"awbNumber"`
	Notes         string    `json:"notes"`
}

func (r *LegRequest) Normalize() {
	if r.Origin == "" {
		r.Origin = r.From
	}
	if r.Destination == "" {
		r.Destination = r.To
	}
	if r.Status == "" {
		r.Status = model.LegPending
	}
}

func (r *LegRequest) ToModel() *model.Leg {
	return &model.Leg{
		Origin:        r.Origin,
		Destination:   r.Destination,
		Order:         r.Order,
		FlightNumber:  r.FlightNumber,
		DepartureDate: r.DepartureDate,
		ArrivalDate:   r.ArrivalDate,
		Status:        r.Status,
		AWBNumber:     r.AWBNumber,
		Notes:         r.Notes,
	}
}

// UpdateLegRequest is a partial update; nil means "leave as is".
type UpdateLegRequest struct {
	Origin        *string    `json:"origin"`
	Destination   *string    `json:"destination"`
	From          *string    `json:"from"`
	To            *string    `json:"to"`
	Order         *int       `json:"legOrder"`
	FlightNumber  *string    `json:"flightNumber"`
	DepartureDate *time.Time `json:"departureDate"`
	ArrivalDate   *time.Time `json:"arrivalDate"`
	Status        *string    `json:"status"`
	AWBNumber     *string    `json:"awbNumber"`
	Notes         *string    `json:"notes"`
}

func (r *UpdateLegRequest) Normalize() {
	if r.Origin == nil {
		r.Origin = r.From
	}
	if r.Destination == nil {
		r.Destination = r.To
	}
}

// ReassignRequest moves every leg owned by FromShipmentID under
// ToShipmentID. Accepts the legacy "shipment" alias for the target.
type ReassignRequest struct {
	FromShipmentID string `json:"fromShipmentId" binding:"required"`
	ToShipmentID   string `json:"toShipmentId"`
	Shipment       string `json:"shipment"` // legacy alias for toShipmentId
}

func (r *ReassignRequest) Normalize() {
	if r.ToShipmentID == "" {
		r.ToShipmentID = r.Shipment
	}
}

// ShipmentSummary is the compact view returned alongside leg mutations.
type ShipmentSummary struct {
	ID             string `json:"id"`
	SerialNumber   string `json:"serialNumber"`
	Routing        string `json:"routing"`
	ShipmentStatus string `json:"shipmentStatus"`
	LegCount       int    `json:"legCount"`
}

type RepairResponse struct {
	Before int          `json:"before"`
	After  int          `json:"after"`
	Legs   []*model.Leg `json:"legs"`
}
