// models.go
package model

import "time"

// Order statuses set by the back office, independent of the derived
// shipment status.
const (
	OrderPlanned   = "planned"
	OrderConfirmed = "confirmed"
	OrderDone      = "done"
	OrderCanceled  = "canceled"
)

// Leg statuses as reported by carriers.
const (
	LegPending   = "Pending"
	LegInTransit = "In Transit"
	LegArrived   = "Arrived"
	LegDelayed   = "Delayed"
	LegCanceled  = "Canceled"
)

type Shipment struct {
	ID             string  `bson:"_id,omitempty" json:"id"`
	SerialNumber   string  `bson:"serial_number" json:"serialNumber"`
	OrderStatus    string  `bson:"order_status" json:"orderStatus"`
	ShipmentStatus string  `bson:"shipment_status" json:"shipmentStatus"` // derived from legs
	Routing        string  `bson:"routing" json:"routing"`                // derived from legs
	CustomerID     string  `bson:"customer_id" json:"customerId"`
	ShipperName    string  `bson:"shipper_name" json:"shipperName"`
	ConsigneeName  string  `bson:"consignee_name" json:"consigneeName"`
	NotifyParty    string  `bson:"notify_party" json:"notifyParty"`
	Weight         float64 `bson:"weight" json:"weight"`
	Pieces         int     `bson:"pieces" json:"pieces"`
	Dimensions     string  `bson:"dimensions" json:"dimensions"`
	InvoiceNumber  string  `bson:"invoice_number" json:"invoiceNumber"`
	Cost           float64 `bson:"cost" json:"cost"`
	Receivables    float64 `bson:"receivables" json:"receivables"`

	// Leg ids in insertion order. Not authoritative: the legs collection
	// is, and Repair rebuilds this list from it.
	LegIDs []string `bson:"leg_ids" json:"legIds"`

	ChangeLog []ChangeLogEntry `bson:"change_log" json:"changeLog"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type Leg struct {
	ID string `bson:"_id,omitempty" json:"id"`

	// Owning shipment id. A plain string so legs created against a
	// temporary pre-persistence id can be reassigned later.
	ShipmentID string `bson:"shipment_id" json:"shipmentId"`

	Order         int       `bson:"leg_order" json:"legOrder"` // 1-based, unique per shipment
	Origin        string    `bson:"origin" json:"origin"`
	Destination   string    `bson:"destination" json:"destination"`
	FlightNumber  string    `bson:"flight_number" json:"flightNumber"`
	DepartureDate time.Time `bson:"departure_date" json:"departureDate"`
	ArrivalDate   time.Time `bson:"arrival_date" json:"arrivalDate"`
	Status        string    `bson:"status" json:"status"`
	AWBNumber     string    `bson:"awb_number" json:"awbNumber"`
	Notes         string    `bson:"notes" json:"notes"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// ChangeLogEntry is appended to a shipment on every mutation. Never
// edited or removed.
type ChangeLogEntry struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Actor     string    `bson:"actor" json:"actor"`
	Action    string    `bson:"action" json:"action"`
	Detail    string    `bson:"detail" json:"detail"`
}

var validOrderStatuses = map[string]bool{
	OrderPlanned:   true,
	OrderConfirmed: true,
	OrderDone:      true,
	OrderCanceled:  true,
}

func IsValidOrderStatus(s string) bool {
	return validOrderStatuses[s]
}

var validLegStatuses = map[string]bool{
	LegPending:   true,
	LegInTransit: true,
	LegArrived:   true,
	LegDelayed:   true,
	LegCanceled:  true,
}

func IsValidLegStatus(s string) bool {
	return validLegStatuses[s]
}
