package repository

import (
	"context"
	"fmt"
	"time"

	"shipment-tracker/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implementation
type MongoShipmentRepository struct {
	col *mongo.Collection
}

func NewMongoShipmentRepository(store *Store) *MongoShipmentRepository {
	return &MongoShipmentRepository{col: store.Database().Collection("shipments")}
}

func (m *MongoShipmentRepository) Create(ctx context.Context, s *model.Shipment) error {
	if s.CustomerID == "" || s.ShipperName == "" || s.ConsigneeName == "" {
		return fmt.Errorf("%w: customer, shipper and consignee are required", ErrValidation)
	}
	if s.OrderStatus == "" {
		s.OrderStatus = model.OrderPlanned
	} else if !model.IsValidOrderStatus(s.OrderStatus) {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, s.OrderStatus)
	}

	now := time.Now().UTC()
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	if s.SerialNumber == "" {
		serial, err := m.nextSerial(ctx, now.Year())
		if err != nil {
			return classify(err)
		}
		s.SerialNumber = serial
	}
	if s.ShipmentStatus == "" {
		s.ShipmentStatus = model.LegPending
	}
	if s.LegIDs == nil {
		s.LegIDs = []string{}
	}
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := m.col.InsertOne(ctx, s)
	return classify(err)
}

// nextSerial finds the highest sequence of the year and adds one. The
// max is taken numerically over the year's serials; a sort on the
// serial string would rank SHP-2026-9999 above SHP-2026-10000.
func (m *MongoShipmentRepository) nextSerial(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("^%s-%d-", serialPrefix, year)
	filter := bson.M{"serial_number": bson.M{"$regex": prefix}}
	opts := options.Find().SetProjection(bson.M{"serial_number": 1})

	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return "", err
	}
	defer cur.Close(ctx)

	var serials []string
	for cur.Next(ctx) {
		var doc struct {
			SerialNumber string `bson:"serial_number"`
		}
		if err := cur.Decode(&doc); err != nil {
			return "", err
		}
		serials = append(serials, doc.SerialNumber)
	}
	if err := cur.Err(); err != nil {
		return "", err
	}
	return FormatSerial(year, MaxSerialSeq(serials, year)+1), nil
}

func (m *MongoShipmentRepository) FindByID(ctx context.Context, id string) (*model.Shipment, error) {
	var res model.Shipment
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err != nil {
		return nil, classify(err)
	}
	return &res, nil
}

func (m *MongoShipmentRepository) FindAll(ctx context.Context) ([]*model.Shipment, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := m.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cur.Close(ctx)

	var out []*model.Shipment
	for cur.Next(ctx) {
		var v model.Shipment
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, classify(cur.Err())
}

// Update applies a partial field update. Derived fields and the leg
// reference list have their own operations below.
func (m *MongoShipmentRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return classify(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddLegRef is a single $addToSet so concurrent leg mutations never
// race on a read-modify-write of the list.
func (m *MongoShipmentRepository) AddLegRef(ctx context.Context, id, legID string) error {
	return m.updateRefs(ctx, id, bson.M{"$addToSet": bson.M{"leg_ids": legID}})
}

func (m *MongoShipmentRepository) AddLegRefs(ctx context.Context, id string, legIDs []string) error {
	return m.updateRefs(ctx, id, bson.M{"$addToSet": bson.M{"leg_ids": bson.M{"$each": legIDs}}})
}

func (m *MongoShipmentRepository) RemoveLegRef(ctx context.Context, id, legID string) error {
	return m.updateRefs(ctx, id, bson.M{"$pull": bson.M{"leg_ids": legID}})
}

// SetLegRefs replaces the whole list. Only Repair uses this.
func (m *MongoShipmentRepository) SetLegRefs(ctx context.Context, id string, legIDs []string) error {
	return m.updateRefs(ctx, id, bson.M{"$set": bson.M{"leg_ids": legIDs}})
}

func (m *MongoShipmentRepository) updateRefs(ctx context.Context, id string, update bson.M) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return classify(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDerived writes the recomputed routing and status and appends the
// change-log entry in one update.
func (m *MongoShipmentRepository) SetDerived(ctx context.Context, id, routing, status string, entry model.ChangeLogEntry) error {
	update := bson.M{
		"$set": bson.M{
			"routing":         routing,
			"shipment_status": status,
			"updated_at":      time.Now().UTC(),
		},
		"$push": bson.M{"change_log": entry},
	}
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return classify(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoShipmentRepository) AppendChangeLog(ctx context.Context, id string, entry model.ChangeLogEntry) error {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"change_log": entry}})
	if err != nil {
		return classify(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
