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

type MongoLegRepository struct {
	col *mongo.Collection
}

func NewMongoLegRepository(store *Store) *MongoLegRepository {
	return &MongoLegRepository{col: store.Database().Collection("legs")}
}

// Create inserts the leg, assigning an id and, when the order is unset,
// the next free order for the shipment.
func (m *MongoLegRepository) Create(ctx context.Context, leg *model.Leg) error {
	if leg.ShipmentID == "" {
		return fmt.Errorf("%w: shipment id is required", ErrValidation)
	}
	if leg.Origin == "" || leg.Destination == "" {
		return fmt.Errorf("%w: origin and destination are required", ErrValidation)
	}
	if leg.Status == "" {
		leg.Status = model.LegPending
	} else if !model.IsValidLegStatus(leg.Status) {
		return fmt.Errorf("%w: unknown leg status %q", ErrValidation, leg.Status)
	}

	if leg.Order < 0 {
		return fmt.Errorf("%w: leg order must be positive", ErrValidation)
	}
	if leg.Order == 0 {
		max, err := m.maxOrder(ctx, leg.ShipmentID)
		if err != nil {
			return classify(err)
		}
		leg.Order = max + 1
	} else {
		taken, err := m.orderTaken(ctx, leg.ShipmentID, leg.Order, "")
		if err != nil {
			return classify(err)
		}
		if taken {
			return ErrDuplicateOrder
		}
	}

	now := time.Now().UTC()
	if leg.ID == "" {
		leg.ID = primitive.NewObjectID().Hex()
	}
	leg.CreatedAt = now
	leg.UpdatedAt = now

	_, err := m.col.InsertOne(ctx, leg)
	return classify(err)
}

func (m *MongoLegRepository) maxOrder(ctx context.Context, shipmentID string) (int, error) {
	opts := options.FindOne().SetSort(bson.M{"leg_order": -1})
	var last model.Leg
	err := m.col.FindOne(ctx, bson.M{"shipment_id": shipmentID}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Order, nil
}

// orderTaken reports whether another leg of the shipment (excluding
// excludeID) already holds the order.
func (m *MongoLegRepository) orderTaken(ctx context.Context, shipmentID string, order int, excludeID string) (bool, error) {
	filter := bson.M{"shipment_id": shipmentID, "leg_order": order}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := m.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *MongoLegRepository) FindByID(ctx context.Context, id string) (*model.Leg, error) {
	var res model.Leg
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err != nil {
		return nil, classify(err)
	}
	return &res, nil
}

func (m *MongoLegRepository) FindByShipment(ctx context.Context, shipmentID string) ([]*model.Leg, error) {
	opts := options.Find().SetSort(bson.M{"leg_order": 1})
	cur, err := m.col.Find(ctx, bson.M{"shipment_id": shipmentID}, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cur.Close(ctx)

	var out []*model.Leg
	for cur.Next(ctx) {
		var v model.Leg
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, classify(cur.Err())
}

// Update applies a partial field update. Order conflicts must be ruled
// out by the caller-supplied shipment id before changing leg_order.
func (m *MongoLegRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
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

func (m *MongoLegRepository) OrderTaken(ctx context.Context, shipmentID string, order int, excludeID string) (bool, error) {
	taken, err := m.orderTaken(ctx, shipmentID, order, excludeID)
	return taken, classify(err)
}

func (m *MongoLegRepository) Delete(ctx context.Context, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classify(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reassign reparents every leg owned by fromID under toID. Matching
// nothing is not an error; the count says so.
func (m *MongoLegRepository) Reassign(ctx context.Context, fromID, toID string) (int64, error) {
	res, err := m.col.UpdateMany(ctx,
		bson.M{"shipment_id": fromID},
		bson.M{"$set": bson.M{"shipment_id": toID, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, classify(err)
	}
	return res.ModifiedCount, nil
}
