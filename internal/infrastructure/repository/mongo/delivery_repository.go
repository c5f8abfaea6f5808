package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsdesk/teamhub/internal/domain/scoring"
)

type DeliveryRepository struct {
	coll *mongo.Collection
}

func NewDeliveryRepository(db *mongo.Database) *DeliveryRepository {
	return &DeliveryRepository{coll: db.Collection(deliveriesCollection)}
}

func (r *DeliveryRepository) ListByMatch(ctx context.Context, matchID string) ([]scoring.Delivery, error) {
	oid, ok := parseID(matchID)
	if !ok {
		return []scoring.Delivery{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"matchId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find deliveries: %w", err)
	}

	var docs []deliveryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode deliveries: %w", err)
	}

	out := make([]scoring.Delivery, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *DeliveryRepository) CountByMatch(ctx context.Context, matchID string) (int, error) {
	oid, ok := parseID(matchID)
	if !ok {
		return 0, nil
	}
	count, err := r.coll.CountDocuments(ctx, bson.M{"matchId": oid})
	if err != nil {
		return 0, fmt.Errorf("count deliveries: %w", err)
	}
	return int(count), nil
}

func (r *DeliveryRepository) Append(ctx context.Context, d scoring.Delivery) error {
	doc, err := deliveryDocumentFromDomain(d)
	if err != nil {
		return fmt.Errorf("encode delivery: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert delivery: %w", mapDuplicate(err, scoring.ErrSequenceConflict))
	}
	return nil
}

func (r *DeliveryRepository) DeleteLast(ctx context.Context, matchID string) (scoring.Delivery, bool, error) {
	oid, ok := parseID(matchID)
	if !ok {
		return scoring.Delivery{}, false, nil
	}

	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "sequence", Value: -1}})
	var doc deliveryDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"matchId": oid}, opts).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return scoring.Delivery{}, false, nil
		}
		return scoring.Delivery{}, false, fmt.Errorf("delete last delivery: %w", err)
	}
	return doc.toDomain(), true, nil
}
