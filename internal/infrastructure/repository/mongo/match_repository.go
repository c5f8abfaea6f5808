package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsdesk/teamhub/internal/domain/match"
)

type MatchRepository struct {
	coll *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{coll: db.Collection(matchesCollection)}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	if filter.TeamID != "" {
		oid, ok := parseID(filter.TeamID)
		if !ok {
			return []match.Match{}, nil
		}
		query["$or"] = bson.A{bson.M{"teamA": oid}, bson.M{"teamB": oid}}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	var docs []matchDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}

	out := make([]match.Match, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	oid, ok := parseID(matchID)
	if !ok {
		return match.Match{}, false, nil
	}

	var doc matchDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("find match: %w", err)
	}
	return doc.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	doc, err := matchDocumentFromDomain(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match, expectedVersion int64) error {
	doc, err := matchDocumentFromDomain(m)
	if err != nil {
		return fmt.Errorf("encode match: %w", err)
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID, "version": expectedVersion}, doc)
	if err != nil {
		return fmt.Errorf("replace match: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: match=%s expected version=%d", match.ErrVersionConflict, m.ID, expectedVersion)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	oid, ok := parseID(matchID)
	if !ok {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}
