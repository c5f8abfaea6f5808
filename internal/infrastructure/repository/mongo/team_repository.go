package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsdesk/teamhub/internal/domain/team"
)

type TeamRepository struct {
	coll *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{coll: db.Collection(teamsCollection)}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("find active teams: %w", err)
	}

	var docs []teamDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode active teams: %w", err)
	}

	out := make([]team.Team, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	oid, ok := parseID(teamID)
	if !ok {
		return team.Team{}, false, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *TeamRepository) FindActiveConflict(ctx context.Context, nameKey, shortName, excludeTeamID string) (team.Team, bool, error) {
	filter := bson.M{
		"isActive": true,
		"$or": bson.A{
			bson.M{"nameKey": nameKey},
			bson.M{"shortName": shortName},
		},
	}
	if oid, ok := parseID(excludeTeamID); ok {
		filter["_id"] = bson.M{"$ne": oid}
	}
	return r.findOne(ctx, filter)
}

func (r *TeamRepository) findOne(ctx context.Context, filter bson.M) (team.Team, bool, error) {
	var doc teamDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("find team: %w", err)
	}
	return doc.toDomain(), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	doc, err := teamDocumentFromDomain(item)
	if err != nil {
		return fmt.Errorf("encode team: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert team: %w", mapDuplicate(err, team.ErrDuplicateTeam))
	}
	return nil
}

// Save replaces the whole document, roster included, guarded by the version filter.
func (r *TeamRepository) Save(ctx context.Context, item team.Team, expectedVersion int64) error {
	doc, err := teamDocumentFromDomain(item)
	if err != nil {
		return fmt.Errorf("encode team: %w", err)
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID, "version": expectedVersion}, doc)
	if err != nil {
		return fmt.Errorf("replace team: %w", mapDuplicate(err, team.ErrDuplicateTeam))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: team=%s expected version=%d", team.ErrVersionConflict, item.ID, expectedVersion)
	}
	return nil
}
