package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	teamsCollection       = "teams"
	matchesCollection     = "matches"
	deliveriesCollection  = "match_deliveries"
	superAdminsCollection = "super_admins"
	subAdminsCollection   = "sub_admins"
)

// Connect opens a client and verifies it with a ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	activeOnly := bson.M{"isActive": true}
	specs := map[string][]mongo.IndexModel{
		teamsCollection: {
			{
				Keys:    bson.D{{Key: "nameKey", Value: 1}},
				Options: options.Index().SetName("uq_teams_active_name_key").SetUnique(true).SetPartialFilterExpression(activeOnly),
			},
			{
				Keys:    bson.D{{Key: "shortName", Value: 1}},
				Options: options.Index().SetName("uq_teams_active_short_name").SetUnique(true).SetPartialFilterExpression(activeOnly),
			},
			{
				Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: 1}},
				Options: options.Index().SetName("idx_teams_active_created"),
			},
		},
		matchesCollection: {
			{
				Keys:    bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}},
				Options: options.Index().SetName("idx_matches_date"),
			},
		},
		deliveriesCollection: {
			{
				Keys:    bson.D{{Key: "matchId", Value: 1}, {Key: "sequence", Value: 1}},
				Options: options.Index().SetName("uq_match_deliveries_sequence").SetUnique(true),
			},
		},
		superAdminsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uq_super_admins_email").SetUnique(true),
			},
		},
		subAdminsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}, {Key: "sport", Value: 1}},
				Options: options.Index().SetName("uq_sub_admins_email_sport").SetUnique(true),
			},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}

// parseID converts an external id. Malformed ids simply match nothing.
func parseID(value string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func requireID(kind, value string) (primitive.ObjectID, error) {
	oid, ok := parseID(value)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("invalid %s id %q", kind, value)
	}
	return oid, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// mapDuplicate swaps a duplicate key failure for the repository's domain error.
func mapDuplicate(err, domainErr error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", domainErr, err)
	}
	return err
}
