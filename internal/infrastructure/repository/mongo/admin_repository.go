package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
)

type SuperAdminRepository struct {
	coll *mongo.Collection
}

func NewSuperAdminRepository(db *mongo.Database) *SuperAdminRepository {
	return &SuperAdminRepository{coll: db.Collection(superAdminsCollection)}
}

func (r *SuperAdminRepository) GetByID(ctx context.Context, adminID string) (admin.SuperAdmin, bool, error) {
	oid, ok := parseID(adminID)
	if !ok {
		return admin.SuperAdmin{}, false, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *SuperAdminRepository) GetByEmail(ctx context.Context, email string) (admin.SuperAdmin, bool, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *SuperAdminRepository) findOne(ctx context.Context, filter bson.M) (admin.SuperAdmin, bool, error) {
	var doc superAdminDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return admin.SuperAdmin{}, false, nil
		}
		return admin.SuperAdmin{}, false, fmt.Errorf("find super admin: %w", err)
	}
	return doc.toDomain(), true, nil
}

func (r *SuperAdminRepository) Create(ctx context.Context, a admin.SuperAdmin) error {
	doc, err := superAdminDocumentFromDomain(a)
	if err != nil {
		return fmt.Errorf("encode super admin: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert super admin: %w", mapDuplicate(err, admin.ErrDuplicateEmail))
	}
	return nil
}

func (r *SuperAdminRepository) TouchLogin(ctx context.Context, adminID string, at time.Time) error {
	return touchLogin(ctx, r.coll, adminID, at)
}

func (r *SuperAdminRepository) Count(ctx context.Context) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count super admins: %w", err)
	}
	return int(count), nil
}

type SubAdminRepository struct {
	coll *mongo.Collection
}

func NewSubAdminRepository(db *mongo.Database) *SubAdminRepository {
	return &SubAdminRepository{coll: db.Collection(subAdminsCollection)}
}

func (r *SubAdminRepository) GetByID(ctx context.Context, adminID string) (admin.SubAdmin, bool, error) {
	oid, ok := parseID(adminID)
	if !ok {
		return admin.SubAdmin{}, false, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *SubAdminRepository) GetByEmail(ctx context.Context, email string, sport admin.Sport) (admin.SubAdmin, bool, error) {
	return r.findOne(ctx, bson.M{"email": email, "sport": string(sport)})
}

func (r *SubAdminRepository) findOne(ctx context.Context, filter bson.M) (admin.SubAdmin, bool, error) {
	var doc subAdminDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return admin.SubAdmin{}, false, nil
		}
		return admin.SubAdmin{}, false, fmt.Errorf("find sub admin: %w", err)
	}
	return doc.toDomain(), true, nil
}

func (r *SubAdminRepository) List(ctx context.Context, sport admin.Sport) ([]admin.SubAdmin, error) {
	filter := bson.M{}
	if sport != "" {
		filter["sport"] = string(sport)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find sub admins: %w", err)
	}

	var docs []subAdminDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sub admins: %w", err)
	}

	out := make([]admin.SubAdmin, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toDomain())
	}
	return out, nil
}

func (r *SubAdminRepository) Create(ctx context.Context, a admin.SubAdmin) error {
	doc, err := subAdminDocumentFromDomain(a)
	if err != nil {
		return fmt.Errorf("encode sub admin: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert sub admin: %w", mapDuplicate(err, admin.ErrDuplicateEmail))
	}
	return nil
}

func (r *SubAdminRepository) Update(ctx context.Context, a admin.SubAdmin) error {
	doc, err := subAdminDocumentFromDomain(a)
	if err != nil {
		return fmt.Errorf("encode sub admin: %w", err)
	}
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc); err != nil {
		return fmt.Errorf("replace sub admin: %w", mapDuplicate(err, admin.ErrDuplicateEmail))
	}
	return nil
}

func (r *SubAdminRepository) TouchLogin(ctx context.Context, adminID string, at time.Time) error {
	return touchLogin(ctx, r.coll, adminID, at)
}

func touchLogin(ctx context.Context, coll *mongo.Collection, adminID string, at time.Time) error {
	oid, err := requireID("admin", adminID)
	if err != nil {
		return err
	}
	if _, err := coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"lastLoginAt": at}}); err != nil {
		return fmt.Errorf("touch %s login: %w", coll.Name(), err)
	}
	return nil
}
