package id

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// ObjectIDGenerator emits 24-char hex ids in the MongoDB ObjectID shape so
// every storage driver exposes the same external identifier format.
type ObjectIDGenerator struct{}

func NewObjectIDGenerator() *ObjectIDGenerator {
	return &ObjectIDGenerator{}
}

func (g *ObjectIDGenerator) NewID() (string, error) {
	return primitive.NewObjectID().Hex(), nil
}

// Valid reports whether value is a well-formed external id.
func Valid(value string) bool {
	return primitive.IsValidObjectID(value)
}
