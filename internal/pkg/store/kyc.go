package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/db"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// KycRepository reads customer identity records. Raw documents for the same
// reason as loans: field names drift across frontend generations.
type KycRepository struct {
	collection *mongo.Collection
}

func NewKycRepository() *KycRepository {
	collection := db.MDB.Database.Collection(configs.KYC_COLLECTION)
	return &KycRepository{collection: collection}
}

func (r *KycRepository) Snapshot(ctx context.Context) ([]models.RawDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.RawDoc
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		docs = append(docs, models.RawDoc(doc))
	}
	return docs, cursor.Err()
}
