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

// ProposalRepository reads calculator proposals borrowers submitted from
// the public site.
type ProposalRepository struct {
	collection *mongo.Collection
}

func NewProposalRepository() *ProposalRepository {
	collection := db.MDB.Database.Collection(configs.PROPOSAL_COLLECTION)
	return &ProposalRepository{collection: collection}
}

func (r *ProposalRepository) Snapshot(ctx context.Context) ([]models.RawDoc, error) {
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

func (r *ProposalRepository) RawByID(ctx context.Context, id string) (models.RawDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc bson.M
	err := r.collection.FindOne(ctx, idFilter(id)).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return models.RawDoc(doc), nil
}

func (r *ProposalRepository) UpdateByID(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, idFilter(id), bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
