package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/db"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// LoanRepository reads the loan application collection as raw documents.
// The collection is heterogeneous: documents written by different frontend
// generations use different field names, so decoding into a struct here
// would silently drop data. Normalization happens downstream.
type LoanRepository struct {
	collection *mongo.Collection
}

func NewLoanRepository() *LoanRepository {
	collection := db.MDB.Database.Collection(configs.LOAN_COLLECTION)
	return &LoanRepository{collection: collection}
}

// Snapshot returns every loan document, newest first. Some legacy documents
// carry string createdAt values the server cannot compare, so a failed
// sorted read falls back to an unordered one rather than failing the
// snapshot outright.
func (r *LoanRepository) Snapshot(ctx context.Context) ([]models.RawDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sorted := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	docs, err := r.findRaw(ctx, bson.M{}, sorted)
	if err != nil {
		logger.Warn(ctx, "loans : sorted snapshot failed, retrying unordered: %v", err.Error())
		docs, err = r.findRaw(ctx, bson.M{}, options.Find())
	}
	return docs, err
}

func (r *LoanRepository) findRaw(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.RawDoc, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
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

func (r *LoanRepository) RawByID(ctx context.Context, id string) (models.RawDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc bson.M
	err := r.collection.FindOne(ctx, idFilter(id)).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return models.RawDoc(doc), nil
}

func (r *LoanRepository) UpdateByID(ctx context.Context, id string, fields bson.M) error {
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

// InsertRaw writes a document back verbatim, keeping whatever shape it had
// when it was moved out of the collection.
func (r *LoanRepository) InsertRaw(ctx context.Context, doc models.RawDoc) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, bson.M(doc))
	return err
}

func (r *LoanRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// idFilter matches a loan by whichever identifier shape the document uses.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"$or": []bson.M{
		{"_id": id},
		{"id": id},
		{"loanId": id},
	}}
}
