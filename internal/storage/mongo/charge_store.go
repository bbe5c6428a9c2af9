// Package mongo implements the charge record store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/companieshouse/charges-data-api-sub000/internal/storage"
	"github.com/companieshouse/charges-data-api-sub000/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type chargeStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Config holds the MongoDB connection settings for the charge store.
type Config struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// Connect establishes a client and returns a charge store bound to the
// configured collection.
func Connect(ctx context.Context, cfg Config) (storage.ChargeStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	return NewChargeStore(client, cfg.Database, cfg.Collection), nil
}

// NewChargeStore wraps an existing client as a charge store.
func NewChargeStore(client *mongo.Client, database, collection string) storage.ChargeStore {
	return &chargeStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (s *chargeStore) Get(ctx context.Context, chargeID string) (*storage.ChargeDocument, error) {
	var doc storage.ChargeDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": chargeID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrNotFound
		}
		return nil, wrapStorageErr(err)
	}
	return &doc, nil
}

func (s *chargeStore) Put(ctx context.Context, doc *storage.ChargeDocument) error {
	update := bson.M{
		"$set": bson.M{
			"company_number": doc.CompanyNumber,
			"data":           doc.Data,
			"updated":        doc.Updated,
		},
		"$inc": bson.M{"version": 1},
	}
	if doc.DeltaAt != nil {
		update["$set"].(bson.M)["delta_at"] = doc.DeltaAt
	} else {
		update["$unset"] = bson.M{"delta_at": ""}
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, update, opts); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *chargeStore) Delete(ctx context.Context, chargeID string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": chargeID}); err != nil {
		return wrapStorageErr(err)
	}
	return nil
}

func (s *chargeStore) FindByCompany(ctx context.Context, companyNumber string, criteria storage.QueryCriteria) (*storage.ChargesPage, error) {
	match := makeCompanyFilter(companyNumber, criteria)

	total, err := s.collection.CountDocuments(ctx, match)
	if err != nil {
		return nil, wrapStorageErr(err)
	}

	cursor, err := s.collection.Aggregate(ctx, makeCompanyPipeline(match, criteria))
	if err != nil {
		return nil, wrapStorageErr(err)
	}
	defer cursor.Close(ctx)

	items := []storage.ChargeDocument{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, wrapStorageErr(err)
	}

	return &storage.ChargesPage{Items: items, TotalCount: total}, nil
}

func (s *chargeStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *chargeStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// makeCompanyFilter builds the equality/membership match for a company-scoped
// query.
func makeCompanyFilter(companyNumber string, criteria storage.QueryCriteria) bson.M {
	filter := bson.M{"company_number": companyNumber}
	switch {
	case len(criteria.IncludeStatuses) > 0:
		filter["data.status"] = bson.M{"$in": statusStrings(criteria.IncludeStatuses)}
	case len(criteria.ExcludeStatuses) > 0:
		filter["data.status"] = bson.M{"$nin": statusStrings(criteria.ExcludeStatuses)}
	}
	return filter
}

// makeCompanyPipeline builds the aggregation pipeline for a company-scoped
// page. The effective date is created_on when present, else delivered_on;
// records with neither carry a null effective date, which BSON orders lowest,
// so they land after all dated records under the descending sort. The trailing
// _id key makes the order total.
func makeCompanyPipeline(match bson.M, criteria storage.QueryCriteria) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"effective_date": bson.M{"$ifNull": bson.A{"$data.created_on", "$data.delivered_on"}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "effective_date", Value: -1},
			{Key: "data.charge_number", Value: 1},
			{Key: "_id", Value: 1},
		}}},
	}
	if criteria.StartIndex > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: criteria.StartIndex}})
	}
	if criteria.ItemsPerPage > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: criteria.ItemsPerPage}})
	}
	return pipeline
}

func statusStrings(statuses []model.ChargeStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func wrapStorageErr(err error) error {
	if model.IsCanceled(err) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrStorageUnavailable, err)
}
