package repository

import (
	"context"
	"errors"
	"fmt"

	"transport-report-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores each report as its own document. Documents get a
// driver-generated _id, which also gives the insertion order.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(ReportsKey)}
}

// EnsureIndexes creates the lookup indexes on id and reportedAt.
// The id index is not unique: ids are timestamp-derived and may collide
// across processes.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "reportedAt", Value: 1}}},
	})
	return err
}

func (r *MongoRepository) Append(ctx context.Context, report models.IssueReport) error {
	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("insert report %s: %w", report.ID, err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.IssueReport, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := []models.IssueReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	return reports, nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (models.IssueReport, error) {
	var report models.IssueReport
	findOptions := options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})

	err := r.collection.FindOne(ctx, bson.M{"id": id}, findOptions).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.IssueReport{}, ErrReportNotFound
		}
		return models.IssueReport{}, fmt.Errorf("find report %s: %w", id, err)
	}
	return report, nil
}
