package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/castline/shopfloor/internal/domain/models"
)

// Repository defines the persistence operations for shift report documents.
type Repository interface {
	Insert(ctx context.Context, report *models.ShiftReport) (*models.ShiftReport, error)
	FindByDay(ctx context.Context, start, end time.Time) (*models.ShiftReport, error)
	FindAll(ctx context.Context) ([]models.ShiftReport, error)
	FindRange(ctx context.Context, start, end time.Time) ([]models.ShiftReport, error)
	FindByID(ctx context.Context, id string) (*models.ShiftReport, error)
	Replace(ctx context.Context, report *models.ShiftReport) error
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

// MongoDBRepository implements Repository against a MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "disamatic_shift_reports",
	}, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// Insert stores a new report document and returns it with its assigned ID.
func (r *MongoDBRepository) Insert(ctx context.Context, report *models.ShiftReport) (*models.ShiftReport, error) {
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to insert shift report: %w", err)
	}
	return report, nil
}

// FindByDay returns the single report whose date falls inside [start, end),
// or nil when no report exists for that day.
func (r *MongoDBRepository) FindByDay(ctx context.Context, start, end time.Time) (*models.ShiftReport, error) {
	filter := bson.M{"date": bson.M{"$gte": start, "$lt": end}}

	var report models.ShiftReport
	err := r.collection().FindOne(ctx, filter).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find report by day: %w", err)
	}
	return &report, nil
}

// FindAll returns every report, newest date first.
func (r *MongoDBRepository) FindAll(ctx context.Context) ([]models.ShiftReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.ShiftReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// FindRange returns reports whose date falls inside [start, end), newest
// date first.
func (r *MongoDBRepository) FindRange(ctx context.Context, start, end time.Time) ([]models.ShiftReport, error) {
	filter := bson.M{"date": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query report range: %w", err)
	}
	defer cursor.Close(ctx)

	reports := make([]models.ShiftReport, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return reports, nil
}

// FindByID returns the report with the given hex ID, or nil when the ID is
// malformed or matches nothing.
func (r *MongoDBRepository) FindByID(ctx context.Context, id string) (*models.ShiftReport, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var report models.ShiftReport
	err = r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find report by id: %w", err)
	}
	return &report, nil
}

// Replace overwrites the stored document identified by report.ID.
func (r *MongoDBRepository) Replace(ctx context.Context, report *models.ShiftReport) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": report.ID}, report)
	if err != nil {
		return fmt.Errorf("failed to replace report: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("failed to replace report: no document matched id %s", report.ID.Hex())
	}
	return nil
}

// Delete removes the report with the given hex ID, reporting whether a
// document was actually removed.
func (r *MongoDBRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete report: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// Ping verifies the connection is alive.
func (r *MongoDBRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
