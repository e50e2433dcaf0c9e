package historyRepo

import (
	"context"

	"teambond/database"
	"teambond/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SavedEventRepository manages the event history collection.
type SavedEventRepository interface {
	Create(ctx context.Context, event models.SavedEvent) (string, error)
	GetByID(ctx context.Context, id string) (*models.SavedEvent, error)
	GetRecent(ctx context.Context, limit int64) ([]models.SavedEvent, error)
	RateByMember(ctx context.Context, id string, member string, rating int) error
	DeleteByID(ctx context.Context, id string) error
}

type mongoHistoryRepo struct {
	coll *mongo.Collection
}

// NewMongoHistoryRepo returns a new SavedEventRepository instance using MongoDB.
func NewMongoHistoryRepo() SavedEventRepository {
	db := database.MongoClient.Database("teambond")
	return &mongoHistoryRepo{
		coll: db.Collection("saved_events"),
	}
}
