package historyRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teambond/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new saved event and returns its ID.
func (r *mongoHistoryRepo) Create(ctx context.Context, event models.SavedEvent) (string, error) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.SavedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, event)
	if err != nil {
		return "", err
	}
	return event.ID, nil
}

// GetByID returns a saved event by its ID.
func (r *mongoHistoryRepo) GetByID(ctx context.Context, id string) (*models.SavedEvent, error) {
	var event models.SavedEvent
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// GetRecent returns the most recent saved events, newest first.
func (r *mongoHistoryRepo) GetRecent(ctx context.Context, limit int64) ([]models.SavedEvent, error) {
	opts := options.Find().SetSort(bson.M{"date": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.SavedEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// RateByMember records one member's 1-5 rating for a saved event.
func (r *mongoHistoryRepo) RateByMember(ctx context.Context, id string, member string, rating int) error {
	if rating < 1 || rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	update := bson.M{"$set": bson.M{
		fmt.Sprintf("memberRatings.%s", member): rating,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("saved event not found")
	}
	return nil
}

// DeleteByID removes a saved event by ID.
func (r *mongoHistoryRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("saved event not found")
	}
	return nil
}
