package rosterRepo

import (
	"context"
	"errors"
	"time"

	"teambond/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new team member and returns its ID.
func (r *mongoRosterRepo) Create(ctx context.Context, member models.TeamMember) (string, error) {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, member)
	if err != nil {
		return "", err
	}
	return member.ID, nil
}

// GetByID returns a team member by its ID.
func (r *mongoRosterRepo) GetByID(ctx context.Context, id string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetAll returns the full roster.
func (r *mongoRosterRepo) GetAll(ctx context.Context) ([]models.TeamMember, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetByNames returns the members whose names appear in the given list.
func (r *mongoRosterRepo) GetByNames(ctx context.Context, names []string) ([]models.TeamMember, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Update replaces the stored member fields for the given ID.
func (r *mongoRosterRepo) Update(ctx context.Context, id string, member models.TeamMember) error {
	member.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        member.Name,
		"location":    member.Location,
		"preferences": member.Preferences,
		"vibe":        member.Vibe,
		"updatedAt":   member.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("team member not found")
	}
	return nil
}

// DeleteByID removes a team member by ID.
func (r *mongoRosterRepo) DeleteByID(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("team member not found")
	}
	return nil
}
