package rosterRepo

import (
	"context"

	"teambond/database"
	"teambond/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TeamMemberRepository manages the team roster collection.
type TeamMemberRepository interface {
	Create(ctx context.Context, member models.TeamMember) (string, error)
	GetByID(ctx context.Context, id string) (*models.TeamMember, error)
	GetAll(ctx context.Context) ([]models.TeamMember, error)
	GetByNames(ctx context.Context, names []string) ([]models.TeamMember, error)
	Update(ctx context.Context, id string, member models.TeamMember) error
	DeleteByID(ctx context.Context, id string) error
}

type mongoRosterRepo struct {
	coll *mongo.Collection
}

// NewMongoRosterRepo returns a new TeamMemberRepository instance using MongoDB.
func NewMongoRosterRepo() TeamMemberRepository {
	db := database.MongoClient.Database("teambond")
	return &mongoRosterRepo{
		coll: db.Collection("team_members"),
	}
}
