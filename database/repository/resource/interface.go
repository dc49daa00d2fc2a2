// File: database/repository/resource/interface.go
package resourceRepo

import (
	"context"

	"roomly/config"
	"roomly/database"
	"roomly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ResourceRepository exposes read/write access to bookable resources. The
// reservation engine only ever reads through it.
type ResourceRepository interface {
	Create(ctx context.Context, res *models.Resource) error
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	ListAvailable(ctx context.Context, resourceType string) ([]models.Resource, error)
	EnsureIndexes() error
}

type mongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo constructs a new MongoDB ResourceRepository.
func NewMongoResourceRepo() ResourceRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoResourceRepo{
		coll: db.Collection("resources"),
	}
}
