package repository

import (
	"context"

	"gorm.io/gorm"
)

// Tables the service cannot run without.
var requiredTables = []string{"boards", "lists", "cards"}

// HealthRepository probes the database for the health endpoint.
type HealthRepository struct {
	db *gorm.DB
}

func NewHealthRepository(db *gorm.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// Ping checks that the database answers.
func (r *HealthRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Tables returns which of the required tables exist.
func (r *HealthRepository) Tables(ctx context.Context) []string {
	migrator := r.db.WithContext(ctx).Migrator()
	found := make([]string, 0, len(requiredTables))
	for _, name := range requiredTables {
		if migrator.HasTable(name) {
			found = append(found, name)
		}
	}
	return found
}
