package repositories

import (
	"context"

	gormModels "github.com/Joshua-Anderson1/scoutradioz/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// EventRepository reads canonical event records.
type EventRepository struct {
	db *gormlib.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gormlib.DB) *EventRepository {
	return &EventRepository{db: db}
}

// GetByKey fetches an event by key. Returns (nil, nil) if not found.
func (r *EventRepository) GetByKey(ctx context.Context, key string) (*gormModels.Event, error) {
	var event gormModels.Event
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&event).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
