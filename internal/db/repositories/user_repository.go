package repositories

import (
	"context"

	gormModels "github.com/Joshua-Anderson1/scoutradioz/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// UserRepository reads user accounts from the canonical server database.
type UserRepository struct {
	db *gormlib.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gormlib.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListVisibleByOrg returns the visible users of an org, for the user
// selection page.
func (r *UserRepository) ListVisibleByOrg(ctx context.Context, orgKey string) ([]gormModels.User, error) {
	var users []gormModels.User
	err := r.db.WithContext(ctx).
		Where("org_key = ? AND visible = ?", orgKey, true).
		Order("name").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
