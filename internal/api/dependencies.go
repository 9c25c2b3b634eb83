package api

import (
	"github.com/Joshua-Anderson1/scoutradioz/internal/common"
	"github.com/Joshua-Anderson1/scoutradioz/internal/db/repositories"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Repositories holds the server-side data access layer.
type Repositories struct {
	Org   *repositories.OrgRepository
	Event *repositories.EventRepository
	User  *repositories.UserRepository
}

// Services holds the shared request-path services.
type Services struct {
	Cache    *common.CacheService
	Session  *common.SessionService
	Transfer *common.QRTransferService
}

// Dependencies is the explicit dependency container built once at
// startup. Nothing in the request path initializes a handle lazily.
type Dependencies struct {
	Repo     *Repositories
	Services *Services
}

// InitDependencies wires repositories and services to the injected
// database handles.
func InitDependencies(sqlDB *sqlx.DB, ormDB *gorm.DB) *Dependencies {
	repos := &Repositories{
		Org:   repositories.NewOrgRepository(sqlDB),
		Event: repositories.NewEventRepository(ormDB),
		User:  repositories.NewUserRepository(ormDB),
	}

	services := &Services{
		Cache:    common.NewCacheService(60, 600),
		Session:  common.NewSessionService(common.NewRedisClient()),
		Transfer: common.NewQRTransferService(),
	}

	return &Dependencies{
		Repo:     repos,
		Services: services,
	}
}
