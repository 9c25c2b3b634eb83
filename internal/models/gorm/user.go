package gorm

import (
	"time"

	"github.com/Joshua-Anderson1/scoutradioz/internal/constants"
)

// User is a scouting app account, scoped to an org.
type User struct {
	ID          string                `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	OrgKey      string                `gorm:"column:org_key;type:varchar(40);not null;index"`
	Name        string                `gorm:"column:name;type:varchar(100);not null"`
	RoleKey     string                `gorm:"column:role_key;type:varchar(40)"`
	AccessLevel constants.AccessLevel `gorm:"column:access_level;not null;default:0"`
	Visible     bool                  `gorm:"column:visible;default:true"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
