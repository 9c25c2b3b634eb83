package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// KeyList stores a list of object keys in a single text column.
type KeyList []string

// Scan implements the sql.Scanner interface
func (l *KeyList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("KeyList: cannot scan type %T", src)
	}
}

// Value implements the driver.Valuer interface
func (l KeyList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// Event is the canonical server-side event record.
type Event struct {
	Key      string  `gorm:"column:key;primaryKey;type:varchar(20)"`
	Name     string  `gorm:"column:name;type:varchar(200);not null"`
	Year     int     `gorm:"column:year;not null"`
	Country  string  `gorm:"column:country;type:varchar(10)"`
	TeamKeys KeyList `gorm:"column:team_keys;type:text"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}
