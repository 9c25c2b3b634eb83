package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Joshua-Anderson1/scoutradioz/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// OrgRepository reads org records from the canonical server database.
type OrgRepository struct {
	db *sqlx.DB
}

// NewOrgRepository creates a new org repository
func NewOrgRepository(db *sqlx.DB) *OrgRepository {
	return &OrgRepository{db: db}
}

// GetByKey fetches an org by its key. Returns (nil, nil) if the org
// does not exist.
func (r *OrgRepository) GetByKey(ctx context.Context, orgKey string) (*entities.Org, error) {
	var org entities.Org
	err := r.db.GetContext(ctx, &org,
		`SELECT org_key, nickname, team_number, current_event_key FROM orgs WHERE org_key = $1`,
		orgKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &org, nil
}

// ListVisible returns all orgs ordered by team number, for the org
// selection page.
func (r *OrgRepository) ListVisible(ctx context.Context) ([]entities.Org, error) {
	var orgs []entities.Org
	err := r.db.SelectContext(ctx, &orgs,
		`SELECT org_key, nickname, team_number, current_event_key FROM orgs ORDER BY team_number`)
	if err != nil {
		return nil, err
	}
	return orgs, nil
}
