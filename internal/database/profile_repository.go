package database

import (
	"context"
	"database/sql"

	"github.com/influence-hq/influence/internal/models"
)

// ProfileRepository handles client profile rows
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Save inserts a profile snapshot. Every refresh writes a new row so the
// history of what content was generated against stays queryable.
func (r *ProfileRepository) Save(ctx context.Context, p *models.ClientProfile) error {
	query := `
		INSERT INTO client_profiles (id, name, industry, about, website, website_summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Industry, p.About, p.Website, p.WebsiteSummary, p.CreatedAt)
	return err
}

// Latest returns the most recently saved profile, or nil when none exists.
func (r *ProfileRepository) Latest(ctx context.Context) (*models.ClientProfile, error) {
	query := `
		SELECT id, name, industry, about, website, website_summary, created_at
		FROM client_profiles
		ORDER BY created_at DESC
		LIMIT 1
	`
	var p models.ClientProfile
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.ID, &p.Name, &p.Industry, &p.About, &p.Website, &p.WebsiteSummary, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
