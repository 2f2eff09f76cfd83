package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roadwise/roadwise/internal/app/models"
	"github.com/roadwise/roadwise/internal/pkg/apperrors"
	"github.com/roadwise/roadwise/internal/pkg/dberrors"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *pgxpool.Pool
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, org.Name, org.Slug).Scan(&org.ID, &org.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM organizations
		WHERE id = $1
	`

	var org models.Organization
	err := r.db.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error retrieving organization: %w", err)
	}

	return &org, nil
}

// GetBySlug retrieves an organization by its slug
func (r *OrganizationRepository) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM organizations
		WHERE slug = $1
	`

	var org models.Organization
	err := r.db.QueryRow(ctx, query, slug).Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error retrieving organization: %w", err)
	}

	return &org, nil
}
