package provider_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/utils"
)

// Provider is a business entity offering bookable services: a guide, a
// transport operator or a hotel. It owns its services, bookings, blocked
// dates and seasons; only the account that created it may mutate them.
type Provider struct {
	ID          uuid.UUID `json:"id"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProvider creates a new Provider struct owned by the given user.
func NewProvider(ownerUserID uuid.UUID, name, email, phone string) (*Provider, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for provider: %w", err)
	}
	now := time.Now()
	return &Provider{
		ID:          id,
		OwnerUserID: ownerUserID,
		Name:        name,
		Email:       email,
		Phone:       phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOwnedBy reports whether the provider record belongs to the given user.
func (p *Provider) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerUserID == userID
}

// CreateProvider inserts a new provider record into the database.
func CreateProvider(ctx context.Context, db *pgxpool.Pool, p *Provider) (*Provider, error) {
	logger.InfoLogger.Infof("Attempting to create provider %q", p.Name)

	query := `
		INSERT INTO providers (id, owner_user_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		p.ID, p.OwnerUserID, p.Name, p.Email, p.Phone, p.CreatedAt, p.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert provider %q: %v", p.Name, err)
		return nil, fmt.Errorf("%w: failed to create provider: %v", utils.ErrServiceUnavailable, err)
	}

	logger.InfoLogger.Infof("Provider %s created successfully", insertedID)
	return p, nil
}

// GetProviderByID fetches a provider record by its ID.
func GetProviderByID(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID) (*Provider, error) {
	p := &Provider{}
	query := `
		SELECT id, owner_user_id, name, email, phone, created_at, updated_at
		FROM providers
		WHERE id = $1`

	err := db.QueryRow(ctx, query, providerID).Scan(
		&p.ID, &p.OwnerUserID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Provider with ID %s not found", providerID)
			return nil, fmt.Errorf("%w: provider %s", utils.ErrNotFound, providerID)
		}
		logger.ErrorLogger.Errorf("Failed to fetch provider %s: %v", providerID, err)
		return nil, fmt.Errorf("%w: database error fetching provider: %v", utils.ErrServiceUnavailable, err)
	}

	return p, nil
}

// ListProviders retrieves providers with pagination.
func ListProviders(ctx context.Context, db *pgxpool.Pool, page, limit int) ([]Provider, int, error) {
	offset := (page - 1) * limit

	var totalCount int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM providers`).Scan(&totalCount); err != nil {
		logger.ErrorLogger.Errorf("Failed to get provider count: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to get provider count: %v", utils.ErrServiceUnavailable, err)
	}

	query := `
		SELECT id, owner_user_id, name, email, phone, created_at, updated_at
		FROM providers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := db.Query(ctx, query, limit, offset)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch providers: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to fetch providers: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()

	var providers []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.OwnerUserID, &p.Name, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan provider row: %v", err)
			return nil, 0, fmt.Errorf("%w: failed to scan provider: %v", utils.ErrServiceUnavailable, err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: error during row iteration: %v", utils.ErrServiceUnavailable, err)
	}

	logger.InfoLogger.Infof("Fetched %d providers (total: %d)", len(providers), totalCount)
	return providers, totalCount, nil
}

// UpdateProvider updates an existing provider record.
func UpdateProvider(ctx context.Context, db *pgxpool.Pool, p *Provider) (*Provider, error) {
	logger.InfoLogger.Infof("Attempting to update provider %s", p.ID)

	p.UpdatedAt = time.Now()
	query := `
		UPDATE providers
		SET name = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $1
		RETURNING updated_at`

	var updatedAt time.Time
	err := db.QueryRow(ctx, query, p.ID, p.Name, p.Email, p.Phone, p.UpdatedAt).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: provider %s", utils.ErrNotFound, p.ID)
		}
		logger.ErrorLogger.Errorf("Failed to update provider %s: %v", p.ID, err)
		return nil, fmt.Errorf("%w: failed to update provider: %v", utils.ErrServiceUnavailable, err)
	}

	p.UpdatedAt = updatedAt
	logger.InfoLogger.Infof("Provider %s updated successfully", p.ID)
	return p, nil
}

// DeleteProvider deletes a provider and, via cascades, everything it owns.
func DeleteProvider(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID) error {
	logger.InfoLogger.Infof("Attempting to delete provider %s", providerID)

	cmdTag, err := db.Exec(ctx, `DELETE FROM providers WHERE id = $1`, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete provider %s: %v", providerID, err)
		return fmt.Errorf("%w: failed to delete provider: %v", utils.ErrServiceUnavailable, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: provider %s", utils.ErrNotFound, providerID)
	}

	logger.InfoLogger.Infof("Provider %s deleted successfully", providerID)
	return nil
}
