package service_models

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

// Service is a specific offering under a provider: a guided tour, a transfer,
// a room category. Its bookable calendar is the owning provider's calendar;
// two services of the same provider share dates.
type Service struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewService creates a new Service struct.
func NewService(providerID uuid.UUID, category, title string, price float64) (*Service, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for service: %w", err)
	}
	now := time.Now()
	return &Service{
		ID:         id,
		ProviderID: providerID,
		Category:   category,
		Title:      title,
		Price:      price,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CreateService inserts a new service record into the database.
func CreateService(ctx context.Context, db *pgxpool.Pool, s *Service) (*Service, error) {
	logger.InfoLogger.Infof("Attempting to create service %q for provider %s", s.Title, s.ProviderID)

	query := `
		INSERT INTO services (id, provider_id, category, title, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		s.ID, s.ProviderID, s.Category, s.Title, s.Price, s.IsActive, s.CreatedAt, s.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert service %q for provider %s: %v", s.Title, s.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to create service: %v", utils.ErrServiceUnavailable, err)
	}

	logger.InfoLogger.Infof("Service %s created successfully for provider %s", insertedID, s.ProviderID)
	return s, nil
}

// GetServiceByID fetches a service record by its ID.
func GetServiceByID(ctx context.Context, db *pgxpool.Pool, serviceID uuid.UUID) (*Service, error) {
	s := &Service{}
	query := `
		SELECT id, provider_id, category, title, price, is_active, created_at, updated_at
		FROM services
		WHERE id = $1`

	err := db.QueryRow(ctx, query, serviceID).Scan(
		&s.ID, &s.ProviderID, &s.Category, &s.Title, &s.Price, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Service with ID %s not found", serviceID)
			return nil, fmt.Errorf("%w: service %s", utils.ErrNotFound, serviceID)
		}
		logger.ErrorLogger.Errorf("Failed to fetch service %s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: database error fetching service: %v", utils.ErrServiceUnavailable, err)
	}

	return s, nil
}

// ResolveProviderID maps a service to its owning provider. Availability is
// provider-scoped, so callers passing a service ID end up here.
func ResolveProviderID(ctx context.Context, db *pgxpool.Pool, serviceID uuid.UUID) (uuid.UUID, error) {
	var providerID uuid.UUID
	err := db.QueryRow(ctx, `SELECT provider_id FROM services WHERE id = $1`, serviceID).Scan(&providerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Service with ID %s not found while resolving provider", serviceID)
			return uuid.Nil, fmt.Errorf("%w: service %s", utils.ErrNotFound, serviceID)
		}
		logger.ErrorLogger.Errorf("Failed to resolve provider for service %s: %v", serviceID, err)
		return uuid.Nil, fmt.Errorf("%w: database error resolving service: %v", utils.ErrServiceUnavailable, err)
	}
	return providerID, nil
}

// GetServicesByProvider fetches all services of a provider.
func GetServicesByProvider(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID) ([]Service, error) {
	query := `
		SELECT id, provider_id, category, title, price, is_active, created_at, updated_at
		FROM services
		WHERE provider_id = $1
		ORDER BY created_at`

	rows, err := db.Query(ctx, query, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch services for provider %s: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to fetch services: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.ProviderID, &s.Category, &s.Title, &s.Price, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan service row: %v", err)
			return nil, fmt.Errorf("%w: failed to scan service: %v", utils.ErrServiceUnavailable, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during row iteration: %v", utils.ErrServiceUnavailable, err)
	}

	logger.InfoLogger.Infof("Fetched %d services for provider %s", len(services), providerID)
	return services, nil
}

// UpdateService updates category, title, price and active flag of a service.
func UpdateService(ctx context.Context, db *pgxpool.Pool, s *Service) (*Service, error) {
	logger.InfoLogger.Infof("Attempting to update service %s", s.ID)

	s.UpdatedAt = time.Now()
	query := `
		UPDATE services
		SET category = $2, title = $3, price = $4, is_active = $5, updated_at = $6
		WHERE id = $1
		RETURNING updated_at`

	var updatedAt time.Time
	err := db.QueryRow(ctx, query, s.ID, s.Category, s.Title, s.Price, s.IsActive, s.UpdatedAt).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: service %s", utils.ErrNotFound, s.ID)
		}
		logger.ErrorLogger.Errorf("Failed to update service %s: %v", s.ID, err)
		return nil, fmt.Errorf("%w: failed to update service: %v", utils.ErrServiceUnavailable, err)
	}

	s.UpdatedAt = updatedAt
	logger.InfoLogger.Infof("Service %s updated successfully", s.ID)
	return s, nil
}

// DeleteService deletes a service record by its ID.
func DeleteService(ctx context.Context, db *pgxpool.Pool, serviceID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM services WHERE id = $1`, serviceID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete service %s: %v", serviceID, err)
		return fmt.Errorf("%w: failed to delete service: %v", utils.ErrServiceUnavailable, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: service %s", utils.ErrNotFound, serviceID)
	}

	logger.InfoLogger.Infof("Service %s deleted successfully", serviceID)
	return nil
}
