package season_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/shared_models"
	"github.com/altai-travel/booking/utils"
)

// Season is a labeled date range used for price-tier lookup. It has no effect
// on availability. Seasons of one provider must not overlap; that rule is
// enforced at the editing endpoint, not by the schema.
type Season struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Label      string    `json:"label"`
	StartDate  string    `json:"start_date"` // YYYY-MM-DD
	EndDate    string    `json:"end_date"`   // YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DefaultLabel is returned by ResolveLabel when no season contains the date.
const DefaultLabel = "low"

// NormalizeRange validates a start/end day pair and returns both in canonical
// YYYY-MM-DD form. The range is inclusive; end must not precede start.
func NormalizeRange(startDate, endDate string) (string, string, error) {
	start, err := shared_models.ParseDay(startDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", utils.ErrInvalidRequest, err)
	}
	end, err := shared_models.ParseDay(endDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", utils.ErrInvalidRequest, err)
	}
	if end.Before(start) {
		return "", "", fmt.Errorf("%w: end date %s is before start date %s", utils.ErrInvalidRequest, endDate, startDate)
	}
	return start.Format(shared_models.DayFormat), end.Format(shared_models.DayFormat), nil
}

// NewSeason creates a new Season struct after validating its range.
func NewSeason(providerID uuid.UUID, label, startDate, endDate string) (*Season, error) {
	start, end, err := NormalizeRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for season: %w", err)
	}
	now := time.Now()
	return &Season{
		ID:         id,
		ProviderID: providerID,
		Label:      label,
		StartDate:  start,
		EndDate:    end,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ResolveLabel returns the label of the first season whose inclusive range
// [start 00:00, end 23:59:59] UTC contains the date, or defaultLabel when
// none matches. Pure and safe for concurrent use. With overlapping seasons
// the first match in list order wins; overlap prevention is the caller's job.
func ResolveLabel(date time.Time, seasons []Season, defaultLabel string) string {
	day := date.UTC().Format(shared_models.DayFormat)
	for _, s := range seasons {
		if day >= s.StartDate && day <= s.EndDate {
			return s.Label
		}
	}
	return defaultLabel
}

// Overlaps reports whether two inclusive day ranges intersect.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart <= bEnd && bStart <= aEnd
}

// HasOverlap reports whether the candidate range intersects any season in the
// list, ignoring the season with excludeID (for updates).
func HasOverlap(seasons []Season, startDate, endDate string, excludeID uuid.UUID) bool {
	for _, s := range seasons {
		if s.ID == excludeID {
			continue
		}
		if Overlaps(s.StartDate, s.EndDate, startDate, endDate) {
			return true
		}
	}
	return false
}

// CreateSeason inserts a new season record into the database.
func CreateSeason(ctx context.Context, db *pgxpool.Pool, s *Season) (*Season, error) {
	logger.InfoLogger.Infof("Attempting to create season %q for provider %s", s.Label, s.ProviderID)

	start, _ := shared_models.ParseDay(s.StartDate)
	end, _ := shared_models.ParseDay(s.EndDate)

	query := `
		INSERT INTO seasons (id, provider_id, label, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		s.ID, s.ProviderID, s.Label, start, end, s.CreatedAt, s.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert season %q for provider %s: %v", s.Label, s.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to create season: %v", utils.ErrServiceUnavailable, err)
	}

	logger.InfoLogger.Infof("Season %s created successfully for provider %s", insertedID, s.ProviderID)
	return s, nil
}

// GetSeasonsByProvider fetches all seasons of a provider, earliest first.
func GetSeasonsByProvider(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID) ([]Season, error) {
	query := `
		SELECT id, provider_id, label, start_date, end_date, created_at, updated_at
		FROM seasons
		WHERE provider_id = $1
		ORDER BY start_date`

	rows, err := db.Query(ctx, query, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch seasons for provider %s: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to fetch seasons: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()

	var seasons []Season
	for rows.Next() {
		var s Season
		var start, end time.Time
		if err := rows.Scan(&s.ID, &s.ProviderID, &s.Label, &start, &end, &s.CreatedAt, &s.UpdatedAt); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan season row: %v", err)
			return nil, fmt.Errorf("%w: failed to scan season: %v", utils.ErrServiceUnavailable, err)
		}
		s.StartDate = start.Format(shared_models.DayFormat)
		s.EndDate = end.Format(shared_models.DayFormat)
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during row iteration: %v", utils.ErrServiceUnavailable, err)
	}

	return seasons, nil
}

// UpdateSeason updates label and range of an existing season.
func UpdateSeason(ctx context.Context, db *pgxpool.Pool, s *Season) (*Season, error) {
	logger.InfoLogger.Infof("Attempting to update season %s", s.ID)

	startStr, endStr, err := NormalizeRange(s.StartDate, s.EndDate)
	if err != nil {
		return nil, err
	}
	start, _ := shared_models.ParseDay(startStr)
	end, _ := shared_models.ParseDay(endStr)

	s.StartDate = startStr
	s.EndDate = endStr
	s.UpdatedAt = time.Now()
	query := `
		UPDATE seasons
		SET label = $2, start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $1 AND provider_id = $6
		RETURNING updated_at`

	var updatedAt time.Time
	err = db.QueryRow(ctx, query, s.ID, s.Label, start, end, s.UpdatedAt, s.ProviderID).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: season %s for provider %s", utils.ErrNotFound, s.ID, s.ProviderID)
		}
		logger.ErrorLogger.Errorf("Failed to update season %s: %v", s.ID, err)
		return nil, fmt.Errorf("%w: failed to update season: %v", utils.ErrServiceUnavailable, err)
	}

	s.UpdatedAt = updatedAt
	logger.InfoLogger.Infof("Season %s updated successfully", s.ID)
	return s, nil
}

// DeleteSeason deletes a season by its ID and provider ID.
func DeleteSeason(ctx context.Context, db *pgxpool.Pool, seasonID, providerID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx,
		`DELETE FROM seasons WHERE id = $1 AND provider_id = $2`, seasonID, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete season %s: %v", seasonID, err)
		return fmt.Errorf("%w: failed to delete season: %v", utils.ErrServiceUnavailable, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: season %s for provider %s", utils.ErrNotFound, seasonID, providerID)
	}

	logger.InfoLogger.Infof("Season %s deleted successfully", seasonID)
	return nil
}
