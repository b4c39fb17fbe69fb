package blocked_date_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/shared_models"
	"github.com/altai-travel/booking/utils"
)

// BlockedDate is a manual per-provider blackout day, independent of bookings.
type BlockedDate struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Day        string    `json:"day"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at"`
}

// NewBlockedDate creates a new BlockedDate struct.
func NewBlockedDate(providerID uuid.UUID, day string) (*BlockedDate, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for blocked date: %w", err)
	}
	return &BlockedDate{
		ID:         id,
		ProviderID: providerID,
		Day:        day,
		CreatedAt:  time.Now(),
	}, nil
}

// CreateBlockedDate inserts a blackout day. Inserting an already blocked day
// is a no-op thanks to the (provider_id, day) unique constraint.
func CreateBlockedDate(ctx context.Context, db *pgxpool.Pool, bd *BlockedDate) (*BlockedDate, error) {
	logger.InfoLogger.Infof("Blocking day %s for provider %s", bd.Day, bd.ProviderID)

	day, err := shared_models.ParseDay(bd.Day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidRequest, err)
	}

	query := `
		INSERT INTO blocked_dates (id, provider_id, day, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (provider_id, day) DO NOTHING`

	if _, err := db.Exec(ctx, query, bd.ID, bd.ProviderID, day, bd.CreatedAt); err != nil {
		logger.ErrorLogger.Errorf("Failed to block day %s for provider %s: %v", bd.Day, bd.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to create blocked date: %v", utils.ErrServiceUnavailable, err)
	}

	logger.InfoLogger.Infof("Day %s blocked for provider %s", bd.Day, bd.ProviderID)
	return bd, nil
}

// DeleteBlockedDate removes a blackout day for a provider.
func DeleteBlockedDate(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID, dayStr string) error {
	day, err := shared_models.ParseDay(dayStr)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrInvalidRequest, err)
	}

	cmdTag, err := db.Exec(ctx,
		`DELETE FROM blocked_dates WHERE provider_id = $1 AND day = $2`, providerID, day)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to unblock day %s for provider %s: %v", dayStr, providerID, err)
		return fmt.Errorf("%w: failed to delete blocked date: %v", utils.ErrServiceUnavailable, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: blocked date %s for provider %s", utils.ErrNotFound, dayStr, providerID)
	}

	logger.InfoLogger.Infof("Day %s unblocked for provider %s", dayStr, providerID)
	return nil
}

// ListBlockedDates fetches the full blackout records of a provider.
func ListBlockedDates(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID) ([]BlockedDate, error) {
	query := `
		SELECT id, provider_id, day, created_at
		FROM blocked_dates
		WHERE provider_id = $1
		ORDER BY day`

	rows, err := db.Query(ctx, query, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch blocked dates for provider %s: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to fetch blocked dates: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()

	var out []BlockedDate
	for rows.Next() {
		var bd BlockedDate
		var day time.Time
		if err := rows.Scan(&bd.ID, &bd.ProviderID, &day, &bd.CreatedAt); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan blocked date row: %v", err)
			return nil, fmt.Errorf("%w: failed to scan blocked date: %v", utils.ErrServiceUnavailable, err)
		}
		bd.Day = day.Format(shared_models.DayFormat)
		out = append(out, bd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during row iteration: %v", utils.ErrServiceUnavailable, err)
	}

	return out, nil
}

// GetBlockedDays returns the distinct blocked days of a provider as
// YYYY-MM-DD strings, for availability reads.
func GetBlockedDays(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID) ([]string, error) {
	rows, err := db.Query(ctx,
		`SELECT day FROM blocked_dates WHERE provider_id = $1 ORDER BY day`, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch blocked days for provider %s: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to fetch blocked days: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()
	return scanDays(rows)
}

// GetBlockedDaysTx is the transaction variant of GetBlockedDays, used by the
// booking writer to re-check conflicts under its advisory lock.
func GetBlockedDaysTx(ctx context.Context, tx pgx.Tx, providerID uuid.UUID) ([]string, error) {
	rows, err := tx.Query(ctx,
		`SELECT day FROM blocked_dates WHERE provider_id = $1 ORDER BY day`, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch blocked days for provider %s (tx): %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to fetch blocked days (tx): %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()
	return scanDays(rows)
}

func scanDays(rows pgx.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("%w: failed to scan day: %v", utils.ErrServiceUnavailable, err)
		}
		out = append(out, day.Format(shared_models.DayFormat))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during row iteration: %v", utils.ErrServiceUnavailable, err)
	}
	return out, nil
}
