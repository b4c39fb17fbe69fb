package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/blocked_date_models"
	"github.com/altai-travel/booking/models/shared_models"
	"github.com/altai-travel/booking/utils"
)

// Booking is a date-scoped reservation request against a provider's calendar.
// Its days live in booking_dates, one row per occupied calendar day; they
// count as occupied while the booking is pending or active.
type Booking struct {
	ID           uuid.UUID  `json:"id"`
	ProviderID   uuid.UUID  `json:"provider_id"`
	ServiceID    *uuid.UUID `json:"service_id,omitempty"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	Status       string     `json:"status"`
	Note         string     `json:"note"`
	ContactEmail string     `json:"contact_email,omitempty"`
	Attachments  []string   `json:"attachments"`
	Price        *float64   `json:"price,omitempty"`
	Currency     *string    `json:"currency,omitempty"`
	Dates        []string   `json:"dates"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewBooking creates a pending Booking struct.
func NewBooking(providerID uuid.UUID, serviceID *uuid.UUID, customerID uuid.UUID, note, contactEmail string, attachments []string) (*Booking, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}
	if attachments == nil {
		attachments = []string{}
	}
	now := time.Now()
	return &Booking{
		ID:           id,
		ProviderID:   providerID,
		ServiceID:    serviceID,
		CustomerID:   customerID,
		Status:       shared_models.BookingStatusPending,
		Note:         note,
		ContactEmail: contactEmail,
		Attachments:  attachments,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetBookedDays returns the distinct days occupied by pending or active
// bookings of a provider, as YYYY-MM-DD strings.
func GetBookedDays(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID) ([]string, error) {
	rows, err := db.Query(ctx, bookedDaysQuery, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch booked days for provider %s: %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to fetch booked days: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()
	return scanDays(rows)
}

// GetBookedDaysTx is the transaction variant of GetBookedDays, used to
// re-check conflicts under the advisory lock before inserting.
func GetBookedDaysTx(ctx context.Context, tx pgx.Tx, providerID uuid.UUID) ([]string, error) {
	rows, err := tx.Query(ctx, bookedDaysQuery, providerID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch booked days for provider %s (tx): %v", providerID, err)
		return nil, fmt.Errorf("%w: failed to fetch booked days (tx): %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()
	return scanDays(rows)
}

const bookedDaysQuery = `
	SELECT DISTINCT d.day
	FROM booking_dates d
	JOIN bookings b ON b.id = d.booking_id
	WHERE d.provider_id = $1 AND b.status IN ('pending', 'active')
	ORDER BY d.day`

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

// CreateBookingWithDates atomically checks the requested days and inserts the
// booking plus its day rows. The per-provider advisory lock serializes
// concurrent check-and-insert attempts for the same provider, so two requests
// racing for the same day cannot both pass the conflict check. Returns the
// conflict list instead of inserting when any requested day is occupied.
func CreateBookingWithDates(ctx context.Context, db *pgxpool.Pool, booking *Booking, days []string) (*Booking, []DateConflict, error) {
	logger.InfoLogger.Infof("Attempting to create booking for provider %s over %d day(s)", booking.ProviderID, len(days))

	if len(days) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one date is required", utils.ErrInvalidRequest)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to begin booking transaction: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to begin transaction: %v", utils.ErrServiceUnavailable, err)
	}
	defer tx.Rollback(ctx)

	// Serialize check-and-insert per provider. hashtext keeps the lock key in
	// the 32-bit advisory space.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1::text))`, booking.ProviderID); err != nil {
		logger.ErrorLogger.Errorf("Failed to take advisory lock for provider %s: %v", booking.ProviderID, err)
		return nil, nil, fmt.Errorf("%w: failed to take advisory lock: %v", utils.ErrServiceUnavailable, err)
	}

	booked, err := GetBookedDaysTx(ctx, tx, booking.ProviderID)
	if err != nil {
		return nil, nil, err
	}
	blocked, err := blocked_date_models.GetBlockedDaysTx(ctx, tx, booking.ProviderID)
	if err != nil {
		return nil, nil, err
	}

	if conflicts := ComputeConflicts(days, booked, blocked); len(conflicts) > 0 {
		logger.WarnLogger.Warnf("Booking for provider %s rejected: %d conflicting day(s)", booking.ProviderID, len(conflicts))
		return nil, conflicts, nil
	}

	insertQuery := `
		INSERT INTO bookings (
			id, provider_id, service_id, customer_id, status, note,
			contact_email, attachments, price, currency, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id`

	var insertedID uuid.UUID
	err = tx.QueryRow(ctx, insertQuery,
		booking.ID, booking.ProviderID, booking.ServiceID, booking.CustomerID,
		booking.Status, booking.Note, booking.ContactEmail, booking.Attachments,
		booking.Price, booking.Currency, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking for provider %s: %v", booking.ProviderID, err)
		return nil, nil, fmt.Errorf("%w: failed to create booking: %v", utils.ErrServiceUnavailable, err)
	}

	for _, d := range days {
		day, err := shared_models.ParseDay(d)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", utils.ErrInvalidRequest, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO booking_dates (booking_id, provider_id, day) VALUES ($1, $2, $3)`,
			booking.ID, booking.ProviderID, day,
		); err != nil {
			logger.ErrorLogger.Errorf("Failed to insert booking day %s for booking %s: %v", d, booking.ID, err)
			return nil, nil, fmt.Errorf("%w: failed to create booking dates: %v", utils.ErrServiceUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.ErrorLogger.Errorf("Failed to commit booking %s: %v", booking.ID, err)
		return nil, nil, fmt.Errorf("%w: failed to commit booking: %v", utils.ErrServiceUnavailable, err)
	}

	booking.Dates = days
	logger.InfoLogger.Infof("Booking %s created successfully for provider %s", booking.ID, booking.ProviderID)
	return booking, nil, nil
}

// GetBookingByID fetches a booking record, including its days.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Booking, error) {
	booking := &Booking{}
	query := `
		SELECT id, provider_id, service_id, customer_id, status, note,
		       contact_email, attachments, price, currency, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	err := db.QueryRow(ctx, query, bookingID).Scan(
		&booking.ID, &booking.ProviderID, &booking.ServiceID, &booking.CustomerID,
		&booking.Status, &booking.Note, &booking.ContactEmail, &booking.Attachments,
		&booking.Price, &booking.Currency, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Booking with ID %s not found", bookingID)
			return nil, fmt.Errorf("%w: booking %s", utils.ErrNotFound, bookingID)
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: database error fetching booking: %v", utils.ErrServiceUnavailable, err)
	}

	rows, err := db.Query(ctx,
		`SELECT day FROM booking_dates WHERE booking_id = $1 ORDER BY day`, bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch days for booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to fetch booking days: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()
	if booking.Dates, err = scanDays(rows); err != nil {
		return nil, err
	}

	return booking, nil
}

// UpdateBookingStatus updates the status of a booking.
func UpdateBookingStatus(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, status string) error {
	logger.InfoLogger.Infof("Updating status for booking %s to %s", bookingID, status)

	query := `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query, bookingID, status, time.Now())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return fmt.Errorf("%w: failed to update booking status: %v", utils.ErrServiceUnavailable, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: booking %s", utils.ErrNotFound, bookingID)
	}

	logger.InfoLogger.Infof("Booking %s status updated to %s", bookingID, status)
	return nil
}

// GetBookingsByCustomer retrieves bookings for a customer with pagination and
// an optional status filter.
func GetBookingsByCustomer(ctx context.Context, db *pgxpool.Pool, customerID uuid.UUID, status string, page, limit int) ([]Booking, int, error) {
	return listBookings(ctx, db, "customer_id", customerID, status, page, limit)
}

// GetBookingsByProvider retrieves bookings against a provider's calendar with
// pagination and an optional status filter.
func GetBookingsByProvider(ctx context.Context, db *pgxpool.Pool, providerID uuid.UUID, status string, page, limit int) ([]Booking, int, error) {
	return listBookings(ctx, db, "provider_id", providerID, status, page, limit)
}

func listBookings(ctx context.Context, db *pgxpool.Pool, column string, id uuid.UUID, status string, page, limit int) ([]Booking, int, error) {
	offset := (page - 1) * limit

	baseQuery := `
		SELECT id, provider_id, service_id, customer_id, status, note,
		       contact_email, attachments, price, currency, created_at, updated_at
		FROM bookings
		WHERE ` + column + ` = $1`
	countQuery := `SELECT COUNT(*) FROM bookings WHERE ` + column + ` = $1`

	var query string
	args := []interface{}{id}
	if status != "" {
		baseQuery += " AND status = $2"
		countQuery += " AND status = $2"
		args = append(args, status)
		query = baseQuery + " ORDER BY created_at DESC LIMIT $3 OFFSET $4"
	} else {
		query = baseQuery + " ORDER BY created_at DESC LIMIT $2 OFFSET $3"
	}

	var totalCount int
	if err := db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		logger.ErrorLogger.Errorf("Failed to get booking count: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to get booking count: %v", utils.ErrServiceUnavailable, err)
	}

	args = append(args, limit, offset)
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings: %v", err)
		return nil, 0, fmt.Errorf("%w: failed to fetch bookings: %v", utils.ErrServiceUnavailable, err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ProviderID, &b.ServiceID, &b.CustomerID, &b.Status, &b.Note,
			&b.ContactEmail, &b.Attachments, &b.Price, &b.Currency, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan booking row: %v", err)
			return nil, 0, fmt.Errorf("%w: failed to scan booking: %v", utils.ErrServiceUnavailable, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: error during row iteration: %v", utils.ErrServiceUnavailable, err)
	}

	logger.InfoLogger.Infof("Fetched %d bookings (total: %d)", len(bookings), totalCount)
	return bookings, totalCount, nil
}
