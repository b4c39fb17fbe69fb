package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS providers (
	id UUID PRIMARY KEY,
	owner_user_id UUID NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS services (
	id UUID PRIMARY KEY,
	provider_id UUID NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
	category TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	price NUMERIC(12,2) NOT NULL DEFAULT 0,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bookings (
	id UUID PRIMARY KEY,
	provider_id UUID NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
	service_id UUID REFERENCES services(id) ON DELETE SET NULL,
	customer_id UUID NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	note TEXT NOT NULL DEFAULT '',
	contact_email TEXT NOT NULL DEFAULT '',
	attachments TEXT[] NOT NULL DEFAULT '{}',
	price NUMERIC(12,2),
	currency TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS booking_dates (
	booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
	provider_id UUID NOT NULL,
	day DATE NOT NULL,
	PRIMARY KEY (booking_id, day)
);

CREATE TABLE IF NOT EXISTS blocked_dates (
	id UUID PRIMARY KEY,
	provider_id UUID NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
	day DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (provider_id, day)
);

CREATE TABLE IF NOT EXISTS seasons (
	id UUID PRIMARY KEY,
	provider_id UUID NOT NULL REFERENCES providers(id) ON DELETE CASCADE,
	label TEXT NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_services_provider ON services(provider_id);
CREATE INDEX IF NOT EXISTS idx_bookings_provider ON bookings(provider_id);
CREATE INDEX IF NOT EXISTS idx_bookings_customer ON bookings(customer_id);
CREATE INDEX IF NOT EXISTS idx_booking_dates_provider_day ON booking_dates(provider_id, day);
CREATE INDEX IF NOT EXISTS idx_blocked_dates_provider ON blocked_dates(provider_id);
CREATE INDEX IF NOT EXISTS idx_seasons_provider ON seasons(provider_id);
`

// RunMigrations applies the schema once at startup. The source of truth for
// table shapes lives here, never in request handlers.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		logger.ErrorLogger.Errorf("Schema migration failed: %v", err)
		return fmt.Errorf("schema migration failed: %w", err)
	}
	logger.InfoLogger.Info("Database schema is up to date.")
	return nil
}
