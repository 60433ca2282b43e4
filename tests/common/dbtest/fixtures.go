//go:build unit || e2e

package dbtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// bcrypt hash of "password123"
const TestPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

const (
	TestPassword = "password123"
	AdminEmail   = "admin@example.com"
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, 'Test', 'User', $4, true)
		ON CONFLICT (email) WHERE is_active = true DO NOTHING`,
		userID, email, TestPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

type FlightFixture struct {
	Name          string
	FlightNumber  string
	Seats         int
	PriceCents    int64
	Currency      string
	DepartureTime time.Time
}

func DefaultFlight() FlightFixture {
	return FlightFixture{
		Name:          "Madrid to Lisbon",
		FlightNumber:  "IB3106",
		Seats:         10,
		PriceCents:    8999,
		Currency:      "EUR",
		DepartureTime: time.Date(2030, 6, 1, 9, 30, 0, 0, time.UTC),
	}
}

func CreateTestFlight(t *testing.T, db DBLike, f FlightFixture) uuid.UUID {
	t.Helper()

	metadata, err := json.Marshal(map[string]any{
		"flightNumber":  f.FlightNumber,
		"origin":        "MAD",
		"destination":   "LIS",
		"airline":       "Iberia",
		"departureTime": f.DepartureTime,
		"arrivalTime":   f.DepartureTime.Add(80 * time.Minute),
	})
	require.NoError(t, err)

	id := uuid.New()
	_, err = db.Exec(context.Background(), `INSERT INTO resources
		(id, name, type, max_slots, available_slots, price_cents, currency, metadata)
		VALUES ($1, $2, 'FLIGHT', $3, $3, $4, $5, $6)`,
		id, f.Name, f.Seats, f.PriceCents, f.Currency, metadata)
	require.NoError(t, err)
	return id
}

func AvailableSlots(t *testing.T, db DBLike, resourceID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT available_slots FROM resources WHERE id = $1", resourceID).Scan(&n)
	require.NoError(t, err)
	return n
}

func SetAvailableSlots(t *testing.T, db DBLike, resourceID uuid.UUID, n int) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE resources SET available_slots = $2 WHERE id = $1", resourceID, n)
	require.NoError(t, err)
}

func ReservationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM reservations WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func PaymentStatus(t *testing.T, db DBLike, reservationID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM payments WHERE reservation_id = $1", reservationID).Scan(&status)
	require.NoError(t, err)
	return status
}

func SessionID(t *testing.T, db DBLike, reservationID uuid.UUID) string {
	t.Helper()

	var sessionID string
	err := db.QueryRow(context.Background(), "SELECT external_session_id FROM payments WHERE reservation_id = $1", reservationID).Scan(&sessionID)
	require.NoError(t, err)
	return sessionID
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, 'Site', 'Admin', 'admin', true)
		ON CONFLICT (email) WHERE is_active = true DO NOTHING;
	`, AdminEmail, TestPasswordHash)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
