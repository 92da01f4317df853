package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func MustInsertCustomer(t *testing.T, db *pgxpool.Pool, name, email string) string {
	t.Helper()

	uniq := fmt.Sprintf("%d", time.Now().UnixNano())
	emailUniq := fmt.Sprintf("%s.%s", uniq, email)

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		RETURNING id::text
	`, name, emailUniq).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertDog(t *testing.T, db *pgxpool.Pool, customerID, name, size string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO dogs (customer_id, name, size)
		VALUES ($1::uuid, $2, $3)
		RETURNING id::text
	`, customerID, name, size).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func MustInsertRate(t *testing.T, db *pgxpool.Pool, size, rateType, serviceType, price string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO rates (dog_size, rate_type, service_type, price_per_day)
		VALUES ($1, $2, $3, $4::numeric)
		RETURNING id::text
	`, size, rateType, serviceType, price).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

// MustInsertStay stores an already priced boarding stay at the regular rate.
func MustInsertStay(t *testing.T, db *pgxpool.Pool, dogID string, checkIn, checkOut time.Time, days, dailyRate, total string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO stays (
		  dog_id, check_in_date, check_out_date, stay_type, rate_type,
		  days_count, daily_rate, boarding_cost, computed_total, total_cost
		)
		VALUES ($1::uuid, $2::date, $3::date, 'boarding', 'regular',
		  $4::numeric, $5::numeric, $6::numeric, $6::numeric, $6::numeric)
		RETURNING id::text
	`, dogID, checkIn, checkOut, days, dailyRate, total).Scan(&id)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}
