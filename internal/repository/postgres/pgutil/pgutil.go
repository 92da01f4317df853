// Package pgutil holds the small conversions every postgres adapter needs:
// error classification and NUMERIC / TIME values carried as text.
package pgutil

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

// IsUniqueViolationOn reports a unique violation on a specific constraint.
func IsUniqueViolationOn(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation && pgErr.ConstraintName == constraint
	}
	return false
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// Decimal parses a NUMERIC column selected as ::text.
func Decimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse numeric %q: %w", s, err)
	}
	return d, nil
}

func DecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := Decimal(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// NumArg renders an optional amount as a ::numeric query argument.
func NumArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// TimeArg renders an optional time of day as a ::time query argument.
func TimeArg(t *pricing.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}

// TimeOfDay parses a TIME column selected with to_char(col, 'HH24:MI').
func TimeOfDay(s *string) (*pricing.TimeOfDay, error) {
	if s == nil {
		return nil, nil
	}
	t, err := pricing.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
