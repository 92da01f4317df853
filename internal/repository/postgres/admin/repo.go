package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	authuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/auth"
)

type AdminRow struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
}

type AdminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepo(db *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{db: db}
}

func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*AdminRow, error) {
	const q = `
SELECT id::text, email, password_hash, is_active
FROM admins
WHERE lower(email) = lower($1)
LIMIT 1;
`
	row := r.db.QueryRow(ctx, q, email)

	var out AdminRow
	if err := row.Scan(&out.ID, &out.Email, &out.PasswordHash, &out.IsActive); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminFinderAdapter serves admin login.
type AdminFinderAdapter struct {
	repo *AdminRepo
}

func NewAdminFinderAdapter(repo *AdminRepo) *AdminFinderAdapter {
	return &AdminFinderAdapter{repo: repo}
}

func (a *AdminFinderAdapter) FindByEmail(ctx context.Context, email string) (*authuc.Admin, error) {
	r, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, authuc.ErrInvalidCredentials
		}
		return nil, err
	}
	return &authuc.Admin{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
	}, nil
}

var _ authuc.AdminFinder = (*AdminFinderAdapter)(nil)
