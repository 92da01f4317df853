package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	settinguc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/setting"
)

type SettingRow struct {
	Key         string
	Value       string
	Description *string
	UpdatedAt   time.Time
}

type SettingRepo struct {
	db *pgxpool.Pool
}

func NewSettingRepo(db *pgxpool.Pool) *SettingRepo {
	return &SettingRepo{db: db}
}

const settingColumns = `setting_key, setting_value::text, description, updated_at`

func scanSetting(row pgx.Row) (*SettingRow, error) {
	var out SettingRow
	if err := row.Scan(&out.Key, &out.Value, &out.Description, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SettingRepo) List(ctx context.Context) ([]SettingRow, error) {
	rows, err := r.db.Query(ctx, `SELECT `+settingColumns+` FROM settings ORDER BY setting_key;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SettingRow, 0, 6)
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SettingRepo) Get(ctx context.Context, key string) (*SettingRow, error) {
	return scanSetting(r.db.QueryRow(ctx, `SELECT `+settingColumns+` FROM settings WHERE setting_key = $1;`, key))
}

func (r *SettingRepo) Update(ctx context.Context, key, value string) (*SettingRow, error) {
	const q = `
UPDATE settings
SET setting_value = $2::numeric, updated_at = now()
WHERE setting_key = $1
RETURNING ` + settingColumns + `;
`
	return scanSetting(r.db.QueryRow(ctx, q, key, value))
}

type SettingStoreAdapter struct {
	repo *SettingRepo
}

func NewSettingStoreAdapter(repo *SettingRepo) *SettingStoreAdapter {
	return &SettingStoreAdapter{repo: repo}
}

func (a *SettingStoreAdapter) List(ctx context.Context) ([]settinguc.Setting, error) {
	rows, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]settinguc.Setting, 0, len(rows))
	for i := range rows {
		s, err := mapSetting(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

func (a *SettingStoreAdapter) Get(ctx context.Context, key string) (*settinguc.Setting, error) {
	row, err := a.repo.Get(ctx, key)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, settinguc.ErrNotFound
		}
		return nil, err
	}
	return mapSetting(row)
}

func (a *SettingStoreAdapter) Update(ctx context.Context, key string, value decimal.Decimal) (*settinguc.Setting, error) {
	row, err := a.repo.Update(ctx, key, value.String())
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, settinguc.ErrNotFound
		}
		return nil, err
	}
	return mapSetting(row)
}

func mapSetting(r *SettingRow) (*settinguc.Setting, error) {
	v, err := pgutil.Decimal(r.Value)
	if err != nil {
		return nil, err
	}
	return &settinguc.Setting{
		Key:         r.Key,
		Value:       v,
		Description: r.Description,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

var _ settinguc.Store = (*SettingStoreAdapter)(nil)
