package postgres

import (
	"context"
	"database/sql"
	"strings"

	"titulares-admin/internal/domain/planes"
)

type PlanesRepo struct {
	db *sql.DB
}

func NewPlanesRepo(db *sql.DB) *PlanesRepo {
	return &PlanesRepo{db: db}
}

func (r *PlanesRepo) Create(ctx context.Context, p planes.Plan) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO planes (
			id, name, description,
			monthly_amount, currency, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		p.ID,
		p.Name,
		p.Description,
		p.MonthlyAmount,
		p.Currency,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PlanesRepo) Update(ctx context.Context, p planes.Plan) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE planes
		SET
			name = $2,
			description = $3,
			monthly_amount = $4,
			currency = $5,
			active = $6,
			updated_at = $7
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Description,
		p.MonthlyAmount,
		p.Currency,
		p.Active,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlanesRepo) GetByID(ctx context.Context, id string) (planes.Plan, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return planes.Plan{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, description,
			monthly_amount, currency, active,
			created_at, updated_at
		FROM planes
		WHERE id = $1
	`, id)

	var p planes.Plan
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.MonthlyAmount,
		&p.Currency,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return planes.Plan{}, ErrNotFound
		}
		return planes.Plan{}, err
	}

	return p, nil
}

func (r *PlanesRepo) List(ctx context.Context) ([]planes.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, description,
			monthly_amount, currency, active,
			created_at, updated_at
		FROM planes
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]planes.Plan, 0)
	for rows.Next() {
		var p planes.Plan
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.MonthlyAmount,
			&p.Currency,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
