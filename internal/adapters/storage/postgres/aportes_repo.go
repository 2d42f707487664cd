package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"titulares-admin/internal/domain/aportes"
)

type AportesRepo struct {
	db *sql.DB
}

func NewAportesRepo(db *sql.DB) *AportesRepo {
	return &AportesRepo{db: db}
}

func (r *AportesRepo) Create(ctx context.Context, a aportes.Aporte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO aportes (
			id, titular_id, plan_id,
			amount, currency, period, receipt_path,
			status, reviewed_by, reviewed_at, note,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		a.ID,
		a.TitularID,
		toNullString(a.PlanID),
		a.Amount,
		a.Currency,
		a.Period,
		a.ReceiptPath,
		string(a.Status),
		a.ReviewedBy,
		toNullTime(a.ReviewedAt),
		a.Note,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AportesRepo) Update(ctx context.Context, a aportes.Aporte) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE aportes
		SET
			plan_id = $2,
			status = $3,
			reviewed_by = $4,
			reviewed_at = $5,
			note = $6,
			updated_at = $7
		WHERE id = $1
	`,
		a.ID,
		toNullString(a.PlanID),
		string(a.Status),
		a.ReviewedBy,
		toNullTime(a.ReviewedAt),
		a.Note,
		a.UpdatedAt,
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

func (r *AportesRepo) GetByID(ctx context.Context, id string) (aportes.Aporte, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return aportes.Aporte{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, titular_id, plan_id,
			amount, currency, period, receipt_path,
			status, reviewed_by, reviewed_at, note,
			created_at, updated_at
		FROM aportes
		WHERE id = $1
	`, id)

	return scanAporte(row)
}

func (r *AportesRepo) ListByStatus(ctx context.Context, status aportes.Status) ([]aportes.Aporte, error) {
	return r.list(ctx, "status", string(status))
}

func (r *AportesRepo) ListByTitular(ctx context.Context, titularID string) ([]aportes.Aporte, error) {
	return r.list(ctx, "titular_id", titularID)
}

func (r *AportesRepo) list(ctx context.Context, column, value string) ([]aportes.Aporte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	// column viene de los dos listados de arriba, nunca de input externo
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, titular_id, plan_id,
			amount, currency, period, receipt_path,
			status, reviewed_by, reviewed_at, note,
			created_at, updated_at
		FROM aportes
		WHERE `+column+` = $1
		ORDER BY created_at ASC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]aportes.Aporte, 0)
	for rows.Next() {
		a, err := scanAporte(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func scanAporte(row rowScanner) (aportes.Aporte, error) {
	var a aportes.Aporte
	var planID sql.NullString
	var reviewedAt sql.NullTime
	var status string
	if err := row.Scan(
		&a.ID,
		&a.TitularID,
		&planID,
		&a.Amount,
		&a.Currency,
		&a.Period,
		&a.ReceiptPath,
		&status,
		&a.ReviewedBy,
		&reviewedAt,
		&a.Note,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return aportes.Aporte{}, ErrNotFound
		}
		return aportes.Aporte{}, err
	}

	a.Status = aportes.Status(status)
	if planID.Valid {
		v := planID.String
		a.PlanID = &v
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		a.ReviewedAt = &t
	}

	return a, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
