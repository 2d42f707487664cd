package postgres

import (
	"context"
	"database/sql"
	"strings"

	"titulares-admin/internal/domain/consents"
)

type ConsentsRepo struct {
	db *sql.DB
}

func NewConsentsRepo(db *sql.DB) *ConsentsRepo {
	return &ConsentsRepo{db: db}
}

func (r *ConsentsRepo) Create(ctx context.Context, c consents.ConsentDocument) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consents (
			id, title, body, version, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.Title,
		c.Body,
		c.Version,
		c.Active,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *ConsentsRepo) Update(ctx context.Context, c consents.ConsentDocument) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE consents
		SET
			title = $2,
			body = $3,
			version = $4,
			active = $5,
			updated_at = $6
		WHERE id = $1
	`,
		c.ID,
		c.Title,
		c.Body,
		c.Version,
		c.Active,
		c.UpdatedAt,
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

func (r *ConsentsRepo) GetByID(ctx context.Context, id string) (consents.ConsentDocument, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return consents.ConsentDocument{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, body, version, active, created_at, updated_at
		FROM consents
		WHERE id = $1
	`, id)

	var c consents.ConsentDocument
	if err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Body,
		&c.Version,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return consents.ConsentDocument{}, ErrNotFound
		}
		return consents.ConsentDocument{}, err
	}

	return c, nil
}

func (r *ConsentsRepo) List(ctx context.Context) ([]consents.ConsentDocument, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, body, version, active, created_at, updated_at
		FROM consents
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]consents.ConsentDocument, 0)
	for rows.Next() {
		var c consents.ConsentDocument
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Body,
			&c.Version,
			&c.Active,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}
