package postgres

import (
	"context"
	"database/sql"
	"strings"

	"titulares-admin/internal/domain/projects"
)

type ProjectsRepo struct {
	db *sql.DB
}

func NewProjectsRepo(db *sql.DB) *ProjectsRepo {
	return &ProjectsRepo{db: db}
}

func (r *ProjectsRepo) Create(ctx context.Context, p projects.Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (
			id, name, description, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		p.ID,
		p.Name,
		p.Description,
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProjectsRepo) GetByID(ctx context.Context, id string) (projects.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return projects.Project{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, active, created_at, updated_at
		FROM projects
		WHERE id = $1
	`, id)

	var p projects.Project
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return projects.Project{}, ErrNotFound
		}
		return projects.Project{}, err
	}

	return p, nil
}

func (r *ProjectsRepo) List(ctx context.Context) ([]projects.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, active, created_at, updated_at
		FROM projects
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]projects.Project, 0)
	for rows.Next() {
		var p projects.Project
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
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
