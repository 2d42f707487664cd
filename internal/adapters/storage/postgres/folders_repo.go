package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"titulares-admin/internal/domain/folders"
)

type FoldersRepo struct {
	db *sql.DB
}

func NewFoldersRepo(db *sql.DB) *FoldersRepo {
	return &FoldersRepo{db: db}
}

func (r *FoldersRepo) Create(ctx context.Context, f folders.Folder) error {
	schemaJSON, err := json.Marshal(f.Schema)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO folders (
			id, project_id,
			name, description, schema,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		f.ID,
		f.ProjectID,
		f.Name,
		f.Description,
		schemaJSON,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *FoldersRepo) Update(ctx context.Context, f folders.Folder) error {
	schemaJSON, err := json.Marshal(f.Schema)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE folders
		SET
			name = $2,
			description = $3,
			schema = $4,
			updated_at = $5
		WHERE id = $1
	`,
		f.ID,
		f.Name,
		f.Description,
		schemaJSON,
		f.UpdatedAt,
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

func (r *FoldersRepo) GetByID(ctx context.Context, id string) (folders.Folder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return folders.Folder{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, project_id,
			name, description, schema,
			created_at, updated_at
		FROM folders
		WHERE id = $1
	`, id)

	return scanFolder(row)
}

func (r *FoldersRepo) ListByProject(ctx context.Context, projectID string) ([]folders.Folder, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, project_id,
			name, description, schema,
			created_at, updated_at
		FROM folders
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]folders.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (folders.Folder, error) {
	var f folders.Folder
	var schemaJSON []byte
	if err := row.Scan(
		&f.ID,
		&f.ProjectID,
		&f.Name,
		&f.Description,
		&schemaJSON,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return folders.Folder{}, ErrNotFound
		}
		return folders.Folder{}, err
	}

	// schema es JSONB; un unmarshal fallido degrada a esquema vacío igual
	// que el resto de las operaciones de esquema
	if len(schemaJSON) > 0 {
		_ = json.Unmarshal(schemaJSON, &f.Schema)
	}

	return f, nil
}
