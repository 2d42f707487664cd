package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"titulares-admin/internal/domain/titulares"
)

type TitularesRepo struct {
	db *sql.DB
}

func NewTitularesRepo(db *sql.DB) *TitularesRepo {
	return &TitularesRepo{db: db}
}

func (r *TitularesRepo) Create(ctx context.Context, t titulares.Titular) error {
	dataJSON, consentsJSON, err := marshalTitularDocs(t)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO titulares (
			id, project_id, folder_id, folder_version,
			full_name, email,
			access_code, access_key,
			data, completion_percentage, status, consents,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		t.ID,
		t.ProjectID,
		t.FolderID,
		t.FolderVersion,
		t.FullName,
		t.Email,
		t.AccessCode,
		t.AccessKey,
		dataJSON,
		t.CompletionPercentage,
		string(t.Status),
		consentsJSON,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

// Update escribe el registro completo en una sola sentencia; el UPDATE por
// fila de Postgres es la garantía de atomicidad que pide el repositorio.
func (r *TitularesRepo) Update(ctx context.Context, t titulares.Titular) error {
	dataJSON, consentsJSON, err := marshalTitularDocs(t)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE titulares
		SET
			full_name = $2,
			email = $3,
			data = $4,
			completion_percentage = $5,
			status = $6,
			consents = $7,
			updated_at = $8
		WHERE id = $1
	`,
		t.ID,
		t.FullName,
		t.Email,
		dataJSON,
		t.CompletionPercentage,
		string(t.Status),
		consentsJSON,
		t.UpdatedAt,
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

func (r *TitularesRepo) GetByID(ctx context.Context, id string) (titulares.Titular, error) {
	return r.getBy(ctx, "id", id)
}

func (r *TitularesRepo) GetByAccessKey(ctx context.Context, accessKey string) (titulares.Titular, error) {
	return r.getBy(ctx, "access_key", accessKey)
}

func (r *TitularesRepo) GetByAccessCode(ctx context.Context, accessCode string) (titulares.Titular, error) {
	return r.getBy(ctx, "access_code", accessCode)
}

func (r *TitularesRepo) getBy(ctx context.Context, column, value string) (titulares.Titular, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return titulares.Titular{}, ErrNotFound
	}

	// column viene de los tres getters de arriba, nunca de input externo
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, project_id, folder_id, folder_version,
			full_name, email,
			access_code, access_key,
			data, completion_percentage, status, consents,
			created_at, updated_at
		FROM titulares
		WHERE `+column+` = $1
	`, value)

	return scanTitular(row)
}

func (r *TitularesRepo) ListByFolder(ctx context.Context, folderID string) ([]titulares.Titular, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, project_id, folder_id, folder_version,
			full_name, email,
			access_code, access_key,
			data, completion_percentage, status, consents,
			created_at, updated_at
		FROM titulares
		WHERE folder_id = $1
		ORDER BY created_at ASC
	`, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]titulares.Titular, 0)
	for rows.Next() {
		t, err := scanTitular(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func scanTitular(row rowScanner) (titulares.Titular, error) {
	var t titulares.Titular
	var dataJSON, consentsJSON []byte
	var status string
	if err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.FolderID,
		&t.FolderVersion,
		&t.FullName,
		&t.Email,
		&t.AccessCode,
		&t.AccessKey,
		&dataJSON,
		&t.CompletionPercentage,
		&status,
		&consentsJSON,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return titulares.Titular{}, ErrNotFound
		}
		return titulares.Titular{}, err
	}

	t.Status = titulares.Status(status)

	t.Data = map[string]any{}
	if len(dataJSON) > 0 {
		_ = json.Unmarshal(dataJSON, &t.Data)
	}
	if len(consentsJSON) > 0 {
		_ = json.Unmarshal(consentsJSON, &t.Consents)
	}

	return t, nil
}

func marshalTitularDocs(t titulares.Titular) (dataJSON, consentsJSON []byte, err error) {
	data := t.Data
	if data == nil {
		data = map[string]any{}
	}
	dataJSON, err = json.Marshal(data)
	if err != nil {
		return nil, nil, err
	}

	consents := t.Consents
	if consents == nil {
		consents = []titulares.ConsentAcceptance{}
	}
	consentsJSON, err = json.Marshal(consents)
	if err != nil {
		return nil, nil, err
	}

	return dataJSON, consentsJSON, nil
}
