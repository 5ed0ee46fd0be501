package postgres

import (
	"context"
	"database/sql"

	"homologapi/internal/model"
	"homologapi/internal/repository"
)

// PatientPostgres is a PostgreSQL implementation of repository.PatientRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type PatientPostgres struct {
	db *sql.DB
}

// NewPatientPostgres creates a new PatientPostgres repository.
func NewPatientPostgres(db *sql.DB) *PatientPostgres {
	return &PatientPostgres{db: db}
}

var _ repository.PatientRepository = (*PatientPostgres)(nil)

// Upsert inserts a patient row or overwrites the non-key fields on natural-key
// conflict, and returns the stored record.
func (r *PatientPostgres) Upsert(ctx context.Context, rec *model.PatientRecord) (*model.PatientRecord, error) {
	const q = `
		INSERT INTO pacientes (nome_completo, tipo_doc, numero_doc, cargo, empresa)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (tipo_doc, numero_doc) DO UPDATE
		SET nome_completo = EXCLUDED.nome_completo,
		    cargo         = EXCLUDED.cargo,
		    empresa       = EXCLUDED.empresa
		RETURNING id, nome_completo, tipo_doc, numero_doc, cargo, empresa, data_criacao
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.Name,
		rec.DocType,
		rec.DocNumber,
		rec.JobTitle,
		rec.Employer,
	)
	var out model.PatientRecord
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.DocType,
		&out.DocNumber,
		&out.JobTitle,
		&out.Employer,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search matches name or document number, accent- and case-insensitive via unaccent + ILIKE.
func (r *PatientPostgres) Search(ctx context.Context, query string) ([]model.PatientRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		const qRecent = `
			SELECT id, nome_completo, tipo_doc, numero_doc, cargo, empresa, data_criacao
			FROM pacientes
			ORDER BY data_criacao DESC
			LIMIT $1
		`
		rows, err = r.db.QueryContext(ctx, qRecent, repository.SearchLimit)
	} else {
		const qSearch = `
			SELECT id, nome_completo, tipo_doc, numero_doc, cargo, empresa, data_criacao
			FROM pacientes
			WHERE unaccent(nome_completo) ILIKE unaccent('%' || $1 || '%')
			   OR numero_doc ILIKE '%' || $1 || '%'
			ORDER BY nome_completo
			LIMIT $2
		`
		rows, err = r.db.QueryContext(ctx, qSearch, query, repository.SearchLimit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PatientRecord, 0)
	for rows.Next() {
		var p model.PatientRecord
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.DocType,
			&p.DocNumber,
			&p.JobTitle,
			&p.Employer,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the total number of patient rows.
func (r *PatientPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM pacientes`
	var total int
	if err := r.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
