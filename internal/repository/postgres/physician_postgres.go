package postgres

import (
	"context"
	"database/sql"

	"homologapi/internal/model"
	"homologapi/internal/repository"
)

// PhysicianPostgres is a PostgreSQL implementation of repository.PhysicianRepository.
type PhysicianPostgres struct {
	db *sql.DB
}

// NewPhysicianPostgres creates a new PhysicianPostgres repository.
func NewPhysicianPostgres(db *sql.DB) *PhysicianPostgres {
	return &PhysicianPostgres{db: db}
}

var _ repository.PhysicianRepository = (*PhysicianPostgres)(nil)

// Upsert inserts a physician row or overwrites the non-key fields on
// natural-key conflict, and returns the stored record.
func (r *PhysicianPostgres) Upsert(ctx context.Context, rec *model.PhysicianRecord) (*model.PhysicianRecord, error) {
	const q = `
		INSERT INTO medicos (nome_completo, tipo_crm, crm, uf_crm)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tipo_crm, crm) DO UPDATE
		SET nome_completo = EXCLUDED.nome_completo,
		    uf_crm        = EXCLUDED.uf_crm
		RETURNING id, nome_completo, tipo_crm, crm, uf_crm, data_criacao
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.Name,
		rec.RegType,
		rec.RegNumber,
		rec.RegState,
	)
	var out model.PhysicianRecord
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.RegType,
		&out.RegNumber,
		&out.RegState,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search matches name or registration number, accent- and case-insensitive.
func (r *PhysicianPostgres) Search(ctx context.Context, query string) ([]model.PhysicianRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query == "" {
		const qRecent = `
			SELECT id, nome_completo, tipo_crm, crm, uf_crm, data_criacao
			FROM medicos
			ORDER BY data_criacao DESC
			LIMIT $1
		`
		rows, err = r.db.QueryContext(ctx, qRecent, repository.SearchLimit)
	} else {
		const qSearch = `
			SELECT id, nome_completo, tipo_crm, crm, uf_crm, data_criacao
			FROM medicos
			WHERE unaccent(nome_completo) ILIKE unaccent('%' || $1 || '%')
			   OR crm ILIKE '%' || $1 || '%'
			ORDER BY nome_completo
			LIMIT $2
		`
		rows, err = r.db.QueryContext(ctx, qSearch, query, repository.SearchLimit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PhysicianRecord, 0)
	for rows.Next() {
		var m model.PhysicianRecord
		if err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.RegType,
			&m.RegNumber,
			&m.RegState,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the total number of physician rows.
func (r *PhysicianPostgres) Count(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(*) FROM medicos`
	var total int
	if err := r.db.QueryRowContext(ctx, q).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
