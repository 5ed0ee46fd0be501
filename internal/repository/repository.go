package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import (
	"context"

	"homologapi/internal/model"
)

// SearchLimit caps autocomplete result sets.
const SearchLimit = 50

// PatientRepository defines data access for patient records using SQL queries only.
// No business logic here, strictly persistence operations.
type PatientRepository interface {
	// Upsert inserts a patient or, when the natural key (tipo_doc, numero_doc)
	// already exists, overwrites the non-key fields. Idempotent; a conflict is
	// not an error. Returns the stored record.
	Upsert(ctx context.Context, rec *model.PatientRecord) (*model.PatientRecord, error)

	// Search returns up to SearchLimit patients whose name or document number
	// contains the query, matched case- and accent-insensitively. An empty
	// query lists the most recently created records.
	Search(ctx context.Context, query string) ([]model.PatientRecord, error)

	// Count returns the total number of stored patients.
	Count(ctx context.Context) (int, error)
}

// PhysicianRepository defines data access for physician records.
type PhysicianRepository interface {
	// Upsert inserts a physician or overwrites the non-key fields when the
	// natural key (tipo_crm, crm) already exists.
	Upsert(ctx context.Context, rec *model.PhysicianRecord) (*model.PhysicianRecord, error)

	// Search matches name or registration number, case- and accent-insensitive.
	Search(ctx context.Context, query string) ([]model.PhysicianRecord, error)

	// Count returns the total number of stored physicians.
	Count(ctx context.Context) (int, error)
}
