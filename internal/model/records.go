package model

import "time"

// Patient document types accepted by the form.
const (
	DocTypeCPF = "CPF"
	DocTypeRG  = "RG"
)

// Physician professional-registry types.
const (
	RegTypeCRM = "CRM"
	RegTypeCRO = "CRO"
	RegTypeRMS = "RMS"
)

// PatientRecord represents a stored patient.
// Natural key: (DocType, DocNumber). Records are upserted on every
// successful document generation and never deleted by the application.
// JSON field names follow the frontend wire contract (pt-BR).
type PatientRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome_completo"`
	DocType   string    `json:"tipo_doc"`
	DocNumber string    `json:"numero_doc"`
	JobTitle  string    `json:"cargo"`
	Employer  string    `json:"empresa"`
	CreatedAt time.Time `json:"data_criacao"`
}

// PhysicianRecord represents a stored physician.
// Natural key: (RegType, RegNumber).
type PhysicianRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome_completo"`
	RegType   string    `json:"tipo_crm"`
	RegNumber string    `json:"crm"`
	RegState  string    `json:"uf_crm"`
	CreatedAt time.Time `json:"data_criacao"`
}
