package model

// The generation request keeps the nested pt-BR payload shape of the
// frontend contract: paciente / atestado / medico groups.

// PatientData is the patient group of a generation request.
type PatientData struct {
	Name      string `json:"nome"`
	DocType   string `json:"tipo_documento"`
	DocNumber string `json:"numero_documento"`
	JobTitle  string `json:"cargo"`
	Employer  string `json:"empresa"`
}

// CertificateData is the certificate group of a generation request.
// Exactly one of CID or CIDNotInformed must be provided; the renderer
// prints either the code or the literal "Não Informado", never both.
type CertificateData struct {
	Date           string `json:"data_atestado"`
	DaysOff        int    `json:"dias_afastamento"`
	CID            string `json:"cid"`
	CIDNotInformed bool   `json:"cid_nao_informado"`
}

// PhysicianData is the physician group of a generation request.
type PhysicianData struct {
	Name      string `json:"nome"`
	RegType   string `json:"tipo_registro"`
	RegNumber string `json:"numero_registro"`
	RegState  string `json:"uf_registro"`
}

// GenerateRequest is the full body of POST /api/generate-document and
// POST /api/generate-pdf.
type GenerateRequest struct {
	Patient     PatientData     `json:"paciente"`
	Certificate CertificateData `json:"atestado"`
	Physician   PhysicianData   `json:"medico"`
}

// PatientRecordOf maps the request's patient group to a store record.
func (r *GenerateRequest) PatientRecordOf() *PatientRecord {
	return &PatientRecord{
		Name:      r.Patient.Name,
		DocType:   r.Patient.DocType,
		DocNumber: r.Patient.DocNumber,
		JobTitle:  r.Patient.JobTitle,
		Employer:  r.Patient.Employer,
	}
}

// PhysicianRecordOf maps the request's physician group to a store record.
func (r *GenerateRequest) PhysicianRecordOf() *PhysicianRecord {
	return &PhysicianRecord{
		Name:      r.Physician.Name,
		RegType:   r.Physician.RegType,
		RegNumber: r.Physician.RegNumber,
		RegState:  r.Physician.RegState,
	}
}
