// Package service contains business logic use cases.
// Services depend on repository interfaces (not concrete DBs) and on the
// render/convert packages, which keeps them testable with mocks.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"homologapi/internal/convert"
	"homologapi/internal/model"
	"homologapi/internal/render"
	"homologapi/internal/repository"
	"homologapi/internal/storage"
	"homologapi/internal/validators"
)

var documentsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "documents_generated_total",
	Help: "Number of declaration documents generated, by output format.",
}, []string{"format"})

// ValidationError reports request fields that are missing or inconsistent.
// Field names use the wire paths of the request payload.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid generation request: " + strings.Join(e.Fields, ", ")
}

// Converter produces the target-format bytes for a rendered HTML document.
// *convert.Chain satisfies it.
type Converter interface {
	Convert(ctx context.Context, html string) ([]byte, error)
}

// GenerateResult is the outcome of a successful generation. RecordSaveErr
// and ArchiveErr carry best-effort side-channel failures; the document
// itself is always complete when Generate returns nil error.
type GenerateResult struct {
	Filename    string
	ContentType string
	Data        []byte
	HTML        string

	RecordSaveErr error
	ArchiveErr    error
}

// HealthStats is the payload of the health endpoint.
type HealthStats struct {
	Patients   int `json:"pacientes"`
	Physicians int `json:"medicos"`
}

// CertificateService generates attendance declarations and serves the
// autocomplete searches backed by the record store.
type CertificateService interface {
	Generate(ctx context.Context, req *model.GenerateRequest, format convert.Format) (*GenerateResult, error)
	SearchPatients(ctx context.Context, query string) ([]model.PatientRecord, error)
	SearchPhysicians(ctx context.Context, query string) ([]model.PhysicianRecord, error)
	HealthStats(ctx context.Context) (*HealthStats, error)
}

type certificateService struct {
	patients   repository.PatientRepository
	physicians repository.PhysicianRepository
	pdf        Converter
	docx       Converter
	archive    storage.Archive // nil disables archiving
	logoURI    string

	now  func() time.Time
	logw io.Writer
	loc  *time.Location
}

// NewCertificateService creates the declaration use case. archive may be
// nil when no object store is configured; logoURI may be empty when no
// letterhead logo is available.
func NewCertificateService(
	patients repository.PatientRepository,
	physicians repository.PhysicianRepository,
	pdf, docx Converter,
	archive storage.Archive,
	logoURI string,
) CertificateService {
	return &certificateService{
		patients:   patients,
		physicians: physicians,
		pdf:        pdf,
		docx:       docx,
		archive:    archive,
		logoURI:    logoURI,
		now:        time.Now,
		logw:       os.Stdout,
		loc:        time.Local,
	}
}

// Generate validates the request, renders the declaration and converts it
// to the requested format. Persisting the patient/physician records and
// archiving the artifact are best-effort: their failures are reported on
// the result, never as a generation error.
func (s *certificateService) Generate(ctx context.Context, req *model.GenerateRequest, format convert.Format) (*GenerateResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	html, err := render.Render(s.buildFields(req))
	if err != nil {
		return nil, err
	}

	res := &GenerateResult{
		HTML:        html,
		ContentType: format.ContentType(),
	}

	switch format {
	case convert.FormatHTML:
		res.Data = []byte(html)
	case convert.FormatPDF:
		res.Data, err = s.pdf.Convert(ctx, html)
	case convert.FormatDOCX:
		res.Data, err = s.docx.Convert(ctx, html)
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return nil, err
	}

	res.Filename = s.filename(req.Patient.Name, format)
	s.saveRecords(ctx, req, res)
	s.archiveArtifact(ctx, res)

	documentsGenerated.WithLabelValues(string(format)).Inc()
	return res, nil
}

func (s *certificateService) SearchPatients(ctx context.Context, query string) ([]model.PatientRecord, error) {
	return s.patients.Search(ctx, strings.TrimSpace(query))
}

func (s *certificateService) SearchPhysicians(ctx context.Context, query string) ([]model.PhysicianRecord, error) {
	return s.physicians.Search(ctx, strings.TrimSpace(query))
}

func (s *certificateService) HealthStats(ctx context.Context) (*HealthStats, error) {
	patients, err := s.patients.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}
	physicians, err := s.physicians.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count physicians: %w", err)
	}
	return &HealthStats{Patients: patients, Physicians: physicians}, nil
}

// saveRecords upserts the patient and physician seen on the request so the
// autocomplete learns them. Failures are collected on the result.
func (s *certificateService) saveRecords(ctx context.Context, req *model.GenerateRequest, res *GenerateResult) {
	if _, err := s.patients.Upsert(ctx, req.PatientRecordOf()); err != nil {
		res.RecordSaveErr = errors.Join(res.RecordSaveErr, fmt.Errorf("save patient: %w", err))
	}
	if _, err := s.physicians.Upsert(ctx, req.PhysicianRecordOf()); err != nil {
		res.RecordSaveErr = errors.Join(res.RecordSaveErr, fmt.Errorf("save physician: %w", err))
	}
	if res.RecordSaveErr != nil {
		s.logJSON(map[string]any{
			"component":     "certificate_service",
			"event":         "record_save_failed",
			"level":         "warn",
			"error_message": res.RecordSaveErr.Error(),
		})
	}
}

// archiveArtifact stores the generated bytes in the object archive under a
// date-partitioned, collision-free key.
func (s *certificateService) archiveArtifact(ctx context.Context, res *GenerateResult) {
	if s.archive == nil {
		return
	}
	key := fmt.Sprintf("declaracoes/%s/%s%s", s.now().In(s.loc).Format("2006/01/02"), uuid.NewString(), path.Ext(res.Filename))
	_, err := s.archive.Put(ctx, key, bytes.NewReader(res.Data), storage.PutObjectOptions{
		Size:        int64(len(res.Data)),
		ContentType: res.ContentType,
		Metadata:    map[string]string{"filename": res.Filename},
	})
	if err != nil {
		res.ArchiveErr = err
		s.logJSON(map[string]any{
			"component":     "certificate_service",
			"event":         "archive_failed",
			"level":         "warn",
			"key":           key,
			"error_message": err.Error(),
		})
	}
}

// validateRequest enforces presence of the required groups, a positive
// leave duration, and the CID rule: exactly one of cid or cid_nao_informado.
// Document numbers are accepted as typed; no check-digit validation here.
func validateRequest(req *model.GenerateRequest) error {
	var fields []string
	need := func(path, v string) {
		if strings.TrimSpace(v) == "" {
			fields = append(fields, path)
		}
	}

	need("paciente.nome", req.Patient.Name)
	need("paciente.tipo_documento", req.Patient.DocType)
	need("paciente.numero_documento", req.Patient.DocNumber)
	need("atestado.data_atestado", req.Certificate.Date)
	if req.Certificate.DaysOff <= 0 {
		fields = append(fields, "atestado.dias_afastamento")
	}
	cid := strings.TrimSpace(req.Certificate.CID)
	if req.Certificate.CIDNotInformed && cid != "" {
		fields = append(fields, "atestado.cid")
	}
	if !req.Certificate.CIDNotInformed && cid == "" {
		fields = append(fields, "atestado.cid")
	}
	need("medico.nome", req.Physician.Name)
	need("medico.tipo_registro", req.Physician.RegType)
	need("medico.numero_registro", req.Physician.RegNumber)
	need("medico.uf_registro", req.Physician.RegState)

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// honorificRe strips a leading Dr./Dra./Dr(a). from the physician name so
// the template's fixed "Dr. (a)" prefix is not doubled.
var honorificRe = regexp.MustCompile(`(?i)^\s*dr\s*(a|\(a\))?\.?\s+`)

func (s *certificateService) buildFields(req *model.GenerateRequest) map[string]string {
	docNumber := strings.TrimSpace(req.Patient.DocNumber)
	if strings.EqualFold(req.Patient.DocType, model.DocTypeCPF) {
		docNumber = validators.FormatCPF(docNumber)
	}

	cid := render.CIDNotInformed
	if !req.Certificate.CIDNotInformed {
		cid = strings.ToUpper(strings.TrimSpace(req.Certificate.CID))
	}

	return map[string]string{
		"nome_paciente":                 strings.TrimSpace(req.Patient.Name),
		"documento_paciente_formatado":  strings.ToUpper(strings.TrimSpace(req.Patient.DocType)) + " nº: " + docNumber,
		"cargo_paciente":                strings.TrimSpace(req.Patient.JobTitle),
		"empresa_paciente":              strings.TrimSpace(req.Patient.Employer),
		"data_atestado":                 render.FormatDateBR(strings.TrimSpace(req.Certificate.Date)),
		"qtd_dias_atestado":             strconv.Itoa(req.Certificate.DaysOff),
		"codigo_cid":                    cid,
		"nome_medico":                   honorificRe.ReplaceAllString(strings.TrimSpace(req.Physician.Name), ""),
		"crm_medico":                    strings.ToUpper(strings.TrimSpace(req.Physician.RegType)) + " " + strings.TrimSpace(req.Physician.RegNumber),
		"uf_crm_medico":                 strings.ToUpper(strings.TrimSpace(req.Physician.RegState)),
		"data_atual":                    render.LongDateBR(s.now().In(s.loc)),
		"logo_base64":                   s.logoURI,
	}
}

func (s *certificateService) filename(patientName string, format convert.Format) string {
	return fmt.Sprintf("Declaracao_Comparecimento_%s_%s%s",
		sanitizeFilename(patientName),
		s.now().In(s.loc).Format("20060102_150405"),
		format.Extension())
}

const maxFilenameNameLen = 50

// sanitizeFilename reduces a patient name to a safe ASCII filename chunk.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
		if b.Len() >= maxFilenameNameLen {
			break
		}
	}
	if b.Len() == 0 {
		return "Paciente"
	}
	return b.String()
}

func (s *certificateService) logJSON(data map[string]any) {
	data["ts"] = s.now().In(s.loc).Format(time.RFC3339Nano)
	b, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintln(s.logw, string(b))
}
