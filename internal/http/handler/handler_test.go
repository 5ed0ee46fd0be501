package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homologapi/internal/convert"
	"homologapi/internal/model"
	"homologapi/internal/service"
	serviceMocks "homologapi/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func generateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	req := model.GenerateRequest{
		Patient: model.PatientData{
			Name:      "Ana Souza",
			DocType:   "CPF",
			DocNumber: "123.456.789-00",
		},
		Certificate: model.CertificateData{
			Date:    "2026-08-29",
			DaysOff: 3,
			CID:     "J00",
		},
		Physician: model.PhysicianData{
			Name:      "Carlos Lima",
			RegType:   "CRM",
			RegNumber: "1111",
			RegState:  "DF",
		},
	}
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mockSvc := new(serviceMocks.MockCertificateService)
	app := fiber.New()
	app.Get("/api/health", HealthCheck(db, mockSvc))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)
		mockSvc.On("HealthStats", mock.Anything).
			Return(&service.HealthStats{Patients: 5, Physicians: 2}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Status    string `json:"status"`
			Database  string `json:"database"`
			Pacientes int    `json:"pacientes"`
			Medicos   int    `json:"medicos"`
			Timestamp string `json:"timestamp"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "connected", body.Database)
		assert.Equal(t, 5, body.Pacientes)
		assert.Equal(t, 2, body.Medicos)
		_, terr := time.Parse(time.RFC3339, body.Timestamp)
		assert.NoError(t, terr)
		mockSvc.AssertExpectations(t)
	})

	t.Run("database down", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})

	t.Run("stats failure", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)
		mockSvc.On("HealthStats", mock.Anything).
			Return(nil, errors.New("count failed")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestAPIStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/", APIStatus())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, "/docs", body["docs"])
	assert.NotEmpty(t, body["message"])
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGenerateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockCertificateService)
	app := fiber.New()
	app.Post("/api/generate-pdf", GenerateDocument(mockSvc, convert.FormatPDF))

	t.Run("success", func(t *testing.T) {
		res := &service.GenerateResult{
			Filename:    "Declaracao_Comparecimento_Ana_Souza_20260830_143000.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.7 fake"),
		}
		mockSvc.On("Generate", mock.Anything, mock.AnythingOfType("*model.GenerateRequest"), convert.FormatPDF).
			Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", generateBody(t))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Equal(t,
			`attachment; filename="Declaracao_Comparecimento_Ana_Souza_20260830_143000.pdf"`,
			resp.Header.Get("Content-Disposition"))

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, []byte("%PDF-1.7 fake"), body)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", bytes.NewBufferString("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_JSON", body.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc.On("Generate", mock.Anything, mock.Anything, convert.FormatPDF).
			Return(nil, &service.ValidationError{Fields: []string{"paciente.nome"}}).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", generateBody(t))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Message, "paciente.nome")
		mockSvc.AssertExpectations(t)
	})

	t.Run("conversion unavailable", func(t *testing.T) {
		mockSvc.On("Generate", mock.Anything, mock.Anything, convert.FormatPDF).
			Return(nil, convert.ErrConversionUnavailable).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", generateBody(t))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "CONVERSION_UNAVAILABLE", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.On("Generate", mock.Anything, mock.Anything, convert.FormatPDF).
			Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/generate-pdf", generateBody(t))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearchPatients(t *testing.T) {
	mockSvc := new(serviceMocks.MockCertificateService)
	app := fiber.New()
	app.Get("/api/patients", SearchPatients(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("SearchPatients", mock.Anything, "ana").
			Return([]model.PatientRecord{{ID: 1, Name: "Ana Souza"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/patients?search=ana", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var records []model.PatientRecord
		json.NewDecoder(resp.Body).Decode(&records)
		require.Len(t, records, 1)
		assert.Equal(t, "Ana Souza", records[0].Name)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("SearchPatients", mock.Anything, "").
			Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearchDoctors(t *testing.T) {
	mockSvc := new(serviceMocks.MockCertificateService)
	app := fiber.New()
	app.Get("/api/doctors", SearchDoctors(mockSvc))

	mockSvc.On("SearchPhysicians", mock.Anything, "carlos").
		Return([]model.PhysicianRecord{{ID: 2, Name: "Carlos Lima"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/doctors?search=carlos", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var records []model.PhysicianRecord
	json.NewDecoder(resp.Body).Decode(&records)
	require.Len(t, records, 1)
	assert.Equal(t, "Carlos Lima", records[0].Name)
	mockSvc.AssertExpectations(t)
}

func TestSearchCIDs(t *testing.T) {
	app := fiber.New()
	app.Get("/api/cids", SearchCIDs())

	req := httptest.NewRequest(http.MethodGet, "/api/cids?search=J00", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []struct {
		Code string `json:"codigo"`
	}
	json.NewDecoder(resp.Body).Decode(&entries)
	require.NotEmpty(t, entries)
	assert.Equal(t, "J00", entries[0].Code)
}

func TestValidateDocument(t *testing.T) {
	app := fiber.New()
	app.Get("/api/validate-document", ValidateDocument())

	do := func(t *testing.T, url string) (int, map[string]any) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		resp, _ := app.Test(req)
		var body map[string]any
		json.NewDecoder(resp.Body).Decode(&body)
		return resp.StatusCode, body
	}

	t.Run("valid cpf", func(t *testing.T) {
		status, body := do(t, "/api/validate-document?tipo=CPF&numero=71423709128")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["valido"])
		assert.Equal(t, "714.237.091-28", body["numero_formatado"])
	})

	t.Run("invalid cpf check digits", func(t *testing.T) {
		status, body := do(t, "/api/validate-document?tipo=CPF&numero=12345678900")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, false, body["valido"])
	})

	t.Run("rg", func(t *testing.T) {
		status, body := do(t, "/api/validate-document?tipo=RG&numero=12.345.678-9")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, body["valido"])
		assert.Equal(t, "123456789", body["numero_formatado"])
	})

	t.Run("missing number", func(t *testing.T) {
		status, _ := do(t, "/api/validate-document?tipo=CPF")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown type", func(t *testing.T) {
		status, _ := do(t, "/api/validate-document?tipo=CNH&numero=123")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
