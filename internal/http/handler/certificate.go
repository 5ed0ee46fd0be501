package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"homologapi/internal/convert"
	"homologapi/internal/model"
	"homologapi/internal/render"
	"homologapi/internal/service"
)

// GenerateDocument produces the declaration in the given target format and
// streams it back as an attachment. The same handler backs the DOCX, PDF
// and raw-HTML generation routes.
func GenerateDocument(svc service.CertificateService, format convert.Format) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_JSON", "malformed request body")
		}

		res, err := svc.Generate(c.UserContext(), &req, format)
		if err != nil {
			var verr *service.ValidationError
			var merr *render.MissingFieldError
			switch {
			case errors.As(err, &verr):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verr.Error())
			case errors.As(err, &merr):
				return writeError(c, fiber.StatusInternalServerError, "TEMPLATE_ERROR", "document template could not be filled")
			case errors.Is(err, convert.ErrConversionUnavailable):
				return writeError(c, fiber.StatusServiceUnavailable, "CONVERSION_UNAVAILABLE", "no document converter is available")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}

		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
		return c.Status(fiber.StatusOK).Send(res.Data)
	}
}

// SearchPatients serves the patient autocomplete.
func SearchPatients(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := svc.SearchPatients(c.UserContext(), c.Query("search"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(records)
	}
}

// SearchDoctors serves the physician autocomplete.
func SearchDoctors(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := svc.SearchPhysicians(c.UserContext(), c.Query("search"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(records)
	}
}
