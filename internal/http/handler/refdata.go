package handler

import (
	"github.com/gofiber/fiber/v2"

	"homologapi/internal/refdata"
	"homologapi/internal/validators"
)

// SearchCIDs serves the diagnosis-code autocomplete from the embedded
// CID-10 reference list.
func SearchCIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(refdata.Search(c.Query("search")))
	}
}

// ValidateDocument checks a patient document number ahead of form
// submission. CPF gets a check-digit validation, RG a shape check.
// This is advisory only; generation never rejects a document number.
func ValidateDocument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		docType := c.Query("tipo")
		number := c.Query("numero")
		if number == "" {
			return writeError(c, fiber.StatusBadRequest, "NUMBER_REQUIRED", "query parameter numero is required")
		}

		switch docType {
		case "CPF":
			return c.JSON(fiber.Map{
				"valido":           validators.ValidCPF(number),
				"numero_formatado": validators.FormatCPF(number),
			})
		case "RG":
			return c.JSON(fiber.Map{
				"valido":           validators.ValidRG(number),
				"numero_formatado": validators.OnlyDigits(number),
			})
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_DOC_TYPE", "tipo must be CPF or RG")
		}
	}
}
