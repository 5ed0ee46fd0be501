package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"homologapi/internal/service"
)

// HealthCheck reports service health: database connectivity plus the
// record-store counters the frontend status page displays. The payload
// is flat for frontend compatibility: status, database, pacientes,
// medicos, timestamp.
func HealthCheck(db *sql.DB, svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}

		stats, err := svc.HealthStats(ctx)
		if err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"database":  "connected",
			"pacientes": stats.Patients,
			"medicos":   stats.Physicians,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// APIStatus is the root route: a small online banner pointing at the docs.
func APIStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "online",
			"message": "Sistema de Homologação API v2.0",
			"docs":    "/docs",
		})
	}
}

// LivenessProbe is a minimal liveness endpoint with no dependency checks.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
