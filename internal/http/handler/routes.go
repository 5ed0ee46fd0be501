package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"homologapi/internal/convert"
	"homologapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal; business logic lives in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.CertificateService) {
	app.Get("/", APIStatus())

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Post("/generate-document", GenerateDocument(svc, convert.FormatDOCX))
	api.Post("/generate-pdf", GenerateDocument(svc, convert.FormatPDF))
	api.Post("/generate-html", GenerateDocument(svc, convert.FormatHTML))
	api.Get("/patients", SearchPatients(svc))
	api.Get("/doctors", SearchDoctors(svc))
	api.Get("/cids", SearchCIDs())
	api.Get("/validate-document", ValidateDocument())
	api.Get("/health", HealthCheck(db, svc))
}
