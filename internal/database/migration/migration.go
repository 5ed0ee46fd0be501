package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_unaccent",
		SQL:  `CREATE EXTENSION IF NOT EXISTS unaccent;`,
	},
	{
		Name: "create_table_pacientes",
		SQL: `CREATE TABLE IF NOT EXISTS pacientes (
  id            BIGSERIAL   PRIMARY KEY,
  nome_completo TEXT        NOT NULL,
  tipo_doc      TEXT        NOT NULL CHECK (tipo_doc IN ('CPF', 'RG')),
  numero_doc    TEXT        NOT NULL,
  cargo         TEXT        NOT NULL DEFAULT '',
  empresa       TEXT        NOT NULL DEFAULT '',
  data_criacao  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (tipo_doc, numero_doc)
);`,
	},
	{
		Name: "create_table_medicos",
		SQL: `CREATE TABLE IF NOT EXISTS medicos (
  id            BIGSERIAL   PRIMARY KEY,
  nome_completo TEXT        NOT NULL,
  tipo_crm      TEXT        NOT NULL,
  crm           TEXT        NOT NULL,
  uf_crm        CHAR(2)     NOT NULL,
  data_criacao  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (tipo_crm, crm)
);`,
	},
	{
		Name: "create_index_pacientes_nome",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_pacientes_nome ON pacientes (nome_completo);`,
	},
	{
		Name: "create_index_medicos_nome",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_medicos_nome ON medicos (nome_completo);`,
	},
}

// EnsureMigrated checks if the 'pacientes' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.pacientes') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
