package db

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/jobport/jobport/internal/models"
)

// Migrate applies the embedded SQL migrations and seeds the job
// catalog. A `schema_migrations` table tracks applied versions; the
// seed catalog is validated against its JSON Schema before any row is
// inserted and the inserts are idempotent, so startup can run this
// every time.
func Migrate(ctx context.Context, d *DB, migrationFS embed.FS, seedFS embed.FS) error {
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	migDir := "migrations"

	entries, err := fs.ReadDir(migrationFS, migDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	// collect .sql files and sort
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), ".sql") {
			files = append(files, name)
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		// filename without extension is the migration version key
		version := strings.TrimSuffix(fname, path.Ext(fname))

		var count int
		row := d.QueryRow(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration applied count: %w", err)
		}
		if count > 0 {
			continue
		}

		p := path.Join(migDir, fname)
		b, err := fs.ReadFile(migrationFS, p)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		if _, err := d.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec migration %s: %w", fname, err)
		}

		if _, err := d.Exec(ctx, `INSERT INTO schema_migrations (version, applied) VALUES (?, strftime('%s','now'))`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", fname, err)
		}
	}

	return seedCatalog(ctx, d, seedFS)
}

// seedCatalog loads the embedded job catalog, checks it against its
// schema, and inserts any listing not already present.
func seedCatalog(ctx context.Context, d *DB, seedFS embed.FS) error {
	data, err := fs.ReadFile(seedFS, path.Join("seed", "jobs.json"))
	if err != nil {
		// no seed shipped; nothing to do
		return nil
	}
	schemaBytes, err := fs.ReadFile(seedFS, path.Join("seed", "jobs_schema.json"))
	if err != nil {
		return fmt.Errorf("read seed schema: %w", err)
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal(schemaBytes, rs); err != nil {
		return fmt.Errorf("compile seed schema: %w", err)
	}
	keyErrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return fmt.Errorf("validate seed catalog: %w", err)
	}
	if len(keyErrs) > 0 {
		return fmt.Errorf("seed catalog rejected by schema: %v", keyErrs[0])
	}

	var listings []models.JobListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return fmt.Errorf("decode seed catalog: %w", err)
	}

	for _, j := range listings {
		reqs, err := json.Marshal(j.Requirements)
		if err != nil {
			return fmt.Errorf("marshal requirements for %s: %w", j.ID, err)
		}
		skills, err := json.Marshal(j.Skills)
		if err != nil {
			return fmt.Errorf("marshal skills for %s: %w", j.ID, err)
		}
		featured := 0
		if j.IsFeatured {
			featured = 1
		}
		_, err = d.Exec(ctx, `INSERT OR IGNORE INTO jobs
			(id, title, company, company_logo, location, location_type, salary, posted_at, description, requirements, skills, employment_type, experience_level, is_featured)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			j.ID, j.Title, j.Company, j.CompanyLogo, j.Location, string(j.LocationType), j.Salary,
			j.PostedAt.UTC().Unix(), j.Description, string(reqs), string(skills),
			string(j.EmploymentType), string(j.ExperienceLevel), featured)
		if err != nil {
			return fmt.Errorf("seed job %s: %w", j.ID, err)
		}
	}

	return nil
}
