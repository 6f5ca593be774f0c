package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jobport/jobport/internal/models"
)

const jobColumns = `id, title, company, company_logo, location, location_type, salary, posted_at, description, requirements, skills, employment_type, experience_level, is_featured`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.JobListing) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	reqs, err := json.Marshal(j.Requirements)
	if err != nil {
		return fmt.Errorf("marshal requirements: %w", err)
	}
	skills, err := json.Marshal(j.Skills)
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}
	featured := 0
	if j.IsFeatured {
		featured = 1
	}

	_, err = r.conn.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		j.ID, j.Title, j.Company, j.CompanyLogo, j.Location, string(j.LocationType), j.Salary,
		j.PostedAt.UTC().Unix(), j.Description, string(reqs), string(skills),
		string(j.EmploymentType), string(j.ExperienceLevel), featured)
	return err
}

// ListJobs returns the catalog in insertion order, which is the stable
// order the filter preserves.
func (r *SQLiteRepo) ListJobs(ctx context.Context) ([]models.JobListing, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var out []models.JobListing
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *j)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.JobListing, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return j, err
}

func scanJob(scan func(dest ...any) error) (*models.JobListing, error) {
	var (
		j                models.JobListing
		logo, salary     sql.NullString
		postedAt         int64
		reqsJSON, skJSON string
		featured         int
	)
	if err := scan(&j.ID, &j.Title, &j.Company, &logo, &j.Location, &j.LocationType, &salary,
		&postedAt, &j.Description, &reqsJSON, &skJSON, &j.EmploymentType, &j.ExperienceLevel, &featured); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	if logo.Valid {
		j.CompanyLogo = logo.String
	}
	if salary.Valid {
		j.Salary = salary.String
	}
	j.PostedAt = time.Unix(postedAt, 0).UTC()
	j.IsFeatured = featured != 0
	if err := json.Unmarshal([]byte(reqsJSON), &j.Requirements); err != nil {
		return nil, fmt.Errorf("decode requirements for %s: %w", j.ID, err)
	}
	if err := json.Unmarshal([]byte(skJSON), &j.Skills); err != nil {
		return nil, fmt.Errorf("decode skills for %s: %w", j.ID, err)
	}

	return &j, nil
}
