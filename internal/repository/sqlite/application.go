package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jobport/jobport/internal/models"
)

const appColumns = `id, job_id, user_id, status, applied_at, job_title, company_name, resume_id, cover_letter`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	if a == nil {
		return fmt.Errorf("application is nil")
	}

	_, err := r.conn.Exec(ctx, `INSERT INTO applications (`+appColumns+`) VALUES (?,?,?,?,?,?,?,?,?)`,
		a.ID, a.JobID, a.UserID, string(a.Status), a.AppliedAt.UTC().Unix(),
		a.JobTitle, a.CompanyName, a.ResumeID, a.CoverLetter)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) ListApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error) {
	rows, err := r.conn.Query(ctx,
		`SELECT `+appColumns+` FROM applications WHERE user_id = ? ORDER BY applied_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []models.Application
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) GetApplicationByUserAndJob(ctx context.Context, userID, jobID string) (*models.Application, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT `+appColumns+` FROM applications WHERE user_id = ? AND job_id = ?`, userID, jobID)
	a, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func scanApplication(scan func(dest ...any) error) (*models.Application, error) {
	var (
		a                     models.Application
		appliedAt             int64
		resumeID, coverLetter sql.NullString
	)
	if err := scan(&a.ID, &a.JobID, &a.UserID, &a.Status, &appliedAt,
		&a.JobTitle, &a.CompanyName, &resumeID, &coverLetter); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan application: %w", err)
	}
	a.AppliedAt = time.Unix(appliedAt, 0).UTC()
	if resumeID.Valid {
		a.ResumeID = resumeID.String
	}
	if coverLetter.Valid {
		a.CoverLetter = coverLetter.String
	}

	return &a, nil
}
