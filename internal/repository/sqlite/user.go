package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jobport/jobport/internal/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	_, err := r.conn.Exec(ctx,
		`INSERT INTO users (id, name, email, avatar, password_hash, resume_id, created, updated) VALUES (?, ?, ?, ?, ?, NULL, ?, ?)`,
		u.ID, u.Name, u.Email, u.Avatar, u.PasswordHash, now(), now())
	return err
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, name, email, avatar, password_hash, resume_id FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, name, email, avatar, password_hash, resume_id FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepo) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	row := r.conn.QueryRow(ctx, query, arg)

	var u models.User
	var avatar, resumeID sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &avatar, &u.PasswordHash, &resumeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if avatar.Valid {
		u.Avatar = avatar.String
	}

	// Hydrate the current resume reference, if any.
	if resumeID.Valid && resumeID.String != "" {
		res, err := r.GetResume(ctx, resumeID.String)
		if err != nil {
			return nil, err
		}
		u.Resume = res
	}

	return &u, nil
}

// SetUserResume points the user at a new current resume. The resume
// row itself must already exist; rows referenced by applications are
// never rewritten here.
func (r *SQLiteRepo) SetUserResume(ctx context.Context, userID, resumeID string) error {
	res, err := r.conn.Exec(ctx, `UPDATE users SET resume_id = ?, updated = ? WHERE id = ?`,
		resumeID, now(), userID)
	if err != nil {
		return fmt.Errorf("set user resume: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("set user resume: user %s not found", userID)
	}
	return nil
}

func (r *SQLiteRepo) CreateResume(ctx context.Context, userID string, res *models.Resume) error {
	if res == nil {
		return fmt.Errorf("resume is nil")
	}

	_, err := r.conn.Exec(ctx,
		`INSERT INTO resumes (id, user_id, file_name, file_url, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		res.ID, userID, res.FileName, res.FileURL, res.UploadedAt.UTC().Unix())
	return err
}

func (r *SQLiteRepo) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, file_name, file_url, uploaded_at FROM resumes WHERE id = ?`, id)

	var res models.Resume
	var uploadedAt int64
	if err := row.Scan(&res.ID, &res.FileName, &res.FileURL, &uploadedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get resume: %w", err)
	}
	res.UploadedAt = time.Unix(uploadedAt, 0).UTC()

	return &res, nil
}
