// Package repository defines the data-source contracts for the job
// board. These are the public interfaces consumers should depend on;
// concrete implementations live under internal/. Lookups report a
// missing record as (nil, nil) so callers decide whether absence is an
// error.
package repository

import (
	"context"

	"github.com/jobport/jobport/internal/models"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// SetUserResume replaces the user's current resume reference.
	// Resumes already snapshotted by applications are untouched.
	SetUserResume(ctx context.Context, userID, resumeID string) error
}

type JobRepo interface {
	// ListJobs returns the full catalog in its stable catalog order.
	ListJobs(ctx context.Context) ([]models.JobListing, error)
	GetJob(ctx context.Context, id string) (*models.JobListing, error)
	CreateJob(ctx context.Context, j *models.JobListing) error
}

type ResumeRepo interface {
	CreateResume(ctx context.Context, userID string, r *models.Resume) error
	GetResume(ctx context.Context, id string) (*models.Resume, error)
}

type ApplicationRepo interface {
	CreateApplication(ctx context.Context, a *models.Application) error
	// ListApplicationsByUser returns the user's applications newest first.
	ListApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error)
	GetApplicationByUserAndJob(ctx context.Context, userID, jobID string) (*models.Application, error)
}
