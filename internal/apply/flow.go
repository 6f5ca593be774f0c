// Package apply models the job-application flow as an explicit state
// machine: resume acquisition, detail entry, simulated submission. The
// states replace the ad hoc step/isSubmitting flags a form UI would
// keep, so an illegal transition is rejected instead of silently
// tolerated.
package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jobport/jobport/internal/clock"
	"github.com/jobport/jobport/internal/models"
)

// State is the flow's current position.
type State string

const (
	// StateAwaitingResume waits for a resume to be uploaded or reused.
	StateAwaitingResume State = "awaiting-resume"
	// StateComposingDetails collects the cover letter with a resume attached.
	StateComposingDetails State = "composing-details"
	// StateSubmitting covers the simulated round trip to the backend.
	StateSubmitting State = "submitting"
	// StateSubmitted is terminal; exactly one Application was produced.
	StateSubmitted State = "submitted"
	// StateCancelled is terminal; no Application was produced.
	StateCancelled State = "cancelled"
)

func (s State) Terminal() bool {
	return s == StateSubmitted || s == StateCancelled
}

var (
	// ErrMissingResume rejects submission without an attached resume.
	// Non-fatal: the flow stays in StateComposingDetails.
	ErrMissingResume = errors.New("a resume is required before applying")
	// ErrNoCurrentResume rejects reuse when the user has no resume on file.
	ErrNoCurrentResume = errors.New("user has no resume on file")
	// ErrInvalidTransition rejects an action the current state does not allow.
	ErrInvalidTransition = errors.New("invalid flow transition")
)

// Flow is a single application attempt for one job by one user. It is
// not safe for concurrent use; like the form it replaces, one actor
// drives it to completion.
type Flow struct {
	job  models.JobListing
	user models.User

	state       State
	resume      *models.Resume
	submitDelay time.Duration
	clock       clock.Clock
	logger      *slog.Logger
}

// SubmitDelay is the default simulated round trip for a submission.
const SubmitDelay = 1500 * time.Millisecond

// New starts a flow in StateAwaitingResume. If the user already has a
// resume on file it is pre-selected and the flow opens directly in
// StateComposingDetails; no new upload is required in that case.
func New(job models.JobListing, user models.User, clk clock.Clock, submitDelay time.Duration, logger *slog.Logger) *Flow {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = slog.Default()
	}
	f := &Flow{
		job:         job,
		user:        user,
		state:       StateAwaitingResume,
		submitDelay: submitDelay,
		clock:       clk,
		logger:      logger,
	}
	if user.Resume != nil {
		f.resume = user.Resume
		f.state = StateComposingDetails
	}
	return f
}

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Resume returns the currently attached resume, if any.
func (f *Flow) Resume() *models.Resume { return f.resume }

// AttachResume accepts a freshly uploaded resume and moves to detail
// entry. Allowed from StateAwaitingResume and, for re-uploads, from
// StateComposingDetails.
func (f *Flow) AttachResume(r *models.Resume) error {
	if r == nil {
		return fmt.Errorf("attach nil resume: %w", ErrInvalidTransition)
	}
	if f.state != StateAwaitingResume && f.state != StateComposingDetails {
		return fmt.Errorf("attach resume in %s: %w", f.state, ErrInvalidTransition)
	}
	f.resume = r
	f.state = StateComposingDetails
	return nil
}

// UseExistingResume selects the user's current resume instead of
// uploading a new one.
func (f *Flow) UseExistingResume() error {
	if f.state != StateAwaitingResume {
		return fmt.Errorf("use existing resume in %s: %w", f.state, ErrInvalidTransition)
	}
	if f.user.Resume == nil {
		return ErrNoCurrentResume
	}
	f.resume = f.user.Resume
	f.state = StateComposingDetails
	return nil
}

// ChangeResume returns to resume acquisition. Non-destructive: the
// previous selection stays attached as the default until something
// replaces it.
func (f *Flow) ChangeResume() error {
	if f.state != StateComposingDetails {
		return fmt.Errorf("change resume in %s: %w", f.state, ErrInvalidTransition)
	}
	f.state = StateAwaitingResume
	return nil
}

// Submit runs the simulated submission and produces exactly one
// Application with status "applied". Job title and company name are
// copied from the listing at this moment, so the record survives any
// later catalog change. The mock backend always succeeds; the only
// domain error is a missing resume, which leaves the flow in
// StateComposingDetails for the user to resolve.
func (f *Flow) Submit(ctx context.Context, coverLetter string) (*models.Application, error) {
	if f.state != StateComposingDetails {
		return nil, fmt.Errorf("submit in %s: %w", f.state, ErrInvalidTransition)
	}
	if f.resume == nil {
		return nil, ErrMissingResume
	}

	f.state = StateSubmitting

	select {
	case <-ctx.Done():
		f.state = StateCancelled
		return nil, ctx.Err()
	case <-f.clock.After(f.submitDelay):
	}
	if err := ctx.Err(); err != nil {
		f.state = StateCancelled
		return nil, err
	}

	app := &models.Application{
		ID:          "app_" + uuid.NewString(),
		JobID:       f.job.ID,
		UserID:      f.user.ID,
		Status:      models.StatusApplied,
		AppliedAt:   f.clock.Now(),
		JobTitle:    f.job.Title,
		CompanyName: f.job.Company,
		ResumeID:    f.resume.ID,
		CoverLetter: coverLetter,
	}
	f.state = StateSubmitted
	f.logger.Info("application submitted", "job_id", app.JobID, "user_id", app.UserID,
		"application_id", app.ID)

	return app, nil
}

// Cancel closes the flow from any non-terminal state. The working
// resume selection is discarded; a User.resume already persisted by a
// completed upload is not rolled back.
func (f *Flow) Cancel() error {
	if f.state.Terminal() {
		return fmt.Errorf("cancel in %s: %w", f.state, ErrInvalidTransition)
	}
	f.state = StateCancelled
	f.resume = nil
	return nil
}
