package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jobport/jobport/internal/apply"
	"github.com/jobport/jobport/internal/clock"
	"github.com/jobport/jobport/internal/models"
	"github.com/jobport/jobport/internal/notify"
	"github.com/jobport/jobport/pkg/repository"
)

type ApplicationsHandler struct {
	jobRepo     repository.JobRepo
	appRepo     repository.ApplicationRepo
	resumeRepo  repository.ResumeRepo
	notifier    notify.Notifier
	clock       clock.Clock
	submitDelay time.Duration
}

func NewApplicationsHandler(
	jr repository.JobRepo,
	ar repository.ApplicationRepo,
	rr repository.ResumeRepo,
	n notify.Notifier,
	clk clock.Clock,
	submitDelay time.Duration,
) *ApplicationsHandler {
	return &ApplicationsHandler{
		jobRepo:     jr,
		appRepo:     ar,
		resumeRepo:  rr,
		notifier:    n,
		clock:       clk,
		submitDelay: submitDelay,
	}
}

type applyRequest struct {
	// ResumeID selects a previously uploaded resume explicitly. When
	// empty, the user's current resume is used.
	ResumeID    string `json:"resumeId,omitempty"`
	CoverLetter string `json:"coverLetter,omitempty"`
}

// Apply runs one application flow end to end for the signed-in user.
// Exactly one Application record is created on success; every rejection
// leaves no trace.
func (h *ApplicationsHandler) Apply(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	jobID := mux.Vars(r)["id"]

	job, err := h.jobRepo.GetJob(ctx, jobID)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		h.notifier.Notify(ctx, "Job not found",
			"The job listing you're looking for doesn't exist.", notify.SeverityError)
		writeJSON(w, map[string]string{"error": "job not found"}, http.StatusNotFound)
		return
	}

	existing, err := h.appRepo.GetApplicationByUserAndJob(ctx, user.ID, jobID)
	if err != nil {
		http.Error(w, "failed to check applications", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeJSON(w, map[string]string{"error": "already applied to this job"}, http.StatusConflict)
		return
	}

	flow := apply.New(*job, *user, h.clock, h.submitDelay, logger)

	if req.ResumeID != "" {
		resume, err := h.resumeRepo.GetResume(ctx, req.ResumeID)
		if err != nil {
			http.Error(w, "failed to load resume", http.StatusInternalServerError)
			return
		}
		if resume == nil {
			writeJSON(w, map[string]string{"error": "resume not found"}, http.StatusNotFound)
			return
		}
		if err := flow.AttachResume(resume); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}

	// no resume uploaded in this request and none on file
	if flow.State() == apply.StateAwaitingResume {
		h.notifier.Notify(ctx, "Resume required",
			"Please upload a resume before applying.", notify.SeverityError)
		writeJSON(w, map[string]string{"error": apply.ErrMissingResume.Error()}, http.StatusUnprocessableEntity)
		return
	}

	app, err := flow.Submit(ctx, req.CoverLetter)
	if err != nil {
		switch {
		case errors.Is(err, apply.ErrMissingResume):
			h.notifier.Notify(ctx, "Resume required",
				"Please upload a resume before applying.", notify.SeverityError)
			writeJSON(w, map[string]string{"error": err.Error()}, http.StatusUnprocessableEntity)
		case errors.Is(err, ctx.Err()):
			// client went away mid-submission; nothing was recorded
			writeJSON(w, map[string]string{"error": "submission cancelled"}, 499)
		default:
			http.Error(w, "failed to submit application", http.StatusInternalServerError)
		}
		return
	}

	if err := h.appRepo.CreateApplication(ctx, app); err != nil {
		http.Error(w, "failed to store application", http.StatusInternalServerError)
		return
	}

	h.notifier.Notify(ctx, "Application submitted!",
		"Your application for "+job.Title+" at "+job.Company+" has been sent.",
		notify.SeveritySuccess)
	writeJSON(w, app, http.StatusCreated)
}

// ListApplications returns the signed-in user's applications, newest
// first.
func (h *ApplicationsHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	apps, err := h.appRepo.ListApplicationsByUser(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "failed to list applications", http.StatusInternalServerError)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}

	resp := map[string]any{
		"total": len(apps),
		"items": apps,
	}

	writeJSON(w, resp, http.StatusOK)
}
