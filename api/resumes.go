package api

import (
	"errors"
	"io"
	"net/http"

	"log/slog"

	"github.com/jobport/jobport/internal/notify"
	"github.com/jobport/jobport/internal/upload"
	"github.com/jobport/jobport/pkg/repository"
)

type ResumesHandler struct {
	sim        *upload.Simulator
	resumeRepo repository.ResumeRepo
	userRepo   repository.UserRepo
	notifier   notify.Notifier
}

func NewResumesHandler(sim *upload.Simulator, rr repository.ResumeRepo, ur repository.UserRepo, n notify.Notifier) *ResumesHandler {
	return &ResumesHandler{sim: sim, resumeRepo: rr, userRepo: ur, notifier: n}
}

// Upload accepts a multipart resume under the "resume" field, runs it
// through the simulated transfer, and on success records the resume as
// the signed-in user's current one. A rejected or cancelled upload
// changes nothing.
func (h *ResumesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	// one file plus form overhead
	if err := r.ParseMultipartForm(upload.MaxFileSize + 1<<20); err != nil {
		http.Error(w, "Invalid multipart request", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		http.Error(w, "Missing resume file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	// read one byte past the cap so oversize files are detected without
	// buffering arbitrarily large bodies
	data, err := io.ReadAll(io.LimitReader(file, upload.MaxFileSize+1))
	if err != nil {
		http.Error(w, "Error reading file", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	f := upload.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	resume, err := h.sim.Upload(ctx, f, func(pct int) {
		logger.Debug("upload progress", slog.String("file", f.Name), slog.Int("pct", pct))
	})
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrInvalidFileType):
			h.notifier.Notify(ctx, "Invalid file type",
				"Please upload a PDF or Word document (.pdf, .doc, .docx).", notify.SeverityError)
			writeJSON(w, map[string]string{"error": err.Error()}, http.StatusBadRequest)
		case errors.Is(err, upload.ErrFileTooLarge):
			h.notifier.Notify(ctx, "File too large",
				"Please upload a file smaller than 5MB.", notify.SeverityError)
			writeJSON(w, map[string]string{"error": err.Error()}, http.StatusRequestEntityTooLarge)
		default:
			http.Error(w, "Upload failed", http.StatusInternalServerError)
		}
		return
	}

	if err := h.resumeRepo.CreateResume(ctx, user.ID, resume); err != nil {
		http.Error(w, "Error storing resume", http.StatusInternalServerError)
		return
	}
	if err := h.userRepo.SetUserResume(ctx, user.ID, resume.ID); err != nil {
		http.Error(w, "Error attaching resume", http.StatusInternalServerError)
		return
	}

	// side effect of a completed upload: the session's user now carries
	// the new resume as the current one
	if cell, ok := sessionFromContext(ctx); ok {
		updated := *user
		updated.Resume = resume
		if err := cell.Set(ctx, &updated); err != nil {
			logger.Error("update session user", slog.Any("err", err))
		}
	}

	writeJSON(w, resume, http.StatusCreated)
}
