package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jobport/jobport/internal/filter"
	"github.com/jobport/jobport/internal/models"
	"github.com/jobport/jobport/internal/notify"
	"github.com/jobport/jobport/pkg/repository"
)

type JobsHandler struct {
	jobRepo  repository.JobRepo
	notifier notify.Notifier
}

func NewJobsHandler(jr repository.JobRepo, n notify.Notifier) *JobsHandler {
	return &JobsHandler{jobRepo: jr, notifier: n}
}

// ListJobs returns the catalog narrowed by the query parameters. The
// catalog is small and fully in memory, so filtering happens after the
// load rather than in SQL.
//
//	q                  free-text match on title, company and skills
//	location           substring match on the location field
//	location_type      repeatable, one of remote/onsite/hybrid
//	employment_type    repeatable
//	experience_level   repeatable
//	skill              repeatable, conjunctive
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	query, opts, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	jobs, err := h.jobRepo.ListJobs(r.Context())
	if err != nil {
		http.Error(w, "failed to list jobs", http.StatusInternalServerError)
		return
	}

	items := filter.Filter(jobs, query, opts)
	if items == nil {
		items = []models.JobListing{}
	}

	resp := map[string]any{
		"total": len(items),
		"items": items,
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := h.jobRepo.GetJob(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		h.notifier.Notify(r.Context(), "Job not found",
			"The job listing you're looking for doesn't exist.", notify.SeverityError)
		writeJSON(w, map[string]string{"error": "job not found"}, http.StatusNotFound)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func parseFilter(r *http.Request) (string, models.FilterOptions, error) {
	q := r.URL.Query()
	var opts models.FilterOptions

	opts.Location = strings.TrimSpace(q.Get("location"))

	for _, v := range q["location_type"] {
		lt := models.LocationType(v)
		if !lt.Valid() {
			return "", opts, fmt.Errorf("invalid location_type %q", v)
		}
		opts.LocationType = append(opts.LocationType, lt)
	}
	for _, v := range q["employment_type"] {
		et := models.EmploymentType(v)
		if !et.Valid() {
			return "", opts, fmt.Errorf("invalid employment_type %q", v)
		}
		opts.EmploymentType = append(opts.EmploymentType, et)
	}
	for _, v := range q["experience_level"] {
		el := models.ExperienceLevel(v)
		if !el.Valid() {
			return "", opts, fmt.Errorf("invalid experience_level %q", v)
		}
		opts.ExperienceLevel = append(opts.ExperienceLevel, el)
	}
	for _, v := range q["skill"] {
		if s := strings.TrimSpace(v); s != "" {
			opts.Skills = append(opts.Skills, s)
		}
	}

	return q.Get("q"), opts, nil
}
