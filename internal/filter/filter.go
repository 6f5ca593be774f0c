// Package filter implements the listing filter predicate: a pure,
// deterministic function from (listings, search query, options) to the
// matching listings in their original order. Matching is conjunctive;
// a listing must pass every active clause.
package filter

import (
	"strings"

	"github.com/jobport/jobport/internal/models"
)

// Filter returns the listings matching query and opts, preserving the
// input order. It never mutates its inputs. An empty query and empty
// options return every listing.
func Filter(listings []models.JobListing, query string, opts models.FilterOptions) []models.JobListing {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.JobListing, 0, len(listings))
	for _, job := range listings {
		if Matches(job, query, opts) {
			out = append(out, job)
		}
	}
	return out
}

// Matches reports whether a single listing passes every active clause.
// The query must already be lower-cased and trimmed.
func Matches(job models.JobListing, query string, opts models.FilterOptions) bool {
	if !matchesQuery(job, query) {
		return false
	}
	if opts.Location != "" && !containsFold(job.Location, opts.Location) {
		return false
	}
	if len(opts.LocationType) > 0 && !contains(opts.LocationType, job.LocationType) {
		return false
	}
	if len(opts.EmploymentType) > 0 && !contains(opts.EmploymentType, job.EmploymentType) {
		return false
	}
	if len(opts.ExperienceLevel) > 0 && !contains(opts.ExperienceLevel, job.ExperienceLevel) {
		return false
	}
	if len(opts.Skills) > 0 && !hasAllSkills(job, opts.Skills) {
		return false
	}
	return true
}

// matchesQuery passes when the query is empty or is a substring of the
// title, the company, or any skill. Substring only; no tokenizing, no
// ranking.
func matchesQuery(job models.JobListing, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(job.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(job.Company), query) {
		return true
	}
	for _, skill := range job.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}

// hasAllSkills requires every wanted skill to match some listing skill
// exactly, ignoring case. Conjunction, not any-of.
func hasAllSkills(job models.JobListing, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, s := range job.Skills {
			if strings.EqualFold(s, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
