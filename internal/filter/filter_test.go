package filter_test

import (
	"reflect"
	"testing"

	"github.com/jobport/jobport/internal/filter"
	"github.com/jobport/jobport/internal/models"
)

func fixtures() []models.JobListing {
	return []models.JobListing{
		{
			ID:              "1",
			Title:           "Senior Frontend Developer",
			Company:         "TechCorp",
			Location:        "San Francisco, CA",
			LocationType:    models.LocationRemote,
			Skills:          []string{"React", "TypeScript", "CSS", "HTML", "JavaScript"},
			EmploymentType:  models.EmploymentFullTime,
			ExperienceLevel: models.ExperienceSenior,
		},
		{
			ID:              "2",
			Title:           "UX/UI Designer",
			Company:         "DesignStudio",
			Location:        "New York, NY",
			LocationType:    models.LocationHybrid,
			Skills:          []string{"UI Design", "UX Research", "Figma"},
			EmploymentType:  models.EmploymentFullTime,
			ExperienceLevel: models.ExperienceIntermediate,
		},
		{
			ID:              "3",
			Title:           "Backend Developer",
			Company:         "ServerTech",
			Location:        "Austin, TX",
			LocationType:    models.LocationOnsite,
			Skills:          []string{"Node.js", "Express", "MongoDB", "SQL", "AWS"},
			EmploymentType:  models.EmploymentContract,
			ExperienceLevel: models.ExperienceSenior,
		},
		{
			ID:              "4",
			Title:           "Data Science Intern",
			Company:         "DataCorp",
			Location:        "Remote",
			LocationType:    models.LocationRemote,
			Skills:          []string{"Python", "SQL", "Statistics"},
			EmploymentType:  models.EmploymentInternship,
			ExperienceLevel: models.ExperienceEntry,
		},
	}
}

func ids(jobs []models.JobListing) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		opts  models.FilterOptions
		want  []string
	}{
		{
			name: "EmptyFilterReturnsAllInOrder",
			want: []string{"1", "2", "3", "4"},
		},
		{
			name:  "QueryMatchesTitle",
			query: "designer",
			want:  []string{"2"},
		},
		{
			name:  "QueryMatchesCompany",
			query: "techcorp",
			want:  []string{"1"},
		},
		{
			name:  "QueryMatchesSkillSubstring",
			query: "script",
			want:  []string{"1"},
		},
		{
			name:  "QueryIsTrimmed",
			query: "  backend  ",
			want:  []string{"3"},
		},
		{
			name:  "QueryNoMatch",
			query: "blockchain",
			want:  []string{},
		},
		{
			name: "LocationSubstring",
			opts: models.FilterOptions{Location: "new york"},
			want: []string{"2"},
		},
		{
			name: "LocationTypeMembership",
			opts: models.FilterOptions{LocationType: []models.LocationType{models.LocationRemote}},
			want: []string{"1", "4"},
		},
		{
			name: "EmploymentTypeMembership",
			opts: models.FilterOptions{EmploymentType: []models.EmploymentType{models.EmploymentContract, models.EmploymentInternship}},
			want: []string{"3", "4"},
		},
		{
			name: "ExperienceLevelMembership",
			opts: models.FilterOptions{ExperienceLevel: []models.ExperienceLevel{models.ExperienceSenior}},
			want: []string{"1", "3"},
		},
		{
			name: "SkillsConjunctionAllPresent",
			opts: models.FilterOptions{Skills: []string{"react", "TYPESCRIPT"}},
			want: []string{"1"},
		},
		{
			name: "SkillsConjunctionOneMissingExcludes",
			opts: models.FilterOptions{Skills: []string{"React", "Node.js"}},
			want: []string{},
		},
		{
			name: "SkillsExactMatchNotSubstring",
			opts: models.FilterOptions{Skills: []string{"Java"}},
			want: []string{},
		},
		{
			name:  "ClausesAreConjunctive",
			query: "developer",
			opts: models.FilterOptions{
				LocationType:    []models.LocationType{models.LocationRemote},
				ExperienceLevel: []models.ExperienceLevel{models.ExperienceSenior},
			},
			want: []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Filter(fixtures(), tt.query, tt.opts)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Fatalf("got %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestFilterEmptyInput(t *testing.T) {
	got := filter.Filter(nil, "anything", models.FilterOptions{})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestFilterCaseInsensitiveQuery(t *testing.T) {
	upper := filter.Filter(fixtures(), "REACT", models.FilterOptions{})
	lower := filter.Filter(fixtures(), "react", models.FilterOptions{})
	if !reflect.DeepEqual(ids(upper), ids(lower)) {
		t.Fatalf("case changed result: %v vs %v", ids(upper), ids(lower))
	}
}

func TestFilterIdempotent(t *testing.T) {
	opts := models.FilterOptions{
		LocationType: []models.LocationType{models.LocationRemote, models.LocationHybrid},
		Skills:       []string{"SQL"},
	}
	once := filter.Filter(fixtures(), "data", opts)
	twice := filter.Filter(once, "data", opts)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	in := fixtures()
	before := ids(in)
	_ = filter.Filter(in, "developer", models.FilterOptions{Location: "austin"})
	if !reflect.DeepEqual(ids(in), before) {
		t.Fatalf("input mutated: %v", ids(in))
	}
}

// Every returned listing must independently satisfy every active
// clause; nothing outside the result may satisfy them all.
func TestFilterResultIsExactMatchSet(t *testing.T) {
	opts := models.FilterOptions{
		EmploymentType: []models.EmploymentType{models.EmploymentFullTime},
		Skills:         []string{"SQL"},
	}
	in := fixtures()
	got := filter.Filter(in, "", opts)

	matched := map[string]bool{}
	for _, j := range got {
		if !filter.Matches(j, "", opts) {
			t.Fatalf("returned listing %s fails a clause", j.ID)
		}
		matched[j.ID] = true
	}
	for _, j := range in {
		if filter.Matches(j, "", opts) && !matched[j.ID] {
			t.Fatalf("listing %s satisfies all clauses but was excluded", j.ID)
		}
	}
}
