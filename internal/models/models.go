package models

import "time"

// LocationType describes where the work happens.
type LocationType string

const (
	LocationRemote LocationType = "remote"
	LocationOnsite LocationType = "onsite"
	LocationHybrid LocationType = "hybrid"
)

// Valid reports whether the value is one of the known location types.
func (l LocationType) Valid() bool {
	switch l {
	case LocationRemote, LocationOnsite, LocationHybrid:
		return true
	}
	return false
}

// EmploymentType is the contractual form of a listing.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

func (e EmploymentType) Valid() bool {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// ExperienceLevel is the seniority band of a listing.
type ExperienceLevel string

const (
	ExperienceEntry        ExperienceLevel = "entry"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceSenior       ExperienceLevel = "senior"
	ExperienceExecutive    ExperienceLevel = "executive"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceEntry, ExperienceIntermediate, ExperienceSenior, ExperienceExecutive:
		return true
	}
	return false
}

// ApplicationStatus tracks an application through review. This service
// only ever creates records in StatusApplied; the later states are
// assigned by whoever reviews the application.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusUnderReview ApplicationStatus = "under-review"
	StatusInterviewed ApplicationStatus = "interviewed"
	StatusOffered     ApplicationStatus = "offered"
	StatusRejected    ApplicationStatus = "rejected"
)

// User is the signed-in job seeker. A user holds at most one current
// resume; replacing it never rewrites resumes referenced by past
// applications.
type User struct {
	ID           string  `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Email        string  `json:"email" db:"email"`
	Avatar       string  `json:"avatar,omitempty" db:"avatar"`
	Resume       *Resume `json:"resume,omitempty"`
	PasswordHash string  `json:"-" db:"password_hash"`
}

// Resume is an uploaded resume file reference.
type Resume struct {
	ID         string    `json:"id" db:"id"`
	FileName   string    `json:"fileName" db:"file_name"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}

// JobListing is an immutable catalog entry.
type JobListing struct {
	ID              string          `json:"id" db:"id"`
	Title           string          `json:"title" db:"title"`
	Company         string          `json:"company" db:"company"`
	CompanyLogo     string          `json:"companyLogo,omitempty" db:"company_logo"`
	Location        string          `json:"location" db:"location"`
	LocationType    LocationType    `json:"locationType" db:"location_type"`
	Salary          string          `json:"salary,omitempty" db:"salary"`
	PostedAt        time.Time       `json:"postedAt" db:"posted_at"`
	Description     string          `json:"description" db:"description"`
	Requirements    []string        `json:"requirements"`
	Skills          []string        `json:"skills"`
	EmploymentType  EmploymentType  `json:"employmentType" db:"employment_type"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" db:"experience_level"`
	IsFeatured      bool            `json:"isFeatured,omitempty" db:"is_featured"`
}

// Application is created exactly once per successful submission and is
// never mutated here. JobTitle and CompanyName are captured at
// submission time so history survives catalog edits, and ResumeID is a
// snapshot decoupled from later resume replacement.
type Application struct {
	ID          string            `json:"id" db:"id"`
	JobID       string            `json:"jobId" db:"job_id"`
	UserID      string            `json:"userId" db:"user_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	AppliedAt   time.Time         `json:"appliedAt" db:"applied_at"`
	JobTitle    string            `json:"jobTitle" db:"job_title"`
	CompanyName string            `json:"companyName" db:"company_name"`
	ResumeID    string            `json:"resumeId,omitempty" db:"resume_id"`
	CoverLetter string            `json:"coverLetter,omitempty" db:"cover_letter"`
}

// FilterOptions is a filter specification. Every field is optional and
// an absent or empty field places no constraint on its axis. Skills is
// conjunctive: a listing must carry every listed skill.
type FilterOptions struct {
	LocationType    []LocationType    `json:"locationType,omitempty"`
	EmploymentType  []EmploymentType  `json:"employmentType,omitempty"`
	ExperienceLevel []ExperienceLevel `json:"experienceLevel,omitempty"`
	Skills          []string          `json:"skills,omitempty"`
	Location        string            `json:"location,omitempty"`
}
