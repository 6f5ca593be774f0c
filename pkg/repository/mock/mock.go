package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/jobport/jobport/internal/models"
)

// Test helpers and mocks
type Mocks struct {
	Users *UserRepo
	Jobs  *JobRepo
	Res   *ResumeRepo
	Apps  *ApplicationRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Users: &UserRepo{byID: map[string]*models.User{}},
		Jobs:  &JobRepo{},
		Res:   &ResumeRepo{byID: map[string]*models.Resume{}},
		Apps:  &ApplicationRepo{},
	}
}

type UserRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.User
	CreateErr error
}

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	cp := *u
	m.byID[u.ID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *UserRepo) SetUserResume(ctx context.Context, userID, resumeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[userID]; ok {
		u.Resume = &models.Resume{ID: resumeID}
	}
	return nil
}

type JobRepo struct {
	mu      sync.Mutex
	Listing []models.JobListing
	ListErr error
}

func (m *JobRepo) ListJobs(ctx context.Context) ([]models.JobListing, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.JobListing, len(m.Listing))
	copy(out, m.Listing)
	return out, nil
}

func (m *JobRepo) GetJob(ctx context.Context, id string) (*models.JobListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.Listing {
		if j.ID == id {
			cp := j
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *JobRepo) CreateJob(ctx context.Context, j *models.JobListing) error {
	m.mu.Lock()
	m.Listing = append(m.Listing, *j)
	m.mu.Unlock()
	return nil
}

type ResumeRepo struct {
	mu        sync.Mutex
	byID      map[string]*models.Resume
	CreateErr error
}

func (m *ResumeRepo) CreateResume(ctx context.Context, userID string, r *models.Resume) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	cp := *r
	m.byID[r.ID] = &cp
	m.mu.Unlock()
	return nil
}

func (m *ResumeRepo) GetResume(ctx context.Context, id string) (*models.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

type ApplicationRepo struct {
	mu        sync.Mutex
	Created   []models.Application
	CreateErr error
}

func (m *ApplicationRepo) CreateApplication(ctx context.Context, a *models.Application) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	m.Created = append(m.Created, *a)
	m.mu.Unlock()
	return nil
}

func (m *ApplicationRepo) ListApplicationsByUser(ctx context.Context, userID string) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Application
	for _, a := range m.Created {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (m *ApplicationRepo) GetApplicationByUserAndJob(ctx context.Context, userID, jobID string) (*models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Created {
		if a.UserID == userID && a.JobID == jobID {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}
