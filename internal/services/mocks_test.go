package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"jobhive_backend/internal/models"
	"jobhive_backend/internal/repositories"
)

// Ручные моки репозиториев поверх map - без базы данных.

type mockUserRepo struct {
	mu          sync.Mutex
	users       map[string]*models.User
	byEmail     map[string]*models.User
	appliedJobs map[string][]string
	savedJobs   map[string][]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:       map[string]*models.User{},
		byEmail:     map[string]*models.User{},
		appliedJobs: map[string][]string{},
		savedJobs:   map[string][]string{},
	}
}

func (r *mockUserRepo) put(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	r.byEmail[user.Email] = user
}

func (r *mockUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *mockUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *mockUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return repositories.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	r.users[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *mockUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *mockUserRepo) UpdateProfile(userID string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	if v, ok := fields["name"].(string); ok {
		user.Name = v
	}
	if v, ok := fields["location"].(string); ok {
		user.Location = v
	}
	if v, ok := fields["bio"].(string); ok {
		user.Bio = v
	}
	if v, ok := fields["company"].(string); ok {
		user.Company = v
	}
	if v, ok := fields["position"].(string); ok {
		user.Position = v
	}
	return nil
}

func (r *mockUserRepo) AddAppliedJob(userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appliedJobs[userID] = append(r.appliedJobs[userID], jobID)
	return nil
}

func (r *mockUserRepo) AddSavedJob(userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.savedJobs[userID] = append(r.savedJobs[userID], jobID)
	return nil
}

func (r *mockUserRepo) RemoveSavedJob(userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := []string{}
	for _, id := range r.savedJobs[userID] {
		if id != jobID {
			kept = append(kept, id)
		}
	}
	r.savedJobs[userID] = kept
	return nil
}

type mockRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newMockRefreshTokenRepo() *mockRefreshTokenRepo {
	return &mockRefreshTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *mockRefreshTokenRepo) Create(token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *mockRefreshTokenRepo) FindByToken(token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return t, nil
}

func (r *mockRefreshTokenRepo) DeleteByToken(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *mockRefreshTokenRepo) DeleteByUserID(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

func (r *mockRefreshTokenRepo) DeleteExpired() (int64, error) {
	return 0, nil
}

type mockJobRepo struct {
	mu           sync.Mutex
	jobs         map[string]*models.Job
	applications map[string]*models.Application
	likes        map[string]map[string]bool // jobID -> userID set
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{
		jobs:         map[string]*models.Job{},
		applications: map[string]*models.Application{},
		likes:        map[string]map[string]bool{},
	}
}

func (r *mockJobRepo) put(job *models.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job
}

func (r *mockJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		job.ID = "job-" + job.Title
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *mockJobRepo) FindByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	r.attachRelations(job)
	return job, nil
}

func (r *mockJobRepo) FindByIDWithApplicants(id string) (*models.Job, error) {
	return r.FindByID(id)
}

func (r *mockJobRepo) attachRelations(job *models.Job) {
	job.Applications = nil
	for _, app := range r.applications {
		if app.JobID == job.ID {
			job.Applications = append(job.Applications, *app)
		}
	}
	job.Likes = nil
	for userID := range r.likes[job.ID] {
		job.Likes = append(job.Likes, models.JobLike{JobID: job.ID, UserID: userID})
	}
}

func (r *mockJobRepo) Update(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return repositories.ErrJobNotFound
	}
	r.jobs[job.ID] = job
	return nil
}

func (r *mockJobRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(r.jobs, id)
	for key, app := range r.applications {
		if app.JobID == id {
			delete(r.applications, key)
		}
	}
	delete(r.likes, id)
	return nil
}

func (r *mockJobRepo) FindOpen() ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []models.Job
	for _, job := range r.jobs {
		if job.Status == models.JobStatusOpen {
			r.attachRelations(job)
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *mockJobRepo) Search(criteria repositories.JobSearchCriteria) ([]models.Job, error) {
	open, err := r.FindOpen()
	if err != nil {
		return nil, err
	}

	var matched []models.Job
	for _, job := range open {
		if len(criteria.Tags) > 0 && !hasAnyTag(job.Tags, criteria.Tags) {
			continue
		}
		matched = append(matched, job)
	}
	return matched, nil
}

func hasAnyTag(raw []byte, wanted []string) bool {
	var tags []string
	_ = json.Unmarshal(raw, &tags)
	for _, tag := range tags {
		for _, w := range wanted {
			if tag == w {
				return true
			}
		}
	}
	return false
}

func (r *mockJobRepo) FindByOwner(ownerID string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var jobs []models.Job
	for _, job := range r.jobs {
		if job.PostedByID == ownerID {
			r.attachRelations(job)
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}

func (r *mockJobRepo) CreateApplication(app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return repositories.ErrApplicationExists
		}
	}
	if app.ID == "" {
		app.ID = "app-" + app.JobID + "-" + app.ApplicantID
	}
	r.applications[app.ID] = app
	return nil
}

func (r *mockJobRepo) UpdateApplicationStatus(jobID, applicationID string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.applications[applicationID]
	if !ok || app.JobID != jobID {
		return repositories.ErrApplicationNotFound
	}
	app.Status = status
	return nil
}

func (r *mockJobRepo) ToggleLike(jobID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.likes[jobID] == nil {
		r.likes[jobID] = map[string]bool{}
	}
	if r.likes[jobID][userID] {
		delete(r.likes[jobID], userID)
		return false, nil
	}
	r.likes[jobID][userID] = true
	return true, nil
}

// mockStorage пишет в память и считает операции
type mockStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	saves    int
	deletes  int
	failSave bool
}

func newMockStorage() *mockStorage {
	return &mockStorage{files: map[string][]byte{}}
}

func (s *mockStorage) Save(ctx context.Context, path string, reader io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return io.ErrUnexpectedEOF
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.files[path] = data
	s.saves++
	return nil
}

func (s *mockStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, io.ErrUnexpectedEOF
}

func (s *mockStorage) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.deletes++
	return nil
}

func (s *mockStorage) Exists(ctx context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[path]
	return ok, nil
}

func (s *mockStorage) GetURL(path string) string {
	return "/api/v1/files/" + path
}

func (s *mockStorage) GetSize(ctx context.Context, path string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[path]
	if !ok {
		return 0, io.ErrUnexpectedEOF
	}
	return int64(len(data)), nil
}
