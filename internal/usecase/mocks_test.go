package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/antivirus"
	"go-careers-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"
)

func newValidator() *validator.Validate {
	return validation.New(validation.DefaultEmailDomain)
}

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

// Mock Repositories
type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) DistinctLocations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockJobRepo) DistinctSectors(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Submit(ctx context.Context, jobID int64, email string, appliedAt time.Time) (*domain.Application, error) {
	args := m.Called(ctx, jobID, email, appliedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) Applied(ctx context.Context, jobID int64, email string) (bool, error) {
	args := m.Called(ctx, jobID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) ListByCandidateEmail(ctx context.Context, email string) ([]domain.CandidateApplication, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateApplication), args.Error(1)
}

func (m *MockApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.JobApplicant, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobApplicant), args.Error(1)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) ListTables(ctx context.Context) ([]domain.TableInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TableInfo), args.Error(1)
}

func (m *MockAdminRepo) BrowseTable(ctx context.Context, name string, limit int) (*domain.TableRows, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableRows), args.Error(1)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, data []byte) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockScanner struct {
	mock.Mock
}

func (m *MockScanner) Scan(ctx context.Context, filename string, data io.Reader) antivirus.ScanResult {
	return m.Called(ctx, filename, data).Get(0).(antivirus.ScanResult)
}

func (m *MockScanner) Name() string { return "mock" }

func (m *MockScanner) Available(ctx context.Context) bool { return true }

// memStore is an in-memory registry with the same observable semantics as the
// Postgres repositories: email-keyed upsert, unique (job, candidate) and an
// all-or-nothing submit.
type memStore struct {
	mu           sync.Mutex
	nextID       int64
	candidates   map[string]*memCandidate
	applications map[[2]int64]*domain.Application
	upsertErr    error
}

type memCandidate struct {
	domain.Candidate
	resume []byte
	key    string
}

func newMemStore() *memStore {
	return &memStore{
		candidates:   map[string]*memCandidate{},
		applications: map[[2]int64]*domain.Application{},
	}
}

func (s *memStore) Upsert(_ context.Context, c *domain.CandidateUpsert) (*domain.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.upsertErr != nil {
		return nil, s.upsertErr
	}

	if existing, ok := s.candidates[c.Email]; ok {
		existing.Name = c.Name
		existing.Phone = c.Phone
		res := &domain.UpsertResult{ID: existing.ID}
		if len(c.Resume) > 0 || c.ResumeKey != "" {
			if existing.key != c.ResumeKey {
				res.ReplacedResumeKey = existing.key
			}
			existing.resume, existing.key = c.Resume, c.ResumeKey
		}
		return res, nil
	}

	s.nextID++
	s.candidates[c.Email] = &memCandidate{
		Candidate: domain.Candidate{ID: s.nextID, Name: c.Name, Email: c.Email, Phone: c.Phone},
		resume:    c.Resume,
		key:       c.ResumeKey,
	}
	return &domain.UpsertResult{ID: s.nextID, Created: true}, nil
}

func (s *memStore) List(_ context.Context) ([]domain.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		cand := c.Candidate
		cand.HasResume = len(c.resume) > 0 || c.key != ""
		out = append(out, cand)
	}
	return out, nil
}

func (s *memStore) GetResume(_ context.Context, id int64) (*domain.StoredResume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.candidates {
		if c.ID == id && (len(c.resume) > 0 || c.key != "") {
			return &domain.StoredResume{Data: c.resume, Key: c.key}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) Submit(_ context.Context, jobID int64, email string, appliedAt time.Time) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[email]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	key := [2]int64{jobID, c.ID}
	if _, dup := s.applications[key]; dup {
		return nil, domain.ErrDuplicateApplication
	}

	s.nextID++
	app := &domain.Application{
		ID:              s.nextID,
		JobID:           jobID,
		CandidateID:     c.ID,
		ApplicationDate: appliedAt,
		Status:          domain.ApplicationStatusPending,
	}
	s.applications[key] = app
	c.ApplicationCount++
	return app, nil
}

func (s *memStore) Applied(_ context.Context, jobID int64, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[email]
	if !ok {
		return false, nil
	}
	_, applied := s.applications[[2]int64{jobID, c.ID}]
	return applied, nil
}

func (s *memStore) ListByCandidateEmail(_ context.Context, email string) ([]domain.CandidateApplication, error) {
	return nil, nil
}

func (s *memStore) ListByJob(_ context.Context, jobID int64) ([]domain.JobApplicant, error) {
	return nil, nil
}

func (s *memStore) candidate(email string) *memCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidates[email]
}

func (s *memStore) count() (candidates, applications int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates), len(s.applications)
}
