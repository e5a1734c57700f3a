package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"go-careers-backend/config"
	v1 "go-careers-backend/internal/delivery/http/v1"
	"go-careers-backend/internal/domain"
	"go-careers-backend/pkg/audit"
	"go-careers-backend/pkg/upload"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockJobUC struct{ mock.Mock }

func (m *MockJobUC) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, in)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobUC) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobUC) UpdateJob(ctx context.Context, id int64, in domain.JobInput) (*domain.Job, error) {
	args := m.Called(ctx, id, in)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobUC) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockJobUC) ListLocations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}

func (m *MockJobUC) ListSectors(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}

func (m *MockJobUC) ListFilters(ctx context.Context) (*domain.JobFilters, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).(*domain.JobFilters)
	return out, args.Error(1)
}

type MockCandidateUC struct{ mock.Mock }

func (m *MockCandidateUC) UpsertCandidate(ctx context.Context, in domain.CandidateInput, resume *upload.Resume) (*domain.UpsertResult, error) {
	args := m.Called(ctx, in, resume)
	out, _ := args.Get(0).(*domain.UpsertResult)
	return out, args.Error(1)
}

func (m *MockCandidateUC) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.Candidate)
	return out, args.Error(1)
}

func (m *MockCandidateUC) GetResume(ctx context.Context, candidateID int64) ([]byte, error) {
	args := m.Called(ctx, candidateID)
	out, _ := args.Get(0).([]byte)
	return out, args.Error(1)
}

type MockApplicationUC struct{ mock.Mock }

func (m *MockApplicationUC) SubmitApplication(ctx context.Context, in domain.ApplyInput) (*domain.Application, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*domain.Application)
	return out, args.Error(1)
}

func (m *MockApplicationUC) ListByCandidateEmail(ctx context.Context, email string) ([]domain.CandidateApplication, error) {
	args := m.Called(ctx, email)
	out, _ := args.Get(0).([]domain.CandidateApplication)
	return out, args.Error(1)
}

func (m *MockApplicationUC) ListApplicantsByJob(ctx context.Context, jobID int64) ([]domain.JobApplicant, error) {
	args := m.Called(ctx, jobID)
	out, _ := args.Get(0).([]domain.JobApplicant)
	return out, args.Error(1)
}

type MockAdminUC struct{ mock.Mock }

func (m *MockAdminUC) ListTables(ctx context.Context) ([]domain.TableInfo, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.TableInfo)
	return out, args.Error(1)
}

func (m *MockAdminUC) BrowseTable(ctx context.Context, name string) (*domain.TableRows, error) {
	args := m.Called(ctx, name)
	out, _ := args.Get(0).(*domain.TableRows)
	return out, args.Error(1)
}

func (m *MockAdminUC) ExportApplicantsByJob(ctx context.Context, jobID int64) (*domain.Export, error) {
	args := m.Called(ctx, jobID)
	out, _ := args.Get(0).(*domain.Export)
	return out, args.Error(1)
}

type stubHealth struct {
	status  map[string]string
	healthy bool
}

func (s stubHealth) Check(ctx context.Context) (map[string]string, bool) {
	return s.status, s.healthy
}

type fixture struct {
	jobs         *MockJobUC
	candidates   *MockCandidateUC
	applications *MockApplicationUC
	admin        *MockAdminUC
	router       *gin.Engine
}

func newFixture(t *testing.T, mutate ...func(*v1.RouterDeps)) *fixture {
	t.Helper()
	f := &fixture{
		jobs:         new(MockJobUC),
		candidates:   new(MockCandidateUC),
		applications: new(MockApplicationUC),
		admin:        new(MockAdminUC),
	}
	deps := v1.RouterDeps{
		JobUC:         f.jobs,
		CandidateUC:   f.candidates,
		ApplicationUC: f.applications,
		AdminUC:       f.admin,
		HealthUC:      stubHealth{status: map[string]string{"status": "ok", "database": "ok"}, healthy: true},
		Config: &config.Config{
			Environment:            "test",
			RequestTimeoutSeconds:  5,
			ResumeMaxBytes:         upload.DefaultMaxResumeBytes,
			RateLimitWindowSeconds: 60,
			RateLimitThreshold:     1000,
		},
		Audit: audit.NewNop(),
	}
	for _, fn := range mutate {
		fn(&deps)
	}
	f.router = v1.NewRouter(deps)
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
	Error     *struct {
		Kind string `json:"kind"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a POST /candidates form. A nil file omits the resume part.
func multipartRequest(t *testing.T, fields map[string]string, file []byte, contentType string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="resume"; filename="cv.pdf"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/candidates", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
