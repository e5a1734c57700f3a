package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-careers-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apply", r.URL.Path)

		var in domain.ApplyInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, int64(3), in.JobID)
		assert.Equal(t, "ana@gmail.com", in.Email)

		writeEnvelope(w, http.StatusCreated, "Application submitted successfully", map[string]int64{"id": 41}, "")
	}))
	defer server.Close()

	out := run(t, server, "apply", "--job", "3", "--email", "ana@gmail.com")

	assert.Contains(t, out, "Application submitted")
	assert.Contains(t, out, "ID: 41")
}

func TestApply_Duplicate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, "You have already applied for this job.", nil, "duplicate_application")
	}))
	defer server.Close()

	out := run(t, server, "apply", "--job", "3", "--email", "ana@gmail.com")

	assert.Contains(t, out, "Application failed (400): You have already applied for this job.")
}

func TestApply_Kind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, "Candidate does not exist. Please create a candidate profile first.", nil, "candidate_not_found")
	}))
	defer server.Close()

	_, err := NewCareersClient(server.URL).Apply(3, "nobody@gmail.com")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "candidate_not_found", apiErr.Kind)
}

func TestApply_RequiresFlags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called")
	}))
	defer server.Close()

	assert.Contains(t, run(t, server, "apply", "--email", "ana@gmail.com"), "--job is required")
	assert.Contains(t, run(t, server, "apply", "--job", "3"), "--email is required")
}

func TestApplications(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/candidates/ana@gmail.com/applications", r.URL.Path)
		writeEnvelope(w, http.StatusOK, "Applications retrieved", []domain.CandidateApplication{{
			ApplicationID:   41,
			JobID:           3,
			Title:           "Backend Engineer",
			ApplicationDate: time.Date(2024, 5, 2, 8, 15, 0, 0, time.UTC),
			Status:          domain.ApplicationStatusPending,
		}}, "")
	}))
	defer server.Close()

	out := run(t, server, "applications", "ana@gmail.com")

	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "2024-05-02 08:15")
	assert.Contains(t, out, "pending")
}
