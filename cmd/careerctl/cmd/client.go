package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-careers-backend/internal/domain"
)

// CareersClient calls the careers API.
type CareersClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewCareersClient creates a new client with the given base URL.
func NewCareersClient(baseURL string) *CareersClient {
	return &CareersClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Kind string `json:"kind"`
	} `json:"error"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

// ListJobs sends GET /jobs with optional exact filters.
func (c *CareersClient) ListJobs(location, sector string) ([]domain.Job, error) {
	q := url.Values{}
	if location != "" {
		q.Set("location", location)
	}
	if sector != "" {
		q.Set("sector", sector)
	}
	path := "/jobs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var jobs []domain.Job
	if err := c.do(http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJob sends POST /jobs and returns the new job id.
func (c *CareersClient) CreateJob(in domain.JobInput) (int64, error) {
	var out idResponse
	if err := c.do(http.MethodPost, "/jobs", in, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// Apply sends POST /apply and returns the application id.
func (c *CareersClient) Apply(jobID int64, email string) (int64, error) {
	var out idResponse
	if err := c.do(http.MethodPost, "/apply", domain.ApplyInput{JobID: jobID, Email: email}, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// ListApplications sends GET /candidates/{email}/applications.
func (c *CareersClient) ListApplications(email string) ([]domain.CandidateApplication, error) {
	var apps []domain.CandidateApplication
	path := "/candidates/" + url.PathEscape(email) + "/applications"
	if err := c.do(http.MethodGet, path, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *CareersClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Add("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Kind = env.Error.Kind
		}
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}
