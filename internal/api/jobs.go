package api

import (
	"context"
	"encoding/json"
	"fmt"

	"jobportal-client/internal/models"
)

const surfaceJobs = "jobs"

// JobsService covers the /jobs endpoints.
type JobsService struct {
	c *Client
}

func (c *Client) Jobs() *JobsService {
	return &JobsService{c: c}
}

// JobPage is one page of filtered job results.
type JobPage struct {
	Jobs  []models.Job
	Total int
	Page  int
	Pages int
}

// List fetches jobs matching the filter.
func (s *JobsService) List(ctx context.Context, filter models.JobFilter) (JobPage, error) {
	path := "/jobs"
	if q := filter.Query(); q != "" {
		path += "?" + q
	}

	var env envelope
	if err := s.c.get(ctx, surfaceJobs, path, &env); err != nil {
		return JobPage{}, err
	}

	var jobs []models.Job
	if err := json.Unmarshal(env.Data, &jobs); err != nil {
		return JobPage{}, fmt.Errorf("decoding jobs: %w", err)
	}
	return JobPage{Jobs: jobs, Total: env.Total, Page: env.Page, Pages: env.Pages}, nil
}

// Get fetches a single job by id.
func (s *JobsService) Get(ctx context.Context, id string) (models.Job, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceJobs, "/jobs/"+id, &env); err != nil {
		return models.Job{}, err
	}

	var job models.Job
	if err := json.Unmarshal(env.Data, &job); err != nil {
		return models.Job{}, fmt.Errorf("decoding job: %w", err)
	}
	return job, nil
}

// Create posts a new job.
func (s *JobsService) Create(ctx context.Context, job models.Job) (models.Job, error) {
	var env envelope
	if err := s.c.post(ctx, surfaceJobs, "/jobs", job, &env); err != nil {
		return models.Job{}, err
	}

	var created models.Job
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return models.Job{}, fmt.Errorf("decoding job: %w", err)
	}
	return created, nil
}

// Update replaces a job's mutable fields.
func (s *JobsService) Update(ctx context.Context, id string, job models.Job) error {
	return s.c.put(ctx, surfaceJobs, "/jobs/"+id, job, nil)
}

// SetStatus toggles a posting between Open and Closed.
func (s *JobsService) SetStatus(ctx context.Context, id string, status models.JobStatus) error {
	body := map[string]string{"status": string(status)}
	return s.c.put(ctx, surfaceJobs, "/jobs/"+id, body, nil)
}

// Delete removes a job.
func (s *JobsService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, surfaceJobs, "/jobs/"+id, nil)
}

// MyJobs lists the authenticated employer's own postings.
func (s *JobsService) MyJobs(ctx context.Context) ([]models.Job, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceJobs, "/jobs/my-jobs", &env); err != nil {
		return nil, err
	}

	var jobs []models.Job
	if err := json.Unmarshal(env.Data, &jobs); err != nil {
		return nil, fmt.Errorf("decoding jobs: %w", err)
	}
	return jobs, nil
}
