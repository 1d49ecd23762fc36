package api

import (
	"context"
	"encoding/json"
	"fmt"

	"jobportal-client/internal/models"
)

const surfaceApplications = "applications"

// ApplicationsService covers the /applications endpoints.
type ApplicationsService struct {
	c *Client
}

func (c *Client) Applications() *ApplicationsService {
	return &ApplicationsService{c: c}
}

// Apply submits an application for a job with a previously uploaded resume.
func (s *ApplicationsService) Apply(ctx context.Context, jobID, resumeURL string) (models.Application, error) {
	body := map[string]string{"jobId": jobID, "resumeUrl": resumeURL}

	var env envelope
	if err := s.c.post(ctx, surfaceApplications, "/applications", body, &env); err != nil {
		return models.Application{}, err
	}

	var app models.Application
	if err := json.Unmarshal(env.Data, &app); err != nil {
		return models.Application{}, fmt.Errorf("decoding application: %w", err)
	}
	return app, nil
}

// Mine lists the authenticated candidate's applications.
func (s *ApplicationsService) Mine(ctx context.Context) ([]models.Application, error) {
	return s.list(ctx, "/applications/my-applications")
}

// ForJob lists applications to one of the employer's jobs.
func (s *ApplicationsService) ForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	return s.list(ctx, "/applications/job/"+jobID)
}

// AllForEmployer lists applications across all of the employer's jobs.
func (s *ApplicationsService) AllForEmployer(ctx context.Context) ([]models.Application, error) {
	return s.list(ctx, "/applications/employer/all")
}

// SetStatus moves an application through the pipeline.
func (s *ApplicationsService) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	body := map[string]string{"status": string(status)}
	return s.c.put(ctx, surfaceApplications, "/applications/"+id+"/status", body, nil)
}

// Message sends an employer-to-candidate message tied to an application.
func (s *ApplicationsService) Message(ctx context.Context, applicationID, message string) error {
	body := map[string]string{"applicationId": applicationID, "message": message}
	return s.c.post(ctx, surfaceApplications, "/applications/message", body, nil)
}

func (s *ApplicationsService) list(ctx context.Context, path string) ([]models.Application, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceApplications, path, &env); err != nil {
		return nil, err
	}

	var apps []models.Application
	if err := json.Unmarshal(env.Data, &apps); err != nil {
		return nil, fmt.Errorf("decoding applications: %w", err)
	}
	return apps, nil
}
