package api

import (
	"context"
	"encoding/json"
	"fmt"

	"jobportal-client/internal/models"
)

const (
	surfaceCompany  = "company"
	surfaceEmployer = "employer"
)

// CompanyService covers the /company endpoints.
type CompanyService struct {
	c *Client
}

func (c *Client) Companies() *CompanyService {
	return &CompanyService{c: c}
}

// List fetches all public company profiles.
func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceCompany, "/company", &env); err != nil {
		return nil, err
	}

	var companies []models.Company
	if err := json.Unmarshal(env.Data, &companies); err != nil {
		return nil, fmt.Errorf("decoding companies: %w", err)
	}
	return companies, nil
}

// Mine fetches the authenticated employer's own company.
func (s *CompanyService) Mine(ctx context.Context) (models.Company, error) {
	return s.getOne(ctx, "/company/me")
}

// Get fetches a company profile by id.
func (s *CompanyService) Get(ctx context.Context, id string) (models.Company, error) {
	return s.getOne(ctx, "/company/"+id)
}

// Create registers the employer's company profile.
func (s *CompanyService) Create(ctx context.Context, company models.Company) (models.Company, error) {
	var env envelope
	if err := s.c.post(ctx, surfaceCompany, "/company", company, &env); err != nil {
		return models.Company{}, err
	}

	var created models.Company
	if err := json.Unmarshal(env.Data, &created); err != nil {
		return models.Company{}, fmt.Errorf("decoding company: %w", err)
	}
	return created, nil
}

// Update replaces the company profile's editable fields.
func (s *CompanyService) Update(ctx context.Context, id string, company models.Company) error {
	return s.c.put(ctx, surfaceCompany, "/company/"+id, company, nil)
}

func (s *CompanyService) getOne(ctx context.Context, path string) (models.Company, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceCompany, path, &env); err != nil {
		return models.Company{}, err
	}

	var company models.Company
	if err := json.Unmarshal(env.Data, &company); err != nil {
		return models.Company{}, fmt.Errorf("decoding company: %w", err)
	}
	return company, nil
}

// EmployerService covers the /employer candidate-search endpoints.
type EmployerService struct {
	c *Client
}

func (c *Client) Employer() *EmployerService {
	return &EmployerService{c: c}
}

// Candidates lists candidate profiles visible to the employer.
func (s *EmployerService) Candidates(ctx context.Context) ([]models.CandidateProfile, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceEmployer, "/employer/candidates", &env); err != nil {
		return nil, err
	}

	var candidates []models.CandidateProfile
	if err := json.Unmarshal(env.Data, &candidates); err != nil {
		return nil, fmt.Errorf("decoding candidates: %w", err)
	}
	return candidates, nil
}

// Candidate fetches one candidate profile by id.
func (s *EmployerService) Candidate(ctx context.Context, id string) (models.CandidateProfile, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceEmployer, "/employer/candidates/"+id, &env); err != nil {
		return models.CandidateProfile{}, err
	}

	var candidate models.CandidateProfile
	if err := json.Unmarshal(env.Data, &candidate); err != nil {
		return models.CandidateProfile{}, fmt.Errorf("decoding candidate: %w", err)
	}
	return candidate, nil
}
