package api

import (
	"context"
	"encoding/json"
	"fmt"

	"jobportal-client/internal/models"
)

const surfaceAdmin = "admin"

// AdminService covers the moderation and reporting endpoints.
type AdminService struct {
	c *Client
}

func (c *Client) Admin() *AdminService {
	return &AdminService{c: c}
}

// Users lists all registered users.
func (s *AdminService) Users(ctx context.Context) ([]models.User, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceAdmin, "/users", &env); err != nil {
		return nil, err
	}

	var users []models.User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

// UpdateUser changes a user's moderation fields (role, active flag).
func (s *AdminService) UpdateUser(ctx context.Context, id string, user models.User) error {
	return s.c.put(ctx, surfaceAdmin, "/users/"+id, user, nil)
}

// DeleteUser removes a user account.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	return s.c.delete(ctx, surfaceAdmin, "/users/"+id, nil)
}

// Jobs lists all postings in the moderation view.
func (s *AdminService) Jobs(ctx context.Context) ([]models.Job, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceAdmin, "/jobs", &env); err != nil {
		return nil, err
	}

	var jobs []models.Job
	if err := json.Unmarshal(env.Data, &jobs); err != nil {
		return nil, fmt.Errorf("decoding jobs: %w", err)
	}
	return jobs, nil
}

// UpdateJob applies a moderation edit to a posting.
func (s *AdminService) UpdateJob(ctx context.Context, id string, job models.Job) error {
	return s.c.put(ctx, surfaceAdmin, "/jobs/"+id, job, nil)
}

// DeleteJob removes a posting.
func (s *AdminService) DeleteJob(ctx context.Context, id string) error {
	return s.c.delete(ctx, surfaceAdmin, "/jobs/"+id, nil)
}

// Content fetches the admin-editable site content.
func (s *AdminService) Content(ctx context.Context) (models.SiteContent, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceAdmin, "/content", &env); err != nil {
		return models.SiteContent{}, err
	}

	var content models.SiteContent
	if err := json.Unmarshal(env.Data, &content); err != nil {
		return models.SiteContent{}, fmt.Errorf("decoding content: %w", err)
	}
	return content, nil
}

// UpdateContent replaces the site content document.
func (s *AdminService) UpdateContent(ctx context.Context, content models.SiteContent) error {
	return s.c.put(ctx, surfaceAdmin, "/content", content, nil)
}

// Stats fetches the platform headline counters.
func (s *AdminService) Stats(ctx context.Context) (models.PlatformStats, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceAdmin, "/reports/stats", &env); err != nil {
		return models.PlatformStats{}, err
	}

	var stats models.PlatformStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		return models.PlatformStats{}, fmt.Errorf("decoding stats: %w", err)
	}
	return stats, nil
}

// Activity fetches the recent-activity report.
func (s *AdminService) Activity(ctx context.Context) ([]models.ActivityEntry, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceAdmin, "/reports/activity", &env); err != nil {
		return nil, err
	}

	var entries []models.ActivityEntry
	if err := json.Unmarshal(env.Data, &entries); err != nil {
		return nil, fmt.Errorf("decoding activity: %w", err)
	}
	return entries, nil
}

// Growth fetches the growth-over-time report.
func (s *AdminService) Growth(ctx context.Context) ([]models.GrowthPoint, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceAdmin, "/reports/growth", &env); err != nil {
		return nil, err
	}

	var points []models.GrowthPoint
	if err := json.Unmarshal(env.Data, &points); err != nil {
		return nil, fmt.Errorf("decoding growth: %w", err)
	}
	return points, nil
}
