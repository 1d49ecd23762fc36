package api

import (
	"context"
	"encoding/json"
	"fmt"

	"jobportal-client/internal/models"
)

const surfaceCandidate = "candidate"

// CandidateService covers the /candidate endpoints.
type CandidateService struct {
	c *Client
}

func (c *Client) Candidate() *CandidateService {
	return &CandidateService{c: c}
}

// Profile fetches the candidate's own profile.
func (s *CandidateService) Profile(ctx context.Context) (models.CandidateProfile, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceCandidate, "/candidate/profile", &env); err != nil {
		return models.CandidateProfile{}, err
	}

	var profile models.CandidateProfile
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		return models.CandidateProfile{}, fmt.Errorf("decoding profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile replaces the profile's editable fields.
func (s *CandidateService) UpdateProfile(ctx context.Context, profile models.CandidateProfile) error {
	return s.c.put(ctx, surfaceCandidate, "/candidate/profile", profile, nil)
}

// UploadAvatar uploads a new avatar image and returns its URL.
func (s *CandidateService) UploadAvatar(ctx context.Context, fileName string, content []byte) (string, error) {
	var env envelope
	if err := s.c.upload(ctx, surfaceCandidate, "/candidate/avatar", "avatar", fileName, content, nil, &env); err != nil {
		return "", err
	}

	var payload struct {
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return "", fmt.Errorf("decoding avatar response: %w", err)
	}
	return payload.AvatarURL, nil
}

// UploadResume uploads a resume file and returns the stored entry.
func (s *CandidateService) UploadResume(ctx context.Context, fileName string, content []byte) (models.Resume, error) {
	var env envelope
	if err := s.c.upload(ctx, surfaceCandidate, "/candidate/resume", "resume", fileName, content, nil, &env); err != nil {
		return models.Resume{}, err
	}

	var resume models.Resume
	if err := json.Unmarshal(env.Data, &resume); err != nil {
		return models.Resume{}, fmt.Errorf("decoding resume: %w", err)
	}
	return resume, nil
}

// DeleteResume removes a resume by id.
func (s *CandidateService) DeleteResume(ctx context.Context, id string) error {
	return s.c.delete(ctx, surfaceCandidate, "/candidate/resume/"+id, nil)
}

// SavedJobs lists the jobs the candidate has saved. The backend returns the
// populated job documents; callers that only need the id set can project it.
func (s *CandidateService) SavedJobs(ctx context.Context) ([]models.Job, error) {
	var env envelope
	if err := s.c.get(ctx, surfaceCandidate, "/candidate/saved-jobs", &env); err != nil {
		return nil, err
	}

	var jobs []models.Job
	if err := json.Unmarshal(env.Data, &jobs); err != nil {
		return nil, fmt.Errorf("decoding saved jobs: %w", err)
	}
	return jobs, nil
}

// SaveJob marks a job as saved.
func (s *CandidateService) SaveJob(ctx context.Context, jobID string) error {
	body := map[string]string{"jobId": jobID}
	return s.c.post(ctx, surfaceCandidate, "/candidate/saved-jobs", body, nil)
}

// UnsaveJob removes a job from the saved set.
func (s *CandidateService) UnsaveJob(ctx context.Context, jobID string) error {
	return s.c.delete(ctx, surfaceCandidate, "/candidate/saved-jobs/"+jobID, nil)
}
