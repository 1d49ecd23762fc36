package models

import (
	"net/url"
	"strconv"
)

// JobStatus is the employer-facing lifecycle of a posting.
type JobStatus string

const (
	JobStatusOpen   JobStatus = "Open"
	JobStatusClosed JobStatus = "Closed"
)

// Job represents a single job posting.
type Job struct {
	ID              string    `json:"_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Company         *Company  `json:"companyId,omitempty"`
	Location        string    `json:"location,omitempty"`
	Type            string    `json:"type,omitempty"` // Full-time, Part-time, Contract, Internship
	ExperienceLevel string    `json:"experienceLevel,omitempty"`
	MinSalary       int       `json:"minSalary,omitempty"`
	MaxSalary       int       `json:"maxSalary,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	Status          JobStatus `json:"status,omitempty"`
	PostedBy        string    `json:"postedBy,omitempty"`
	CreatedAt       string    `json:"createdAt,omitempty"`
	UpdatedAt       string    `json:"updatedAt,omitempty"`
}

// IsOpen reports whether the posting still accepts applications.
func (j Job) IsOpen() bool {
	return j.Status == "" || j.Status == JobStatusOpen
}

// JobFilter captures the query parameters of GET /jobs.
type JobFilter struct {
	Keyword         string
	Location        string
	ExperienceLevel string
	Type            string
	MinSalary       int
	MaxSalary       int
	Page            int
	Limit           int
	Sort            string
}

// Query encodes the filter as a URL query string, omitting zero values.
func (f JobFilter) Query() string {
	q := url.Values{}
	if f.Keyword != "" {
		q.Set("keyword", f.Keyword)
	}
	if f.Location != "" {
		q.Set("location", f.Location)
	}
	if f.ExperienceLevel != "" {
		q.Set("experienceLevel", f.ExperienceLevel)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.MinSalary > 0 {
		q.Set("minSalary", strconv.Itoa(f.MinSalary))
	}
	if f.MaxSalary > 0 {
		q.Set("maxSalary", strconv.Itoa(f.MaxSalary))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Sort != "" {
		q.Set("sort", f.Sort)
	}
	return q.Encode()
}
