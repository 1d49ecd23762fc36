package models

// PlatformStats is the admin dashboard headline counters.
type PlatformStats struct {
	TotalUsers        int `json:"totalUsers"`
	TotalJobs         int `json:"totalJobs"`
	TotalApplications int `json:"totalApplications"`
	TotalCompanies    int `json:"totalCompanies"`
	ActiveJobs        int `json:"activeJobs"`
}

// ActivityEntry is one row of the admin activity report.
type ActivityEntry struct {
	ID        string `json:"_id"`
	Type      string `json:"type"`
	Actor     string `json:"actor,omitempty"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// GrowthPoint is one data point of the admin growth report.
type GrowthPoint struct {
	Period string `json:"period"`
	Users  int    `json:"users"`
	Jobs   int    `json:"jobs"`
}

// SiteContent is the admin-editable static content document.
type SiteContent struct {
	About        string `json:"about,omitempty"`
	Terms        string `json:"terms,omitempty"`
	Privacy      string `json:"privacy,omitempty"`
	HeroTagline  string `json:"heroTagline,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
}
