package models

// Company represents an employer's company profile.
type Company struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Size        string `json:"size,omitempty"`
	LogoURL     string `json:"logoUrl,omitempty"`
	OwnerID     string `json:"ownerId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Resume is one entry in a candidate's uploaded resume list.
type Resume struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

// CandidateProfile is the candidate-facing profile document.
type CandidateProfile struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Title     string   `json:"title,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Location  string   `json:"location,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	AvatarURL string   `json:"avatarUrl,omitempty"`
	Resumes   []Resume `json:"resumes,omitempty"`
}
