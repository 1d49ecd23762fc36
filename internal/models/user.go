package models

// Role identifies what a user can do on the portal.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// User represents the authenticated identity returned by the backend.
type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	IsActive  bool   `json:"isActive,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// IsValid reports whether the identity carries the minimum fields the
// client relies on.
func (u User) IsValid() bool {
	return u.ID != "" && u.Email != ""
}

func (u User) IsCandidate() bool { return u.Role == RoleCandidate }
func (u User) IsEmployer() bool  { return u.Role == RoleEmployer }
func (u User) IsAdmin() bool     { return u.Role == RoleAdmin }
