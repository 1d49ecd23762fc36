package models

// ApplicationStatus tracks an application through the employer's pipeline.
type ApplicationStatus string

const (
	StatusApplied      ApplicationStatus = "Applied"
	StatusReviewing    ApplicationStatus = "Reviewing"
	StatusInterviewing ApplicationStatus = "Interviewing"
	StatusSelected     ApplicationStatus = "Selected"
	StatusRejected     ApplicationStatus = "Rejected"
)

// ValidStatuses lists the statuses an employer may assign.
var ValidStatuses = []ApplicationStatus{
	StatusApplied,
	StatusReviewing,
	StatusInterviewing,
	StatusSelected,
	StatusRejected,
}

// IsValid reports whether s is one of the known pipeline statuses.
func (s ApplicationStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the pipeline is finished for this application.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusSelected || s == StatusRejected
}

// Application represents one candidate's application to one job.
// Job and Candidate are populated references; list endpoints may return
// either the bare id or the expanded document, so both live behind pointers.
type Application struct {
	ID        string            `json:"_id"`
	Job       *Job              `json:"jobId,omitempty"`
	Candidate *User             `json:"candidateId,omitempty"`
	Status    ApplicationStatus `json:"status"`
	ResumeURL string            `json:"resumeUrl,omitempty"`
	CreatedAt string            `json:"createdAt,omitempty"`
}
