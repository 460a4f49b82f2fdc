package models

// JobStatus is the single source of the job lifecycle, is_active is derived from it
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

func (s JobStatus) Validate() error {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusClosed:
		return nil
	}
	return NewValidationError("status", "unknown job status")
}

func (s JobStatus) IsActive() bool {
	return s == JobStatusActive
}

// Toggled returns the state reached by the activate/deactivate switch:
// active jobs are closed, draft and closed jobs are (re)activated
func (s JobStatus) Toggled() JobStatus {
	if s == JobStatusActive {
		return JobStatusClosed
	}
	return JobStatusActive
}

// BecomesActive reports a transition into active from any other state
func BecomesActive(from, to JobStatus) bool {
	return from != JobStatusActive && to == JobStatusActive
}

// ResolveJobStatus derives the stored status from the request fields.
// current is nil on create.
func ResolveJobStatus(current *JobStatus, status JobStatus, isActive *bool) JobStatus {
	if status != "" {
		return status
	}
	if current == nil {
		if isActive != nil && *isActive {
			return JobStatusActive
		}
		return JobStatusDraft
	}
	if isActive == nil {
		return *current
	}
	if *isActive {
		return JobStatusActive
	}
	if *current == JobStatusActive {
		return JobStatusClosed
	}
	return *current
}

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

func (t JobType) Validate() error {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance:
		return nil
	}
	return NewValidationError("job_type", "unknown job type")
}

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "entry"
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
	ExperienceLead   ExperienceLevel = "lead"
)

func (l ExperienceLevel) Validate() error {
	switch l {
	case ExperienceEntry, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceLead:
		return nil
	}
	return NewValidationError("experience_level", "unknown experience level")
}
