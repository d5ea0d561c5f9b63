package model

// EmployeeStatus is the employment state of a worker profile.
type EmployeeStatus string

const (
	StatusActive               EmployeeStatus = "ACTIVE"
	StatusInactive             EmployeeStatus = "INACTIVE"
	StatusOnLeave              EmployeeStatus = "ONLEAVE"
	StatusTerminated           EmployeeStatus = "TERMINATED"
	StatusAwaitingVerification EmployeeStatus = "AWAITINGVERIFICATION"
)

// ExportStatus tracks the state of asynchronous payroll export jobs.
type ExportStatus string

const (
	StatusExportPending    ExportStatus = "PENDING"
	StatusExportProcessing ExportStatus = "PROCESSING"
	StatusExportCompleted  ExportStatus = "COMPLETED"
	StatusExportFailed     ExportStatus = "FAILED"
)

// Timesheet is one clocked work session. Dates are calendar dates in
// "2006-01-02" form, times of day in "15:04" form. Optional fields are
// pointers; the aggregation core treats nil as zero.
type Timesheet struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employeeId"`
	Date           string   `json:"date"`
	StartTime      *string  `json:"startTime,omitempty"`
	EndTime        *string  `json:"endTime,omitempty"`
	LunchStartTime *string  `json:"lunchStartTime,omitempty"`
	LunchEndTime   *string  `json:"lunchEndTime,omitempty"`
	JobSite        *string  `json:"jobSite,omitempty"`
	Description    *string  `json:"description,omitempty"`
	TotalHours     *float64 `json:"totalHours,omitempty"`
	IsLocked       bool     `json:"isLocked"`
	Approved       bool     `json:"approved"`
}

// Employee is a worker profile. ID is the identity-provider user ID, so
// ownership checks compare it directly against the session user.
type Employee struct {
	ID             string         `json:"id"`
	EmployeeNumber int64          `json:"employeeNumber"`
	Name           string         `json:"name"`
	Email          *string        `json:"email,omitempty"`
	Phone          *string        `json:"phone,omitempty"`
	Position       *string        `json:"position,omitempty"`
	EmploymentType *string        `json:"employmentType,omitempty"`
	JobID          *string        `json:"jobId,omitempty"`
	Payrate        *float64       `json:"payrate,omitempty"`
	Status         EmployeeStatus `json:"status"`
	StartDate      *string        `json:"startDate,omitempty"`
}

// Job is a project / job site that timesheets can be booked against.
type Job struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployeeTimesheets pairs an employee with their timesheets for one
// reporting window, as returned by the paginated payroll query.
type EmployeeTimesheets struct {
	Employee
	Timesheets []Timesheet `json:"timesheets"`
	TotalHours float64     `json:"totalHours"`
}

// ExportJob is one queued payroll spreadsheet export.
type ExportJob struct {
	ID          string       `json:"id"`
	WeekStart   string       `json:"weekStart"`
	RequestedBy string       `json:"requestedBy"`
	Recipient   string       `json:"recipient"`
	Status      ExportStatus `json:"status"`
	RetryCount  int          `json:"retryCount"`
}
