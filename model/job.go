package model //import "github.com/libris-io/libris/model"

const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"

	JobTypeStudentImport = "STUDENT_IMPORT"
	JobTypeDebtorScan    = "DEBTOR_SCAN"
)

// Job records a unit of background or administrative work: a CSV import
// or a scheduled debtor scan.
type Job struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Detail    string `json:"detail"`
	CreatedTs string `json:"created_ts"`
}

type JobList []Job

func (j JobList) Len() int {
	return len(j)
}
