package store

import (
	"testing"

	"github.com/libris-io/libris/model"
)

func TestAddAndUpdateJob(t *testing.T) {
	s := NewStore(createTestDb(t, "test_jobs.db"))

	job, err := s.AddJob(model.Job{
		Type:   model.JobTypeDebtorScan,
		Status: model.JobStatusPending,
	})
	if err != nil {
		t.Fatalf("Failed to add job: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("Expected a job id")
	}
	if job.CreatedTs == "" {
		t.Error("Expected created_ts to be set")
	}

	if err := s.UpdateJobStatus(job.ID, model.JobStatusDone, "0 debtors"); err != nil {
		t.Fatalf("Failed to update job: %v", err)
	}

	jobs, err := s.ListJobs()
	if err != nil {
		t.Fatalf("Failed to list jobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("Expected 1 job, got %d", len(jobs))
	}
	if jobs[0].Status != model.JobStatusDone {
		t.Errorf("Expected status %q, got %q", model.JobStatusDone, jobs[0].Status)
	}
	if jobs[0].Detail != "0 debtors" {
		t.Errorf("Unexpected detail: %q", jobs[0].Detail)
	}
}
