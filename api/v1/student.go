package v1

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/libris-io/libris/config"
	"github.com/libris-io/libris/http/response"
	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
	"github.com/libris-io/libris/util"
)

type studentsListResponse struct {
	StudentsList []*model.Student `json:"students_list"`
}

type debtorsListResponse struct {
	StudentsList []int `json:"students_list"`
}

func (h *Handler) listDebtors(w http.ResponseWriter, r *http.Request) {
	deadline := model.DebtorDeadline(time.Now(), config.Opts.LoanPeriodDays)

	studentIDs, err := h.store.ListDebtorIDs(deadline)
	if err != nil {
		log.Error("Error listing debtors", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, debtorsListResponse{StudentsList: studentIDs})
}

func (h *Handler) listTopReadingStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.store.ListTopReadingStudents(config.Opts.TopReadersLimit)
	if err != nil {
		log.Error("Error listing top reading students", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, studentsListResponse{StudentsList: students})
}

// loadStudentsCSV accepts a semicolon-delimited CSV upload and inserts
// every row as a student in one all-or-nothing batch. The upload is
// saved under the data directory first, then parsed from disk.
func (h *Handler) loadStudentsCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.Opts.MaxUploadSize << 20); err != nil {
		log.Error("Max upload size exceeded", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	file, header, err := r.FormFile("students_file")
	if err != nil {
		response.Text(w, r, http.StatusBadRequest, "No file")
		return
	}
	defer file.Close()

	filePath, err := h.saveUpload(file, header.Filename)
	if err != nil {
		log.Error("Failed to save students file", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	job, err := h.store.AddJob(model.Job{
		Type:   model.JobTypeStudentImport,
		Status: model.JobStatusRunning,
		Detail: filepath.Base(filePath),
	})
	if err != nil {
		log.Error("Failed to add import job", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	saved, err := os.Open(filePath)
	if err != nil {
		log.Error("Failed to open saved students file", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	defer saved.Close()

	students, err := util.ParseStudentsCSV(saved)
	if err != nil {
		h.failJob(job.ID, err)
		response.BadRequest(w, r, err)
		return
	}

	if err := h.store.AddStudentBatch(students); err != nil {
		h.failJob(job.ID, err)
		response.ServerError(w, r, err)
		return
	}

	if err := h.store.UpdateJobStatus(job.ID, model.JobStatusDone, fmt.Sprintf("%d students", len(students))); err != nil {
		log.Warn("Failed to update import job", zap.Error(err))
	}
	response.Text(w, r, http.StatusCreated, "Students loaded")
}

func (h *Handler) saveUpload(file io.Reader, filename string) (string, error) {
	uploadDir := filepath.Join(config.Opts.Data, "uploads")
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadDir, 0755); err != nil {
			return "", err
		}
	}

	filePath := util.GenerateNewFileName(filepath.Join(uploadDir, filepath.Base(filename)))
	f, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, file); err != nil {
		return "", err
	}
	return filePath, nil
}

func (h *Handler) failJob(jobID int, cause error) {
	if err := h.store.UpdateJobStatus(jobID, model.JobStatusFailed, cause.Error()); err != nil {
		log.Warn("Failed to update job status", zap.Error(err))
	}
}
