package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
)

func (s *Store) AddJob(job model.Job) (*model.Job, error) {
	stmt := `
    INSERT INTO jobs (type, status, detail) VALUES (?, ?, ?)
    RETURNING id, type, status, detail, created_ts
    `

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, []any{job.Type, job.Status, job.Detail}))

	var j model.Job
	if err := tx.QueryRow(stmt, job.Type, job.Status, job.Detail).Scan(
		&j.ID, &j.Type, &j.Status, &j.Detail, &j.CreatedTs,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &j, nil
}

func (s *Store) UpdateJobStatus(jobID int, status, detail string) error {
	stmt := `UPDATE jobs SET status = ?, detail = ? WHERE id = ?`
	args := []any{status, detail, jobID}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if _, err := tx.Exec(stmt, args...); err != nil {
		log.Error("Failed to update job status", zap.Error(err))
		return err
	}
	return tx.Commit()
}

func (s *Store) ListJobs() ([]*model.Job, error) {
	query := `SELECT id, type, status, detail, created_ts FROM jobs ORDER BY id`

	rows, err := s.db.Query(query)
	if err != nil {
		log.Error("Failed to query jobs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Job, 0)
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.Type, &job.Status, &job.Detail, &job.CreatedTs); err != nil {
			log.Error("Failed to scan job", zap.Error(err))
			return nil, err
		}
		list = append(list, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
