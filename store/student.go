package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
)

func (s *Store) AddStudent(student *model.Student) (*model.Student, error) {
	stmt := `
        INSERT INTO students (
            name,
            surname,
            phone,
            email,
            average_score,
            scholarship
        ) VALUES (?,?,?,?,?,?)
        RETURNING id, name, surname, phone, email, average_score, scholarship`
	args := []any{}

	args = append(args, student.Name)
	args = append(args, student.Surname)
	args = append(args, student.Phone)
	args = append(args, student.Email)
	args = append(args, student.AverageScore)
	args = append(args, student.Scholarship)

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	var newStudent model.Student
	if err := tx.QueryRow(stmt, args...).Scan(
		&newStudent.ID,
		&newStudent.Name,
		&newStudent.Surname,
		&newStudent.Phone,
		&newStudent.Email,
		&newStudent.AverageScore,
		&newStudent.Scholarship,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &newStudent, nil
}

// AddStudentBatch inserts all students in one transaction. Any failing
// row aborts the whole batch.
func (s *Store) AddStudentBatch(students []*model.Student) error {
	stmt := `
        INSERT INTO students (
            name,
            surname,
            phone,
            email,
            average_score,
            scholarship
        ) VALUES (?,?,?,?,?,?)`

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, student := range students {
		args := []any{
			student.Name,
			student.Surname,
			student.Phone,
			student.Email,
			student.AverageScore,
			student.Scholarship,
		}

		log.Debug("SQL query and args:")
		log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

		if _, err := tx.Exec(stmt, args...); err != nil {
			log.Error("Failed to insert student", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) ListStudents(find *model.FindStudent) ([]*model.Student, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.MinAverageScore; v != nil {
		where, args = append(where, "average_score > ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            name,
            surname,
            phone,
            email,
            average_score,
            scholarship
        FROM students
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query students", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Student, 0)
	for rows.Next() {
		var student model.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Surname,
			&student.Phone,
			&student.Email,
			&student.AverageScore,
			&student.Scholarship,
		); err != nil {
			log.Error("Failed to scan student", zap.Error(err))
			return nil, err
		}
		list = append(list, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ListTopReadingStudents returns the students with the most loans, all
// time. There is no year filter.
func (s *Store) ListTopReadingStudents(limit int) ([]*model.Student, error) {
	query := `
        SELECT
            s.id,
            s.name,
            s.surname,
            s.phone,
            s.email,
            s.average_score,
            s.scholarship
        FROM students s
        JOIN receiving_books r ON r.student_id = s.id
        GROUP BY s.id
        ORDER BY COUNT(r.book_id) DESC, s.id ASC
        LIMIT ?`
	args := []any{limit}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query top reading students", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Student, 0)
	for rows.Next() {
		var student model.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Surname,
			&student.Phone,
			&student.Email,
			&student.AverageScore,
			&student.Scholarship,
		); err != nil {
			log.Error("Failed to scan student", zap.Error(err))
			return nil, err
		}
		list = append(list, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) CheckStudent(studentID int) bool {
	stmt := `
		SELECT EXISTS(SELECT 1 FROM students WHERE id = ?)
	`
	args := []any{studentID}

	var exists bool
	if err := s.db.QueryRow(stmt, args...).Scan(&exists); err != nil {
		return false
	}
	return exists
}
