package store

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
)

func (s *Store) AddReceiving(receiving *model.Receiving) (*model.Receiving, error) {
	stmt := `
        INSERT INTO receiving_books (
            book_id,
            student_id,
            date_of_issue
        ) VALUES (?,?,?)
        RETURNING book_id, student_id, date_of_issue, date_of_return`
	args := []any{}

	args = append(args, receiving.BookID)
	args = append(args, receiving.StudentID)
	args = append(args, receiving.DateOfIssue)

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	var newReceiving model.Receiving
	if err := tx.QueryRow(stmt, args...).Scan(
		&newReceiving.BookID,
		&newReceiving.StudentID,
		&newReceiving.DateOfIssue,
		&newReceiving.DateOfReturn,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &newReceiving, nil
}

// CloseReceiving stamps the return date on the loan matching the
// book/student pair. Returns model.ErrReceivingNotFound when there is
// no such loan.
func (s *Store) CloseReceiving(bookID, studentID int, returnedAt time.Time) (*model.Receiving, error) {
	stmt := `
        UPDATE receiving_books
        SET date_of_return = ?
        WHERE book_id = ? AND student_id = ?
        RETURNING book_id, student_id, date_of_issue, date_of_return`
	args := []any{model.FormatTime(returnedAt), bookID, studentID}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	var receiving model.Receiving
	if err := tx.QueryRow(stmt, args...).Scan(
		&receiving.BookID,
		&receiving.StudentID,
		&receiving.DateOfIssue,
		&receiving.DateOfReturn,
	); err != nil {
		if isNoRows(err) {
			return nil, model.ErrReceivingNotFound
		}
		log.Error("Failed to close receiving", zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &receiving, nil
}

func (s *Store) ListReceivings(find *model.FindReceiving) ([]*model.Receiving, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.BookID; v != nil {
		where, args = append(where, "book_id = ?"), append(args, *v)
	}
	if v := find.StudentID; v != nil {
		where, args = append(where, "student_id = ?"), append(args, *v)
	}
	if v := find.IssuedBefore; v != nil {
		where, args = append(where, "date_of_issue < ?"), append(args, model.FormatTime(*v))
	}

	query := `
        SELECT
            book_id,
            student_id,
            date_of_issue,
            date_of_return
        FROM receiving_books
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY date_of_issue`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query receivings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Receiving, 0)
	for rows.Next() {
		var receiving model.Receiving
		if err := rows.Scan(
			&receiving.BookID,
			&receiving.StudentID,
			&receiving.DateOfIssue,
			&receiving.DateOfReturn,
		); err != nil {
			log.Error("Failed to scan receiving", zap.Error(err))
			return nil, err
		}
		list = append(list, &receiving)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ListDebtorIDs returns the ids of students holding a loan issued
// before the deadline. The filter matches the issue date alone, see
// model.DebtorDeadline.
func (s *Store) ListDebtorIDs(deadline time.Time) ([]int, error) {
	query := `
        SELECT student_id
        FROM receiving_books
        WHERE date_of_issue < ?`
	args := []any{model.FormatTime(deadline)}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query debtors", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]int, 0)
	for rows.Next() {
		var studentID int
		if err := rows.Scan(&studentID); err != nil {
			log.Error("Failed to scan debtor", zap.Error(err))
			return nil, err
		}
		list = append(list, studentID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// AverageTakenBooks averages the book_id values of the loans issued in
// the given month ("2006-01" format). Averaging an identifier is what
// the legacy report did, so the number is kept bit-for-bit. Returns nil
// when the month has no loans.
func (s *Store) AverageTakenBooks(month string) (*float64, error) {
	query := `
        SELECT AVG(book_id)
        FROM receiving_books
        WHERE strftime('%Y-%m', date_of_issue) = ?`
	args := []any{month}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	var avg *float64
	if err := s.db.QueryRow(query, args...).Scan(&avg); err != nil {
		log.Error("Failed to query average taken books", zap.Error(err))
		return nil, err
	}
	return avg, nil
}
