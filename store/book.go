package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
)

func (s *Store) GetBook(find *model.FindBook) (*model.Book, error) {
	if find.ID != nil {
		if cache, ok := s.BookCache.Load(*find.ID); ok {
			return cache.(*model.Book), nil
		}
	}

	list, err := s.ListBooks(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	book := list[0]
	s.BookCache.Store(book.ID, book)
	return book, nil
}

func (s *Store) ListBooks(find *model.FindBook) ([]*model.Book, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "name = ?"), append(args, *v)
	}
	if v := find.AuthorID; v != nil {
		where, args = append(where, "author_id = ?"), append(args, *v)
	}
	if find.InStock {
		where = append(where, "count != 0")
	}

	orderBy := []string{"id"}
	if find.OrderBy != nil {
		orderBy = append(orderBy, *find.OrderBy)
	}

	query := `
        SELECT
            id,
            name,
            count,
            release_date,
            author_id
        FROM books
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + strings.Join(orderBy, ", ")
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.Name,
			&book.Count,
			&book.ReleaseDate,
			&book.AuthorID,
		); err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ListUnreadBooksBySameAuthor returns the books the student has not
// taken yet, limited to authors the student has already borrowed from.
// A student with no loan history gets an empty list.
func (s *Store) ListUnreadBooksBySameAuthor(studentID int) ([]*model.Book, error) {
	query := `
        SELECT
            id,
            name,
            count,
            release_date,
            author_id
        FROM books
        WHERE id NOT IN (
            SELECT book_id FROM receiving_books WHERE student_id = ?
        )
        AND author_id IN (
            SELECT author_id FROM books WHERE id IN (
                SELECT book_id FROM receiving_books WHERE student_id = ?
            )
        )
        ORDER BY id`
	args := []any{studentID, studentID}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query unread books", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Book, 0)
	for rows.Next() {
		var book model.Book
		if err := rows.Scan(
			&book.ID,
			&book.Name,
			&book.Count,
			&book.ReleaseDate,
			&book.AuthorID,
		); err != nil {
			log.Error("Failed to scan book", zap.Error(err))
			return nil, err
		}
		list = append(list, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// MostPopularBookAmongHighScorers returns the book with the most loans
// among students whose average score is above minScore. Ties break on
// the lowest book id. Returns nil when no qualifying loan exists.
func (s *Store) MostPopularBookAmongHighScorers(minScore float64) (*model.Book, error) {
	query := `
        SELECT book_id
        FROM receiving_books
        WHERE student_id IN (
            SELECT id FROM students WHERE average_score > ?
        )
        GROUP BY book_id
        ORDER BY COUNT(book_id) DESC, book_id ASC
        LIMIT 1`
	args := []any{minScore}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	var bookID int
	if err := s.db.QueryRow(query, args...).Scan(&bookID); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		log.Error("Failed to query most popular book", zap.Error(err))
		return nil, err
	}

	return s.GetBook(&model.FindBook{ID: &bookID})
}

func (s *Store) AddBook(book *model.Book) (*model.Book, error) {
	stmt := `
        INSERT INTO books (
            name,
            count,
            release_date,
            author_id
        ) VALUES (?,?,?,?)
        RETURNING id, name, count, release_date, author_id`
	args := []any{}

	args = append(args, book.Name)
	args = append(args, book.Count)
	args = append(args, book.ReleaseDate)
	args = append(args, book.AuthorID)

	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	var newBook model.Book
	if err := tx.QueryRow(stmt, args...).Scan(
		&newBook.ID,
		&newBook.Name,
		&newBook.Count,
		&newBook.ReleaseDate,
		&newBook.AuthorID,
	); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &newBook, nil
}

func (s *Store) CheckBook(bookID int) bool {
	stmt := `
		SELECT EXISTS(SELECT 1 FROM books WHERE id = ?)
	`
	args := []any{bookID}

	var exists bool
	if err := s.db.QueryRow(stmt, args...).Scan(&exists); err != nil {
		return false
	}
	return exists
}
