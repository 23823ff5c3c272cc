package store

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
)

func (s *Store) AddAuthor(author *model.Author) (*model.Author, error) {
	// Reuse the existing row when the author is already known.
	if aID, ok := s.CheckAuthor(author.Name, author.Surname); ok {
		author.ID = aID
		return author, nil
	}
	stmt := `
	    INSERT INTO authors (
	    name, surname
	    ) VALUES (?,?) RETURNING id,name,surname`
	args := []any{}

	args = append(args, author.Name)
	args = append(args, author.Surname)

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	var newAuthor model.Author
	if err := tx.QueryRow(stmt, args...).Scan(&newAuthor.ID, &newAuthor.Name, &newAuthor.Surname); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &newAuthor, nil
}

func (s *Store) ListAuthors(find *model.FindAuthor) ([]*model.Author, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Name; v != nil {
		where, args = append(where, "name = ?"), append(args, *v)
	}
	if v := find.Surname; v != nil {
		where, args = append(where, "surname = ?"), append(args, *v)
	}

	query := `
        SELECT
            id,
            name,
            surname
        FROM authors
    WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", query, args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query authors", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.Author, 0)
	for rows.Next() {
		var author model.Author
		if err := rows.Scan(&author.ID, &author.Name, &author.Surname); err != nil {
			log.Error("Failed to scan author", zap.Error(err))
			return nil, err
		}
		list = append(list, &author)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteAuthor removes the author and all of the author's books in one
// transaction. The cascade is explicit on purpose.
func (s *Store) DeleteAuthor(authorID int) error {
	s.dbLock.Lock()
	defer s.dbLock.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := `DELETE FROM books WHERE author_id = ? RETURNING id`
	args := []any{authorID}

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	rows, err := tx.Query(stmt, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	rmList := make([]int, 0)
	for rows.Next() {
		var bookID int
		if err := rows.Scan(&bookID); err != nil {
			return err
		}
		rmList = append(rmList, bookID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	stmt = `DELETE FROM authors WHERE id = ?`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("query: %s\nargs: %v\n", stmt, args))

	if _, err := tx.Exec(stmt, args...); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for _, bookID := range rmList {
		s.BookCache.Delete(bookID)
	}
	return nil
}

func (s *Store) CheckAuthor(name, surname string) (int, bool) {
	stmt := `SELECT id FROM authors WHERE name = ? AND surname = ?`
	args := []any{name, surname}

	var authorID int
	if err := s.db.QueryRow(stmt, args...).Scan(&authorID); err != nil {
		return 0, false
	}
	return authorID, true
}
