package store

import (
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/libris-io/libris/model"
)

func newLibrary(t *testing.T, s *Store) (*model.Book, *model.Student) {
	t.Helper()

	author, err := s.AddAuthor(&model.Author{Name: "Lev", Surname: "Tolstoy"})
	if err != nil {
		t.Fatalf("Failed to add author: %v", err)
	}
	book, err := s.AddBook(&model.Book{Name: "War And Peace", Count: 10, ReleaseDate: "1867-01-01", AuthorID: author.ID})
	if err != nil {
		t.Fatalf("Failed to add book: %v", err)
	}
	student, err := s.AddStudent(&model.Student{Name: "Nik", Surname: "Nokiv", Phone: "2", Email: "n@x", AverageScore: 4.5, Scholarship: true})
	if err != nil {
		t.Fatalf("Failed to add student: %v", err)
	}
	return book, student
}

func TestIssueThenReturnRoundTrip(t *testing.T) {
	s := NewStore(createTestDb(t, "test_round_trip.db"))
	book, student := newLibrary(t, s)

	issuedAt := time.Now().Add(-time.Hour)
	if _, err := s.AddReceiving(&model.Receiving{
		BookID:      book.ID,
		StudentID:   student.ID,
		DateOfIssue: model.FormatTime(issuedAt),
	}); err != nil {
		t.Fatalf("Failed to add receiving: %v", err)
	}

	closed, err := s.CloseReceiving(book.ID, student.ID, time.Now())
	if err != nil {
		t.Fatalf("Failed to close receiving: %v", err)
	}
	if closed.DateOfReturn == nil {
		t.Fatal("Expected date_of_return to be set")
	}

	list, err := s.ListReceivings(&model.FindReceiving{BookID: &book.ID, StudentID: &student.ID})
	if err != nil {
		t.Fatalf("Failed to list receivings: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected exactly 1 receiving, got %d", len(list))
	}

	issue, err := model.ParseTime(list[0].DateOfIssue)
	if err != nil {
		t.Fatalf("Failed to parse date_of_issue: %v", err)
	}
	ret, err := model.ParseTime(*list[0].DateOfReturn)
	if err != nil {
		t.Fatalf("Failed to parse date_of_return: %v", err)
	}
	if ret.Before(issue) {
		t.Errorf("date_of_return %s is before date_of_issue %s", ret, issue)
	}
}

func TestCloseReceivingNotFound(t *testing.T) {
	s := NewStore(createTestDb(t, "test_close_not_found.db"))
	book, student := newLibrary(t, s)

	_, err := s.CloseReceiving(book.ID, student.ID, time.Now())
	if !errors.Is(err, model.ErrReceivingNotFound) {
		t.Fatalf("Expected ErrReceivingNotFound, got %v", err)
	}
}

func TestAddReceivingTwiceIsAnIntegrityError(t *testing.T) {
	s := NewStore(createTestDb(t, "test_double_issue.db"))
	book, student := newLibrary(t, s)

	receiving := &model.Receiving{
		BookID:      book.ID,
		StudentID:   student.ID,
		DateOfIssue: model.FormatTime(time.Now()),
	}
	if _, err := s.AddReceiving(receiving); err != nil {
		t.Fatalf("Failed to add receiving: %v", err)
	}
	if _, err := s.AddReceiving(receiving); err == nil {
		t.Fatal("Expected an error when issuing the same pair twice")
	}
}

func TestAddReceivingUnknownBook(t *testing.T) {
	s := NewStore(createTestDb(t, "test_unknown_book.db"))
	_, student := newLibrary(t, s)

	_, err := s.AddReceiving(&model.Receiving{
		BookID:      999,
		StudentID:   student.ID,
		DateOfIssue: model.FormatTime(time.Now()),
	})
	if err == nil {
		t.Fatal("Expected a foreign key error for an unknown book")
	}
}

func TestListDebtorIDs(t *testing.T) {
	s := NewStore(createTestDb(t, "test_debtors.db"))

	author, _ := s.AddAuthor(&model.Author{Name: "Lev", Surname: "Tolstoy"})
	book, _ := s.AddBook(&model.Book{Name: "War And Peace", Count: 10, ReleaseDate: "1867-01-01", AuthorID: author.ID})
	overdue, _ := s.AddStudent(&model.Student{Name: "Nik", Surname: "Nokiv", Phone: "2", Email: "n@x", AverageScore: 4.5, Scholarship: true})
	onTime, _ := s.AddStudent(&model.Student{Name: "Vlad", Surname: "Filatov", Phone: "87", Email: "v@x", AverageScore: 4.0, Scholarship: true})

	now := time.Now()
	if _, err := s.AddReceiving(&model.Receiving{
		BookID:      book.ID,
		StudentID:   overdue.ID,
		DateOfIssue: model.FormatTime(now.AddDate(0, 0, -15)),
	}); err != nil {
		t.Fatalf("Failed to add receiving: %v", err)
	}
	secondBook, _ := s.AddBook(&model.Book{Name: "Anna Karenina", Count: 7, ReleaseDate: "1877-01-01", AuthorID: author.ID})
	if _, err := s.AddReceiving(&model.Receiving{
		BookID:      secondBook.ID,
		StudentID:   onTime.ID,
		DateOfIssue: model.FormatTime(now.AddDate(0, 0, -13)),
	}); err != nil {
		t.Fatalf("Failed to add receiving: %v", err)
	}

	debtors, err := s.ListDebtorIDs(model.DebtorDeadline(now, 14))
	if err != nil {
		t.Fatalf("Failed to list debtors: %v", err)
	}
	if len(debtors) != 1 {
		t.Fatalf("Expected 1 debtor, got %d", len(debtors))
	}
	if debtors[0] != overdue.ID {
		t.Errorf("Expected student %d, got %d", overdue.ID, debtors[0])
	}
}

func TestAverageTakenBooks(t *testing.T) {
	s := NewStore(createTestDb(t, "test_avg_taken.db"))

	author, _ := s.AddAuthor(&model.Author{Name: "Lev", Surname: "Tolstoy"})
	first, _ := s.AddBook(&model.Book{Name: "War And Peace", Count: 10, ReleaseDate: "1867-01-01", AuthorID: author.ID})
	second, _ := s.AddBook(&model.Book{Name: "Anna Karenina", Count: 7, ReleaseDate: "1877-01-01", AuthorID: author.ID})
	student, _ := s.AddStudent(&model.Student{Name: "Nik", Surname: "Nokiv", Phone: "2", Email: "n@x", AverageScore: 4.5, Scholarship: true})

	now := time.Now()
	month := now.Format("2006-01")

	// No loans yet: the average is NULL
	avg, err := s.AverageTakenBooks(month)
	if err != nil {
		t.Fatalf("Failed to compute average: %v", err)
	}
	if avg != nil {
		t.Errorf("Expected nil average for empty month, got %f", *avg)
	}

	for _, bookID := range []int{first.ID, second.ID} {
		if _, err := s.AddReceiving(&model.Receiving{
			BookID:      bookID,
			StudentID:   student.ID,
			DateOfIssue: model.FormatTime(now),
		}); err != nil {
			t.Fatalf("Failed to add receiving: %v", err)
		}
	}

	avg, err = s.AverageTakenBooks(month)
	if err != nil {
		t.Fatalf("Failed to compute average: %v", err)
	}
	if avg == nil {
		t.Fatal("Expected an average")
	}
	expected := float64(first.ID+second.ID) / 2
	if *avg != expected {
		t.Errorf("Expected average %f, got %f", expected, *avg)
	}
}
