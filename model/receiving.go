package model //import "github.com/libris-io/libris/model"

import (
	"time"

	"github.com/pkg/errors"
)

// TimeLayout is the format loan timestamps are stored in. Lexicographic
// order on this layout matches chronological order, which the store
// relies on when comparing dates in SQL.
const TimeLayout = "2006-01-02 15:04:05"

// ErrReceivingNotFound is returned when no loan matches the given
// book/student pair.
var ErrReceivingNotFound = errors.New("no matching loan")

// Receiving is a loan record: one book handed to one student. A nil
// DateOfReturn means the loan is still open.
type Receiving struct {
	BookID       int     `json:"book_id"`
	StudentID    int     `json:"student_id"`
	DateOfIssue  string  `json:"date_of_issue"`
	DateOfReturn *string `json:"date_of_return"`
}

type FindReceiving struct {
	BookID    *int `json:"book_id"`
	StudentID *int `json:"student_id"`
	// IssuedBefore keeps only loans issued strictly before the given time.
	IssuedBefore *time.Time `json:"issued_before"`
}

// DebtorDeadline is the cut-off for the debtor report: loans issued
// before it count the student as a debtor. The filter is on the issue
// date alone, so a loan that was already returned still flags the
// student if it was issued more than the loan period ago.
func DebtorDeadline(now time.Time, loanPeriodDays int) time.Time {
	return now.AddDate(0, 0, -loanPeriodDays)
}

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
