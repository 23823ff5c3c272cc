package v1

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libris-io/libris/http/request"
	"github.com/libris-io/libris/http/response"
	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
)

// giveBookToStudent opens a loan. The copy count is informational and
// is not decremented here.
func (h *Handler) giveBookToStudent(w http.ResponseWriter, r *http.Request) {
	bookID, err := request.FormIntParam(r, "book_id")
	if err != nil {
		response.BadRequest(w, r, errors.Wrap(err, "invalid book_id"))
		return
	}
	studentID, err := request.FormIntParam(r, "student_id")
	if err != nil {
		response.BadRequest(w, r, errors.Wrap(err, "invalid student_id"))
		return
	}

	if !h.store.CheckBook(bookID) {
		response.BadRequest(w, r, errors.Errorf("no such book: %d", bookID))
		return
	}
	if !h.store.CheckStudent(studentID) {
		response.BadRequest(w, r, errors.Errorf("no such student: %d", studentID))
		return
	}

	receiving := &model.Receiving{
		BookID:      bookID,
		StudentID:   studentID,
		DateOfIssue: model.FormatTime(time.Now()),
	}
	if _, err := h.store.AddReceiving(receiving); err != nil {
		// The composite primary key makes a second loan of the same
		// pair an integrity error.
		log.Warn("Failed to add receiving",
			zap.Int("book_id", bookID),
			zap.Int("student_id", studentID),
			zap.Error(err),
		)
		response.BadRequest(w, r, err)
		return
	}

	response.Text(w, r, http.StatusCreated, "Book given to student")
}

// receiveBook closes a loan by stamping the return date.
func (h *Handler) receiveBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := request.FormIntParam(r, "book_id")
	if err != nil {
		response.BadRequest(w, r, errors.Wrap(err, "invalid book_id"))
		return
	}
	studentID, err := request.FormIntParam(r, "student_id")
	if err != nil {
		response.BadRequest(w, r, errors.Wrap(err, "invalid student_id"))
		return
	}

	if _, err := h.store.CloseReceiving(bookID, studentID, time.Now()); err != nil {
		if errors.Is(err, model.ErrReceivingNotFound) {
			response.BadRequest(w, r, errors.Errorf("no such loan: book %d, student %d", bookID, studentID))
			return
		}
		log.Error("Failed to close receiving", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.Text(w, r, http.StatusOK, "Book returned to the library")
}
