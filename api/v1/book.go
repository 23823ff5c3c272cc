package v1

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/libris-io/libris/config"
	"github.com/libris-io/libris/http/request"
	"github.com/libris-io/libris/http/response"
	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
)

type booksListResponse struct {
	BooksList []*model.Book `json:"books_list"`
}

type popularBookResponse struct {
	BooksList *model.Book `json:"books_list"`
}

type avgBooksResponse struct {
	AvgBooks *float64 `json:"avg_books"`
}

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.ListBooks(&model.FindBook{})
	if err != nil {
		log.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, booksListResponse{BooksList: books})
}

func (h *Handler) listBooksInStockByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := request.RouteIntParam(r, "author_id")

	// An unknown author simply yields an empty list.
	books, err := h.store.ListBooks(&model.FindBook{AuthorID: &authorID, InStock: true})
	if err != nil {
		log.Error("Error listing books in stock", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, booksListResponse{BooksList: books})
}

func (h *Handler) listUnreadBooks(w http.ResponseWriter, r *http.Request) {
	studentID := request.RouteIntParam(r, "student_id")

	books, err := h.store.ListUnreadBooksBySameAuthor(studentID)
	if err != nil {
		log.Error("Error listing unread books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, booksListResponse{BooksList: books})
}

func (h *Handler) averageTakenBooks(w http.ResponseWriter, r *http.Request) {
	month := time.Now().Format("2006-01")

	avg, err := h.store.AverageTakenBooks(month)
	if err != nil {
		log.Error("Error computing average taken books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, avgBooksResponse{AvgBooks: avg})
}

func (h *Handler) popularBookAmongHighScorers(w http.ResponseWriter, r *http.Request) {
	book, err := h.store.MostPopularBookAmongHighScorers(config.Opts.HighScoreThreshold)
	if err != nil {
		log.Error("Error finding popular book", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, popularBookResponse{BooksList: book})
}
