package v1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/libris-io/libris/middleware"
	"github.com/libris-io/libris/store"
)

type Handler struct {
	store  *store.Store
	router *mux.Router
}

func NewHandler(store *store.Store, router *mux.Router) *Handler {
	return &Handler{
		store:  store,
		router: router,
	}
}

// Server registers the record-keeper routes. The paths are part of the
// public contract and keep their historical names.
func Server(router *mux.Router, store *store.Store) {
	handler := NewHandler(store, router)

	m := middleware.NewMiddleware(store)
	router.Use(m.HandleCORS)
	router.Use(m.LoggingRequest)
	router.Methods(http.MethodOptions)

	router.HandleFunc("/get_all_books", handler.listBooks).Methods(http.MethodGet)
	router.HandleFunc("/get_book_in_lib_by_author/{author_id}", handler.listBooksInStockByAuthor).Methods(http.MethodGet)
	router.HandleFunc("/get_not_read_books/{student_id}", handler.listUnreadBooks).Methods(http.MethodGet)
	router.HandleFunc("/get_avg_taken_books", handler.averageTakenBooks).Methods(http.MethodGet)
	router.HandleFunc("/get_students_over_fourteen_days", handler.listDebtors).Methods(http.MethodGet)
	router.HandleFunc("/get_popular_book_high_score", handler.popularBookAmongHighScorers).Methods(http.MethodGet)
	router.HandleFunc("/get_top_reading_students", handler.listTopReadingStudents).Methods(http.MethodGet)
	router.HandleFunc("/load_students_csv", handler.loadStudentsCSV).Methods(http.MethodPost)
	router.HandleFunc("/give_book_to_student", handler.giveBookToStudent).Methods(http.MethodPost)
	router.HandleFunc("/receiving_book", handler.receiveBook).Methods(http.MethodPost)
}
