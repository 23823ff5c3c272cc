package model //import "github.com/libris-io/libris/model"

type Book struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
	ReleaseDate string `json:"release_date"`
	AuthorID    int    `json:"author_id"`
}

type FindBook struct {
	ID       *int    `json:"id"`
	Name     *string `json:"name"`
	AuthorID *int    `json:"author_id"`
	// InStock keeps only books with at least one copy left.
	InStock bool `json:"in_stock"`
	OrderBy *string `json:"order_by"`
	// The maximum number of books to return.
	Limit *int `json:"limit"`
}
