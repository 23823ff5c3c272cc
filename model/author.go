package model //import "github.com/libris-io/libris/model"

type Author struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

type FindAuthor struct {
	ID      *int    `json:"id"`
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
}
