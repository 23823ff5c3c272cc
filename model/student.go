package model //import "github.com/libris-io/libris/model"

type Student struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Surname      string  `json:"surname"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	AverageScore float64 `json:"average_score"`
	Scholarship  bool    `json:"scholarship"`
}

type FindStudent struct {
	ID *int `json:"id"`
	// MinAverageScore keeps only students whose average score is
	// strictly greater than the given value.
	MinAverageScore *float64 `json:"min_average_score"`
	Limit           *int     `json:"limit"`
}
