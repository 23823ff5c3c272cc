package request // import "github.com/libris-io/libris/http/request"

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// RouteIntParam returns an URL route parameter as int.
func RouteIntParam(r *http.Request, param string) int {
	vars := mux.Vars(r)
	value, err := strconv.Atoi(vars[param])
	if err != nil {
		return 0
	}

	if value < 0 {
		return 0
	}

	return value
}

// FormIntParam returns a form field as int.
func FormIntParam(r *http.Request, param string) (int, error) {
	return strconv.Atoi(r.FormValue(param))
}
