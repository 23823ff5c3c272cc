package util // import "github.com/libris-io/libris/util"

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/libris-io/libris/model"
)

// ParseStudentsCSV reads a semicolon-delimited CSV with a header row
// (name;surname;phone;email;average_score;scholarship) and returns one
// student per data row. Any malformed row fails the whole parse.
func ParseStudentsCSV(r io.Reader) ([]*model.Student, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, required := range []string{"name", "surname", "phone", "email", "average_score", "scholarship"} {
		if _, ok := columns[required]; !ok {
			return nil, errors.Errorf("missing csv column %q", required)
		}
	}

	students := make([]*model.Student, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read csv line %d", line)
		}

		averageScore, err := strconv.ParseFloat(record[columns["average_score"]], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid average_score on line %d", line)
		}
		scholarship, err := strconv.ParseBool(record[columns["scholarship"]])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid scholarship on line %d", line)
		}

		students = append(students, &model.Student{
			Name:         record[columns["name"]],
			Surname:      record[columns["surname"]],
			Phone:        record[columns["phone"]],
			Email:        record[columns["email"]],
			AverageScore: averageScore,
			Scholarship:  scholarship,
		})
	}

	return students, nil
}
