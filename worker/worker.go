package worker // import "github.com/libris-io/libris/worker"

import (
	"github.com/libris-io/libris/model"
)

type Worker interface {
	Run(c <-chan model.Job)
}

type WorkPool interface {
	Push(job model.Job)
}
