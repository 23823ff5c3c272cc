package worker // import "github.com/libris-io/libris/worker"

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/libris-io/libris/config"
	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
	"github.com/libris-io/libris/store"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func newTestStore(t *testing.T, name string) *store.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", filepath.Join(t.TempDir(), name))
	testDb, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { testDb.Close() })

	schema, err := os.ReadFile("../store/db/migration/LATEST_SCHEMA.sql")
	require.NoError(t, err)
	_, err = testDb.Exec(string(schema))
	require.NoError(t, err)
	return store.NewStore(testDb)
}

func TestDebtorScanMarksJobDone(t *testing.T) {
	s := newTestStore(t, "test_debtor_scan.db")

	author, err := s.AddAuthor(&model.Author{Name: "Lev", Surname: "Tolstoy"})
	require.NoError(t, err)
	book, err := s.AddBook(&model.Book{Name: "War And Peace", Count: 10, ReleaseDate: "1867-01-01", AuthorID: author.ID})
	require.NoError(t, err)
	student, err := s.AddStudent(&model.Student{Name: "Nik", Surname: "Nokiv", Phone: "2", Email: "n@x", AverageScore: 4.5})
	require.NoError(t, err)
	_, err = s.AddReceiving(&model.Receiving{
		BookID:      book.ID,
		StudentID:   student.ID,
		DateOfIssue: model.FormatTime(time.Now().AddDate(0, 0, -15)),
	})
	require.NoError(t, err)

	job, err := s.AddJob(model.Job{Type: model.JobTypeDebtorScan, Status: model.JobStatusPending})
	require.NoError(t, err)

	w := &DebtorScanWorker{id: 0, store: s}
	w.process(*job)

	jobs, err := s.ListJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.JobStatusDone, jobs[0].Status)
	assert.Equal(t, "1 debtors", jobs[0].Detail)
}

func TestDebtorScanIgnoresOtherJobTypes(t *testing.T) {
	s := newTestStore(t, "test_debtor_other.db")

	job, err := s.AddJob(model.Job{Type: model.JobTypeStudentImport, Status: model.JobStatusPending})
	require.NoError(t, err)

	w := &DebtorScanWorker{id: 0, store: s}
	w.process(*job)

	jobs, err := s.ListJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.JobStatusPending, jobs[0].Status)
}

func TestSchedulerPushesJobIntoPool(t *testing.T) {
	s := newTestStore(t, "test_scheduler.db")

	pool := NewPool(s, 0)
	sched := NewScheduler(s, pool, time.Hour)

	done := make(chan model.Job, 1)
	go func() {
		done <- <-pool.GetQueue()
	}()
	sched.schedule()

	select {
	case job := <-done:
		assert.Equal(t, model.JobTypeDebtorScan, job.Type)
		assert.Equal(t, model.JobStatusPending, job.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("no job was pushed into the pool")
	}

	jobs, err := s.ListJobs()
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}
