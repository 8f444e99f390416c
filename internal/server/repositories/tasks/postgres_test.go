package tasks

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/uptask/internal/common"
	"github.com/dmitrijs2005/uptask/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskCols = []string{"id", "owner_id", "project_id", "name", "completed", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_StartsPending(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO tasks \(owner_id, project_id, name, completed\)\s+VALUES \(\$1, \$2, \$3, FALSE\)`).
		WithArgs("u1", "p1", "Write docs").
		WillReturnRows(sqlmock.NewRows([]string{"id", "completed", "created_at"}).AddRow("t1", false, now))

	got, err := repo.Create(context.Background(), &models.Task{OwnerID: "u1", ProjectID: "p1", Name: "Write docs", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, &models.Task{ID: "t1", OwnerID: "u1", ProjectID: "p1", Name: "Write docs", CreatedAt: now}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tasks`).WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.Task{OwnerID: "u1", ProjectID: "p1", Name: "x"})
	if err == nil || !regexp.MustCompile(`db error: .*fk violation`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFind(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM tasks\s+WHERE id = \$1\s*$`).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow("t1", "u1", "p1", "Write docs", true, time.Now()))
	mock.ExpectQuery(`FROM tasks\s+WHERE id = \$1\s*$`).
		WithArgs("t2").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.Find(context.Background(), "t1")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "p1", got.ProjectID)

	_, err = repo.Find(context.Background(), "t2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFindForUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM tasks\s+WHERE id = \$1\s+FOR UPDATE`).
		WithArgs("t1").
		WillReturnError(errors.New("lock timeout"))

	_, err := repo.FindForUpdate(context.Background(), "t1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "lock timeout")
}

func TestListByOwnerAndProject(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE owner_id = \$1 AND project_id = \$2\s+ORDER BY created_at, id`).
		WithArgs("u1", "p1").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow("t1", "u1", "p1", "a", false, time.Now()).
			AddRow("t2", "u1", "p1", "b", true, time.Now()))

	got, err := repo.ListByOwnerAndProject(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Name)
	assert.True(t, got[1].Completed)
}

func TestListByOwnerAndProject_ScanError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM tasks`).
		WithArgs("u1", "p1").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow("t1", "u1", "p1", "a", "not-a-bool", time.Now()))

	_, err := repo.ListByOwnerAndProject(context.Background(), "u1", "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: ")
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE tasks SET name = \$2, project_id = \$3, completed = \$4\s+WHERE id = \$1`).
		WithArgs("t1", "renamed", "p2", true).
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow("t1", "u1", "p2", "renamed", true, time.Now()))

	got, err := repo.Update(context.Background(), &models.Task{ID: "t1", Name: "renamed", ProjectID: "p2", Completed: true})
	require.NoError(t, err)
	assert.Equal(t, "u1", got.OwnerID)
	assert.Equal(t, "p2", got.ProjectID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE tasks`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), &models.Task{ID: "t1"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM tasks\s+WHERE id = \$1`).WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM tasks`).WithArgs("t2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM tasks`).WithArgs("t3").WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	require.NoError(t, repo.Delete(context.Background(), "t1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "t2"), common.ErrorNotFound)
	err := repo.Delete(context.Background(), "t3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows affected error")
}
