package files

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const selectPattern = `(?s)^SELECT\s+id,\s*request_id,\s*name,\s*content_size,\s*file_format,\s*date_created,\s*storage_key\s+FROM\s+files\s+`

var fileRows = []string{
	"id", "request_id", "name", "content_size", "file_format", "date_created", "storage_key",
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+files\s*\(id,\s*request_id,\s*name,\s*content_size,\s*file_format,\s*date_created,\s*storage_key\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\);\s*$`

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(q).
		WithArgs("file-1", "req-1", "doc.pdf", int64(9), "application/pdf", created, "requests/2026/3/1/k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	f := &models.File{
		Identifier:                "file-1",
		DispatchRequestIdentifier: "req-1",
		Name:                      "doc.pdf",
		ContentSize:               9,
		FileFormat:                "application/pdf",
		DateCreated:               created,
		StorageKey:                "requests/2026/3/1/k",
	}
	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+files`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.File{Identifier: "file-1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(fileRows).
		AddRow("file-1", "req-1", "doc.pdf", int64(9), "application/pdf", created, "requests/2026/3/1/k")
	mock.ExpectQuery(selectPattern + `WHERE\s+id=\$1\s*$`).
		WithArgs("file-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "file-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Identifier != "file-1" || got.ContentSize != 9 {
		t.Fatalf("unexpected file: %+v", got)
	}
	if got.StorageKey != "requests/2026/3/1/k" {
		t.Fatalf("storage key not scanned: %q", got.StorageKey)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectPattern).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestSelectByRequest(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(fileRows).
		AddRow("file-1", "req-1", "a.pdf", int64(1), "application/pdf", created, "k1").
		AddRow("file-2", "req-1", "b.pdf", int64(2), "application/pdf", created.Add(time.Minute), "k2")
	mock.ExpectQuery(selectPattern + `WHERE\s+request_id=\$1\s+ORDER\s+BY\s+date_created,\s*id\s*$`).
		WithArgs("req-1").
		WillReturnRows(rows)

	got, err := repo.SelectByRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("SelectByRequest error: %v", err)
	}
	if len(got) != 2 || got[0].Identifier != "file-1" || got[1].Identifier != "file-2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+files\s+WHERE\s+id=\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("file-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "file-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+files`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
