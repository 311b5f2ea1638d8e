package recipients

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

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

const selectPattern = `(?s)^SELECT\s+id,\s*request_id,\s*person_id,\s*electronically_deliverable,\s*given_name,\s*family_name,\s*address_country,\s*postal_code,\s*address_locality,\s*street_address,\s*building_number\s+FROM\s+recipients\s+`

var recipientRows = []string{
	"id", "request_id", "person_id", "electronically_deliverable",
	"given_name", "family_name", "address_country", "postal_code",
	"address_locality", "street_address", "building_number",
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+recipients\s*\(id,\s*request_id,\s*person_id,\s*electronically_deliverable,\s*given_name,\s*family_name,\s*address_country,\s*postal_code,\s*address_locality,\s*street_address,\s*building_number\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8,\s*\$9,\s*\$10,\s*\$11\);\s*$`

	mock.ExpectExec(q).
		WithArgs("rec-1", "req-1", "", false,
			"Ada", "Lovelace", "DE", "10115", "Berlin", "Invalidenstr.", "44").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &models.Recipient{
		Identifier:                "rec-1",
		DispatchRequestIdentifier: "req-1",
		GivenName:                 "Ada",
		FamilyName:                "Lovelace",
		AddressCountry:            "DE",
		PostalCode:                "10115",
		AddressLocality:           "Berlin",
		StreetAddress:             "Invalidenstr.",
		BuildingNumber:            "44",
	}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+recipients`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Recipient{Identifier: "rec-1"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(recipientRows).
		AddRow("rec-1", "req-1", "person-1", true,
			"Ada", "Lovelace", "DE", "10115", "Berlin", "Invalidenstr.", "44")
	mock.ExpectQuery(selectPattern + `WHERE\s+id=\$1\s*$`).
		WithArgs("rec-1").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Identifier != "rec-1" || got.DispatchRequestIdentifier != "req-1" {
		t.Fatalf("unexpected recipient: %+v", got)
	}
	if !got.PersonLinked() || !got.ElectronicallyDeliverable {
		t.Fatalf("person link not scanned: %+v", got)
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

	rows := sqlmock.NewRows(recipientRows).
		AddRow("rec-1", "req-1", "", false, "Ada", "Lovelace", "", "", "", "", "").
		AddRow("rec-2", "req-1", "", false, "Grace", "Hopper", "", "", "", "", "")
	mock.ExpectQuery(selectPattern + `WHERE\s+request_id=\$1\s+ORDER\s+BY\s+id\s*$`).
		WithArgs("req-1").
		WillReturnRows(rows)

	got, err := repo.SelectByRequest(context.Background(), "req-1")
	if err != nil {
		t.Fatalf("SelectByRequest error: %v", err)
	}
	if len(got) != 2 || got[0].Identifier != "rec-1" || got[1].Identifier != "rec-2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+recipients\s+SET\s+electronically_deliverable=\$1,\s*given_name=\$2,\s*family_name=\$3,\s*address_country=\$4,\s*postal_code=\$5,\s*address_locality=\$6,\s*street_address=\$7,\s*building_number=\$8\s+WHERE\s+id=\$9;\s*$`

	mock.ExpectExec(q).
		WithArgs(false, "Ada", "Lovelace", "DE", "10115", "Berlin", "Invalidenstr.", "44", "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &models.Recipient{
		Identifier:      "rec-1",
		GivenName:       "Ada",
		FamilyName:      "Lovelace",
		AddressCountry:  "DE",
		PostalCode:      "10115",
		AddressLocality: "Berlin",
		StreetAddress:   "Invalidenstr.",
		BuildingNumber:  "44",
	}
	if err := repo.Update(context.Background(), rec); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+recipients\s+SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Recipient{Identifier: "ghost"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+recipients\s+WHERE\s+id=\$1\s*$`

	mock.ExpectExec(q).
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "rec-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_NoRowIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+recipients`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}
