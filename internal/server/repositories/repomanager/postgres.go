package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/paperdispatch/paperdispatch/internal/dbx"
	"github.com/paperdispatch/paperdispatch/internal/server/migrations"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/files"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/recipients"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/requests"
)

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Requests(db dbx.DBTX) requests.Repository {
	return requests.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Recipients(db dbx.DBTX) recipients.Repository {
	return recipients.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return files.NewPostgresRepository(db)
}

var gooseUpContext = goose.UpContext

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
