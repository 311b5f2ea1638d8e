// Package repomanager selects the repository implementations backing the
// dispatch service: PostgreSQL for deployments, in-memory for development and
// tests.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/paperdispatch/paperdispatch/internal/dbx"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/files"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/recipients"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/requests"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Requests(db dbx.DBTX) requests.Repository
	Recipients(db dbx.DBTX) recipients.Repository
	Files(db dbx.DBTX) files.Repository
}
