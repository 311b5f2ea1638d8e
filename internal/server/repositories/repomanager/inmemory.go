package repomanager

import (
	"context"
	"database/sql"

	"github.com/paperdispatch/paperdispatch/internal/dbx"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/files"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/recipients"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/requests"
)

// InMemoryRepositoryManager hands out shared in-process repositories. The db
// argument is ignored; there is no transaction boundary.
type InMemoryRepositoryManager struct {
	requests   *requests.InMemoryRepository
	recipients *recipients.InMemoryRepository
	files      *files.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		requests:   requests.NewInMemoryRepository(),
		recipients: recipients.NewInMemoryRepository(),
		files:      files.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Requests(db dbx.DBTX) requests.Repository {
	return m.requests
}

func (m *InMemoryRepositoryManager) Recipients(db dbx.DBTX) recipients.Repository {
	return m.recipients
}

func (m *InMemoryRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return m.files
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
