// Package services implements the server-side dispatch rules: ownership
// scoping, the submitted-requests-are-immutable rule and the submission
// preconditions. Handlers translate the returned error kinds into HTTP
// statuses.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paperdispatch/paperdispatch/internal/common"
	"github.com/paperdispatch/paperdispatch/internal/dbx"
	"github.com/paperdispatch/paperdispatch/internal/server/models"
	"github.com/paperdispatch/paperdispatch/internal/server/repositories/repomanager"
	"github.com/paperdispatch/paperdispatch/internal/server/storage"
)

type DispatchService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	store storage.BlobStore
}

// NewDispatchService wires the service. db may be nil when the repository
// manager is the in-memory one; transactional sections then run directly.
func NewDispatchService(db *sql.DB, repos repomanager.RepositoryManager, store storage.BlobStore) *DispatchService {
	return &DispatchService{db: db, repos: repos, store: store}
}

func (s *DispatchService) withTx(ctx context.Context, fn func(ctx context.Context, db dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// hydrate attaches the recipient and file sub-lists to a request row.
// Sub-lists are always present in responses, empty rather than null.
func (s *DispatchService) hydrate(ctx context.Context, req *models.Request) error {
	recs, err := s.repos.Recipients(s.db).SelectByRequest(ctx, req.Identifier)
	if err != nil {
		return fmt.Errorf("error loading recipients: %w", err)
	}
	fls, err := s.repos.Files(s.db).SelectByRequest(ctx, req.Identifier)
	if err != nil {
		return fmt.Errorf("error loading files: %w", err)
	}
	req.Recipients = recs
	if req.Recipients == nil {
		req.Recipients = []*models.Recipient{}
	}
	req.Files = fls
	if req.Files == nil {
		req.Files = []*models.File{}
	}
	return nil
}

// Create stores a new draft. The subject is required; the sender block is
// taken as given.
func (s *DispatchService) Create(ctx context.Context, ownerID string, req *models.Request) (*models.Request, error) {

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	req.Identifier = uuid.NewString()
	req.OwnerID = ownerID
	req.DateCreated = time.Now().UTC()
	req.DateSubmitted = nil

	if err := s.repos.Requests(s.db).Create(ctx, req); err != nil {
		return nil, err
	}

	return s.Get(ctx, ownerID, req.Identifier)
}

// List returns all requests of the owner, hydrated, newest first.
func (s *DispatchService) List(ctx context.Context, ownerID string) ([]*models.Request, error) {
	items, err := s.repos.Requests(s.db).SelectByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := s.hydrate(ctx, item); err != nil {
			return nil, err
		}
	}
	if items == nil {
		items = []*models.Request{}
	}
	return items, nil
}

// Get returns one request of the owner, hydrated.
func (s *DispatchService) Get(ctx context.Context, ownerID, id string) (*models.Request, error) {
	req, err := s.repos.Requests(s.db).GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.hydrate(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// getMutable loads a request and rejects the operation when it has already
// been submitted.
func (s *DispatchService) getMutable(ctx context.Context, ownerID, id string) (*models.Request, error) {
	req, err := s.repos.Requests(s.db).GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Submitted() {
		return nil, common.ErrAlreadySubmitted
	}
	return req, nil
}

// UpdateSender replaces the sender block of a draft.
func (s *DispatchService) UpdateSender(ctx context.Context, ownerID, id string, sender *models.Request) (*models.Request, error) {

	req, err := s.getMutable(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	req.SenderOrganizationName = sender.SenderOrganizationName
	req.SenderFullName = sender.SenderFullName
	req.SenderAddressCountry = sender.SenderAddressCountry
	req.SenderPostalCode = sender.SenderPostalCode
	req.SenderAddressLocality = sender.SenderAddressLocality
	req.SenderStreetAddress = sender.SenderStreetAddress
	req.SenderBuildingNumber = sender.SenderBuildingNumber

	if err := s.repos.Requests(s.db).UpdateSender(ctx, req); err != nil {
		return nil, err
	}

	return s.Get(ctx, ownerID, id)
}

// AddRecipient attaches a recipient to a draft.
func (s *DispatchService) AddRecipient(ctx context.Context, ownerID string, rec *models.Recipient) (*models.Recipient, error) {

	if _, err := s.getMutable(ctx, ownerID, rec.DispatchRequestIdentifier); err != nil {
		return nil, err
	}

	rec.Identifier = uuid.NewString()
	if err := s.repos.Recipients(s.db).Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// findOwnedRecipient resolves a recipient and checks that its request belongs
// to the owner. The request row comes back too so callers can check state.
func (s *DispatchService) findOwnedRecipient(ctx context.Context, ownerID, recipientID string) (*models.Recipient, *models.Request, error) {
	rec, err := s.repos.Recipients(s.db).GetByID(ctx, recipientID)
	if err != nil {
		return nil, nil, err
	}
	req, err := s.repos.Requests(s.db).GetByID(ctx, ownerID, rec.DispatchRequestIdentifier)
	if err != nil {
		return nil, nil, err
	}
	return rec, req, nil
}

// UpdateRecipient edits a manually entered recipient. Person-linked
// recipients carry their identity from the person record and are locked.
func (s *DispatchService) UpdateRecipient(ctx context.Context, ownerID, recipientID string, rec *models.Recipient) (*models.Recipient, error) {

	existing, req, err := s.findOwnedRecipient(ctx, ownerID, recipientID)
	if err != nil {
		return nil, err
	}
	if req.Submitted() {
		return nil, common.ErrAlreadySubmitted
	}
	if existing.PersonLinked() {
		return nil, common.ErrRecipientLocked
	}

	rec.Identifier = recipientID
	rec.DispatchRequestIdentifier = existing.DispatchRequestIdentifier
	if err := s.repos.Recipients(s.db).Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecipient detaches a recipient from a draft.
func (s *DispatchService) DeleteRecipient(ctx context.Context, ownerID, recipientID string) error {

	_, req, err := s.findOwnedRecipient(ctx, ownerID, recipientID)
	if err != nil {
		return err
	}
	if req.Submitted() {
		return common.ErrAlreadySubmitted
	}

	return s.repos.Recipients(s.db).Delete(ctx, recipientID)
}

// AddFile stores an attachment blob and its metadata row.
func (s *DispatchService) AddFile(ctx context.Context, ownerID, requestID, name string, content io.Reader) (*models.File, error) {

	if _, err := s.getMutable(ctx, ownerID, requestID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: file name is required", common.ErrValidation)
	}

	key := storage.RandomStorageKey()
	size, err := s.store.Put(ctx, key, content)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	f := &models.File{
		Identifier:                uuid.NewString(),
		DispatchRequestIdentifier: requestID,
		Name:                      name,
		ContentSize:               size,
		FileFormat:                detectFileFormat(name),
		DateCreated:               time.Now().UTC(),
		StorageKey:                key,
	}

	if err := s.repos.Files(s.db).Create(ctx, f); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, err
	}
	return f, nil
}

// GetFileContent streams an attachment back to the owner.
func (s *DispatchService) GetFileContent(ctx context.Context, ownerID, fileID string) (*models.File, io.ReadCloser, error) {
	f, err := s.repos.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.repos.Requests(s.db).GetByID(ctx, ownerID, f.DispatchRequestIdentifier); err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Get(ctx, f.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return f, rc, nil
}

// DeleteFile detaches an attachment and removes its blob.
func (s *DispatchService) DeleteFile(ctx context.Context, ownerID, fileID string) error {

	f, err := s.repos.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	req, err := s.repos.Requests(s.db).GetByID(ctx, ownerID, f.DispatchRequestIdentifier)
	if err != nil {
		return err
	}
	if req.Submitted() {
		return common.ErrAlreadySubmitted
	}

	if err := s.repos.Files(s.db).Delete(ctx, fileID); err != nil {
		return err
	}
	// Blob removal is best effort; an orphaned blob is harmless.
	_ = s.store.Delete(ctx, f.StorageKey)
	return nil
}

// Submit finalizes a draft. A submittable request needs at least one file,
// at least one recipient and a complete sender block.
func (s *DispatchService) Submit(ctx context.Context, ownerID, id string) (*models.Request, error) {

	req, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.Submitted() {
		return nil, common.ErrAlreadySubmitted
	}
	if len(req.Files) == 0 || len(req.Recipients) == 0 {
		return nil, fmt.Errorf("%w: at least one file and one recipient required", common.ErrValidation)
	}
	if !req.SenderComplete() {
		return nil, fmt.Errorf("%w: sender block is incomplete", common.ErrValidation)
	}

	now := time.Now().UTC()
	err = s.withTx(ctx, func(ctx context.Context, db dbx.DBTX) error {
		repo := s.repos.Requests(s.db)
		if db != nil {
			repo = s.repos.Requests(db)
		}
		return repo.SetSubmitted(ctx, ownerID, id, now)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, ownerID, id)
}

// Delete removes a draft with its recipients, file rows and blobs. Submitted
// requests are immutable and cannot be deleted.
func (s *DispatchService) Delete(ctx context.Context, ownerID, id string) error {

	req, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if req.Submitted() {
		return common.ErrDeleteNotAllowed
	}

	err = s.withTx(ctx, func(ctx context.Context, db dbx.DBTX) error {
		if db == nil {
			db = s.db
		}
		for _, rec := range req.Recipients {
			if err := s.repos.Recipients(db).Delete(ctx, rec.Identifier); err != nil {
				return err
			}
		}
		for _, f := range req.Files {
			if err := s.repos.Files(db).Delete(ctx, f.Identifier); err != nil {
				return err
			}
		}
		return s.repos.Requests(db).Delete(ctx, ownerID, id)
	})
	if err != nil {
		return err
	}

	for _, f := range req.Files {
		_ = s.store.Delete(ctx, f.StorageKey)
	}
	return nil
}

func detectFileFormat(name string) string {
	if format := mime.TypeByExtension(filepath.Ext(name)); format != "" {
		return format
	}
	return "application/octet-stream"
}
