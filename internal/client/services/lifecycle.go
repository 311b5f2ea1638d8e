// Package services contains the client-side business logic that drives a
// dispatch request through its lifecycle: draft creation, sender and
// recipient edits, file attachment, submission and deletion.
//
// Every mutating operation follows the same shape: client-side precondition
// check, one mutating repository call, then a refetch of the canonical entity
// by id. Recipient and file sub-lists are server-computed and are never
// spliced locally.
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/paperdispatch/paperdispatch/internal/client/models"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/files"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/organizations"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/recipients"
	"github.com/paperdispatch/paperdispatch/internal/client/repositories/requests"
	"github.com/paperdispatch/paperdispatch/internal/common"
)

// Lifecycle is the state machine for a single dispatch request. It is the
// single writer of the currently open detail entity. Operations against the
// same request id are expected to be invoked sequentially by the caller;
// concurrent edits from two sessions resolve last-write-wins at the server.
type Lifecycle struct {
	requests   requests.Repository
	recipients recipients.Repository
	files      files.Repository
	orgs       organizations.Repository

	senderOrgID string
	optimistic  bool

	mu      sync.Mutex
	current *models.DispatchRequest
}

// NewLifecycle wires the lifecycle manager. orgs may be nil; senderOrgID may
// be empty, in which case drafts start with an empty sender block.
func NewLifecycle(rq requests.Repository, rc recipients.Repository, f files.Repository, o organizations.Repository, senderOrgID string) *Lifecycle {
	return &Lifecycle{
		requests:    rq,
		recipients:  rc,
		files:       f,
		orgs:        o,
		senderOrgID: senderOrgID,
	}
}

// SetOptimistic switches mutations to trust the mutation response instead of
// refetching. Mutate-then-refetch stays the default.
func (s *Lifecycle) SetOptimistic(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optimistic = v
}

// Current returns a copy of the cached detail entity, or nil.
func (s *Lifecycle) Current() *models.DispatchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Open fetches the request and makes it the cached detail entity.
func (s *Lifecycle) Open(ctx context.Context, id string) (*models.DispatchRequest, error) {
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error opening request: %w", err)
	}
	s.setCurrent(req)
	return req, nil
}

// CreateDraft creates a new request with the given subject. When a sender
// organization is configured its details are fetched and attached; that
// enrichment is non-fatal.
func (s *Lifecycle) CreateDraft(ctx context.Context, name string) (*models.DispatchRequest, error) {

	if strings.TrimSpace(name) == "" {
		return nil, common.ErrNameRequired
	}

	var sender models.SenderInfo
	if s.senderOrgID != "" && s.orgs != nil {
		org, err := s.orgs.Get(ctx, s.senderOrgID)
		if err != nil {
			log.Printf("organization lookup failed, sender left empty: %v", err)
		} else {
			sender = org.SenderInfo()
		}
	}

	created, err := s.requests.Create(ctx, name, sender)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	return s.refetch(ctx, created.Identifier, created)
}

// EditSender replaces the sender block of a draft.
func (s *Lifecycle) EditSender(ctx context.Context, id string, sender models.SenderInfo) (*models.DispatchRequest, error) {

	if err := s.guardMutable(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.requests.UpdateSender(ctx, id, sender)
	if err != nil {
		return nil, fmt.Errorf("error updating sender: %w", err)
	}

	return s.refetch(ctx, id, updated)
}

// AddRecipient attaches a recipient to a draft.
func (s *Lifecycle) AddRecipient(ctx context.Context, id string, recipient models.Recipient) (*models.DispatchRequest, error) {

	if err := s.guardMutable(ctx, id); err != nil {
		return nil, err
	}

	recipient.DispatchRequestIdentifier = id
	if _, err := s.recipients.Create(ctx, recipient); err != nil {
		return nil, fmt.Errorf("error adding recipient: %w", err)
	}

	return s.refetch(ctx, id, nil)
}

// UpdateRecipient edits a manually entered recipient. Person-linked
// recipients carry their identity from the person record and are locked.
func (s *Lifecycle) UpdateRecipient(ctx context.Context, id, recipientID string, recipient models.Recipient) (*models.DispatchRequest, error) {

	snapshot, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if snapshot.Submitted() {
		return nil, common.ErrAlreadySubmitted
	}
	for _, existing := range snapshot.Recipients {
		if existing.Identifier == recipientID && existing.PersonLinked() {
			return nil, common.ErrRecipientLocked
		}
	}

	if _, err := s.recipients.Update(ctx, recipientID, recipient); err != nil {
		return nil, fmt.Errorf("error updating recipient: %w", err)
	}

	return s.refetch(ctx, id, nil)
}

// RemoveRecipient detaches a recipient from a draft.
func (s *Lifecycle) RemoveRecipient(ctx context.Context, id, recipientID string) (*models.DispatchRequest, error) {

	if err := s.guardMutable(ctx, id); err != nil {
		return nil, err
	}

	if err := s.recipients.Delete(ctx, recipientID); err != nil {
		return nil, fmt.Errorf("error removing recipient: %w", err)
	}

	return s.refetch(ctx, id, nil)
}

// AddFile uploads an attachment to a draft.
func (s *Lifecycle) AddFile(ctx context.Context, id, name string, content io.Reader) (*models.DispatchRequest, error) {

	if err := s.guardMutable(ctx, id); err != nil {
		return nil, err
	}

	if _, err := s.files.Create(ctx, id, name, content); err != nil {
		return nil, fmt.Errorf("error adding file: %w", err)
	}

	return s.refetch(ctx, id, nil)
}

// RemoveFile detaches an attachment from a draft.
func (s *Lifecycle) RemoveFile(ctx context.Context, id, fileID string) (*models.DispatchRequest, error) {

	if err := s.guardMutable(ctx, id); err != nil {
		return nil, err
	}

	if err := s.files.Delete(ctx, fileID); err != nil {
		return nil, fmt.Errorf("error removing file: %w", err)
	}

	return s.refetch(ctx, id, nil)
}

// Submit finalizes a draft. The files/recipients precondition is checked
// locally to save the round trip; the server check remains authoritative and
// a server-side validation rejection surfaces as the same error kind.
func (s *Lifecycle) Submit(ctx context.Context, id string) (*models.DispatchRequest, error) {

	snapshot, err := s.snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if snapshot.Submitted() {
		return nil, common.ErrAlreadySubmitted
	}
	if len(snapshot.Files) == 0 || len(snapshot.Recipients) == 0 {
		return nil, common.ErrEmptyFields
	}

	submitted, err := s.requests.Submit(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrValidation) {
			return nil, common.ErrEmptyFields
		}
		return nil, fmt.Errorf("error submitting request: %w", err)
	}

	return s.refetch(ctx, id, submitted)
}

// Delete removes a draft. Submitted requests cannot be deleted; the guard
// fires before any network call.
func (s *Lifecycle) Delete(ctx context.Context, id string) error {

	snapshot, err := s.snapshot(ctx, id)
	if err != nil {
		return err
	}
	if snapshot.Submitted() {
		return common.ErrDeleteNotAllowed
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting request: %w", err)
	}

	s.mu.Lock()
	if s.current != nil && s.current.Identifier == id {
		s.current = nil
	}
	s.mu.Unlock()

	return nil
}

// guardMutable rejects mutations on submitted requests before any mutating
// network call is made. For a request that was never opened the check reads
// the entity over the network once; it still issues no mutating call.
func (s *Lifecycle) guardMutable(ctx context.Context, id string) error {
	snapshot, err := s.snapshot(ctx, id)
	if err != nil {
		return err
	}
	if snapshot.Submitted() {
		return common.ErrAlreadySubmitted
	}
	return nil
}

// snapshot returns the cached entity for id, fetching it once when the
// request has not been opened yet.
func (s *Lifecycle) snapshot(ctx context.Context, id string) (*models.DispatchRequest, error) {
	s.mu.Lock()
	if s.current != nil && s.current.Identifier == id {
		cp := *s.current
		s.mu.Unlock()
		return &cp, nil
	}
	s.mu.Unlock()

	return s.Open(ctx, id)
}

// refetch reloads the canonical entity after a successful mutation and makes
// it the cached detail. In optimistic mode the mutation response is trusted
// when available.
func (s *Lifecycle) refetch(ctx context.Context, id string, mutated *models.DispatchRequest) (*models.DispatchRequest, error) {

	s.mu.Lock()
	optimistic := s.optimistic
	s.mu.Unlock()

	if optimistic && mutated != nil {
		s.setCurrent(mutated)
		return mutated, nil
	}

	fresh, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error refreshing request: %w", err)
	}
	s.setCurrent(fresh)
	return fresh, nil
}

func (s *Lifecycle) setCurrent(req *models.DispatchRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *req
	s.current = &cp
}
