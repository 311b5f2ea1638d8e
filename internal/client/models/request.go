// Package models defines the dispatch request wire types and the lifecycle
// states derived from them.
package models

import "time"

// State classifies where a dispatch request is in its lifecycle.
type State string

const (
	// StateDraftIncomplete is a draft that still lacks files or recipients.
	StateDraftIncomplete State = "draft_incomplete"
	// StateDraftReady is a draft with at least one file and one recipient.
	StateDraftReady State = "draft_ready"
	// StateSubmitted is terminal; the request is immutable from here on.
	StateSubmitted State = "submitted"
)

// SenderInfo holds the sender block of a dispatch request. The fields are
// inlined into the request JSON under their senderXxx keys.
type SenderInfo struct {
	OrganizationName string `json:"senderOrganizationName,omitempty"`
	FullName         string `json:"senderFullName,omitempty"`
	AddressCountry   string `json:"senderAddressCountry,omitempty"`
	PostalCode       string `json:"senderPostalCode,omitempty"`
	AddressLocality  string `json:"senderAddressLocality,omitempty"`
	StreetAddress    string `json:"senderStreetAddress,omitempty"`
	BuildingNumber   string `json:"senderBuildingNumber,omitempty"`
}

// Complete reports whether the sender block is usable for submission: a name
// (organization or person) plus the core postal address. The building number
// stays optional.
func (s SenderInfo) Complete() bool {
	if s.OrganizationName == "" && s.FullName == "" {
		return false
	}
	return s.AddressCountry != "" && s.PostalCode != "" && s.AddressLocality != "" && s.StreetAddress != ""
}

// DispatchRequest is the canonical server representation of a request.
// Recipients and files are server-computed sub-lists; the client never
// splices them locally.
type DispatchRequest struct {
	Identifier string `json:"identifier,omitempty"`
	Name       string `json:"name"`
	SenderInfo
	DateCreated   time.Time   `json:"dateCreated,omitzero"`
	DateSubmitted *time.Time  `json:"dateSubmitted,omitempty"`
	Recipients    []Recipient `json:"recipients,omitempty"`
	Files         []File      `json:"files,omitempty"`
}

// Submitted reports whether the request has reached its terminal state.
func (r *DispatchRequest) Submitted() bool {
	return r.DateSubmitted != nil
}

// State derives the lifecycle state from the entity fields.
func (r *DispatchRequest) State() State {
	if r.Submitted() {
		return StateSubmitted
	}
	if len(r.Files) > 0 && len(r.Recipients) > 0 {
		return StateDraftReady
	}
	return StateDraftIncomplete
}
