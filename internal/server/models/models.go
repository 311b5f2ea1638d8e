// Package models defines the server-side rows for dispatch requests and their
// sub-entities. JSON tags match the public wire format, so handlers can
// serialize rows directly after hydration.
package models

import "time"

// Request is a dispatch request row. OwnerID scopes every query; it never
// leaves the server.
type Request struct {
	Identifier string `json:"identifier"`
	OwnerID    string `json:"-"`
	Name       string `json:"name"`

	SenderOrganizationName string `json:"senderOrganizationName,omitempty"`
	SenderFullName         string `json:"senderFullName,omitempty"`
	SenderAddressCountry   string `json:"senderAddressCountry,omitempty"`
	SenderPostalCode       string `json:"senderPostalCode,omitempty"`
	SenderAddressLocality  string `json:"senderAddressLocality,omitempty"`
	SenderStreetAddress    string `json:"senderStreetAddress,omitempty"`
	SenderBuildingNumber   string `json:"senderBuildingNumber,omitempty"`

	DateCreated   time.Time  `json:"dateCreated"`
	DateSubmitted *time.Time `json:"dateSubmitted,omitempty"`

	// Hydrated sub-lists; not stored on the row itself.
	Recipients []*Recipient `json:"recipients"`
	Files      []*File      `json:"files"`
}

// Submitted reports whether the request has been finalized.
func (r *Request) Submitted() bool {
	return r.DateSubmitted != nil
}

// SenderComplete reports whether the sender block satisfies the submission
// rule: a name (organization or person) plus the core postal address.
func (r *Request) SenderComplete() bool {
	if r.SenderOrganizationName == "" && r.SenderFullName == "" {
		return false
	}
	return r.SenderAddressCountry != "" && r.SenderPostalCode != "" &&
		r.SenderAddressLocality != "" && r.SenderStreetAddress != ""
}

// Recipient is an addressee row of a dispatch request.
type Recipient struct {
	Identifier                string `json:"identifier"`
	DispatchRequestIdentifier string `json:"dispatchRequestIdentifier"`
	PersonIdentifier          string `json:"personIdentifier,omitempty"`
	ElectronicallyDeliverable bool   `json:"electronicallyDeliverable,omitempty"`
	GivenName                 string `json:"givenName,omitempty"`
	FamilyName                string `json:"familyName,omitempty"`
	AddressCountry            string `json:"addressCountry,omitempty"`
	PostalCode                string `json:"postalCode,omitempty"`
	AddressLocality           string `json:"addressLocality,omitempty"`
	StreetAddress             string `json:"streetAddress,omitempty"`
	BuildingNumber            string `json:"buildingNumber,omitempty"`
}

// PersonLinked reports whether the recipient is derived from a person record.
func (r *Recipient) PersonLinked() bool {
	return r.PersonIdentifier != ""
}

// File is an attachment row. StorageKey locates the blob in the configured
// store and never leaves the server.
type File struct {
	Identifier                string    `json:"identifier"`
	DispatchRequestIdentifier string    `json:"dispatchRequestIdentifier"`
	Name                      string    `json:"name"`
	ContentSize               int64     `json:"contentSize"`
	FileFormat                string    `json:"fileFormat"`
	DateCreated               time.Time `json:"dateCreated"`
	StorageKey                string    `json:"-"`
}

// Organization is a sender organization served by the base API.
type Organization struct {
	Identifier      string `json:"identifier"`
	Name            string `json:"name"`
	AddressCountry  string `json:"addressCountry,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	BuildingNumber  string `json:"buildingNumber,omitempty"`
}
