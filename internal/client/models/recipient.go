package models

// Recipient is an addressee of a dispatch request. A recipient is either
// person-linked (PersonIdentifier set, name fields derived from the person
// record) or manually entered; the two variants are mutually exclusive.
type Recipient struct {
	Identifier                string `json:"identifier,omitempty"`
	DispatchRequestIdentifier string `json:"dispatchRequestIdentifier,omitempty"`
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

// PersonLinked reports whether the recipient was derived from a person
// record. Identity fields of such recipients are not editable.
func (r Recipient) PersonLinked() bool {
	return r.PersonIdentifier != ""
}
