package models

import "time"

// File is an attachment owned by exactly one dispatch request.
type File struct {
	Identifier                string    `json:"identifier,omitempty"`
	DispatchRequestIdentifier string    `json:"dispatchRequestIdentifier,omitempty"`
	Name                      string    `json:"name"`
	ContentSize               int64     `json:"contentSize"`
	FileFormat                string    `json:"fileFormat,omitempty"`
	DateCreated               time.Time `json:"dateCreated"`
}
