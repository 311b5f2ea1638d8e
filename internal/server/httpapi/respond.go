package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paperdispatch/paperdispatch/internal/common"
)

const contentTypeLD = "application/ld+json; charset=utf-8"

// hydraCollection is the envelope of collection responses.
type hydraCollection struct {
	Context    string `json:"@context"`
	Type       string `json:"@type"`
	TotalItems int    `json:"hydra:totalItems"`
	Members    any    `json:"hydra:member"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeLD)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeCollection(w http.ResponseWriter, collectionType string, total int, members any) {
	writeJSON(w, http.StatusOK, hydraCollection{
		Context:    "/contexts/" + collectionType,
		Type:       "hydra:Collection",
		TotalItems: total,
		Members:    members,
	})
}

type errorBody struct {
	Title       string `json:"hydra:title"`
	Description string `json:"hydra:description"`
}

func writeErrorStatus(w http.ResponseWriter, status int, description string) {
	writeJSON(w, status, errorBody{
		Title:       http.StatusText(status),
		Description: description,
	})
}

// writeError maps service error kinds onto HTTP statuses: immutability
// violations are 403, missing rows 404, precondition and input problems 400.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrAlreadySubmitted),
		errors.Is(err, common.ErrDeleteNotAllowed),
		errors.Is(err, common.ErrRecipientLocked):
		writeErrorStatus(w, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrNotFound):
		writeErrorStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrValidation):
		writeErrorStatus(w, http.StatusBadRequest, err.Error())
	default:
		writeErrorStatus(w, http.StatusInternalServerError, "internal error")
	}
}
