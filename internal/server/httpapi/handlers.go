package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paperdispatch/paperdispatch/internal/server/models"
)

// maxUploadSize bounds multipart uploads held in memory before spilling to
// disk.
const maxUploadSize = 32 << 20

func (s *Server) handleEntryPoint(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"@context":         "/contexts/EntryPoint",
		"@type":            "EntryPoint",
		"dispatchRequests": "/dispatch/requests",
	})
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	items, err := s.dispatch.List(r.Context(), ownerID(r))
	if err != nil {
		s.logger.Error(r.Context(), "list failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeCollection(w, "DispatchRequest", len(items), items)
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var payload models.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "malformed body")
		return
	}

	created, err := s.dispatch.Create(r.Context(), ownerID(r), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.dispatch.Get(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleUpdateSender(w http.ResponseWriter, r *http.Request) {
	var payload models.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "malformed body")
		return
	}

	updated, err := s.dispatch.UpdateSender(r.Context(), ownerID(r), chi.URLParam(r, "id"), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.dispatch.Delete(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	submitted, err := s.dispatch.Submit(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitted)
}

func (s *Server) handleCreateRecipient(w http.ResponseWriter, r *http.Request) {
	var payload models.Recipient
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "malformed body")
		return
	}
	if payload.DispatchRequestIdentifier == "" {
		writeErrorStatus(w, http.StatusBadRequest, "dispatchRequestIdentifier is required")
		return
	}

	created, err := s.dispatch.AddRecipient(r.Context(), ownerID(r), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateRecipient(w http.ResponseWriter, r *http.Request) {
	var payload models.Recipient
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "malformed body")
		return
	}

	updated, err := s.dispatch.UpdateRecipient(r.Context(), ownerID(r), chi.URLParam(r, "id"), &payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRecipient(w http.ResponseWriter, r *http.Request) {
	if err := s.dispatch.DeleteRecipient(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "malformed multipart body")
		return
	}

	requestID := r.FormValue("dispatchRequestIdentifier")
	if requestID == "" {
		writeErrorStatus(w, http.StatusBadRequest, "dispatchRequestIdentifier is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "file part is required")
		return
	}
	defer file.Close()

	created, err := s.dispatch.AddFile(r.Context(), ownerID(r), requestID, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	f, rc, err := s.dispatch.GetFileContent(r.Context(), ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", f.FileFormat)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+f.Name+"\"")
	_, _ = io.Copy(w, rc)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := s.dispatch.DeleteFile(r.Context(), ownerID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, org := range s.organizations {
		if org.Identifier == id {
			writeJSON(w, http.StatusOK, models.Organization{
				Identifier:      org.Identifier,
				Name:            org.Name,
				AddressCountry:  org.AddressCountry,
				PostalCode:      org.PostalCode,
				AddressLocality: org.AddressLocality,
				StreetAddress:   org.StreetAddress,
				BuildingNumber:  org.BuildingNumber,
			})
			return
		}
	}
	writeErrorStatus(w, http.StatusNotFound, "organization not found")
}
