package server

import (
	"errors"
	"net/http"

	"caremap/internal/app"
)

func (s *Server) handlePatients(w http.ResponseWriter, r *http.Request, userID uint) {
	switch r.Method {
	case http.MethodGet:
		patients, err := s.app.ListPatients(userID)
		if err != nil {
			if errors.Is(err, app.ErrNoPatients) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"patients": patients})
	case http.MethodPost:
		var req patientRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if issues := req.Validate(); len(issues) > 0 {
			writeValidationErrors(w, issues)
			return
		}
		patient, err := s.app.CreatePatient(userID, req.Name, *req.Age, req.Disease)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "patient added successfully",
			"patient": patient,
		})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handlePatientByID(w http.ResponseWriter, r *http.Request, userID uint) {
	id, ok := idFromPath(r.URL.Path, "/api/patients/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid patient id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		patient, err := s.app.GetPatient(id)
		if err != nil {
			if errors.Is(err, app.ErrPatientNotFound) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"patient": patient})
	case http.MethodPut:
		var req patientRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if issues := req.Validate(); len(issues) > 0 {
			writeValidationErrors(w, issues)
			return
		}
		patient, err := s.app.UpdatePatient(userID, id, req.Name, *req.Age, req.Disease)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrPatientNotFound):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, app.ErrNotPatientOwner):
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeInternalError(w, r, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "patient updated successfully",
			"patient": patient,
		})
	case http.MethodDelete:
		if err := s.app.DeletePatient(userID, id); err != nil {
			switch {
			case errors.Is(err, app.ErrPatientNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, app.ErrNotPatientOwner):
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeInternalError(w, r, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "patient deleted successfully",
		})
	default:
		methodNotAllowed(w)
	}
}
