package server

import (
	"errors"
	"net/http"

	"caremap/internal/app"
)

func (s *Server) handleMappings(w http.ResponseWriter, r *http.Request, userID uint) {
	switch r.Method {
	case http.MethodGet:
		mappings, err := s.app.ListMappings()
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"mappings": mappings})
	case http.MethodPost:
		var req createMappingRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if issues := req.Validate(); len(issues) > 0 {
			writeValidationErrors(w, issues)
			return
		}
		mapping, err := s.app.CreateMapping(userID, *req.PatientID, *req.DoctorID)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrMappingRefMissing), errors.Is(err, app.ErrMappingExists):
				writeError(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, app.ErrNotPatientOwner):
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeInternalError(w, r, err)
			}
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "doctor assigned to patient successfully",
			"mapping": mapping,
		})
	default:
		methodNotAllowed(w)
	}
}

// handleMappingByID serves two routes that share a path shape:
// GET /api/mappings/{patientId} lists a patient's mappings, and
// DELETE /api/mappings/{doctorId} removes the mapping for the patient
// named in the body.
func (s *Server) handleMappingByID(w http.ResponseWriter, r *http.Request, _ uint) {
	switch r.Method {
	case http.MethodGet:
		patientID, ok := idFromPath(r.URL.Path, "/api/mappings/")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid patient id")
			return
		}
		patient, mappings, err := s.app.PatientMappings(patientID)
		if err != nil {
			switch {
			case errors.Is(err, app.ErrPatientNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			case errors.Is(err, app.ErrNoMappings):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeInternalError(w, r, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"patientDetails": patient,
			"mappings":       mappings,
		})
	case http.MethodDelete:
		doctorID, ok := idFromPath(r.URL.Path, "/api/mappings/")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid doctor id")
			return
		}
		var req deleteMappingRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if issues := req.Validate(); len(issues) > 0 {
			writeValidationErrors(w, issues)
			return
		}
		if err := s.app.DeleteMapping(doctorID, *req.PatientID); err != nil {
			switch {
			case errors.Is(err, app.ErrMappingRefMissing), errors.Is(err, app.ErrMappingNotFound):
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeInternalError(w, r, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "doctor removed from patient successfully",
		})
	default:
		methodNotAllowed(w)
	}
}
