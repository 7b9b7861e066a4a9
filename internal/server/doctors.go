package server

import (
	"errors"
	"net/http"

	"caremap/internal/app"
)

func (s *Server) handleDoctors(w http.ResponseWriter, r *http.Request, _ uint) {
	switch r.Method {
	case http.MethodGet:
		doctors, err := s.app.ListDoctors()
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"doctors": doctors})
	case http.MethodPost:
		var req doctorRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if issues := req.Validate(); len(issues) > 0 {
			writeValidationErrors(w, issues)
			return
		}
		doctor, err := s.app.CreateDoctor(req.Name, req.Specialization)
		if err != nil {
			writeInternalError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "doctor added successfully",
			"doctor":  doctor,
		})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDoctorByID(w http.ResponseWriter, r *http.Request, _ uint) {
	id, ok := idFromPath(r.URL.Path, "/api/doctors/")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid doctor id")
		return
	}
	switch r.Method {
	case http.MethodGet:
		doctor, err := s.app.GetDoctor(id)
		if err != nil {
			s.writeDoctorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"doctor": doctor})
	case http.MethodPut:
		var req doctorRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if issues := req.Validate(); len(issues) > 0 {
			writeValidationErrors(w, issues)
			return
		}
		doctor, err := s.app.UpdateDoctor(id, req.Name, req.Specialization)
		if err != nil {
			s.writeDoctorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "doctor updated successfully",
			"doctor":  doctor,
		})
	case http.MethodDelete:
		if err := s.app.DeleteDoctor(id); err != nil {
			s.writeDoctorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "doctor deleted successfully",
		})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) writeDoctorError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, app.ErrDoctorNotFound) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeInternalError(w, r, err)
}
