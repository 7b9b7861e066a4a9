package server

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Request bodies validate collect-all: every failed rule contributes one
// message, and the handler reports them together.

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) Validate() []string {
	var issues []string
	issues = appendNameIssues(issues, r.Name)
	issues = appendEmailIssues(issues, r.Email)
	if r.Password == "" {
		issues = append(issues, "password is required")
	}
	return issues
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() []string {
	var issues []string
	issues = appendEmailIssues(issues, r.Email)
	if r.Password == "" {
		issues = append(issues, "password is required")
	}
	return issues
}

type patientRequest struct {
	Name    string `json:"name"`
	Age     *int   `json:"age"`
	Disease string `json:"disease"`
}

func (r patientRequest) Validate() []string {
	var issues []string
	issues = appendNameIssues(issues, r.Name)
	switch {
	case r.Age == nil:
		issues = append(issues, "age is required")
	case *r.Age < 0:
		issues = append(issues, "age must not be negative")
	}
	if strings.TrimSpace(r.Disease) == "" {
		issues = append(issues, "disease is required")
	}
	return issues
}

type doctorRequest struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

func (r doctorRequest) Validate() []string {
	var issues []string
	issues = appendNameIssues(issues, r.Name)
	if strings.TrimSpace(r.Specialization) == "" {
		issues = append(issues, "specialization is required")
	}
	return issues
}

type createMappingRequest struct {
	PatientID *uint `json:"patientId"`
	DoctorID  *uint `json:"doctorId"`
}

func (r createMappingRequest) Validate() []string {
	var issues []string
	issues = appendIDIssues(issues, "patientId", r.PatientID)
	issues = appendIDIssues(issues, "doctorId", r.DoctorID)
	return issues
}

type deleteMappingRequest struct {
	PatientID *uint `json:"patientId"`
}

func (r deleteMappingRequest) Validate() []string {
	return appendIDIssues(nil, "patientId", r.PatientID)
}

func appendNameIssues(issues []string, name string) []string {
	switch {
	case strings.TrimSpace(name) == "":
		issues = append(issues, "name is required")
	case utf8.RuneCountInString(name) < 5:
		issues = append(issues, "name must be at least 5 characters long")
	}
	return issues
}

func appendEmailIssues(issues []string, email string) []string {
	if email == "" {
		return append(issues, "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		issues = append(issues, "email must be a valid email address")
	}
	return issues
}

func appendIDIssues(issues []string, field string, id *uint) []string {
	switch {
	case id == nil:
		issues = append(issues, field+" is required")
	case *id == 0:
		issues = append(issues, field+" must be a positive integer")
	}
	return issues
}
