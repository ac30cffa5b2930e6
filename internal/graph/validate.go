package graph

import (
	"net/mail"
	"strings"
	"time"

	"appointment-graphql-api/internal/model"
)

type createAppointmentArgs struct {
	PatientName     string
	PatientEmail    string
	AppointmentDate string
	Purpose         *string
}

// validate runs the semantic checks the schema's non-null types cannot
// express. Accepted values, purpose included, are passed on untouched.
func (a createAppointmentArgs) validate() (model.NewAppointment, error) {
	bad := map[string]string{}

	if blank(a.PatientName) {
		bad["patientName"] = "must not be blank"
	}

	switch {
	case blank(a.PatientEmail):
		bad["patientEmail"] = "must not be blank"
	case !validEmail(a.PatientEmail):
		bad["patientEmail"] = "must be a valid email address"
	}

	switch {
	case blank(a.AppointmentDate):
		bad["appointmentDate"] = "must not be blank"
	case !validDate(a.AppointmentDate):
		bad["appointmentDate"] = "must be a date (YYYY-MM-DD) or RFC 3339 timestamp"
	}

	if len(bad) > 0 {
		return model.NewAppointment{}, &ValidationError{Fields: bad}
	}

	in := model.NewAppointment{
		PatientName:     a.PatientName,
		PatientEmail:    a.PatientEmail,
		AppointmentDate: a.AppointmentDate,
		Purpose:         a.Purpose,
	}
	return in, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validEmail accepts a bare address only; "Jane <jane@example.com>" is
// rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

func validDate(s string) bool {
	if _, err := time.Parse(time.DateOnly, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}
