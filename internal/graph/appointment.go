package graph

import (
	"github.com/graph-gophers/graphql-go"

	"appointment-graphql-api/internal/model"
)

type appointmentResolver struct {
	a model.Appointment
}

func (r *appointmentResolver) ID() graphql.ID {
	return graphql.ID(r.a.ID)
}

func (r *appointmentResolver) PatientName() string {
	return r.a.PatientName
}

func (r *appointmentResolver) PatientEmail() string {
	return r.a.PatientEmail
}

func (r *appointmentResolver) AppointmentDate() string {
	return r.a.AppointmentDate
}

func (r *appointmentResolver) Purpose() *string {
	return r.a.Purpose
}
