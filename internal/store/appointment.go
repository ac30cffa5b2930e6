package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"appointment-graphql-api/internal/model"
)

// ListAppointments returns every row, unfiltered and unordered.
func (s *Store) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	defer s.timed("list_appointments", time.Now())

	rows, err := s.db.Query(ctx, s.stmts.list)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.Appointment])
}

// CreateAppointment inserts one row and returns it as stored, in the same
// round trip.
func (s *Store) CreateAppointment(ctx context.Context, in model.NewAppointment) (*model.Appointment, error) {
	defer s.timed("create_appointment", time.Now())

	rows, err := s.db.Query(ctx, s.stmts.insert,
		in.PatientName, in.PatientEmail, in.AppointmentDate, in.Purpose,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Appointment])
}
