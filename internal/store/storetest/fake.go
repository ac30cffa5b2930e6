// Package storetest provides an in-memory appointment store for tests.
package storetest

import (
	"context"
	"strconv"
	"sync"

	"appointment-graphql-api/internal/model"
)

// Fake behaves like store.Store over a slice. SetErr makes every call
// fail with it, as an unreachable database would.
type Fake struct {
	mu     sync.Mutex
	rows   []model.Appointment
	nextID int
	calls  int

	err error
}

func (f *Fake) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Appointment, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *Fake) CreateAppointment(ctx context.Context, in model.NewAppointment) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	a := model.Appointment{
		ID:              strconv.Itoa(f.nextID),
		PatientName:     in.PatientName,
		PatientEmail:    in.PatientEmail,
		AppointmentDate: in.AppointmentDate,
	}
	if in.Purpose != nil {
		p := *in.Purpose
		a.Purpose = &p
	}
	f.rows = append(f.rows, a)
	return &a, nil
}

func (f *Fake) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Calls counts List and Create invocations.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Rows returns a copy of what has been stored.
func (f *Fake) Rows() []model.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Appointment, len(f.rows))
	copy(out, f.rows)
	return out
}

// SetErr switches failure mode on or off.
func (f *Fake) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
