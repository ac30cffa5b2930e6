// Package graph holds the GraphQL schema and the resolvers that map it onto
// the appointment store.
package graph

import (
	"context"
	"errors"
	"log/slog"

	"appointment-graphql-api/internal/metrics"
	"appointment-graphql-api/internal/middleware"
	"appointment-graphql-api/internal/model"
)

// AppointmentStore is the storage the resolvers need. *store.Store
// implements it.
type AppointmentStore interface {
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	CreateAppointment(ctx context.Context, in model.NewAppointment) (*model.Appointment, error)
}

// Recorder counts resolver outcomes. *metrics.Metrics implements it.
type Recorder interface {
	Operation(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Operation(string, string) {}

// Resolver is the root resolver for Query and Mutation. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	store AppointmentStore
	log   *slog.Logger
	rec   Recorder
}

func NewResolver(st AppointmentStore, logger *slog.Logger, rec Recorder) *Resolver {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Resolver{store: st, log: logger, rec: rec}
}

func (r *Resolver) Hello() string {
	return "Hello world!"
}

func (r *Resolver) GetAllAppointments(ctx context.Context) ([]*appointmentResolver, error) {
	const op = "getAllAppointments"

	rows, err := r.store.ListAppointments(ctx)
	if err != nil {
		r.failed(ctx, op, err)
		if isUnavailable(err) {
			return nil, storageUnavailable()
		}
		return nil, internalError()
	}

	out := make([]*appointmentResolver, len(rows))
	for i := range rows {
		out[i] = &appointmentResolver{a: rows[i]}
	}
	r.rec.Operation(op, metrics.OutcomeOK)
	return out, nil
}

func (r *Resolver) CreateAppointment(ctx context.Context, args createAppointmentArgs) (*appointmentResolver, error) {
	const op = "createAppointment"

	in, err := args.validate()
	if err != nil {
		r.rec.Operation(op, metrics.OutcomeError)
		return nil, err
	}

	a, err := r.store.CreateAppointment(ctx, in)
	if err != nil {
		r.failed(ctx, op, err)
		return nil, creationFailed()
	}

	r.rec.Operation(op, metrics.OutcomeOK)
	return &appointmentResolver{a: *a}, nil
}

func (r *Resolver) failed(ctx context.Context, op string, err error) {
	r.rec.Operation(op, metrics.OutcomeError)
	level := slog.LevelError
	if errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	r.log.Log(ctx, level, "resolver failed",
		"operation", op,
		"request_id", middleware.RequestID(ctx),
		"error", err,
	)
}
