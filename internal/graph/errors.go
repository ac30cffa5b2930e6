package graph

import (
	"context"
	"errors"
	"net"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
)

var (
	ErrValidation         = errors.New("invalid appointment")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCreationFailed     = errors.New("failed to create appointment")
	ErrInternal           = errors.New("internal error")
)

// Extension codes sent to clients.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeCreationFailed     = "CREATION_FAILED"
	CodeInternal           = "INTERNAL"
)

// ValidationError lists every argument that failed semantic checks, keyed
// by argument name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Extensions is picked up by graphql-go and copied onto the query error.
func (e *ValidationError) Extensions() map[string]interface{} {
	fields := make(map[string]interface{}, len(e.Fields))
	for k, v := range e.Fields {
		fields[k] = v
	}
	return map[string]interface{}{"code": CodeValidation, "fields": fields}
}

// operationError is what clients see when storage fails. It carries a fixed
// message and never the underlying cause.
type operationError struct {
	kind error
	code string
}

func (e *operationError) Error() string { return e.kind.Error() }
func (e *operationError) Unwrap() error { return e.kind }

func (e *operationError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func storageUnavailable() error {
	return &operationError{kind: ErrStorageUnavailable, code: CodeStorageUnavailable}
}

func creationFailed() error {
	return &operationError{kind: ErrCreationFailed, code: CodeCreationFailed}
}

func internalError() error {
	return &operationError{kind: ErrInternal, code: CodeInternal}
}

// isUnavailable reports whether err means the database could not be
// reached or did not answer in time.
func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case errors.Is(err, puddle.ErrClosedPool):
		return true
	case errors.As(err, &connErr):
		return true
	case pgconn.Timeout(err):
		return true
	case errors.As(err, &netErr):
		return true
	}
	return false
}
