package graph

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/puddle/v2"
	"github.com/stretchr/testify/assert"
)

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, true},
		{"closed pool", fmt.Errorf("failed to acquire connection: %w", puddle.ErrClosedPool), true},
		{"constraint", errors.New("duplicate key value violates unique constraint"), false},
		{"canceled", context.Canceled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnavailable(tt.err))
		})
	}
}

func TestOperationErrorHidesCause(t *testing.T) {
	err := creationFailed()
	assert.Equal(t, "failed to create appointment", err.Error())
	assert.ErrorIs(t, err, ErrCreationFailed)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
}

func TestValidatePassesValuesThrough(t *testing.T) {
	purpose := "Checkup"
	in, err := createAppointmentArgs{
		PatientName:     " Jane Doe ",
		PatientEmail:    "jane@example.com",
		AppointmentDate: "2024-05-01",
		Purpose:         &purpose,
	}.validate()

	assert.NoError(t, err)
	assert.Equal(t, " Jane Doe ", in.PatientName)
	assert.Equal(t, &purpose, in.Purpose)
}

func TestValidateKeepsBlankPurpose(t *testing.T) {
	purpose := "  "
	in, err := createAppointmentArgs{
		PatientName:     "Jane Doe",
		PatientEmail:    "jane@example.com",
		AppointmentDate: "2024-05-01",
		Purpose:         &purpose,
	}.validate()

	assert.NoError(t, err)
	if assert.NotNil(t, in.Purpose) {
		assert.Equal(t, "  ", *in.Purpose)
	}
}
